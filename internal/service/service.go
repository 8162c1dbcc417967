// ABOUTME: Todo service enforcing title rules in front of a store.
// ABOUTME: Maps store results and failures onto the service error contract.

package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/validation"
)

var (
	// ErrNotFound is returned when the referenced todo does not exist.
	ErrNotFound = models.ErrTodoNotFound

	// ErrStoreUnavailable matches every *StoreError.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Store is the persistence contract the service needs.
type Store interface {
	ListTodos(ctx context.Context) ([]*models.Todo, error)
	GetTodo(ctx context.Context, id int64) (*models.Todo, error)
	CreateTodo(ctx context.Context, todo *models.Todo) error
	UpdateTodo(ctx context.Context, id int64, patch models.TodoPatch) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
}

// StoreError wraps a store failure that is neither a validation nor a
// not-found error.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

type Service struct {
	store  Store
	logger *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for unexpected store failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListTodos returns all todos, newest first. An empty store yields an empty slice.
func (s *Service) ListTodos(ctx context.Context) ([]*models.Todo, error) {
	todos, err := s.store.ListTodos(ctx)
	if err != nil {
		return nil, s.storeFailure("list todos", err)
	}
	if todos == nil {
		todos = []*models.Todo{}
	}
	return todos, nil
}

// GetTodo returns nil and no error when the todo does not exist.
func (s *Service) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	todo, err := s.store.GetTodo(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.storeFailure("get todo", err)
	}
	return todo, nil
}

// CreateTodo validates title before anything reaches the store.
func (s *Service) CreateTodo(ctx context.Context, title string) (*models.Todo, error) {
	if err := validation.ValidateTitle(title); err != nil {
		return nil, err
	}

	todo := models.NewTodo(title)
	if err := s.store.CreateTodo(ctx, todo); err != nil {
		return nil, s.storeFailure("create todo", err)
	}
	return todo, nil
}

// UpdateTodo changes only the fields set in patch. A new title goes through
// the same validation as CreateTodo.
func (s *Service) UpdateTodo(ctx context.Context, id int64, patch models.TodoPatch) (*models.Todo, error) {
	if patch.Title != nil {
		if err := validation.ValidateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}

	todo, err := s.store.UpdateTodo(ctx, id, patch)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, s.storeFailure("update todo", err)
	}
	return todo, nil
}

// DeleteTodo reports true once the todo is gone.
func (s *Service) DeleteTodo(ctx context.Context, id int64) (bool, error) {
	err := s.store.DeleteTodo(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, s.storeFailure("delete todo", err)
	}
	return true, nil
}

func (s *Service) storeFailure(op string, err error) error {
	s.logger.Error("store failure", "op", op, "err", err)
	return &StoreError{Op: op, Err: err}
}
