// ABOUTME: Store adapter exposing the todo table to the service layer.
// ABOUTME: Wraps a shared *sql.DB handle injected at construction.

package db

import (
	"context"
	"database/sql"

	"github.com/harper/todo/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListTodos(ctx context.Context) ([]*models.Todo, error) {
	return ListTodos(ctx, s.db)
}

func (s *Store) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	return GetTodoByID(ctx, s.db, id)
}

func (s *Store) CreateTodo(ctx context.Context, todo *models.Todo) error {
	return CreateTodo(ctx, s.db, todo)
}

func (s *Store) UpdateTodo(ctx context.Context, id int64, patch models.TodoPatch) (*models.Todo, error) {
	return UpdateTodo(ctx, s.db, id, patch)
}

func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	return DeleteTodo(ctx, s.db, id)
}

func (s *Store) Close() error {
	return s.db.Close()
}
