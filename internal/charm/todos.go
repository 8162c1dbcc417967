// ABOUTME: Todo storage on Charm KV with zero-padded integer keys
// ABOUTME: Allocates ids from a sequence key so deleted ids never come back

package charm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/harper/todo/internal/models"
)

const (
	// TodoPrefix is the key prefix for todos.
	TodoPrefix = "todo:"

	// SeqKey holds the last id handed out.
	SeqKey = "seq:todo"
)

var ErrTodoNotFound = models.ErrTodoNotFound

// TodoData is a todo as stored in charm KV.
type TodoData struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// ToModel converts TodoData to a models.Todo.
func (d *TodoData) ToModel() *models.Todo {
	return &models.Todo{
		ID:        d.ID,
		Title:     d.Title,
		Completed: d.Completed,
		CreatedAt: time.Unix(0, d.CreatedAt).UTC(),
		UpdatedAt: time.Unix(0, d.UpdatedAt).UTC(),
	}
}

// FromModel creates TodoData from a models.Todo.
func FromModel(t *models.Todo) *TodoData {
	return &TodoData{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt.UnixNano(),
		UpdatedAt: t.UpdatedAt.UnixNano(),
	}
}

// todoKey pads the id so lexical key order matches numeric order.
func todoKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", TodoPrefix, id))
}

func parseSeq(val []byte) (int64, error) {
	if len(val) == 0 {
		return 0, nil
	}
	n, err := strconv.ParseInt(string(val), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse sequence: %w", err)
	}
	return n, nil
}

// sortTodos orders newest first, breaking ties on the larger id.
func sortTodos(todos []*TodoData) {
	sort.Slice(todos, func(i, j int) bool {
		if todos[i].CreatedAt != todos[j].CreatedAt {
			return todos[i].CreatedAt > todos[j].CreatedAt
		}
		return todos[i].ID > todos[j].ID
	})
}

// Store adapts a Client to the service layer.
type Store struct {
	c *Client
}

func NewStore(c *Client) *Store {
	return &Store{c: c}
}

func getTodo(k *kv.KV, id int64) (*TodoData, error) {
	return decodeTodo(k.Get(todoKey(id)))
}

func decodeTodo(val []byte, err error) (*TodoData, error) {
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	var d TodoData
	if err := json.Unmarshal(val, &d); err != nil {
		return nil, fmt.Errorf("unmarshal todo: %w", err)
	}
	return &d, nil
}

func putTodo(k *kv.KV, d *TodoData) error {
	encoded, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal todo: %w", err)
	}
	return k.Set(todoKey(d.ID), encoded)
}

// ListTodos returns every todo, newest first.
func (s *Store) ListTodos(ctx context.Context) ([]*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var todos []*TodoData
	prefix := []byte(TodoPrefix)
	err := s.c.DoReadOnly(func(k *kv.KV) error {
		return k.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.PrefetchValues = true
			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				err := it.Item().Value(func(val []byte) error {
					var d TodoData
					if err := json.Unmarshal(val, &d); err != nil {
						return err
					}
					todos = append(todos, &d)
					return nil
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sortTodos(todos)
	result := make([]*models.Todo, 0, len(todos))
	for _, d := range todos {
		result = append(result, d.ToModel())
	}
	return result, nil
}

// GetTodo retrieves a todo by id.
func (s *Store) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, err := decodeTodo(s.c.Get(todoKey(id)))
	if err != nil {
		return nil, err
	}
	return d.ToModel(), nil
}

// CreateTodo assigns the next id and stores the todo. The sequence read
// and both writes happen under a single Do, which holds the database lock.
func (s *Store) CreateTodo(ctx context.Context, todo *models.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = now
	}
	if todo.UpdatedAt.IsZero() {
		todo.UpdatedAt = todo.CreatedAt
	}

	return s.c.Do(func(k *kv.KV) error {
		val, err := k.Get([]byte(SeqKey))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		last, err := parseSeq(val)
		if err != nil {
			return err
		}

		id := last + 1
		if err := k.Set([]byte(SeqKey), []byte(strconv.FormatInt(id, 10))); err != nil {
			return err
		}

		todo.ID = id
		return putTodo(k, FromModel(todo))
	})
}

// UpdateTodo applies patch to an existing todo.
func (s *Store) UpdateTodo(ctx context.Context, id int64, patch models.TodoPatch) (*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return s.GetTodo(ctx, id)
	}

	var updated *models.Todo
	err := s.c.Do(func(k *kv.KV) error {
		d, err := getTodo(k, id)
		if err != nil {
			return err
		}
		t := d.ToModel()
		patch.Apply(t)
		updated = t
		return putTodo(k, FromModel(t))
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTodo removes a todo.
func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.c.Do(func(k *kv.KV) error {
		if _, err := getTodo(k, id); err != nil {
			return err
		}
		return k.Delete(todoKey(id))
	})
}

func (s *Store) Close() error {
	return s.c.Close()
}
