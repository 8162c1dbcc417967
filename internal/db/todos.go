// ABOUTME: Database operations for todos.
// ABOUTME: Provides CRUD keyed by integer id with store-assigned timestamps.

package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/harper/todo/internal/models"
)

var ErrTodoNotFound = models.ErrTodoNotFound

const todoColumns = `id, title, completed, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	todo := &models.Todo{}
	if err := row.Scan(&todo.ID, &todo.Title, &todo.Completed, &todo.CreatedAt, &todo.UpdatedAt); err != nil {
		return nil, err
	}
	todo.CreatedAt = todo.CreatedAt.UTC()
	todo.UpdatedAt = todo.UpdatedAt.UTC()
	return todo, nil
}

// CreateTodo inserts todo and fills in its id. Zero timestamps are set to now.
func CreateTodo(ctx context.Context, db *sql.DB, todo *models.Todo) error {
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now().UTC()
	}
	if todo.UpdatedAt.IsZero() || todo.UpdatedAt.Before(todo.CreatedAt) {
		todo.UpdatedAt = todo.CreatedAt
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO todos (title, completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		todo.Title, todo.Completed, todo.CreatedAt, todo.UpdatedAt,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	todo.ID = id
	return nil
}

func GetTodoByID(ctx context.Context, db *sql.DB, id int64) (*models.Todo, error) {
	todo, err := scanTodo(db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// ListTodos returns every todo, newest first. Ties on created_at fall back
// to insertion order.
func ListTodos(ctx context.Context, db *sql.DB) ([]*models.Todo, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	todos := []*models.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return todos, nil
}

// UpdateTodo applies patch in a single statement and returns the stored row.
// An empty patch only checks that the todo exists.
func UpdateTodo(ctx context.Context, db *sql.DB, id int64, patch models.TodoPatch) (*models.Todo, error) {
	if patch.IsEmpty() {
		return GetTodoByID(ctx, db, id)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE todos
		 SET title = COALESCE(?, title),
		     completed = COALESCE(?, completed),
		     updated_at = ?
		 WHERE id = ?`,
		patch.Title, patch.Completed, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrTodoNotFound
	}
	return GetTodoByID(ctx, db, id)
}

func DeleteTodo(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

func CountTodos(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&count)
	return count, err
}
