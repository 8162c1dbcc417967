// ABOUTME: Tests for todo database operations.
// ABOUTME: Covers create, read, partial update, delete, and ordering.

package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/todo/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCreateAndGetTodo(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	todo := models.NewTodo("Buy milk")
	if err := CreateTodo(ctx, db, todo); err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}
	if todo.ID <= 0 {
		t.Fatalf("expected positive ID, got %d", todo.ID)
	}

	got, err := GetTodoByID(ctx, db, todo.ID)
	if err != nil {
		t.Fatalf("failed to get todo: %v", err)
	}
	if got.Title != "Buy milk" {
		t.Errorf("expected title %q, got %q", "Buy milk", got.Title)
	}
	if got.Completed {
		t.Error("expected completed to be false")
	}
	if !got.CreatedAt.Equal(todo.CreatedAt) {
		t.Errorf("expected CreatedAt %v, got %v", todo.CreatedAt, got.CreatedAt)
	}
	if !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Error("expected CreatedAt and UpdatedAt to match on create")
	}
}

func TestCreateTodoAssignsTimestamps(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	todo := &models.Todo{Title: "No times"}
	if err := CreateTodo(ctx, db, todo); err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}
	if todo.CreatedAt.IsZero() || todo.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be assigned")
	}
}

func TestGetTodoNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := GetTodoByID(context.Background(), db, 42)
	if !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestListTodosNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	empty, err := ListTodos(ctx, db)
	if err != nil {
		t.Fatalf("failed to list todos: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", empty)
	}

	a := models.NewTodo("A")
	if err := CreateTodo(ctx, db, a); err != nil {
		t.Fatalf("create A: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	b := models.NewTodo("B")
	if err := CreateTodo(ctx, db, b); err != nil {
		t.Fatalf("create B: %v", err)
	}

	todos, err := ListTodos(ctx, db)
	if err != nil {
		t.Fatalf("failed to list todos: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(todos))
	}
	if todos[0].Title != "B" || todos[1].Title != "A" {
		t.Errorf("expected [B A], got [%s %s]", todos[0].Title, todos[1].Title)
	}
}

func TestListTodosSameInstantFallsBackToID(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	now := time.Now().UTC()
	first := &models.Todo{Title: "first", CreatedAt: now, UpdatedAt: now}
	second := &models.Todo{Title: "second", CreatedAt: now, UpdatedAt: now}
	_ = CreateTodo(ctx, db, first)
	_ = CreateTodo(ctx, db, second)

	todos, err := ListTodos(ctx, db)
	if err != nil {
		t.Fatalf("failed to list todos: %v", err)
	}
	if todos[0].ID != second.ID {
		t.Errorf("expected later insert first, got %q", todos[0].Title)
	}
}

func TestUpdateTodoPartial(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	todo := models.NewTodo("Original")
	if err := CreateTodo(ctx, db, todo); err != nil {
		t.Fatalf("create: %v", err)
	}

	time.Sleep(2 * time.Millisecond)
	done := true
	got, err := UpdateTodo(ctx, db, todo.ID, models.TodoPatch{Completed: &done})
	if err != nil {
		t.Fatalf("failed to update todo: %v", err)
	}
	if got.Title != "Original" {
		t.Errorf("expected title unchanged, got %q", got.Title)
	}
	if !got.Completed {
		t.Error("expected completed to be true")
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Error("expected UpdatedAt to advance past CreatedAt")
	}

	title := "Renamed"
	got, err = UpdateTodo(ctx, db, todo.ID, models.TodoPatch{Title: &title})
	if err != nil {
		t.Fatalf("failed to rename todo: %v", err)
	}
	if got.Title != "Renamed" || !got.Completed {
		t.Errorf("expected renamed completed todo, got %+v", got)
	}
}

func TestUpdateTodoNotFound(t *testing.T) {
	db := openTestDB(t)
	done := true

	_, err := UpdateTodo(context.Background(), db, 999, models.TodoPatch{Completed: &done})
	if !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound, got %v", err)
	}

	_, err = UpdateTodo(context.Background(), db, 999, models.TodoPatch{})
	if !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound for empty patch, got %v", err)
	}
}

func TestDeleteTodo(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	todo := models.NewTodo("ToDelete")
	if err := CreateTodo(ctx, db, todo); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := DeleteTodo(ctx, db, todo.ID); err != nil {
		t.Fatalf("failed to delete todo: %v", err)
	}

	if _, err := GetTodoByID(ctx, db, todo.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound after delete, got %v", err)
	}

	if err := DeleteTodo(ctx, db, todo.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound on second delete, got %v", err)
	}
}

func TestIDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	first := models.NewTodo("first")
	_ = CreateTodo(ctx, db, first)
	if err := DeleteTodo(ctx, db, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	second := models.NewTodo("second")
	_ = CreateTodo(ctx, db, second)
	if second.ID == first.ID {
		t.Errorf("expected fresh ID, got reused %d", second.ID)
	}
}

func TestCountTodos(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	_ = CreateTodo(ctx, db, models.NewTodo("one"))
	_ = CreateTodo(ctx, db, models.NewTodo("two"))

	count, err := CountTodos(ctx, db)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2, got %d", count)
	}
}
