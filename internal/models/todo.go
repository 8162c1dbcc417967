// ABOUTME: Todo model representing a single task item.
// ABOUTME: Provides constructor, partial-update patch, and timestamp handling.

package models

import (
	"errors"
	"time"
)

// ErrTodoNotFound is returned by every store when no todo has the given id.
var ErrTodoNotFound = errors.New("todo not found")

type Todo struct {
	ID        int64     `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Completed bool      `json:"completed" yaml:"completed"`
	CreatedAt time.Time `json:"createdAt" yaml:"created"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated"`
}

// NewTodo returns an unsaved todo. The id is assigned by the store.
func NewTodo(title string) *Todo {
	now := time.Now().UTC()
	return &Todo{
		Title:     title,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (t *Todo) Touch() {
	now := time.Now().UTC()
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now
}

// TodoPatch holds the fields of an update. Nil fields are left unchanged.
type TodoPatch struct {
	Title     *string
	Completed *bool
}

func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil
}

// Apply copies the set fields onto t and touches it if anything was set.
func (p TodoPatch) Apply(t *Todo) {
	if p.IsEmpty() {
		return
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	t.Touch()
}
