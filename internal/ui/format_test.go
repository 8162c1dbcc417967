// ABOUTME: Tests for terminal formatting functions.
// ABOUTME: Checks list rows and the markdown detail view.

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/harper/todo/internal/models"
)

func init() {
	color.NoColor = true
}

func TestFormatTodoListItem(t *testing.T) {
	todo := &models.Todo{ID: 12, Title: "Buy milk"}

	output := FormatTodoListItem(todo)
	if !strings.Contains(output, "12") {
		t.Error("expected output to contain id")
	}
	if !strings.Contains(output, "[ ]") {
		t.Error("expected open checkbox")
	}
	if !strings.Contains(output, "Buy milk") {
		t.Error("expected output to contain title")
	}

	todo.Completed = true
	if !strings.Contains(FormatTodoListItem(todo), "[x]") {
		t.Error("expected checked box for completed todo")
	}
}

func TestFormatTodoListEmpty(t *testing.T) {
	if got := FormatTodoList(nil); !strings.Contains(got, "No todos") {
		t.Errorf("FormatTodoList(nil) = %q", got)
	}
}

func TestTodoMarkdown(t *testing.T) {
	now := time.Now()
	todo := &models.Todo{ID: 3, Title: "Ship it", Completed: true, CreatedAt: now, UpdatedAt: now}

	md := TodoMarkdown(todo)
	if !strings.HasPrefix(md, "# Ship it\n") {
		t.Errorf("unexpected heading: %q", md)
	}
	if !strings.Contains(md, "| Status | done |") {
		t.Error("expected done status row")
	}

	if out := FormatTodoDetail(todo); out == "" {
		t.Error("expected non-empty detail output")
	}
}

func TestSuccessAndError(t *testing.T) {
	if got := Success("saved"); got != "✓ saved" {
		t.Errorf("Success = %q", got)
	}
	if got := Error("nope"); got != "✗ nope" {
		t.Errorf("Error = %q", got)
	}
}
