// ABOUTME: Terminal formatting for todo CLI output.
// ABOUTME: Uses glamour for the detail view and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/todo/internal/models"
)

const timeLayout = "2006-01-02 15:04"

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

// Checkbox renders the completion marker used in lists.
func Checkbox(completed bool) string {
	if completed {
		return green("[x]")
	}
	return faint("[ ]")
}

func FormatTodoListItem(todo *models.Todo) string {
	title := bold(todo.Title)
	if todo.Completed {
		title = faint(todo.Title)
	}
	return fmt.Sprintf("  %s %s  %s\n",
		faint(fmt.Sprintf("%4d", todo.ID)),
		Checkbox(todo.Completed),
		title)
}

func FormatTodoList(todos []*models.Todo) string {
	if len(todos) == 0 {
		return faint("No todos") + "\n"
	}
	var sb strings.Builder
	for _, t := range todos {
		sb.WriteString(FormatTodoListItem(t))
	}
	return sb.String()
}

// TodoMarkdown is the markdown source for the detail view.
func TodoMarkdown(todo *models.Todo) string {
	status := "open"
	if todo.Completed {
		status = "done"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", todo.Title)
	fmt.Fprintf(&sb, "| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| ID | %d |\n", todo.ID)
	fmt.Fprintf(&sb, "| Status | %s |\n", status)
	fmt.Fprintf(&sb, "| Created | %s |\n", todo.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(&sb, "| Updated | %s |\n", todo.UpdatedAt.Local().Format(timeLayout))
	return sb.String()
}

func FormatTodoDetail(todo *models.Todo) string {
	content := TodoMarkdown(todo)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}
