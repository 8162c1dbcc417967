// ABOUTME: Tests for the terminal client model.
// ABOUTME: Feeds messages to Update and inspects the resulting state and view.

package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/validation"
)

type fakeAPI struct {
	todos     []*models.Todo
	listErr   error
	createErr error
	created   []string
	listCalls int
}

func (f *fakeAPI) ListTodos(ctx context.Context) ([]*models.Todo, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.todos, nil
}

func (f *fakeAPI) CreateTodo(ctx context.Context, title string) (*models.Todo, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, title)
	t := models.NewTodo(title)
	t.ID = int64(len(f.created))
	f.todos = append([]*models.Todo{t}, f.todos...)
	return t, nil
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func typeText(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func loaded(t *testing.T, api *fakeAPI) Model {
	t.Helper()
	m := New(api)
	m, _ = update(t, m, m.fetchTodos()())
	return m
}

func TestListViewStates(t *testing.T) {
	m := New(&fakeAPI{})
	if got := m.ListView(); got != "Loading..." {
		t.Errorf("initial ListView = %q", got)
	}

	m, _ = update(t, m, todosLoadedMsg{err: errors.New("connection refused")})
	if got := m.ListView(); got != "Error: connection refused" {
		t.Errorf("error ListView = %q", got)
	}

	m, _ = update(t, m, todosLoadedMsg{todos: []*models.Todo{}})
	if got := m.ListView(); got != "No todos" {
		t.Errorf("empty ListView = %q", got)
	}

	m, _ = update(t, m, todosLoadedMsg{todos: []*models.Todo{
		{ID: 2, Title: "second"},
		{ID: 1, Title: "first", Completed: true},
	}})
	got := m.ListView()
	if !strings.Contains(got, "second") || !strings.Contains(got, "first") {
		t.Errorf("list ListView = %q", got)
	}
	if strings.Index(got, "second") > strings.Index(got, "first") {
		t.Error("list should keep server order")
	}
}

func TestSubmitRejectedLocally(t *testing.T) {
	for _, tc := range validation.Cases {
		if tc.Reason == "" {
			continue
		}
		t.Run(tc.Name, func(t *testing.T) {
			api := &fakeAPI{}
			m := loaded(t, api)
			next, cmd := m.submitTitle(tc.Title)
			m = next.(Model)
			if cmd != nil {
				t.Error("rejected title should not issue a request")
			}
			if m.Alert() != validation.Message(tc.Reason) {
				t.Errorf("alert = %q, want %q", m.Alert(), validation.Message(tc.Reason))
			}
			if m.Submitting() {
				t.Error("should not be submitting")
			}
			if len(api.created) != 0 {
				t.Error("api should not be called")
			}
		})
	}
}

func TestAlertBlocksUntilDismissed(t *testing.T) {
	m := loaded(t, &fakeAPI{})

	m, _ = update(t, m, enter())
	if m.Alert() != "Title is required." {
		t.Fatalf("alert = %q", m.Alert())
	}

	m = typeText(m, "ignored")
	if m.Value() != "" {
		t.Errorf("typing under an alert should be ignored, got %q", m.Value())
	}

	m, _ = update(t, m, enter())
	if m.Alert() != "" {
		t.Error("enter should dismiss the alert")
	}
}

func TestSubmitSuccessClearsAndRefetches(t *testing.T) {
	api := &fakeAPI{}
	m := loaded(t, api)
	m = typeText(m, "Buy milk")

	m, cmd := update(t, m, enter())
	if !m.Submitting() {
		t.Fatal("expected submitting while in flight")
	}
	if cmd == nil {
		t.Fatal("expected create command")
	}

	// A second enter while in flight is ignored.
	if _, again := update(t, m, enter()); again != nil {
		t.Error("submit should be disabled while in flight")
	}

	m, refetch := update(t, m, cmd())
	if m.Submitting() {
		t.Error("submitting should reset after response")
	}
	if m.Value() != "" {
		t.Errorf("input should clear, got %q", m.Value())
	}
	if refetch == nil {
		t.Fatal("expected refetch after create")
	}

	m, _ = update(t, m, refetch())
	if !strings.Contains(m.ListView(), "Buy milk") {
		t.Errorf("refetched list = %q", m.ListView())
	}
	if len(api.created) != 1 || api.created[0] != "Buy milk" {
		t.Errorf("created = %v", api.created)
	}
}

func TestSubmitFailureKeepsInput(t *testing.T) {
	api := &fakeAPI{createErr: errors.New("boom")}
	m := loaded(t, api)
	m = typeText(m, "Buy milk")

	m, cmd := update(t, m, enter())
	m, refetch := update(t, m, cmd())

	if m.Alert() != SaveFailedMessage {
		t.Errorf("alert = %q", m.Alert())
	}
	if m.Value() != "Buy milk" {
		t.Errorf("input should be preserved, got %q", m.Value())
	}
	if m.Submitting() {
		t.Error("submitting should reset after failure")
	}
	if refetch != nil {
		t.Error("failure should not refetch")
	}
}

func TestRefreshAndQuit(t *testing.T) {
	api := &fakeAPI{}
	m := loaded(t, api)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("ctrl+r should refetch")
	}
	cmd()
	if api.listCalls != 2 {
		t.Errorf("list calls = %d, want 2", api.listCalls)
	}

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit message")
	}
}

func TestViewShowsSavingButton(t *testing.T) {
	m := loaded(t, &fakeAPI{})
	m = typeText(m, "x")
	m, _ = update(t, m, enter())
	if !strings.Contains(m.View(), "Saving...") {
		t.Error("view should show pending button while in flight")
	}
}

func TestTypedTitleTooLong(t *testing.T) {
	api := &fakeAPI{}
	m := loaded(t, api)
	m = typeText(m, strings.Repeat("a", validation.MaxTitleLength+1))

	m, cmd := update(t, m, enter())
	if cmd != nil {
		t.Error("too long title should not be sent")
	}
	if m.Alert() != "Title must be 100 characters or fewer." {
		t.Errorf("alert = %q", m.Alert())
	}
	if m.Value() == "" {
		t.Error("input should be preserved after a rejected submit")
	}
}
