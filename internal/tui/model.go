// ABOUTME: Terminal client that lists todos and creates new ones over the API.
// ABOUTME: Pre-validates titles locally and blocks on alerts like a browser would.

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/validation"
)

// SaveFailedMessage is shown when the API call behind a create fails.
const SaveFailedMessage = "Failed to save the TODO. Please try again later."

const requestTimeout = 10 * time.Second

// API is the subset of the todo API the UI calls.
type API interface {
	ListTodos(ctx context.Context) ([]*models.Todo, error)
	CreateTodo(ctx context.Context, title string) (*models.Todo, error)
}

type todosLoadedMsg struct {
	todos []*models.Todo
	err   error
}

type todoCreatedMsg struct {
	todo *models.Todo
	err  error
}

var (
	submitKey  = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add"))
	refreshKey = key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh"))
	quitKey    = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	dismissKey = key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "ok"))
)

type Model struct {
	api   API
	input textinput.Model

	todos   []*models.Todo
	loading bool
	loadErr error

	submitting bool
	alert      string
}

func New(api API) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter a TODO title"
	ti.CharLimit = 0
	ti.Focus()

	return Model{
		api:     api,
		input:   ti,
		loading: true,
	}
}

// Run starts the program and blocks until the user quits.
func Run(api API) error {
	_, err := tea.NewProgram(New(api), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchTodos(), textinput.Blink)
}

func (m Model) Value() string    { return m.input.Value() }
func (m Model) Alert() string    { return m.alert }
func (m Model) Submitting() bool { return m.submitting }
func (m Model) Loading() bool    { return m.loading }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case todosLoadedMsg:
		m.loading = false
		m.loadErr = msg.err
		if msg.err == nil {
			m.todos = msg.todos
		}
		return m, nil

	case todoCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.alert = SaveFailedMessage
			return m, nil
		}
		m.input.SetValue("")
		return m, m.fetchTodos()

	case tea.KeyMsg:
		// An open alert swallows everything until it is dismissed.
		if m.alert != "" {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			if key.Matches(msg, dismissKey) {
				m.alert = ""
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, quitKey):
			return m, tea.Quit
		case key.Matches(msg, refreshKey):
			return m, m.fetchTodos()
		case key.Matches(msg, submitKey):
			return m.submit()
		}

		if m.submitting {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	return m.submitTitle(m.input.Value())
}

func (m Model) submitTitle(title string) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	if err := validation.ValidateTitle(title); err != nil {
		m.alert = err.Error()
		return m, nil
	}

	m.submitting = true
	return m, m.createTodo(title)
}

func (m Model) fetchTodos() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		todos, err := api.ListTodos(ctx)
		return todosLoadedMsg{todos: todos, err: err}
	}
}

func (m Model) createTodo(title string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		todo, err := api.CreateTodo(ctx, title)
		return todoCreatedMsg{todo: todo, err: err}
	}
}

// ListView renders exactly one of loading, error, empty, or the titles.
func (m Model) ListView() string {
	switch {
	case m.loading:
		return "Loading..."
	case m.loadErr != nil:
		return "Error: " + m.loadErr.Error()
	case len(m.todos) == 0:
		return "No todos"
	}

	var sb strings.Builder
	for _, t := range m.todos {
		if t.Completed {
			sb.WriteString(fmt.Sprintf("%s %s\n", boxChecked, doneStyle.Render(t.Title)))
		} else {
			sb.WriteString(fmt.Sprintf("%s %s\n", mutedStyle.Render(boxUnchecked), t.Title))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("TODO"))
	sb.WriteString("\n\n")

	button := buttonStyle.Render("Add")
	if m.submitting {
		button = pendingStyle.Render("Saving...")
	}
	sb.WriteString(m.input.View())
	sb.WriteString("  ")
	sb.WriteString(button)
	sb.WriteString("\n\n")

	if m.alert != "" {
		sb.WriteString(alertStyle.Render(errorStyle.Render(m.alert) + "\n" + helpStyle.Render("press enter to dismiss")))
		sb.WriteString("\n\n")
	}

	sb.WriteString(m.ListView())
	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render(fmt.Sprintf("%s • %s • %s",
		submitKey.Help().Key+" "+submitKey.Help().Desc,
		refreshKey.Help().Key+" "+refreshKey.Help().Desc,
		quitKey.Help().Key+" "+quitKey.Help().Desc,
	)))
	sb.WriteString("\n")
	return sb.String()
}
