// ABOUTME: GraphQL-over-HTTP client for the todo API.
// ABOUTME: Sends the same operation documents as the web client.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/harper/todo/internal/models"
)

const (
	GetTodosQuery = `query GetTodos {
  todos { id title completed createdAt updatedAt }
}`
	GetTodoQuery = `query GetTodo($id: Int!) {
  todo(id: $id) { id title completed createdAt updatedAt }
}`
	CreateTodoMutation = `mutation CreateTodo($title: String!) {
  createTodo(title: $title) { id title completed createdAt updatedAt }
}`
	UpdateTodoMutation = `mutation UpdateTodo($id: Int!, $title: String, $completed: Boolean) {
  updateTodo(id: $id, title: $title, completed: $completed) { id title completed createdAt updatedAt }
}`
	DeleteTodoMutation = `mutation DeleteTodo($id: Int!) {
  deleteTodo(id: $id)
}`
)

// Error is a failed call. Code is the GraphQL extensions code, or empty for
// transport failures.
type Error struct {
	Message string
	Code    string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

type Client struct {
	endpoint string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
	OperationName string                 `json:"operationName,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string `json:"message"`
		Extensions struct {
			Code string `json:"code"`
		} `json:"extensions"`
	} `json:"errors"`
}

func (c *Client) do(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(request{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &Error{Message: fmt.Sprintf("unexpected status %s", resp.Status)}
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return &Error{Message: fmt.Sprintf("decode response: %v", err)}
	}
	if len(r.Errors) > 0 {
		return &Error{Message: r.Errors[0].Message, Code: r.Errors[0].Extensions.Code}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(r.Data, out); err != nil {
		return &Error{Message: fmt.Sprintf("decode data: %v", err)}
	}
	return nil
}

func (c *Client) ListTodos(ctx context.Context) ([]*models.Todo, error) {
	var data struct {
		Todos []*models.Todo `json:"todos"`
	}
	if err := c.do(ctx, GetTodosQuery, nil, &data); err != nil {
		return nil, err
	}
	return data.Todos, nil
}

// GetTodo returns nil and no error when the todo does not exist.
func (c *Client) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	var data struct {
		Todo *models.Todo `json:"todo"`
	}
	if err := c.do(ctx, GetTodoQuery, map[string]interface{}{"id": id}, &data); err != nil {
		return nil, err
	}
	return data.Todo, nil
}

func (c *Client) CreateTodo(ctx context.Context, title string) (*models.Todo, error) {
	var data struct {
		CreateTodo *models.Todo `json:"createTodo"`
	}
	if err := c.do(ctx, CreateTodoMutation, map[string]interface{}{"title": title}, &data); err != nil {
		return nil, err
	}
	return data.CreateTodo, nil
}

func (c *Client) UpdateTodo(ctx context.Context, id int64, patch models.TodoPatch) (*models.Todo, error) {
	vars := map[string]interface{}{"id": id}
	if patch.Title != nil {
		vars["title"] = *patch.Title
	}
	if patch.Completed != nil {
		vars["completed"] = *patch.Completed
	}

	var data struct {
		UpdateTodo *models.Todo `json:"updateTodo"`
	}
	if err := c.do(ctx, UpdateTodoMutation, vars, &data); err != nil {
		return nil, err
	}
	return data.UpdateTodo, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id int64) (bool, error) {
	var data struct {
		DeleteTodo bool `json:"deleteTodo"`
	}
	if err := c.do(ctx, DeleteTodoMutation, map[string]interface{}{"id": id}, &data); err != nil {
		return false, err
	}
	return data.DeleteTodo, nil
}
