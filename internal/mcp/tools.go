// ABOUTME: MCP tools for todo CRUD through the service layer.
// ABOUTME: Validation and not-found failures come back as tool errors, not protocol errors.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/service"
	"github.com/harper/todo/internal/validation"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "list_todos",
		Description: "List all todos, newest first",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListTodos)

	s.server.AddTool(&mcp.Tool{
		Name:        "get_todo",
		Description: "Get a todo by ID",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer", "description": "Todo ID"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetTodo)

	s.server.AddTool(&mcp.Tool{
		Name:        "create_todo",
		Description: "Create a todo. Titles must be 1-100 characters with no newlines or tabs.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Todo title"}
			},
			"required": ["title"]
		}`),
	}, s.handleCreateTodo)

	s.server.AddTool(&mcp.Tool{
		Name:        "update_todo",
		Description: "Change a todo's title or completion state",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer", "description": "Todo ID"},
				"title": {"type": "string", "description": "New title"},
				"completed": {"type": "boolean", "description": "New completion state"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateTodo)

	s.server.AddTool(&mcp.Tool{
		Name:        "delete_todo",
		Description: "Delete a todo",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer", "description": "Todo ID"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteTodo)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	res := textResult(fmt.Sprintf(format, args...))
	res.IsError = true
	return res
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("failed to encode result: %v", err)
	}
	return textResult(string(data))
}

// serviceError turns a service failure into a tool result the agent can read.
func serviceError(action string, err error) *mcp.CallToolResult {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		return errorResult("%s", verr.Message)
	}
	return errorResult("failed to %s: %v", action, err)
}

func (s *Server) handleListTodos(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	todos, err := s.svc.ListTodos(ctx)
	if err != nil {
		return serviceError("list todos", err), nil
	}
	return jsonResult(todos), nil
}

func (s *Server) handleGetTodo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	todo, err := s.svc.GetTodo(ctx, params.ID)
	if err != nil {
		return serviceError("get todo", err), nil
	}
	if todo == nil {
		return errorResult("todo %d not found", params.ID), nil
	}
	return jsonResult(todo), nil
}

func (s *Server) handleCreateTodo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	todo, err := s.svc.CreateTodo(ctx, params.Title)
	if err != nil {
		return serviceError("create todo", err), nil
	}
	return jsonResult(todo), nil
}

func (s *Server) handleUpdateTodo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID        int64   `json:"id"`
		Title     *string `json:"title"`
		Completed *bool   `json:"completed"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	todo, err := s.svc.UpdateTodo(ctx, params.ID, models.TodoPatch{
		Title:     params.Title,
		Completed: params.Completed,
	})
	if errors.Is(err, service.ErrNotFound) {
		return errorResult("todo %d not found", params.ID), nil
	}
	if err != nil {
		return serviceError("update todo", err), nil
	}
	return jsonResult(todo), nil
}

func (s *Server) handleDeleteTodo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	_, err := s.svc.DeleteTodo(ctx, params.ID)
	if errors.Is(err, service.ErrNotFound) {
		return errorResult("todo %d not found", params.ID), nil
	}
	if err != nil {
		return serviceError("delete todo", err), nil
	}
	return textResult(fmt.Sprintf("Deleted todo %d", params.ID)), nil
}
