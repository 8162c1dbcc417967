// ABOUTME: MCP prompt for breaking a goal down into todos.
// ABOUTME: Seeds the conversation with the current open list and the title rules.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/todo/internal/validation"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "plan-todos",
		Description: "Break a goal into short todos, avoiding duplicates of open ones",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "goal",
				Description: "What you want to get done",
				Required:    false,
			},
		},
	}, s.getPlanTodosPrompt)
}

func (s *Server) getPlanTodosPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	goal := req.Params.Arguments["goal"]
	if goal == "" {
		goal = "Review my list and suggest what to add next"
	}

	todos, err := s.svc.ListTodos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	var open strings.Builder
	for _, t := range todos {
		if !t.Completed {
			fmt.Fprintf(&open, "- [%d] %s\n", t.ID, t.Title)
		}
	}
	if open.Len() == 0 {
		open.WriteString("(none)\n")
	}

	text := fmt.Sprintf(`Goal: %s

Open todos:
%s
Break the goal into concrete todos and create each one with the create_todo tool.
Each title must be a single line of at most %d characters with no tabs.
Skip anything already covered by an open todo.`, goal, open.String(), validation.MaxTitleLength)

	return &mcp.GetPromptResult{
		Description: "Plan todos for: " + goal,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}, nil
}
