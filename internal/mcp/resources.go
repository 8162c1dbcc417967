// ABOUTME: MCP resource template exposing single todos as markdown.
// ABOUTME: URIs look like todo://todo/{id}.

package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harper/todo/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourcePrefix = "todo://todo/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: resourcePrefix + "{id}",
			Name:        "Todo",
			Description: "Access individual todos by ID",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func parseResourceID(uri string) (int64, error) {
	raw, ok := strings.CutPrefix(uri, resourcePrefix)
	if !ok {
		return 0, fmt.Errorf("invalid resource URI: %s", uri)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid todo id %q", raw)
	}
	return id, nil
}

func renderTodo(t *models.Todo) string {
	status := "open"
	if t.Completed {
		status = "done"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", t.Title)
	fmt.Fprintf(&sb, "- **ID:** %d\n", t.ID)
	fmt.Fprintf(&sb, "- **Status:** %s\n", status)
	fmt.Fprintf(&sb, "- **Created:** %s\n", t.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "- **Updated:** %s\n", t.UpdatedAt.Format(time.RFC3339))
	return sb.String()
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, err := parseResourceID(req.Params.URI)
	if err != nil {
		return nil, err
	}

	todo, err := s.svc.GetTodo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	if todo == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     renderTodo(todo),
			},
		},
	}, nil
}
