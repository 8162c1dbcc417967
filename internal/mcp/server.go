// ABOUTME: MCP server exposing the todo service to AI agents over stdio.
// ABOUTME: Registers tools, a per-todo resource template, and a planning prompt.

package mcp

import (
	"context"

	"github.com/harper/todo/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	server *mcp.Server
	svc    *service.Service
}

func NewServer(svc *service.Service, version string) *Server {
	s := &Server{svc: svc}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "todo",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
