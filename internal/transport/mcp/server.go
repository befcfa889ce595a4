// Package mcp exposes user memory as Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/sandevgo/tuskmem/internal/core"
)

// MemoryService is the part of memory.Consolidator the tools call.
type MemoryService interface {
	Memory(ctx context.Context, userID string) (core.MemorySet, error)
	Prompt(ctx context.Context, userID string) (string, error)
	Consolidate(ctx context.Context, userID string, candidates []core.CandidateFact) (core.MemorySet, error)
}

type Server struct {
	memory MemoryService
	mcp    *server.MCPServer
}

func NewServer(memory MemoryService) (*Server, error) {
	if memory == nil {
		return nil, errors.New("memory service is required")
	}

	s := &Server{memory: memory}
	s.mcp = server.NewMCPServer(
		core.TuskName,
		core.TuskVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcp.AddTool(getTool, s.handleGet)
	s.mcp.AddTool(promptTool, s.handlePrompt)
	s.mcp.AddTool(rememberTool, s.handleRemember)

	return s, nil
}

// ServeStdio speaks MCP over in/out until ctx is done or in is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// Handler serves the tools over streamable HTTP.
func (s *Server) Handler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcp, server.WithStateLess(true))
}
