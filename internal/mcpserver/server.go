// Package mcpserver exposes the cached adoption series to agents over the
// Model Context Protocol, either on stdio or as an SSE endpoint mounted in
// the dashboard.
package mcpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papapumpkin/uptake/internal/adoption"
)

// Name is the implementation name reported to MCP clients.
const Name = "uptake"

// Server registers the adoption tools on an MCP server.
type Server struct {
	mcp    *mcp.Server
	source adoption.Source
	logger *slog.Logger
}

// New creates a server reading from src. version is reported to clients.
func New(src adoption.Source, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    Name,
				Version: version,
			},
			nil,
		),
		source: src,
		logger: logger,
	}
	s.registerTools()
	return s
}

// Handler returns an SSE handler serving this server.
func (s *Server) Handler() http.Handler {
	return mcp.NewSSEHandler(func(_ *http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

// Run serves on stdin/stdout until ctx is cancelled or the client leaves.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp serving on stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
