package server

import (
	"context"
	"io"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const (
	// Name identifies the server to protocol clients.
	Name = "oss-mcp"
	// Version is reported to protocol clients and by --version.
	Version = "1.0.0"
)

// Config holds the protocol server identity.
type Config struct {
	Name    string
	Version string
}

// DefaultConfig returns the identity of this server.
func DefaultConfig() Config {
	return Config{Name: Name, Version: Version}
}

// New creates a protocol server advertising tool and logging capabilities.
func New(cfg Config) *mcpserver.MCPServer {
	return mcpserver.NewMCPServer(cfg.Name, cfg.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)
}

// ServeStdio serves srv over in and out until in is exhausted or ctx is done.
func ServeStdio(ctx context.Context, srv *mcpserver.MCPServer, logger *zap.Logger, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(srv)
	stdio.SetErrorLogger(zap.NewStdLog(logger))

	logger.Info("OSS MCP server listening on stdio")
	return stdio.Listen(ctx, in, out)
}
