// Package mcp provides the MCP server for dice rolls and keep policies.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Kartagia/diceodel/internal/services/roller/service"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Diceodel MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a configured MCP server backed by the roller service.
func New(svc *service.Service) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("roller service is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerRollerTools(mcpServer, svc)

	return &Server{mcpServer: mcpServer}, nil
}

// registerRollerTools registers the dice rolling tools.
func registerRollerTools(mcpServer *mcp.Server, svc *service.Service) {
	mcp.AddTool(mcpServer, RollDiceTool(), RollDiceHandler())
	mcp.AddTool(mcpServer, RollKeepTool(), RollKeepHandler(svc))
	mcp.AddTool(mcpServer, RollHistoryTool(), RollHistoryHandler(svc))
}

// Run creates and serves the MCP server until the context ends.
func Run(ctx context.Context, cfg Config, svc *service.Service) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return runWithTransport(ctx, svc, &mcp.StdioTransport{})
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// runWithTransport creates a server and serves it over the provided transport.
func runWithTransport(ctx context.Context, svc *service.Service, transport mcp.Transport) error {
	mcpServer, err := New(svc)
	if err != nil {
		return err
	}
	return mcpServer.serveWithTransport(ctx, transport)
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
