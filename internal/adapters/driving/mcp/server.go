// Package mcp exposes the document library over the Model Context
// Protocol: tools for fetching and saving documents, a resource per
// cached document, and a summarization prompt.
package mcp

import (
	"context"
	"log/slog"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/reader-bridge/internal/core/ports/driving"
)

// Server is the driving adapter translating MCP requests into library
// calls and rendering the results as text.
type Server struct {
	server  *mcp.Server
	library driving.LibraryService
	logger  *slog.Logger

	// mu guards published, title to the description last registered for it
	mu        sync.Mutex
	published map[string]string
}

// Config holds server dependencies.
type Config struct {
	Library driving.LibraryService
	Logger  *slog.Logger
	Version string
}

// NewServer creates the MCP server and registers its tools, resources
// and prompts.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		library:   cfg.Library,
		logger:    logger,
		published: make(map[string]string),
	}
	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "reader-bridge",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerPrompts()
	s.PublishResources()

	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
