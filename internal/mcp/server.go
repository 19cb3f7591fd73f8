// Package mcp exposes the assistant's catalog search and recommendation
// capabilities as Model Context Protocol tools on stdio.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gamemate-ai/gamemate/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ChatService handles one conversational turn. Implemented by
// chat.Orchestrator.
type ChatService interface {
	HandleTurn(ctx context.Context, sessionID, userInput string) (string, error)
}

// Server wraps an MCP server that exposes game catalog tools.
type Server struct {
	store vectordb.VectorStore
	chat  ChatService
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(store vectordb.VectorStore, chatSvc ChatService) *Server {
	s := &Server{
		store: store,
		chat:  chatSvc,
	}

	s.mcp = server.NewMCPServer(
		"gamemate",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchCatalogTool, s.handleSearchCatalog)
	s.mcp.AddTool(recommendGameTool, s.handleRecommendGame)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
