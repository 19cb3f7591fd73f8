package mcp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gamemate-ai/gamemate/internal/vectordb"
)

// handleSearchCatalog performs semantic search over the game catalog.
func (s *Server) handleSearchCatalog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 4)
	if limit <= 0 {
		limit = 4
	}

	results, err := s.store.Search(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. The catalog may not be indexed yet. Run `gamemate index` to build it."), nil
	}

	return mcp.NewToolResultText(vectordb.FormatResults(results)), nil
}

// handleRecommendGame runs one conversational turn through the assistant.
func (s *Server) handleRecommendGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: message"), nil
	}

	sessionID := request.GetString("session_id", "")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	answer, err := s.chat.HandleTurn(ctx, sessionID, message)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("turn failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("session: %s\n\n%s", sessionID, answer)), nil
}
