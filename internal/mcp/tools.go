package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchCatalogTool defines the search_catalog MCP tool.
var searchCatalogTool = mcp.NewTool("search_catalog",
	mcp.WithDescription("Search the game catalog semantically. Returns the most similar games with their genres and descriptions."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 4)"),
	),
)

// recommendGameTool defines the recommend_game MCP tool.
var recommendGameTool = mcp.NewTool("recommend_game",
	mcp.WithDescription("Ask the recommendation assistant a question. Keeps multi-turn context per session."),
	mcp.WithString("message",
		mcp.Required(),
		mcp.Description("The question or request to send to the assistant"),
	),
	mcp.WithString("session_id",
		mcp.Description("Session identifier for multi-turn conversations; reuse it to keep context"),
	),
)
