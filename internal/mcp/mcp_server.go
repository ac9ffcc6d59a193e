// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/beastmode/notable/internal/contract"
)

// NewMCPServer initializes and configures the Notable MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Notable Quality Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: score_repository ---
	s.AddTool(mcp.NewTool("score_repository",
		mcp.WithDescription("Score a repository's quality with the engagement heuristic. No trained model required."),
		mcp.WithString("features", mcp.Description("JSON object of repository features (stars, forks, hasReadme, ...)."), mcp.Required()),
		mcp.WithString("repo", mcp.Description("Repository name to include in the response.")),
	), h.handleScoreRepository)

	// --- 2. Tool: predict_quality ---
	s.AddTool(mcp.NewTool("predict_quality",
		mcp.WithDescription("Predict repository quality with the latest trained model, including a confidence estimate."),
		mcp.WithString("features", mcp.Description("JSON object of repository features (stars, forks, hasReadme, ...)."), mcp.Required()),
		mcp.WithString("repo", mcp.Description("Repository name to include in the response.")),
		mcp.WithString("model", mcp.Description("Path to a model artifact. Defaults to the latest registered model.")),
	), h.handlePredictQuality)

	// --- 3. Tool: list_models ---
	s.AddTool(mcp.NewTool("list_models",
		mcp.WithDescription("List trained models from the registry, newest first."),
	), h.handleListModels)

	return s
}

// StartMCPServer starts the Notable MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
