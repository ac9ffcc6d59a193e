package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/beastmode/notable/core"
	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// parseFeatures decodes the features JSON parameter into a feature bag.
func parseFeatures(request mcp.CallToolRequest) (schema.FeatureBag, error) {
	raw := request.GetString("features", "")
	if raw == "" {
		return nil, fmt.Errorf("features parameter is required")
	}
	var features schema.FeatureBag
	if err := json.Unmarshal([]byte(raw), &features); err != nil {
		return nil, fmt.Errorf("features must be a JSON object: %w", err)
	}
	return features, nil
}

func (h *toolHandler) handleScoreRepository(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	features, err := parseFeatures(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	quality := core.Score(core.Normalize(features))
	result := map[string]any{
		"repo":    request.GetString("repo", ""),
		"quality": quality,
		"label":   contract.GetPlainLabel(quality),
		"method":  "heuristic",
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handlePredictQuality(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	features, err := parseFeatures(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	artifact, err := h.resolveArtifact(ctx, request.GetString("model", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("model resolution failed: %v", err)), nil
	}

	quality, err := core.Predict(artifact, features)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("prediction failed: %v", err)), nil
	}

	result := map[string]any{
		"repo":       request.GetString("repo", ""),
		"quality":    quality,
		"label":      contract.GetPlainLabel(quality),
		"confidence": core.Confidence(artifact, features),
		"algorithm":  artifact.Algorithm,
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListModels(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	registry := h.mgr.GetModelRegistry()
	if registry == nil {
		return mcp.NewToolResultError("model registry is not configured"), nil
	}

	models, err := registry.ListModels(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("registry query failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(models, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// resolveArtifact loads a model artifact from an explicit path, the
// configured path, or the latest registry entry, in that order.
func (h *toolHandler) resolveArtifact(ctx context.Context, modelParam string) (*schema.ModelArtifact, error) {
	path := modelParam
	if path == "" {
		path = h.baseCfg.ModelPath
	}
	if path == "" {
		registry := h.mgr.GetModelRegistry()
		if registry == nil {
			return nil, fmt.Errorf("no model path given and no registry configured")
		}
		latest, err := registry.LatestModel(ctx)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			return nil, fmt.Errorf("no trained models registered. Run the train command first")
		}
		path = latest.ArtifactPath
	}
	return core.LoadArtifact(path)
}
