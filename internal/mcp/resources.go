package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const savedRulePrefix = "rules://saved/"

func (s *Server) registerResources() {
	// ── rules://palette ────────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"rules://palette",
		"Block Palette",
		mcp.WithMIMEType("application/json"),
	), s.handlePaletteResource)

	// ── rules://canvas ─────────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"rules://canvas",
		"Blocks on the Canvas",
		mcp.WithMIMEType("application/json"),
	), s.handleCanvasResource)

	// ── rules://preview ────────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"rules://preview",
		"Rule Preview",
		mcp.WithMIMEType("application/json"),
	), s.handlePreviewResource)

	// ── rules://saved/{ruleId} ─────────────────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			savedRulePrefix+"{ruleId}",
			"Saved Rule",
		),
		s.handleSavedRuleResource,
	)
}

func (s *Server) handlePaletteResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonContents("rules://palette", s.rules.Palette())
}

func (s *Server) handleCanvasResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonContents("rules://canvas", s.rules.Blocks())
}

func (s *Server) handlePreviewResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonContents("rules://preview", s.rules.Preview())
}

func (s *Server) handleSavedRuleResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	ruleID := extractRuleIDFromURI(uri)
	if ruleID == "" {
		return nil, fmt.Errorf("could not extract ruleId from URI: %s", uri)
	}
	r, err := s.rules.GetRule(ruleID)
	if err != nil {
		return nil, err
	}
	return jsonContents(uri, r)
}

// extractRuleIDFromURI parses "rules://saved/{ruleId}".
func extractRuleIDFromURI(uri string) string {
	id, ok := strings.CutPrefix(uri, savedRulePrefix)
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
