package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"rulecanvas/internal/domain"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerCanvasTools() {
	// ── list_palette ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_palette",
		mcp.WithDescription("List the block templates that can be added to the canvas, optionally filtered by category"),
		mcp.WithString("category", mcp.Description("Filter by category: trigger, condition, action (optional)")),
	), s.handleListPalette)

	// ── add_block ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_block",
		mcp.WithDescription("Add a block from the palette to the canvas. The block starts with the template's default config."),
		mcp.WithString("kind",
			mcp.Description("Block kind from list_palette, e.g. email_received, amount_greater, send_notification"),
			mcp.Required(),
		),
	), s.handleAddBlock)

	// ── move_block ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_block",
		mcp.WithDescription("Move a block to a new position on the canvas"),
		mcp.WithNumber("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("New X position"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("New Y position"), mcp.Required()),
	), s.handleMoveBlock)

	// ── configure_block ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("configure_block",
		mcp.WithDescription("Set the config of a block. The config replaces the current one unless merge is true."),
		mcp.WithNumber("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithString("config",
			mcp.Description(`JSON object of config options, e.g. {"emailType":"invoice"} or {"recipient":"sales@x.com","template":"urgent"}`),
			mcp.Required(),
		),
		mcp.WithBoolean("merge", mcp.Description("Apply the options on top of the current config (default false)")),
	), s.handleConfigureBlock)

	// ── remove_block (destructive) ─────────────────────
	s.mcp.AddTool(mcp.NewTool("remove_block",
		mcp.WithDescription("Remove a block from the canvas"),
		mcp.WithNumber("blockId", mcp.Description("Block ID to remove"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleRemoveBlock)

	// ── clear_canvas (destructive) ─────────────────────
	s.mcp.AddTool(mcp.NewTool("clear_canvas",
		mcp.WithDescription("Remove every block from the canvas"),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleClearCanvas)

	// ── list_blocks ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_blocks",
		mcp.WithDescription("List the blocks on the canvas in insertion order, optionally filtered by category"),
		mcp.WithString("category", mcp.Description("Filter by category: trigger, condition, action (optional)")),
	), s.handleListBlocks)

	// ── arrange_blocks ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("arrange_blocks",
		mcp.WithDescription("Lay the blocks out in three columns: triggers, conditions, actions"),
		mcp.WithNumber("startX", mcp.Description("Starting X position (default 0)")),
		mcp.WithNumber("startY", mcp.Description("Starting Y position (default 0)")),
	), s.handleArrangeBlocks)

	// ── preview_rule ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("preview_rule",
		mcp.WithDescription("Describe the rule on the canvas: sentence, complexity, execution flow and block counts"),
	), s.handlePreviewRule)

	// ── test_rule ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("test_rule",
		mcp.WithDescription("Dry-run the rule on the canvas. Nothing is executed; the preview is logged and returned."),
	), s.handleTestRule)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleListPalette(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := categoryFilter(req.GetArguments())
	if err != nil {
		return nil, err
	}
	var out []domain.Template
	for _, t := range s.rules.Palette() {
		if category == "" || t.Category == category {
			out = append(out, t)
		}
	}
	return jsonResult(out)
}

func (s *Server) handleAddBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := getString(req.GetArguments(), "kind", true)
	if err != nil {
		return nil, err
	}
	b, err := s.rules.AddBlock(ctx, domain.BlockKind(kind))
	if err != nil {
		return nil, err
	}
	return jsonResult(b)
}

func (s *Server) handleMoveBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := getBlockID(args)
	if err != nil {
		return nil, err
	}
	current, err := s.rules.Block(id)
	if err != nil {
		return nil, err
	}

	x := getFloat(args, "x", current.Position.X)
	y := getFloat(args, "y", current.Position.Y)
	if _, err := s.rules.MoveBlock(ctx, id, x, y); err != nil {
		return nil, fmt.Errorf("move block: %w", err)
	}
	return textResult(fmt.Sprintf("Block %d moved to (%.0f, %.0f)", id, x, y)), nil
}

func (s *Server) handleConfigureBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := getBlockID(args)
	if err != nil {
		return nil, err
	}
	raw, err := getString(args, "config", true)
	if err != nil {
		return nil, err
	}

	var cfg domain.Config
	if getBool(args, "merge", false) {
		current, err := s.rules.Block(id)
		if err != nil {
			return nil, err
		}
		cfg = current.Config
	}
	if err := parseJSON(raw, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config JSON: %w", err)
	}

	b, err := s.rules.ConfigureBlock(ctx, id, cfg)
	if err != nil {
		return nil, err
	}
	return jsonResult(b)
}

func (s *Server) handleRemoveBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := getBlockID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	if err := s.rules.RemoveBlock(ctx, id); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Block %d removed", id)), nil
}

func (s *Server) handleClearCanvas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := len(s.rules.Blocks())
	s.rules.ClearCanvas(ctx)
	return textResult(fmt.Sprintf("Canvas cleared (%d blocks removed)", n)), nil
}

func (s *Server) handleListBlocks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := categoryFilter(req.GetArguments())
	if err != nil {
		return nil, err
	}
	blocks := s.rules.Blocks()
	if category == "" {
		return jsonResult(blocks)
	}
	filtered := []domain.Block{}
	for _, b := range blocks {
		if b.Category == category {
			filtered = append(filtered, b)
		}
	}
	return jsonResult(filtered)
}

func (s *Server) handleArrangeBlocks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	startX := getFloat(args, "startX", 0)
	startY := getFloat(args, "startY", 0)

	positions := s.layout.Arrange(s.rules.Blocks(), startX, startY)
	moved := 0
	for id, pos := range positions {
		// a block removed concurrently is skipped
		if _, err := s.rules.MoveBlock(ctx, id, pos.X, pos.Y); err == nil {
			moved++
		}
	}
	return textResult(fmt.Sprintf("Arranged %d blocks", moved)), nil
}

func (s *Server) handlePreviewRule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.rules.Preview())
}

func (s *Server) handleTestRule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := s.rules.TestRule(ctx)
	return textResult(fmt.Sprintf("Test run (%s, %d blocks): %s", p.Complexity, p.Total, p.Description)), nil
}

func categoryFilter(args map[string]any) (domain.Category, error) {
	v, _ := getString(args, "category", false)
	if v == "" {
		return "", nil
	}
	c := domain.Category(strings.ToLower(v))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q (want trigger, condition or action)", v)
	}
	return c, nil
}
