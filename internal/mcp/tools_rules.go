package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerRuleTools() {
	// ── save_rule ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("save_rule",
		mcp.WithDescription("Save the blocks on the canvas as a named rule. The rule starts active."),
		mcp.WithString("name", mcp.Description("Rule name"), mcp.Required()),
		mcp.WithString("category", mcp.Description("Free-form rule category, e.g. Financial, Inventory (optional)")),
	), s.handleSaveRule)

	// ── list_rules ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_rules",
		mcp.WithDescription("List saved rules, newest first"),
	), s.handleListRules)

	// ── load_rule ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("load_rule",
		mcp.WithDescription("Replace the canvas with the blocks of a saved rule"),
		mcp.WithString("ruleId", mcp.Description("Saved rule ID"), mcp.Required()),
	), s.handleLoadRule)

	// ── set_rule_active ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_rule_active",
		mcp.WithDescription("Activate or pause a saved rule"),
		mcp.WithString("ruleId", mcp.Description("Saved rule ID"), mcp.Required()),
		mcp.WithBoolean("active", mcp.Description("true to activate, false to pause"), mcp.Required()),
	), s.handleSetRuleActive)

	// ── duplicate_rule ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("duplicate_rule",
		mcp.WithDescription("Copy a saved rule under a new ID"),
		mcp.WithString("ruleId", mcp.Description("Saved rule ID"), mcp.Required()),
	), s.handleDuplicateRule)

	// ── delete_rule (destructive) ──────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_rule",
		mcp.WithDescription("Delete a saved rule"),
		mcp.WithString("ruleId", mcp.Description("Saved rule ID to delete"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteRule)
}

// ruleSummary is the compact listing shape; blocks are available via rules://saved/{ruleId}.
type ruleSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	Blocks      int    `json:"blocks"`
	CreatedAt   string `json:"createdAt"`
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleSaveRule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, err := getString(args, "name", true)
	if err != nil {
		return nil, err
	}
	category, _ := getString(args, "category", false)

	r, err := s.rules.SaveRule(ctx, name, category)
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Rule %q saved with ID %s", r.Name, r.ID)), nil
}

func (s *Server) handleListRules(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rules, err := s.rules.ListRules()
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	out := make([]ruleSummary, len(rules))
	for i, r := range rules {
		out[i] = ruleSummary{
			ID:          r.ID,
			Name:        r.Name,
			Category:    r.Category,
			Description: r.Description,
			Active:      r.Active,
			Blocks:      len(r.Blocks),
			CreatedAt:   r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	return jsonResult(out)
}

func (s *Server) handleLoadRule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := getString(req.GetArguments(), "ruleId", true)
	if err != nil {
		return nil, err
	}
	r, err := s.rules.LoadRule(ctx, id)
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Loaded rule %q (%d blocks) onto the canvas", r.Name, len(r.Blocks))), nil
}

func (s *Server) handleSetRuleActive(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := getString(args, "ruleId", true)
	if err != nil {
		return nil, err
	}
	active, ok := args["active"].(bool)
	if !ok {
		return nil, fmt.Errorf("active is required")
	}
	r, err := s.rules.SetRuleActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	state := "paused"
	if r.Active {
		state = "active"
	}
	return textResult(fmt.Sprintf("Rule %q is now %s", r.Name, state)), nil
}

func (s *Server) handleDuplicateRule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := getString(req.GetArguments(), "ruleId", true)
	if err != nil {
		return nil, err
	}
	dup, err := s.rules.DuplicateRule(ctx, id)
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Rule duplicated as %q with ID %s", dup.Name, dup.ID)), nil
}

func (s *Server) handleDeleteRule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := getString(req.GetArguments(), "ruleId", true)
	if err != nil {
		return nil, err
	}
	if err := s.rules.DeleteRule(ctx, id); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Rule %s deleted", id)), nil
}
