package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("draft_rule",
		mcp.WithPromptDescription("Guide through turning a business goal into a trigger → condition → action rule"),
		mcp.WithArgument("goal",
			mcp.ArgumentDescription("What the rule should achieve, e.g. 'alert sales about large invoices'"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("name",
			mcp.ArgumentDescription("Name to save the rule under (optional)"),
		),
	), s.handleDraftRulePrompt)
}

func (s *Server) handleDraftRulePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	goal := req.Params.Arguments["goal"]
	name := req.Params.Arguments["name"]
	if name == "" {
		name = goal
	}
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Draft a rule for: %s", goal),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Build an automation rule that achieves: "%s". Follow these steps:

1. Use list_palette to see the available triggers, conditions and actions
2. Call clear_canvas if the canvas already holds an unrelated rule (check list_blocks first)
3. Add one trigger with add_block, then any conditions, then the actions
4. Adjust options with configure_block, e.g. {"emailType":"invoice"} or {"amount":5000}
5. Run arrange_blocks so the rule reads left to right
6. Check preview_rule: the sentence should read like the goal above
7. When it does, call save_rule with name "%s"

Keep the rule as small as possible. Prefer a single trigger unless the goal names several events.`, goal, name),
				},
			},
		},
	}, nil
}
