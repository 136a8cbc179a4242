package mcpserver

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"rulecanvas/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for the rule builder.
// It exposes tools, resources, and prompts so AI agents can compose rules on the canvas.
type Server struct {
	mcp    *server.MCPServer
	layout *LayoutEngine
	logger *zap.Logger

	rules *service.RuleService
}

// Deps holds all dependencies passed from the App layer to the MCP server.
type Deps struct {
	Rules  *service.RuleService
	Logger *zap.Logger
}

// New creates and configures a new MCP server with all tools and resources.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		layout: NewLayoutEngine(),
		logger: logger.Named("mcp"),
		rules:  deps.Rules,
	}

	s.mcp = server.NewMCPServer(
		"rulecanvas-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerCanvasTools()
	s.registerRuleTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info("starting stdio server")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

func boolPtr(v bool) *bool { return &v }
