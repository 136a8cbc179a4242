package app

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpserver "rulecanvas/internal/mcp"
)

func (a *App) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Expose the rule canvas to AI agents as an MCP server over stdio.
The canvas lives for the duration of the process; saved rules go to the database.
Logs are written to stderr so they never mix with protocol traffic.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, closeDB, err := a.openRuleService()
			if err != nil {
				return err
			}
			defer closeDB()

			srv := mcpserver.New(mcpserver.Deps{Rules: rules, Logger: a.logger})
			if err := srv.ServeStdio(); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		},
	}
}
