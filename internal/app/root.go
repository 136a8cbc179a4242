package app

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the rulecanvas command tree.
func NewRootCmd() *cobra.Command {
	a := New()
	root := &cobra.Command{
		Use:   "rulecanvas",
		Short: "Compose business automation rules from trigger, condition and action blocks",
		Long: `rulecanvas builds automation rules on a canvas of blocks:
  Trigger → Conditions → Actions

Rules are previewed as a plain-language sentence, saved to a local
database, exchanged as JSON or YAML files and exposed to AI agents over MCP.`,
		SilenceErrors: true, // We handle error formatting ourselves
		SilenceUsage:  true, // Don't show usage on error
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.sync()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/rulecanvas/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	_ = root.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	root.AddCommand(
		a.paletteCmd(),
		a.previewCmd(),
		a.rulesCmd(),
		a.watchCmd(),
		a.serveCmd(),
		a.configCmd(),
	)
	return root
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		printErrorTo(os.Stderr, err)
	}
	return err
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", err)
}
