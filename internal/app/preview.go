package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"rulecanvas/internal/preview"
	"rulecanvas/internal/rulefile"
)

func (a *App) previewCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Describe a rule file",
		Long:  `Read a JSON or YAML rule file and show its plain-language description, complexity and execution flow.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := rulefile.Read(args[0])
			if err != nil {
				return err
			}
			p := preview.Generate(f.Blocks)
			if asJSON {
				data, err := json.MarshalIndent(p, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal preview: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderPreview(f.Name, p))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the preview as JSON")
	return cmd
}
