package app

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rulecanvas/internal/domain"
	"rulecanvas/internal/palette"
)

func (a *App) paletteCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "List the block templates",
		Long:  `Display every block that can be placed on the canvas with its category and default options.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := palette.Templates()
			if category != "" {
				c := domain.Category(strings.ToLower(category))
				if !c.Valid() {
					return fmt.Errorf("unknown category %q (want trigger, condition or action)", category)
				}
				templates = palette.ByCategory(c)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "KIND\tCATEGORY\tLABEL\tDEFAULTS")
			_, _ = fmt.Fprintln(w, "────\t────────\t─────\t────────")
			for _, t := range templates {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Kind, t.Category, t.Label, formatConfig(t.Defaults))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only show one category: trigger, condition, action")
	_ = cmd.RegisterFlagCompletionFunc("category", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"trigger", "condition", "action"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// formatConfig prints the set options as key=value pairs, or "-" when none are set.
func formatConfig(c domain.Config) string {
	keys := c.Keys()
	if len(keys) == 0 {
		return "-"
	}
	values := map[string]any{
		domain.KeyEmailType:  c.EmailType,
		domain.KeyFileType:   c.FileType,
		domain.KeyPlatform:   c.Platform,
		domain.KeyFrequency:  c.Frequency,
		domain.KeyAmount:     c.Amount,
		domain.KeyComparison: c.Comparison,
		domain.KeyQuantity:   c.Quantity,
		domain.KeyPriority:   c.Priority,
		domain.KeyKeyword:    c.Keyword,
		domain.KeyRecipient:  c.Recipient,
		domain.KeyTemplate:   c.Template,
		domain.KeyTable:      c.Table,
		domain.KeyField:      c.Field,
		domain.KeyDuration:   c.Duration,
		domain.KeyReminder:   c.Reminder,
		domain.KeyLocation:   c.Location,
		domain.KeyNotify:     c.Notify,
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, values[k])
	}
	return strings.Join(parts, " ")
}
