package app

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rulecanvas/internal/preview"
)

func (a *App) rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage saved rules",
		Long:  `List, inspect, import, export and toggle the rules stored in the local database.`,
	}
	cmd.AddCommand(
		a.rulesListCmd(),
		a.rulesShowCmd(),
		a.rulesExportCmd(),
		a.rulesImportCmd(),
		a.rulesDeleteCmd(),
		a.rulesActivateCmd(),
		a.rulesDuplicateCmd(),
	)
	return cmd
}

func (a *App) rulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, closeDB, err := a.openRuleService()
			if err != nil {
				return err
			}
			defer closeDB()

			list, err := rules.ListRules()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No saved rules.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSTATUS\tBLOCKS\tCOMPLEXITY")
			_, _ = fmt.Fprintln(w, "──\t────\t────────\t──────\t──────\t──────────")
			for _, r := range list {
				status := "paused"
				if r.Active {
					status = "active"
				}
				category := r.Category
				if category == "" {
					category = "-"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
					r.ID, r.Name, category, status, len(r.Blocks), preview.Classify(len(r.Blocks)))
			}
			return w.Flush()
		},
	}
}

func (a *App) rulesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, closeDB, err := a.openRuleService()
			if err != nil {
				return err
			}
			defer closeDB()

			r, err := rules.GetRule(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderPreview(r.Name, preview.Generate(r.Blocks)))
			return err
		},
	}
}

func (a *App) rulesExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <id> <file>",
		Short: "Write a saved rule to a JSON or YAML file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, closeDB, err := a.openRuleService()
			if err != nil {
				return err
			}
			defer closeDB()

			if err := rules.ExportRule(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", args[0], args[1])
			return nil
		},
	}
}

func (a *App) rulesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>...",
		Short: "Save rules from JSON or YAML files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, closeDB, err := a.openRuleService()
			if err != nil {
				return err
			}
			defer closeDB()

			for _, path := range args {
				r, err := rules.ImportRuleFile(cmd.Context(), path)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %q as %s\n", r.Name, r.ID)
			}
			return nil
		},
	}
}

func (a *App) rulesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, closeDB, err := a.openRuleService()
			if err != nil {
				return err
			}
			defer closeDB()

			if err := rules.DeleteRule(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func (a *App) rulesActivateCmd() *cobra.Command {
	var off bool
	cmd := &cobra.Command{
		Use:   "activate <id>",
		Short: "Activate or pause a saved rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, closeDB, err := a.openRuleService()
			if err != nil {
				return err
			}
			defer closeDB()

			r, err := rules.SetRuleActive(cmd.Context(), args[0], !off)
			if err != nil {
				return err
			}
			state := "active"
			if !r.Active {
				state = "paused"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", r.Name, state)
			return nil
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "pause the rule instead")
	return cmd
}

func (a *App) rulesDuplicateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a saved rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, closeDB, err := a.openRuleService()
			if err != nil {
				return err
			}
			defer closeDB()

			dup, err := rules.DuplicateRule(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Duplicated as %q (%s)\n", dup.Name, dup.ID)
			return nil
		},
	}
}
