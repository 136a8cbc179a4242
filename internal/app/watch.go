package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rulecanvas/internal/service"
)

func (a *App) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Import rule files dropped into an inbox directory",
		Long: `Watch a directory and save every JSON or YAML rule file written to it.
Files already present when watching starts are left alone; use "rules import" for those.
Defaults to the watch.inbox directory from the config.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.Watch.Inbox
			if len(args) == 1 {
				dir = args[0]
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			rules, closeDB, err := a.openRuleService()
			if err != nil {
				return err
			}
			defer closeDB()

			w := service.NewRuleWatcher(rules, dir, a.logger)
			if err := w.Start(ctx); err != nil {
				return err
			}
			defer w.Close()

			<-ctx.Done()
			a.logger.Info("stopping watcher", zap.String("dir", dir))
			return nil
		},
	}
}
