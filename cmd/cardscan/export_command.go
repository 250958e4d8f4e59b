package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cardscan/internal/config"
	"cardscan/internal/export"
	"cardscan/internal/history"
	"cardscan/internal/notifications"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the scan history to a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *history.Store) error {
				target := strings.TrimSpace(outputPath)
				if target == "" {
					target = cfg.DefaultExportPath()
				} else {
					expanded, err := config.ExpandPath(target)
					if err != nil {
						return err
					}
					target = expanded
				}

				exporter := export.New(store, nil)
				count, err := exporter.WriteFile(cmd.Context(), target)
				if err != nil {
					return err
				}

				notifier := notifications.NewService(cfg)
				if err := notifier.NotifyExportComplete(cmd.Context(), target, count); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "notification failed: %v\n", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d cards to %s\n", count, target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination CSV path")
	return cmd
}
