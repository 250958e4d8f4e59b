package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cardscan/internal/cards"
	"cardscan/internal/config"
	"cardscan/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and maintain the scan history",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryDeleteCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all scanned cards, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *history.Store) error {
				listed, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, map[string]any{"total": len(listed), "items": listed})
				}
				out := cmd.OutOrStdout()
				if len(listed) == 0 {
					fmt.Fprintln(out, "History is empty.")
					return nil
				}
				fmt.Fprintln(out, renderCardTable(listed))
				fmt.Fprintf(out, "%d cards\n", len(listed))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single card by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCardID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(_ *config.Config, store *history.Store) error {
				card, err := store.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				if card == nil {
					return fmt.Errorf("no card with id %d", id)
				}
				if jsonOut {
					return writeJSON(cmd, card)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderCardTable([]*cards.Card{card}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newHistoryDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a card from history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCardID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(_ *config.Config, store *history.Store) error {
				card, err := store.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				if card == nil {
					return fmt.Errorf("no card with id %d", id)
				}
				if err := store.DeleteByID(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (id %d)\n", card.Name, id)
				return nil
			})
		},
	}
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the entire scan history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("history clear removes every card; pass --force to confirm")
			}
			return ctx.withStore(func(_ *config.Config, store *history.Store) error {
				count, err := store.Count(cmd.Context())
				if err != nil {
					return err
				}
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cards\n", count)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation guard")
	return cmd
}

func parseCardID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid card id %q", raw)
	}
	return id, nil
}
