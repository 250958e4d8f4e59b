package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cardscan/internal/cards"
	"cardscan/internal/config"
	"cardscan/internal/history"
	"cardscan/internal/reconcile"
	"cardscan/internal/services"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var (
		foilFlag      bool
		signedFlag    bool
		conditionFlag string
		languageFlag  string
		setNameFlag   string
		jsonOut       bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a stored card",
		Long: `Update a stored card. Condition accepts both the short codes
(NM, EX, GD, PL, PO) and the long labels the edit surface offers
(Near Mint, Lightly Played, ...) and stores the value as given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCardID(args[0])
			if err != nil {
				return err
			}

			overrides := reconcile.Overrides{
				Condition: conditionFlag,
				Language:  languageFlag,
				SetName:   setNameFlag,
			}
			if cmd.Flags().Changed("foil") {
				overrides.Foil = &foilFlag
			}
			if cmd.Flags().Changed("signed") {
				overrides.Signed = &signedFlag
			}

			return ctx.withStore(func(_ *config.Config, store *history.Store) error {
				gate := reconcile.NewGate(store, nil)
				updated, err := gate.FinalizeEdit(cmd.Context(), id, overrides)
				if err != nil {
					if errors.Is(err, services.ErrNotFound) {
						return fmt.Errorf("no card with id %d", id)
					}
					return err
				}
				if jsonOut {
					return writeJSON(cmd, updated)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderCardTable([]*cards.Card{&updated}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&foilFlag, "foil", false, "Mark the card as foil")
	cmd.Flags().BoolVar(&signedFlag, "signed", false, "Mark the card as signed")
	cmd.Flags().StringVar(&conditionFlag, "condition", "", "Card condition, stored as given")
	cmd.Flags().StringVar(&languageFlag, "language", "", "Card language")
	cmd.Flags().StringVar(&setNameFlag, "set-name", "", "Override the set name")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}
