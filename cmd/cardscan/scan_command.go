package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cardscan/internal/cards"
	"cardscan/internal/catalog"
	"cardscan/internal/config"
	"cardscan/internal/extraction"
	"cardscan/internal/history"
	"cardscan/internal/notifications"
	"cardscan/internal/reconcile"
	"cardscan/internal/services"
	"cardscan/internal/services/gemini"
	"cardscan/internal/services/scryfall"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		foilFlag      bool
		signedFlag    bool
		conditionFlag string
		languageFlag  string
		setNameFlag   string
		noSave        bool
		jsonOut       bool
	)

	cmd := &cobra.Command{
		Use:   "scan <image.jpg>",
		Short: "Identify a card photo and save it to history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			imageBytes, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			draft, result, err := runCapture(cmd, cfg, imageBytes)
			if err != nil {
				return fmt.Errorf("%s", services.UserMessage(err))
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

			if noSave {
				preview := draft
				applyPreviewOverrides(&preview, overrides)
				return outputCard(cmd, preview, result, jsonOut)
			}

			var saved cards.Card
			if err := ctx.withStore(func(cfg *config.Config, store *history.Store) error {
				gate := reconcile.NewGate(store, nil)
				var gateErr error
				saved, gateErr = gate.FinalizeNew(cmd.Context(), draft, overrides)
				return gateErr
			}); err != nil {
				return err
			}

			notifier := notifications.NewService(cfg)
			if err := notifier.NotifyScanComplete(cmd.Context(), saved.Name, saved.SetName); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "notification failed: %v\n", err)
			}

			return outputCard(cmd, saved, result, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&foilFlag, "foil", false, "Mark the card as foil")
	cmd.Flags().BoolVar(&signedFlag, "signed", false, "Mark the card as signed")
	cmd.Flags().StringVar(&conditionFlag, "condition", "", "Card condition (NM, EX, GD, PL, PO)")
	cmd.Flags().StringVar(&languageFlag, "language", "", "Card language")
	cmd.Flags().StringVar(&setNameFlag, "set-name", "", "Override the set name")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Show the result without writing to history")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

// runCapture performs the synchronous recognize, parse, and resolve steps.
// The catalog lookup runs inline here; a miss leaves the result empty.
func runCapture(cmd *cobra.Command, cfg *config.Config, imageBytes []byte) (cards.Card, catalog.Result, error) {
	recognizer := gemini.NewClient(cfg.Gemini.APIKey,
		gemini.WithBaseURL(cfg.Gemini.BaseURL),
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithTimeout(time.Duration(cfg.Gemini.TimeoutSeconds)*time.Second),
	)

	raw, err := recognizer.Recognize(cmd.Context(), imageBytes)
	if err != nil {
		return cards.Card{}, catalog.Result{}, err
	}

	draft, err := extraction.Parse(raw)
	if err != nil {
		return cards.Card{}, catalog.Result{}, err
	}

	searcher, err := scryfall.New(cfg.Scryfall.BaseURL,
		scryfall.WithTimeout(time.Duration(cfg.Scryfall.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		return cards.Card{}, catalog.Result{}, err
	}

	resolver := catalog.NewResolver(searcher, nil)
	result := resolver.Resolve(cmd.Context(), draft)
	if result.Found() {
		if result.Hit.SetName != "" {
			draft.SetName = result.Hit.SetName
		}
		if result.Hit.CardmarketID > 0 {
			draft.CardmarketID = result.Hit.CardmarketID
		}
	}
	return draft, result, nil
}

func applyPreviewOverrides(card *cards.Card, ov reconcile.Overrides) {
	if ov.Foil != nil {
		card.Foil = *ov.Foil
	}
	if ov.Signed != nil {
		card.Signed = *ov.Signed
	}
	if ov.Condition != "" {
		card.Condition = cards.NormalizeCondition(ov.Condition)
	}
	if ov.Language != "" {
		card.Language = ov.Language
	}
	if ov.SetName != "" {
		card.SetName = ov.SetName
	}
}

func outputCard(cmd *cobra.Command, card cards.Card, result catalog.Result, jsonOut bool) error {
	if jsonOut {
		payload := map[string]any{"card": card}
		if result.Found() {
			payload["catalog"] = result.Hit
		}
		return writeJSON(cmd, payload)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderCardTable([]*cards.Card{&card}))
	if result.Found() {
		fmt.Fprintf(out, "Artwork:  %s\n", result.Hit.ImageURL)
		if result.Hit.DetailURL != "" {
			fmt.Fprintf(out, "Details:  %s\n", result.Hit.DetailURL)
		}
	} else {
		fmt.Fprintln(out, "No catalog match; no preview available.")
	}
	return nil
}
