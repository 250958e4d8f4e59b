// Package reconcile merges user-entered overrides onto machine-extracted
// drafts and hands the finalized record to the history store.
package reconcile

import (
	"context"
	"log/slog"
	"strings"

	"cardscan/internal/cards"
	"cardscan/internal/language"
	"cardscan/internal/logging"
	"cardscan/internal/services"
)

// DefaultLanguage is applied when neither extraction nor the user supplied
// one on the capture path.
const DefaultLanguage = "English"

// Storer is the history surface the gate needs.
type Storer interface {
	Upsert(ctx context.Context, card cards.Card) (*cards.Card, error)
	GetByID(ctx context.Context, id int64) (*cards.Card, error)
}

// Overrides carries the user-adjustable fields captured at confirmation or
// edit time. Nil booleans and blank strings leave the underlying field
// untouched; CardmarketID applies only when positive.
type Overrides struct {
	Foil         *bool
	Signed       *bool
	Condition    string
	Language     string
	SetName      string
	CardmarketID int64
}

// Gate applies overrides and persists the result.
type Gate struct {
	store  Storer
	logger *slog.Logger
}

// NewGate builds a gate. A nil logger is replaced with a no-op.
func NewGate(store Storer, logger *slog.Logger) *Gate {
	return &Gate{
		store:  store,
		logger: logging.NewComponentLogger(logger, "reconcile"),
	}
}

// FinalizeNew applies overrides to a draft and inserts it. The condition is
// always normalized to a short code on this path and a blank language
// defaults to English. The returned record carries the assigned id.
func (g *Gate) FinalizeNew(ctx context.Context, draft cards.Card, ov Overrides) (cards.Card, error) {
	record := draft
	record.ID = 0
	applyOverrides(&record, ov)

	record.Condition = cards.NormalizeCondition(record.Condition)
	record.Language = language.DisplayName(record.Language)
	if strings.TrimSpace(record.Language) == "" {
		record.Language = DefaultLanguage
	}

	saved, err := g.store.Upsert(ctx, record)
	if err != nil {
		return cards.Card{}, services.Wrap(nil, "reconcile", "finalize new", "persist card", err)
	}
	g.logger.Info("card saved",
		logging.Int64(logging.FieldCardID, saved.ID),
		logging.String("name", saved.Name),
	)
	return *saved, nil
}

// FinalizeEdit loads a persisted record, applies overrides, and re-saves it
// under the same id. The condition is stored verbatim here, so long-form
// labels from the edit surface survive unchanged.
func (g *Gate) FinalizeEdit(ctx context.Context, id int64, ov Overrides) (cards.Card, error) {
	existing, err := g.store.GetByID(ctx, id)
	if err != nil {
		return cards.Card{}, services.Wrap(nil, "reconcile", "finalize edit", "load card", err)
	}
	if existing == nil {
		return cards.Card{}, services.Wrap(services.ErrNotFound, "reconcile", "finalize edit", "no such card", nil)
	}

	record := *existing
	applyOverrides(&record, ov)

	saved, err := g.store.Upsert(ctx, record)
	if err != nil {
		return cards.Card{}, services.Wrap(nil, "reconcile", "finalize edit", "persist card", err)
	}
	g.logger.Info("card updated", logging.Int64(logging.FieldCardID, saved.ID))
	return *saved, nil
}

func applyOverrides(record *cards.Card, ov Overrides) {
	if ov.Foil != nil {
		record.Foil = *ov.Foil
	}
	if ov.Signed != nil {
		record.Signed = *ov.Signed
	}
	if strings.TrimSpace(ov.Condition) != "" {
		record.Condition = ov.Condition
	}
	if strings.TrimSpace(ov.Language) != "" {
		record.Language = ov.Language
	}
	if strings.TrimSpace(ov.SetName) != "" {
		record.SetName = ov.SetName
	}
	if ov.CardmarketID > 0 {
		record.CardmarketID = ov.CardmarketID
	}
}
