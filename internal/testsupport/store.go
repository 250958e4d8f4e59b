package testsupport

import (
	"context"
	"testing"

	"cardscan/internal/cards"
	"cardscan/internal/config"
	"cardscan/internal/history"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedCard persists a card for tests using the provided store.
func SeedCard(t testing.TB, store *history.Store, card cards.Card) *cards.Card {
	t.Helper()

	saved, err := store.Upsert(context.Background(), card)
	if err != nil {
		t.Fatalf("store.Upsert: %v", err)
	}
	return saved
}
