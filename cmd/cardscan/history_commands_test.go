package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cardscan/internal/cards"
	"cardscan/internal/config"
	"cardscan/internal/history"
)

func seedHistory(t *testing.T, configPath string, names ...string) []int64 {
	t.Helper()

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		saved, err := store.Upsert(context.Background(), cards.Card{
			Name:      name,
			Language:  "English",
			SetCode:   "mrd",
			Condition: cards.ConditionNearMint,
		})
		if err != nil {
			t.Fatalf("seed card: %v", err)
		}
		ids = append(ids, saved.ID)
	}
	return ids
}

func TestHistoryListEmpty(t *testing.T) {
	configPath := writeTestConfig(t)
	out, _, err := runCLI(t, configPath, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "History is empty.")
}

func TestHistoryListAndShow(t *testing.T) {
	configPath := writeTestConfig(t)
	ids := seedHistory(t, configPath, "Duplicant", "Lightning Bolt")

	out, _, err := runCLI(t, configPath, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "Duplicant")
	requireContains(t, out, "Lightning Bolt")
	requireContains(t, out, "2 cards")

	out, _, err = runCLI(t, configPath, "history", "show", fmt.Sprintf("%d", ids[0]))
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, "Duplicant")

	jsonOut, _, err := runCLI(t, configPath, "history", "list", "--json")
	if err != nil {
		t.Fatalf("history list --json: %v", err)
	}
	requireContains(t, jsonOut, `"total": 2`)
}

func TestHistoryDelete(t *testing.T) {
	configPath := writeTestConfig(t)
	ids := seedHistory(t, configPath, "Duplicant")

	out, _, err := runCLI(t, configPath, "history", "delete", fmt.Sprintf("%d", ids[0]))
	if err != nil {
		t.Fatalf("history delete: %v", err)
	}
	requireContains(t, out, "Deleted Duplicant")

	if _, _, err := runCLI(t, configPath, "history", "delete", fmt.Sprintf("%d", ids[0])); err == nil {
		t.Fatal("expected delete of missing id to fail")
	}
}

func TestHistoryClearRequiresForce(t *testing.T) {
	configPath := writeTestConfig(t)
	seedHistory(t, configPath, "Duplicant")

	if _, _, err := runCLI(t, configPath, "history", "clear"); err == nil {
		t.Fatal("expected clear without --force to fail")
	}

	out, _, err := runCLI(t, configPath, "history", "clear", "--force")
	if err != nil {
		t.Fatalf("history clear --force: %v", err)
	}
	requireContains(t, out, "Removed 1 cards")
}

func TestEditCommandStoresLongLabel(t *testing.T) {
	configPath := writeTestConfig(t)
	ids := seedHistory(t, configPath, "Duplicant")

	out, _, err := runCLI(t, configPath, "edit", fmt.Sprintf("%d", ids[0]), "--condition", "Lightly Played", "--signed")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	requireContains(t, out, "Lightly Played")

	if _, _, err := runCLI(t, configPath, "edit", "9999", "--signed"); err == nil {
		t.Fatal("expected edit of missing id to fail")
	}
}

func TestExportCommandWritesCSV(t *testing.T) {
	configPath := writeTestConfig(t)
	seedHistory(t, configPath, "Duplicant")

	target := filepath.Join(t.TempDir(), "out.csv")
	out, _, err := runCLI(t, configPath, "export", "--output", target)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "Exported 1 cards")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "Name,Language,") {
		t.Fatalf("unexpected export content: %q", string(data))
	}
}
