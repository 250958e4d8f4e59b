package main

import (
	"strings"
	"testing"

	"cardscan/internal/cards"
)

func TestRenderCardTableBlanksZeroSentinels(t *testing.T) {
	out := renderCardTable([]*cards.Card{{
		Name: "Duplicant", SetCode: "mrd", CollectorNumber: "72", Condition: "NM",
	}})
	if strings.Contains(out, "0") {
		t.Fatalf("draft id or unknown year rendered as a literal zero:\n%s", out)
	}
	if !strings.Contains(out, "mrd") {
		t.Fatalf("set code fallback missing:\n%s", out)
	}
}

func TestRenderCardTablePrefersSetName(t *testing.T) {
	out := renderCardTable([]*cards.Card{{
		ID: 3, Name: "Duplicant", SetCode: "mrd", SetName: "Mirrodin",
		CollectorNumber: "72", YearOfPrint: 2003, Language: "English",
		Condition: "NM", Foil: true,
	}})
	if !strings.Contains(out, "Mirrodin") || strings.Contains(out, "mrd") {
		t.Fatalf("set column should show the resolved name:\n%s", out)
	}
	if !strings.Contains(out, "2003") || !strings.Contains(out, "yes") {
		t.Fatalf("row content missing:\n%s", out)
	}
}
