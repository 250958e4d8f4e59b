package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"cardscan/internal/cards"
)

// renderCardTable lays out card records in the rounded style used across the
// CLI. ID and year are right-aligned, long names and set titles are capped,
// and the set column prefers the resolved set name over the raw code.
func renderCardTable(records []*cards.Card) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Name", "Set", "No.", "Year", "Lang", "Cond", "Foil", "Signed"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, WidthMax: 40},
		{Number: 3, WidthMax: 32},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	for _, card := range records {
		if card == nil {
			continue
		}
		tw.AppendRow(cardRow(*card))
	}
	return tw.Render()
}

// cardRow renders the zero sentinels for ID and year as blanks so drafts and
// unknown print years do not show up as literal zeros.
func cardRow(card cards.Card) table.Row {
	id := ""
	if card.ID != 0 {
		id = strconv.FormatInt(card.ID, 10)
	}
	year := ""
	if card.YearOfPrint != 0 {
		year = strconv.Itoa(card.YearOfPrint)
	}
	set := card.SetName
	if set == "" {
		set = card.SetCode
	}
	return table.Row{
		id,
		card.Name,
		set,
		card.CollectorNumber,
		year,
		card.Language,
		card.Condition,
		yesNo(card.Foil),
		yesNo(card.Signed),
	}
}
