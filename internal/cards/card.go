package cards

import (
	"strings"
	"time"
)

// Card is the central record produced by the pipeline and persisted to
// history. Unknown string fields hold "" and unknown numeric fields hold 0;
// extraction never yields nulls, so downstream code never branches on
// absence.
type Card struct {
	// ID is 0 for drafts that only exist in pipeline memory. The history
	// store assigns it on first save.
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Language        string `json:"language"`
	CollectorNumber string `json:"collector_number"`
	SetCode         string `json:"set_code"`
	SetName         string `json:"set_name"`
	// YearOfPrint is 0 when unknown, otherwise a four digit year.
	YearOfPrint int `json:"year_of_print"`
	// CardmarketID is 0 until the catalog resolver finds a printing with a
	// marketplace identifier.
	CardmarketID int64 `json:"cardmarket_id"`

	Foil      bool   `json:"foil"`
	Signed    bool   `json:"signed"`
	Condition string `json:"condition"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsDraft reports whether the record has not been persisted yet.
func (c Card) IsDraft() bool {
	return c.ID == 0
}

// HasPrintingIdentity reports whether both set code and collector number are
// usable for catalog lookups.
func (c Card) HasPrintingIdentity() bool {
	return strings.TrimSpace(c.SetCode) != "" && strings.TrimSpace(c.CollectorNumber) != ""
}

// ValidYear reports whether a coerced print year is in the accepted range.
// 0 is the unknown sentinel and counts as valid.
func ValidYear(year int) bool {
	return year == 0 || (year >= 1000 && year <= 9999)
}
