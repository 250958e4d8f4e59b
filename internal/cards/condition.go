package cards

import "strings"

// Condition codes stored by the capture flow.
const (
	ConditionNearMint  = "NM"
	ConditionExcellent = "EX"
	ConditionGood      = "GD"
	ConditionPlayed    = "PL"
	ConditionPoor      = "PO"
)

// ConditionCodes lists the canonical short codes in display order.
var ConditionCodes = []string{
	ConditionNearMint,
	ConditionExcellent,
	ConditionGood,
	ConditionPlayed,
	ConditionPoor,
}

// EditConditionLabels is the long-form vocabulary offered by the edit
// surface. It is stored verbatim on that path, so history can hold both
// vocabularies. TODO: collapse the two vocabularies once a migration for
// already-stored long labels exists.
var EditConditionLabels = []string{
	"Near Mint",
	"Lightly Played",
	"Moderately Played",
	"Heavily Played",
	"Damaged",
}

// NormalizeCondition maps capture-flow input onto the short code set.
// Long-form synonyms collapse to their code and anything unrecognized
// falls back to NM.
func NormalizeCondition(value string) string {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "NM", "NEAR MINT":
		return ConditionNearMint
	case "EX", "EXCELLENT":
		return ConditionExcellent
	case "GD", "GOOD":
		return ConditionGood
	case "PL", "PLAYED":
		return ConditionPlayed
	case "PO", "POOR":
		return ConditionPoor
	default:
		return ConditionNearMint
	}
}

// IsConditionCode reports whether value is one of the canonical short codes.
func IsConditionCode(value string) bool {
	for _, code := range ConditionCodes {
		if value == code {
			return true
		}
	}
	return false
}
