package extraction

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"cardscan/internal/cards"
	"cardscan/internal/services"
)

var fenceMarker = regexp.MustCompile("(?i)```json|```")

// rawRecord matches the object shape the prompt demands. Fields decode into
// raw messages so coercion can apply its own defaulting instead of relying
// on Go zero values.
type rawRecord struct {
	Name            json.RawMessage `json:"name"`
	Language        json.RawMessage `json:"language"`
	CollectorNumber json.RawMessage `json:"collectorNumber"`
	SetCode         json.RawMessage `json:"setCode"`
	YearOfPrint     json.RawMessage `json:"yearOfPrint"`
}

// Parse converts raw model text into a draft card. Formatting artifacts are
// removed first; anything that then fails to decode as a single JSON object
// is a malformed extraction and aborts the capture attempt.
func Parse(raw string) (cards.Card, error) {
	sanitized := strings.TrimSpace(fenceMarker.ReplaceAllString(raw, ""))
	if sanitized == "" {
		return cards.Card{}, services.Wrap(services.ErrMalformedExtraction, "extraction", "parse", "model output is empty", nil)
	}

	var record rawRecord
	if err := json.Unmarshal([]byte(sanitized), &record); err != nil {
		return cards.Card{}, services.Wrap(services.ErrMalformedExtraction, "extraction", "parse", "not a JSON object", err)
	}

	return cards.Card{
		Name:            coerceString(record.Name),
		Language:        coerceString(record.Language),
		CollectorNumber: coerceString(record.CollectorNumber),
		SetCode:         coerceString(record.SetCode),
		YearOfPrint:     coerceYear(record.YearOfPrint),
		Condition:       cards.ConditionNearMint,
	}, nil
}

// coerceString maps a raw JSON value to a string field: missing, null, and
// non-scalar values become the empty sentinel, while non-string scalars keep
// their literal form rather than failing.
func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	literal := strings.TrimSpace(string(raw))
	if strings.HasPrefix(literal, "{") || strings.HasPrefix(literal, "[") {
		return ""
	}
	return literal
}

var fourDigits = regexp.MustCompile(`^\d{4}$`)

// coerceYear maps a raw JSON value to the print-year field. Missing, null,
// blank, and unparseable values all fall through to the 0 sentinel; only a
// four digit string or a JSON number produce a year.
func coerceYear(raw json.RawMessage) int {
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
		if fourDigits.MatchString(s) {
			year, err := strconv.Atoi(s)
			if err != nil {
				return 0
			}
			return year
		}
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n)
	}
	return 0
}
