package language

import (
	"strings"

	"golang.org/x/text/cases"
	textlang "golang.org/x/text/language"
)

type entry struct {
	code    string   // Scryfall printed-language code
	display string   // Human-readable name
	words   []string // Full word forms and common aliases
}

var languages = []entry{
	{"en", "English", []string{"english"}},
	{"es", "Spanish", []string{"spanish"}},
	{"fr", "French", []string{"french"}},
	{"de", "German", []string{"german"}},
	{"it", "Italian", []string{"italian"}},
	{"pt", "Portuguese", []string{"portuguese"}},
	{"ja", "Japanese", []string{"japanese", "jp"}},
	{"ko", "Korean", []string{"korean"}},
	{"ru", "Russian", []string{"russian"}},
	{"zhs", "Chinese (Simplified)", []string{"chinese (simplified)", "simplified chinese", "chinese"}},
	{"zht", "Chinese (Traditional)", []string{"chinese (traditional)", "traditional chinese"}},
}

var (
	byCode map[string]*entry
	byWord map[string]*entry
)

func init() {
	byCode = make(map[string]*entry, len(languages))
	byWord = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode[e.code] = e
		byWord[strings.ToLower(e.display)] = e
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

var titleCaser = cases.Title(textlang.Und)

// Options lists the display names offered by the capture surface, in order.
func Options() []string {
	names := make([]string, len(languages))
	for i, e := range languages {
		names[i] = e.display
	}
	return names
}

// DisplayName converts a recognized code or word form to its display name.
// Unrecognized non-blank input is title-cased and passed through so user
// entries like "icelandic" survive. Blank input stays blank.
func DisplayName(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	if e, ok := byCode[lower]; ok {
		return e.display
	}
	if e, ok := byWord[lower]; ok {
		return e.display
	}
	return titleCaser.String(lower)
}

// IsKnown reports whether the value maps to one of the offered languages.
func IsKnown(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	if lower == "" {
		return false
	}
	if _, ok := byCode[lower]; ok {
		return true
	}
	_, ok := byWord[lower]
	return ok
}
