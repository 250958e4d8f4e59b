package language

import "testing"

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"en":                  "English",
		"EN":                  "English",
		"english":             "English",
		"ja":                  "Japanese",
		"jp":                  "Japanese",
		"zhs":                 "Chinese (Simplified)",
		"traditional chinese": "Chinese (Traditional)",
		"":                    "",
		"  ":                  "",
		"icelandic":           "Icelandic",
	}
	for input, want := range cases {
		if got := DisplayName(input); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestIsKnown(t *testing.T) {
	if !IsKnown("de") || !IsKnown("German") {
		t.Error("expected German to be known")
	}
	if IsKnown("klingon") || IsKnown("") {
		t.Error("unexpected known language")
	}
}

func TestOptionsOrder(t *testing.T) {
	opts := Options()
	if len(opts) != 11 {
		t.Fatalf("len(Options()) = %d", len(opts))
	}
	if opts[0] != "English" || opts[len(opts)-1] != "Chinese (Traditional)" {
		t.Errorf("unexpected ordering: %v", opts)
	}
}
