package i18n_test

import (
	"testing"

	"github.com/dalemusser/sahara/internal/app/system/i18n"
)

func TestT_Fallbacks(t *testing.T) {
	tr := i18n.NewWithTable(map[string]map[string]string{
		"both":    {i18n.English: "hello", i18n.Hindi: "नमस्ते"},
		"english": {i18n.English: "only english"},
	})

	tests := []struct {
		lang, key, want string
	}{
		{"hi", "both", "नमस्ते"},
		{"en", "both", "hello"},
		{"hi", "english", "only english"},
		{"fr", "both", "hello"},
		{"hi", "missing.key", "missing.key"},
	}
	for _, tt := range tests {
		if got := tr.T(tt.lang, tt.key); got != tt.want {
			t.Errorf("T(%q, %q) = %q, want %q", tt.lang, tt.key, got, tt.want)
		}
	}
}

func TestToggle(t *testing.T) {
	if got := i18n.Toggle("en"); got != "hi" {
		t.Errorf("Toggle(en) = %q", got)
	}
	if got := i18n.Toggle("hi"); got != "en" {
		t.Errorf("Toggle(hi) = %q", got)
	}
	if got := i18n.Toggle(""); got != "hi" {
		t.Errorf("Toggle(\"\") = %q", got)
	}
}

func TestFromAcceptLanguage(t *testing.T) {
	tests := []struct {
		header, fallback, want string
	}{
		{"hi-IN,hi;q=0.9,en;q=0.8", "en", "hi"},
		{"en-US,en;q=0.9", "hi", "en"},
		{"", "hi", "hi"},
		{"not a header;;;", "en", "en"},
	}
	for _, tt := range tests {
		if got := i18n.FromAcceptLanguage(tt.header, tt.fallback); got != tt.want {
			t.Errorf("FromAcceptLanguage(%q, %q) = %q, want %q", tt.header, tt.fallback, got, tt.want)
		}
	}
}

func TestDefaultTable_HasSOSStrings(t *testing.T) {
	tr := i18n.New()
	if got := tr.T("en", "sos.title"); got == "sos.title" {
		t.Error("sos.title missing from default table")
	}
}
