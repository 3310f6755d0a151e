// Package i18n provides the translation lookup used for user-facing strings.
//
// Lookup order for T(lang, key): the requested language, then English, then
// the raw key.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Supported language codes.
const (
	English = "en"
	Hindi   = "hi"
)

var supported = []language.Tag{language.English, language.Hindi}

var matcher = language.NewMatcher(supported)

// Translator resolves keys to strings.
type Translator struct {
	table map[string]map[string]string
}

// New returns a Translator backed by the built-in table.
func New() *Translator {
	return &Translator{table: defaultTable}
}

// NewWithTable returns a Translator backed by table (key -> lang -> text).
func NewWithTable(table map[string]map[string]string) *Translator {
	return &Translator{table: table}
}

// T translates key into lang.
func (t *Translator) T(lang, key string) string {
	entry, ok := t.table[key]
	if !ok {
		return key
	}
	if s := entry[Normalize(lang)]; s != "" {
		return s
	}
	if s := entry[English]; s != "" {
		return s
	}
	return key
}

// Normalize maps lang onto a supported code, defaulting to English.
func Normalize(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case Hindi:
		return Hindi
	default:
		return English
	}
}

// Supported reports whether lang is one of the supported codes.
func Supported(lang string) bool {
	l := strings.ToLower(strings.TrimSpace(lang))
	return l == English || l == Hindi
}

// Toggle flips between English and Hindi.
func Toggle(lang string) string {
	if Normalize(lang) == English {
		return Hindi
	}
	return English
}

// FromAcceptLanguage picks the best supported language for an
// Accept-Language header. It returns fallback when nothing matches.
func FromAcceptLanguage(header, fallback string) string {
	if strings.TrimSpace(header) == "" {
		return Normalize(fallback)
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Normalize(fallback)
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Normalize(fallback)
	}
	base, _ := supported[idx].Base()
	return base.String()
}
