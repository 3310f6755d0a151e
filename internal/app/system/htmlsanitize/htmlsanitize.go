// Package htmlsanitize cleans user-entered text before it reaches the
// relief store.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
)

// Text strips every tag from s and trims surrounding whitespace. Script and
// style bodies are dropped along with their tags.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(strict.Sanitize(s))
}

// Sanitize keeps basic formatting markup and removes anything that can run
// script.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// IsPlainText reports whether s contains no tag-like sequence.
func IsPlainText(s string) bool {
	i := strings.IndexByte(s, '<')
	return i < 0 || !strings.ContainsRune(s[i:], '>')
}

// Fields applies Text to each pointer in place.
func Fields(ptrs ...*string) {
	for _, p := range ptrs {
		if p != nil {
			*p = Text(*p)
		}
	}
}
