// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/victim").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject. These prevent
	// redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks the "return" query parameter, validates the URL is safe (not an
// open redirect), optionally validates the prefix, and excludes the given
// subpaths.
//
//	url := navigation.SafeBackURL(r, navigation.AfterSignIn("/volunteer"))
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		return opts.Fallback
	}
	if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
		return opts.Fallback
	}
	for _, excluded := range opts.ExcludedSubpaths {
		if strings.Contains(ret, excluded) {
			return opts.Fallback
		}
	}
	return ret
}

// AfterSignIn returns options for the redirect that follows a sign-in.
// A return URL is honoured only inside the user's own dashboard.
func AfterSignIn(home string) BackURLOptions {
	return BackURLOptions{
		AllowedPrefix:    home,
		ExcludedSubpaths: []string{"/login", "/logout", "/signup"},
		Fallback:         home,
	}
}
