// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/sahara/internal/domain/models"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session keys                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	// UserKey holds the JSON-encoded signed-in user.
	UserKey = "sahara_user"

	sessionIDKey = "session_id"

	// Preference keys live in the same cookie and survive sign-out.
	LanguageKey = "language"
	ThemeKey    = "theme"
)

// SessionManager owns the cookie store and the middleware built on it.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager.
//
// In production (secure=true) cookies are Secure + SameSite=None. In local
// dev over http://localhost use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		return nil, errors.New("session name is empty")
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// Store exposes the underlying cookie store.
func (m *SessionManager) Store() *sessions.CookieStore { return m.store }

// Name is the cookie name.
func (m *SessionManager) Name() string { return m.name }

// GetSession returns the request's session. On a decode failure the error is
// returned alongside a fresh, usable session.
func (m *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, m.name)
}

// session wraps GetSession and logs cookie problems instead of failing.
func (m *SessionManager) session(r *http.Request) *sessions.Session {
	sess, err := m.GetSession(r)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			m.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
		} else {
			m.log.Error("session store error, using fresh session", zap.Error(err))
		}
	}
	return sess
}

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helpers                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const (
	currentUserKey ctxKey = "currentUser"
	sessionIDCtx   ctxKey = "sessionID"
	languageCtx    ctxKey = "language"
	themeCtx       ctxKey = "theme"
)

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*models.User)
	return u, ok && u != nil
}

// SessionID returns the id minted when the user signed in, or "".
func SessionID(r *http.Request) string {
	s, _ := r.Context().Value(sessionIDCtx).(string)
	return s
}

// Language returns the language preference stored in the session, or "".
func Language(r *http.Request) string {
	s, _ := r.Context().Value(languageCtx).(string)
	return s
}

// Theme returns the theme preference stored in the session, or "".
func Theme(r *http.Request) string {
	s, _ := r.Context().Value(themeCtx).(string)
	return s
}

// WithTestUser injects u into the request context under a fixed session id.
// This simulates what LoadSessionUser does.
func WithTestUser(r *http.Request, u *models.User) *http.Request {
	return withSession(r, u, "test-session-"+u.ID)
}

func withSession(r *http.Request, u *models.User, sid string) *http.Request {
	ctx := context.WithValue(r.Context(), currentUserKey, u)
	ctx = context.WithValue(ctx, sessionIDCtx, sid)
	return r.WithContext(ctx)
}

// LoadSessionUser injects the user into context if they are signed in. The
// language and theme preferences are injected for every caller.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.session(r)

		ctx := r.Context()
		if lang, _ := sess.Values[LanguageKey].(string); lang != "" {
			ctx = context.WithValue(ctx, languageCtx, lang)
		}
		if theme, _ := sess.Values[ThemeKey].(string); theme != "" {
			ctx = context.WithValue(ctx, themeCtx, theme)
		}
		r = r.WithContext(ctx)

		raw, _ := sess.Values[UserKey].(string)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		var u models.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" {
			m.log.Warn("discarding unreadable session user", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		sid, _ := sess.Values[sessionIDKey].(string)
		next.ServeHTTP(w, withSession(r, &u, sid))
	})
}

// SignIn stores u in the session under a new session id and returns it.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u *models.User) (string, error) {
	if u == nil {
		return "", errors.New("sign in: nil user")
	}
	b, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("encode session user: %w", err)
	}
	sess := m.session(r)
	sid := uuid.NewString()
	sess.Values[UserKey] = string(b)
	sess.Values[sessionIDKey] = sid
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return sid, nil
}

// SignOut removes the user from the session and returns the session id they
// held. Preferences are kept.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) (string, error) {
	sess := m.session(r)
	sid, _ := sess.Values[sessionIDKey].(string)
	delete(sess.Values, UserKey)
	delete(sess.Values, sessionIDKey)
	if err := sess.Save(r, w); err != nil {
		return sid, fmt.Errorf("save session: %w", err)
	}
	return sid, nil
}

// Preference reads a stored preference value.
func (m *SessionManager) Preference(r *http.Request, key string) string {
	sess := m.session(r)
	v, _ := sess.Values[key].(string)
	return v
}

// SetPreference stores a preference value.
func (m *SessionManager) SetPreference(w http.ResponseWriter, r *http.Request, key, value string) error {
	sess := m.session(r)
	sess.Values[key] = value
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Guards                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		unauthorized(w, r)
	})
}

// RequireRole ensures there is a user with one of the allowed roles in
// context. Role comparison ignores case.
func (m *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				unauthorized(w, r)
				return
			}

			if _, has := set[strings.ToLower(u.Role)]; !has {
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", "/forbidden")
					w.WriteHeader(http.StatusForbidden)
					return
				}
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(r.URL.RequestURI())

	// HTMX: full-page client redirect (no partial swap)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login?return="+ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if wantsHTML(r) {
		http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
