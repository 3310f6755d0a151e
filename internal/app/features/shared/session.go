// internal/app/features/shared/session.go
package shared

import (
	"net/http"

	"github.com/dalemusser/sahara/internal/app/system/appstate"
	"github.com/dalemusser/sahara/internal/app/system/auth"
	"github.com/dalemusser/sahara/internal/app/system/i18n"
	"github.com/dalemusser/sahara/internal/app/system/respond"
	"github.com/dalemusser/sahara/internal/domain/models"
	"go.uber.org/zap"
)

// RequestLanguage picks the caller's language: the session preference
// first, then Accept-Language, then fallback.
func RequestLanguage(r *http.Request, fallback string) string {
	if lang := auth.Language(r); i18n.Supported(lang) {
		return i18n.Normalize(lang)
	}
	return i18n.FromAcceptLanguage(r.Header.Get("Accept-Language"), fallback)
}

// Facade returns the signed-in caller's facade, creating it on first use.
// ok is false when nobody is signed in.
func Facade(reg *appstate.Registry, r *http.Request, fallbackLang string) (f *appstate.Facade, u *models.User, ok bool) {
	u, ok = auth.CurrentUser(r)
	if !ok {
		return nil, nil, false
	}
	sid := auth.SessionID(r)
	if sid == "" {
		sid = "user:" + u.ID
	}
	return reg.Acquire(sid, u, RequestLanguage(r, fallbackLang)), u, true
}

// ActionFailed reports a facade action that returned an error. The message
// already carries the translated prefix.
func ActionFailed(w http.ResponseWriter, log *zap.Logger, action string, err error) {
	log.Warn("relief action failed", zap.String("action", action), zap.Error(err))
	respond.Error(w, http.StatusInternalServerError, err.Error())
}

// SignedOut writes the 401 used when a role-guarded handler is reached
// without a user in context.
func SignedOut(w http.ResponseWriter) {
	respond.Error(w, http.StatusUnauthorized, "unauthorized")
}
