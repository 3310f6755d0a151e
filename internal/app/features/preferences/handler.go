// internal/app/features/preferences/handler.go
package preferences

import (
	"net/http"
	"strings"

	"github.com/dalemusser/sahara/internal/app/features/shared"
	"github.com/dalemusser/sahara/internal/app/system/appstate"
	"github.com/dalemusser/sahara/internal/app/system/auth"
	"github.com/dalemusser/sahara/internal/app/system/i18n"
	"github.com/dalemusser/sahara/internal/app/system/respond"
	"go.uber.org/zap"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Handler struct {
	SessionMgr      *auth.SessionManager
	Registry        *appstate.Registry
	DefaultLanguage string
	Log             *zap.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, registry *appstate.Registry, defaultLanguage string, logger *zap.Logger) *Handler {
	return &Handler{
		SessionMgr:      sessionMgr,
		Registry:        registry,
		DefaultLanguage: defaultLanguage,
		Log:             logger,
	}
}

type prefs struct {
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

type languageInput struct {
	Language string `json:"language"`
}

type themeInput struct {
	Theme string `json:"theme"`
}

func (h *Handler) current(r *http.Request) prefs {
	p := prefs{
		Language: shared.RequestLanguage(r, h.DefaultLanguage),
		Theme:    auth.Theme(r),
	}
	if p.Theme == "" {
		p.Theme = ThemeLight
	}
	return p
}

// ServePreferences handles GET /preferences.
func (h *Handler) ServePreferences(w http.ResponseWriter, r *http.Request) {
	respond.OK(w, h.current(r))
}

// HandleToggleLanguage handles POST /preferences/language/toggle.
func (h *Handler) HandleToggleLanguage(w http.ResponseWriter, r *http.Request) {
	p := h.current(r)
	p.Language = i18n.Toggle(p.Language)
	h.saveLanguage(w, r, p)
}

// HandleSetLanguage handles POST /preferences/language.
func (h *Handler) HandleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var in languageInput
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if !i18n.Supported(in.Language) {
		respond.Error(w, http.StatusBadRequest, "language must be one of: en, hi")
		return
	}
	p := h.current(r)
	p.Language = i18n.Normalize(in.Language)
	h.saveLanguage(w, r, p)
}

func (h *Handler) saveLanguage(w http.ResponseWriter, r *http.Request, p prefs) {
	if err := h.SessionMgr.SetPreference(w, r, auth.LanguageKey, p.Language); err != nil {
		respond.Internal(w, h.Log, "save language", err)
		return
	}
	if sid := auth.SessionID(r); sid != "" {
		if f, ok := h.Registry.Lookup(sid); ok {
			f.SetLanguage(p.Language)
		}
	}
	respond.OK(w, p)
}

// HandleSetTheme handles POST /preferences/theme.
func (h *Handler) HandleSetTheme(w http.ResponseWriter, r *http.Request) {
	var in themeInput
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	theme := strings.ToLower(strings.TrimSpace(in.Theme))
	if theme != ThemeLight && theme != ThemeDark {
		respond.Error(w, http.StatusBadRequest, "theme must be light or dark")
		return
	}
	if err := h.SessionMgr.SetPreference(w, r, auth.ThemeKey, theme); err != nil {
		respond.Internal(w, h.Log, "save theme", err)
		return
	}
	p := h.current(r)
	p.Theme = theme
	respond.OK(w, p)
}
