// internal/app/features/preferences/routes.go
package preferences

import "github.com/go-chi/chi/v5"

// Routes is mounted at /preferences. Preferences work signed in or out.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServePreferences)
	r.Post("/language", h.HandleSetLanguage)
	r.Post("/language/toggle", h.HandleToggleLanguage)
	r.Post("/theme", h.HandleSetTheme)
	return r
}
