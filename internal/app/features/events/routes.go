// internal/app/features/events/routes.go
package events

import (
	"github.com/dalemusser/sahara/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted at /events. Any signed-in user may listen.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.Serve)
	})
	return r
}
