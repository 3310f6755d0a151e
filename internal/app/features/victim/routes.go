// internal/app/features/victim/routes.go
package victim

import (
	"github.com/dalemusser/sahara/internal/app/system/auth"
	"github.com/dalemusser/sahara/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted at /victim.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleVictim))
		pr.Get("/", h.ServeDashboard)
		pr.Post("/requests", h.HandleCreate)
		pr.Post("/sos", h.HandleSOS)
	})
	return r
}
