// internal/app/features/volunteer/routes.go
package volunteer

import (
	"github.com/dalemusser/sahara/internal/app/system/auth"
	"github.com/dalemusser/sahara/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted at /volunteer.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleVolunteer))
		pr.Get("/", h.ServeDashboard)
		pr.Post("/requests/{id}/accept", h.HandleAccept)
		pr.Post("/requests/{id}/complete", h.HandleComplete)
	})
	return r
}
