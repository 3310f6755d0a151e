// internal/app/features/admin/routes.go
package admin

import (
	"github.com/dalemusser/sahara/internal/app/system/auth"
	"github.com/dalemusser/sahara/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted at /admin.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleAdmin))
		pr.Get("/", h.ServeDashboard)
		pr.Post("/assign", h.HandleAssign)
		pr.Post("/requests/{id}/status", h.HandleRequestStatus)
		pr.Post("/volunteers/{id}/status", h.HandleVolunteerStatus)
	})
	return r
}
