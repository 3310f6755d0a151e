// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"
	"strings"

	"github.com/dalemusser/sahara/internal/app/system/auth"
	"github.com/dalemusser/sahara/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// Home returns the landing path for role, or "/" when the role is unknown.
func Home(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case models.RoleVictim:
		return "/victim"
	case models.RoleVolunteer:
		return "/volunteer"
	case models.RoleAdmin:
		return "/admin"
	default:
		return "/"
	}
}

// ServeDashboard sends the user to their role's dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	dest := Home(u.Role)
	if dest == "/" {
		h.Log.Warn("dashboard: unknown role", zap.String("user_id", u.ID), zap.String("role", u.Role))
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// ServeHome handles the site root: signed-in users go to their dashboard,
// everyone else to the login page.
func (h *Handler) ServeHome(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok || Home(u.Role) == "/" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, Home(u.Role), http.StatusSeeOther)
}
