// internal/app/features/volunteer/handler.go
package volunteer

import (
	"net/http"

	"github.com/dalemusser/sahara/internal/app/features/shared"
	"github.com/dalemusser/sahara/internal/app/system/appstate"
	"github.com/dalemusser/sahara/internal/app/system/auditlog"
	"github.com/dalemusser/sahara/internal/app/system/respond"
	"github.com/dalemusser/sahara/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Directory is the slice of the relief store this feature reads directly.
type Directory interface {
	VolunteerByEmail(email string) (models.Volunteer, bool)
	Request(id string) (models.HelpRequest, bool)
}

type Handler struct {
	Registry        *appstate.Registry
	Directory       Directory
	AuditLog        *auditlog.Logger
	DefaultLanguage string
	Log             *zap.Logger
}

func NewHandler(registry *appstate.Registry, directory Directory, auditLog *auditlog.Logger, defaultLanguage string, logger *zap.Logger) *Handler {
	return &Handler{
		Registry:        registry,
		Directory:       directory,
		AuditLog:        auditLog,
		DefaultLanguage: defaultLanguage,
		Log:             logger,
	}
}

type dashboardData struct {
	Volunteer models.Volunteer     `json:"volunteer"`
	Pending   []models.HelpRequest `json:"pending"`
	Assigned  []models.HelpRequest `json:"assigned"`
	Completed []models.HelpRequest `json:"completed"`
	Loading   bool                 `json:"loading"`
	Error     string               `json:"error,omitempty"`
	Language  string               `json:"language"`
}

// current resolves the signed-in user to a volunteer record by email. A
// user with no matching record acts as the first volunteer.
func (h *Handler) current(st appstate.State, u *models.User) (models.Volunteer, bool) {
	if u != nil && u.Email != "" {
		if v, ok := h.Directory.VolunteerByEmail(u.Email); ok {
			return v, true
		}
	}
	if len(st.Volunteers) == 0 {
		return models.Volunteer{}, false
	}
	return st.Volunteers[0], true
}

// ServeDashboard handles GET /volunteer.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	f, u, ok := shared.Facade(h.Registry, r, h.DefaultLanguage)
	if !ok {
		shared.SignedOut(w)
		return
	}
	st := f.State()
	me, found := h.current(st, u)
	if !found {
		respond.Error(w, http.StatusNotFound, f.T("common.notFound"))
		return
	}
	respond.OK(w, dashboardData{
		Volunteer: me,
		Pending:   st.PendingRequests(),
		Assigned:  st.ActiveAssignments(me.ID),
		Completed: st.CompletedBy(me.ID),
		Loading:   st.IsLoading,
		Error:     st.Error,
		Language:  f.Language(),
	})
}

// HandleAccept handles POST /volunteer/requests/{id}/accept. Only pending
// requests can be accepted; the store settles races between volunteers.
func (h *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	f, u, ok := shared.Facade(h.Registry, r, h.DefaultLanguage)
	if !ok {
		shared.SignedOut(w)
		return
	}
	id := chi.URLParam(r, "id")
	me, found := h.current(f.State(), u)
	if !found {
		respond.Error(w, http.StatusNotFound, f.T("common.notFound"))
		return
	}
	req, found := h.Directory.Request(id)
	if !found {
		respond.Error(w, http.StatusNotFound, f.T("common.notFound"))
		return
	}
	if req.Status != models.StatusPending {
		h.AuditLog.RequestAccepted(r.Context(), r, u.ID, id, me.ID, false)
		respond.Error(w, http.StatusConflict, f.T("volunteer.acceptRefused"))
		return
	}

	accepted, err := f.AcceptRequest(r.Context(), id, me.ID)
	if err != nil {
		shared.ActionFailed(w, h.Log, "accept", err)
		return
	}
	h.AuditLog.RequestAccepted(r.Context(), r, u.ID, id, me.ID, accepted)
	if !accepted {
		respond.Error(w, http.StatusConflict, f.T("volunteer.acceptRefused"))
		return
	}
	respond.OK(w, map[string]string{"id": id, "status": string(models.StatusAssigned), "volunteerId": me.ID})
}

// HandleComplete handles POST /volunteer/requests/{id}/complete.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	f, u, ok := shared.Facade(h.Registry, r, h.DefaultLanguage)
	if !ok {
		shared.SignedOut(w)
		return
	}
	id := chi.URLParam(r, "id")
	me, found := h.current(f.State(), u)
	if !found {
		respond.Error(w, http.StatusNotFound, f.T("common.notFound"))
		return
	}

	completed, err := f.CompleteRequest(r.Context(), id, me.ID)
	if err != nil {
		shared.ActionFailed(w, h.Log, "complete", err)
		return
	}
	h.AuditLog.RequestCompleted(r.Context(), r, u.ID, id, me.ID, completed)
	if !completed {
		respond.Error(w, http.StatusNotFound, f.T("common.notFound"))
		return
	}
	respond.OK(w, map[string]string{"id": id, "status": string(models.StatusCompleted), "volunteerId": me.ID})
}
