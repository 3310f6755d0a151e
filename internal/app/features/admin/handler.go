// internal/app/features/admin/handler.go
package admin

import (
	"net/http"
	"strings"

	"github.com/dalemusser/sahara/internal/app/features/shared"
	"github.com/dalemusser/sahara/internal/app/system/appstate"
	"github.com/dalemusser/sahara/internal/app/system/auditlog"
	"github.com/dalemusser/sahara/internal/app/system/respond"
	"github.com/dalemusser/sahara/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// VolunteerUpdater changes a volunteer's availability directly in the store.
type VolunteerUpdater interface {
	UpdateVolunteerStatus(id string, status models.VolunteerStatus) (models.Volunteer, bool)
}

type Handler struct {
	Registry        *appstate.Registry
	Volunteers      VolunteerUpdater
	AuditLog        *auditlog.Logger
	DefaultLanguage string
	Log             *zap.Logger
}

func NewHandler(registry *appstate.Registry, volunteers VolunteerUpdater, auditLog *auditlog.Logger, defaultLanguage string, logger *zap.Logger) *Handler {
	return &Handler{
		Registry:        registry,
		Volunteers:      volunteers,
		AuditLog:        auditLog,
		DefaultLanguage: defaultLanguage,
		Log:             logger,
	}
}

type dashboardData struct {
	Stats               models.Stats         `json:"stats"`
	Analytics           appstate.Analytics   `json:"analytics"`
	Requests            []models.HelpRequest `json:"requests"`
	Volunteers          []models.Volunteer   `json:"volunteers"`
	AvailableVolunteers []models.Volunteer   `json:"availableVolunteers"`
	CriticalAlerts      []models.HelpRequest `json:"criticalAlerts"`
	Loading             bool                 `json:"loading"`
	Error               string               `json:"error,omitempty"`
	Language            string               `json:"language"`
}

type assignInput struct {
	RequestID   string `json:"requestId"`
	VolunteerID string `json:"volunteerId"`
}

type requestStatusInput struct {
	Status      string `json:"status"`
	VolunteerID string `json:"volunteerId"`
}

type volunteerStatusInput struct {
	Status string `json:"status"`
}

// ServeDashboard handles GET /admin.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	f, _, ok := shared.Facade(h.Registry, r, h.DefaultLanguage)
	if !ok {
		shared.SignedOut(w)
		return
	}
	st := f.State()
	respond.OK(w, dashboardData{
		Stats:               st.Stats,
		Analytics:           st.Analytics(),
		Requests:            st.Requests,
		Volunteers:          st.Volunteers,
		AvailableVolunteers: st.AvailableVolunteers(),
		CriticalAlerts:      st.CriticalPending(),
		Loading:             st.IsLoading,
		Error:               st.Error,
		Language:            f.Language(),
	})
}

// HandleAssign handles POST /admin/assign. It goes through the same accept
// path a volunteer uses.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	f, u, ok := shared.Facade(h.Registry, r, h.DefaultLanguage)
	if !ok {
		shared.SignedOut(w)
		return
	}
	var in assignInput
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	in.RequestID = strings.TrimSpace(in.RequestID)
	in.VolunteerID = strings.TrimSpace(in.VolunteerID)
	if in.RequestID == "" || in.VolunteerID == "" {
		respond.Error(w, http.StatusBadRequest, "requestId and volunteerId are required")
		return
	}

	assigned, err := f.AcceptRequest(r.Context(), in.RequestID, in.VolunteerID)
	if err != nil {
		shared.ActionFailed(w, h.Log, "assign", err)
		return
	}
	h.AuditLog.RequestAssigned(r.Context(), r, u.ID, in.RequestID, in.VolunteerID, assigned)
	if !assigned {
		respond.Error(w, http.StatusConflict, f.T("volunteer.acceptRefused"))
		return
	}
	respond.OK(w, map[string]string{"requestId": in.RequestID, "volunteerId": in.VolunteerID, "status": string(models.StatusAssigned)})
}

// HandleRequestStatus handles POST /admin/requests/{id}/status. An empty
// volunteerId clears the assignee.
func (h *Handler) HandleRequestStatus(w http.ResponseWriter, r *http.Request) {
	f, u, ok := shared.Facade(h.Registry, r, h.DefaultLanguage)
	if !ok {
		shared.SignedOut(w)
		return
	}
	id := chi.URLParam(r, "id")

	var in requestStatusInput
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	status, valid := models.ParseRequestStatus(in.Status)
	if !valid {
		respond.Error(w, http.StatusBadRequest, "status must be one of: Pending, Assigned, In Progress, Completed, Rejected")
		return
	}

	var volName string
	if in.VolunteerID != "" {
		v, found := f.State().VolunteerByID(in.VolunteerID)
		if !found {
			respond.Error(w, http.StatusNotFound, f.T("common.notFound"))
			return
		}
		volName = v.Name
	}

	updated, found, err := f.UpdateRequestStatus(r.Context(), id, status, in.VolunteerID, volName)
	if err != nil {
		shared.ActionFailed(w, h.Log, "update_status", err)
		return
	}
	h.AuditLog.RequestStatusChanged(r.Context(), r, u.ID, id, string(status), found)
	if !found {
		respond.Error(w, http.StatusNotFound, f.T("common.notFound"))
		return
	}
	respond.OK(w, updated)
}

// HandleVolunteerStatus handles POST /admin/volunteers/{id}/status.
func (h *Handler) HandleVolunteerStatus(w http.ResponseWriter, r *http.Request) {
	f, u, ok := shared.Facade(h.Registry, r, h.DefaultLanguage)
	if !ok {
		shared.SignedOut(w)
		return
	}
	id := chi.URLParam(r, "id")

	var in volunteerStatusInput
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	status, valid := models.ParseVolunteerStatus(in.Status)
	if !valid {
		respond.Error(w, http.StatusBadRequest, "status must be one of: Available, On Mission, Offline")
		return
	}

	updated, found := h.Volunteers.UpdateVolunteerStatus(id, status)
	h.AuditLog.VolunteerStatusChanged(r.Context(), r, u.ID, id, string(status), found)
	if !found {
		respond.Error(w, http.StatusNotFound, f.T("common.notFound"))
		return
	}
	respond.OK(w, updated)
}
