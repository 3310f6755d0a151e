// internal/app/features/victim/handler.go
package victim

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/sahara/internal/app/features/shared"
	"github.com/dalemusser/sahara/internal/app/system/appstate"
	"github.com/dalemusser/sahara/internal/app/system/auditlog"
	"github.com/dalemusser/sahara/internal/app/system/htmlsanitize"
	"github.com/dalemusser/sahara/internal/app/system/inputval"
	"github.com/dalemusser/sahara/internal/app/system/limits"
	"github.com/dalemusser/sahara/internal/app/system/respond"
	"github.com/dalemusser/sahara/internal/domain/models"
	"go.uber.org/zap"
)

// Categories a victim can file a request under.
var Categories = []string{"medical", "food", "shelter", "transport", "supplies", "rescue"}

type Handler struct {
	Registry        *appstate.Registry
	AuditLog        *auditlog.Logger
	DefaultLanguage string
	Log             *zap.Logger
}

func NewHandler(registry *appstate.Registry, auditLog *auditlog.Logger, defaultLanguage string, logger *zap.Logger) *Handler {
	return &Handler{
		Registry:        registry,
		AuditLog:        auditLog,
		DefaultLanguage: defaultLanguage,
		Log:             logger,
	}
}

type dashboardData struct {
	User       *models.User         `json:"user"`
	Requests   []models.HelpRequest `json:"requests"`
	Stats      models.VictimStats   `json:"stats"`
	Categories []string             `json:"categories"`
	Loading    bool                 `json:"loading"`
	Error      string               `json:"error,omitempty"`
	Language   string               `json:"language"`
}

type requestInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Priority    string   `json:"priority"`
	Images      []string `json:"images"`
}

type sosInput struct {
	Location string `json:"location"`
}

// ServeDashboard handles GET /victim: the caller's own requests, newest
// first, and their counts.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	f, u, ok := shared.Facade(h.Registry, r, h.DefaultLanguage)
	if !ok {
		shared.SignedOut(w)
		return
	}
	st := f.State()
	respond.OK(w, dashboardData{
		User:       u,
		Requests:   st.UserRequests(),
		Stats:      st.UserStats,
		Categories: Categories,
		Loading:    st.IsLoading,
		Error:      st.Error,
		Language:   f.Language(),
	})
}

// HandleCreate handles POST /victim/requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	f, u, ok := shared.Facade(h.Registry, r, h.DefaultLanguage)
	if !ok {
		shared.SignedOut(w)
		return
	}

	var in requestInput
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	htmlsanitize.Fields(&in.Title, &in.Category, &in.Location, &in.Priority)
	in.Description = strings.TrimSpace(htmlsanitize.Sanitize(in.Description))
	in.Category = strings.ToLower(in.Category)

	priority := models.PriorityMedium
	var v inputval.Result
	v.Required("title", "Title", in.Title).
		MaxLen("title", "Title", in.Title, limits.MaxTitleLen).
		Required("description", "Description", in.Description).
		MaxLen("description", "Description", in.Description, limits.MaxDescriptionLen).
		OneOf("category", "Category", in.Category, Categories...).
		Required("location", "Location", in.Location).
		MaxLen("location", "Location", in.Location, limits.MaxLocationLen)
	if in.Priority != "" {
		p, valid := models.ParsePriority(in.Priority)
		v.Check(valid, "priority", "Priority must be one of: Low, Medium, High, Critical.")
		priority = p
	}
	if v.HasErrors() {
		respond.JSON(w, http.StatusBadRequest, struct {
			Error  string                `json:"error"`
			Fields []inputval.FieldError `json:"fields"`
		}{v.First(), v.Errors})
		return
	}

	created, err := f.AddRequest(r.Context(), models.RequestDraft{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Location:    in.Location,
		Priority:    priority,
		Status:      models.StatusPending,
		VictimID:    u.ID,
		VictimName:  u.Name,
		Images:      in.Images,
	})
	if err != nil {
		shared.ActionFailed(w, h.Log, "add_request", err)
		return
	}
	h.AuditLog.RequestCreated(r.Context(), r, u.ID, created.ID, string(created.Priority))

	respond.JSON(w, http.StatusCreated, created)
}

// HandleSOS handles POST /victim/sos. The body is optional.
func (h *Handler) HandleSOS(w http.ResponseWriter, r *http.Request) {
	f, u, ok := shared.Facade(h.Registry, r, h.DefaultLanguage)
	if !ok {
		shared.SignedOut(w)
		return
	}

	// The body is optional; an empty one, chunked or not, means no location.
	var in sosInput
	if err := respond.Decode(r, &in); err != nil && !errors.Is(err, respond.ErrEmptyBody) {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	in.Location = htmlsanitize.Text(in.Location)

	created, err := f.SubmitSOS(r.Context(), in.Location)
	if err != nil {
		shared.ActionFailed(w, h.Log, "sos", err)
		return
	}
	h.AuditLog.SOSRaised(r.Context(), r, u.ID, created.ID, created.Location)
	h.Log.Warn("SOS raised",
		zap.String("request_id", created.ID),
		zap.String("victim_id", u.ID),
		zap.String("location", created.Location))

	respond.JSON(w, http.StatusCreated, created)
}
