// internal/app/features/heartbeat/handler.go
package heartbeat

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/sahara/internal/app/features/shared"
	"github.com/dalemusser/sahara/internal/app/system/appstate"
	"github.com/dalemusser/sahara/internal/app/system/respond"
	"go.uber.org/zap"
)

// Handler keeps a dashboard's session state from being reaped while the
// page stays open.
type Handler struct {
	Registry        *appstate.Registry
	DefaultLanguage string
	Log             *zap.Logger
}

// NewHandler creates a new heartbeat handler.
func NewHandler(registry *appstate.Registry, defaultLanguage string, logger *zap.Logger) *Handler {
	return &Handler{
		Registry:        registry,
		DefaultLanguage: defaultLanguage,
		Log:             logger,
	}
}

// heartbeatRequest is the optional JSON body for the heartbeat endpoint.
type heartbeatRequest struct {
	Page string `json:"page"`
}

type heartbeatResponse struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// ServeHeartbeat handles POST /heartbeat. It touches the caller's facade,
// recreating it if it was reaped, and reports the facade's pending-action
// flags so a polling client can show a spinner or an error banner.
func (h *Handler) ServeHeartbeat(w http.ResponseWriter, r *http.Request) {
	f, u, ok := shared.Facade(h.Registry, r, h.DefaultLanguage)
	if !ok {
		w.WriteHeader(http.StatusOK) // Silent fail - signed out
		return
	}

	var req heartbeatRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // page is optional
	}
	if req.Page != "" {
		h.Log.Debug("heartbeat",
			zap.String("user_id", u.ID),
			zap.String("page", req.Page))
	}

	st := f.State()
	respond.OK(w, heartbeatResponse{Loading: st.IsLoading, Error: st.Error})
}
