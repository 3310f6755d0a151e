package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/sahara/internal/app/system/timeouts"
	"github.com/dalemusser/sahara/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Counter reports the size of the in-memory relief collections.
type Counter interface {
	Stats() models.Stats
	Volunteers() []models.Volunteer
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client *mongo.Client // nil when audit storage is disabled
	Relief Counter
	Log    *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(client *mongo.Client, relief Counter, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Relief: relief,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status     string `json:"status"`
	Database   string `json:"database"`
	Requests   int    `json:"requests"`
	Volunteers int    `json:"volunteers"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "requests":10, "volunteers":8 }
//
// "database" is "disabled" when no MongoDB is configured. On a failed
// ping: 503 with status "error".
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:     "ok",
		Database:   "disabled",
		Requests:   h.Relief.Stats().Total,
		Volunteers: len(h.Relief.Volunteers()),
	}

	if h.Client != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
		defer cancel()

		if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
			h.Log.Error("health-check: mongo ping failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			resp.Status = "error"
			resp.Database = "disconnected"
			resp.Message = "Database unavailable"
			resp.Error = err.Error()
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		resp.Database = "connected"
	}

	_ = json.NewEncoder(w).Encode(resp)
}
