// internal/app/features/events/handler.go
package events

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/sahara/internal/domain/models"
	"go.uber.org/zap"
)

// DefaultHeartbeat keeps idle proxies from closing the stream.
const DefaultHeartbeat = 25 * time.Second

// Subscriber is the notification bus.
type Subscriber interface {
	Subscribe(fn func()) (unsubscribe func())
}

// StatsSource reports the current request counts.
type StatsSource interface {
	Stats() models.Stats
}

type Handler struct {
	Bus       Subscriber
	Store     StatsSource
	Heartbeat time.Duration
	Log       *zap.Logger
}

func NewHandler(bus Subscriber, store StatsSource, heartbeat time.Duration, logger *zap.Logger) *Handler {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &Handler{
		Bus:       bus,
		Store:     store,
		Heartbeat: heartbeat,
		Log:       logger,
	}
}

// Serve handles GET /events as a server-sent event stream. One "stats"
// event is sent on connect and one after each store change. Changes that
// arrive while a write is pending are coalesced into a single event.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	changed := make(chan struct{}, 1)
	unsubscribe := h.Bus.Subscribe(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := h.writeStats(w); err != nil {
		return
	}
	flusher.Flush()

	heartbeat := time.NewTicker(h.Heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-changed:
			if err := h.writeStats(w); err != nil {
				h.Log.Debug("events: client write failed", zap.Error(err))
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *Handler) writeStats(w http.ResponseWriter) error {
	b, err := json.Marshal(h.Store.Stats())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: stats\ndata: %s\n\n", b)
	return err
}
