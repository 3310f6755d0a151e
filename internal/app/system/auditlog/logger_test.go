package auditlog_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dalemusser/sahara/internal/app/store/audit"
	"github.com/dalemusser/sahara/internal/app/system/auditlog"
	"github.com/dalemusser/sahara/internal/testutil"
	"go.uber.org/zap"
)

type memRecorder struct {
	mu     sync.Mutex
	events []audit.Event
	err    error
}

func (m *memRecorder) Log(_ context.Context, e audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, e)
	return nil
}

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("GET", "/", nil)

	logger.Log(ctx, audit.Event{EventType: "test"})
	logger.LoginSuccess(ctx, req, "victim1", "victim@demo.com", "victim")
	logger.Logout(ctx, req, "victim1")
	logger.DriftAssigned(ctx, "REQ-004", "vol4")
}

func TestLogger_NilRecorder(t *testing.T) {
	logger := auditlog.New(nil, zap.NewNop(), auditlog.Config{Auth: auditlog.ModeAll})
	logger.Logout(context.Background(), httptest.NewRequest("GET", "/", nil), "victim1")
}

func TestLogger_Modes(t *testing.T) {
	tests := []struct {
		mode   string
		stored int
	}{
		{auditlog.ModeAll, 1},
		{auditlog.ModeDB, 1},
		{auditlog.ModeLog, 0},
		{auditlog.ModeOff, 0},
		{"", 1},
	}
	for _, tt := range tests {
		t.Run("mode="+tt.mode, func(t *testing.T) {
			rec := &memRecorder{}
			logger := auditlog.New(rec, zap.NewNop(), auditlog.Config{Relief: tt.mode})
			logger.SOSRaised(context.Background(), httptest.NewRequest("POST", "/victim/sos", nil), "victim1", "REQ-011", "Block A")
			if len(rec.events) != tt.stored {
				t.Errorf("stored %d events, want %d", len(rec.events), tt.stored)
			}
		})
	}
}

func TestLogger_CategoryFilteredByConfig(t *testing.T) {
	rec := &memRecorder{}
	logger := auditlog.New(rec, zap.NewNop(), auditlog.Config{Auth: auditlog.ModeOff, Admin: auditlog.ModeDB})
	req := httptest.NewRequest("POST", "/admin/assign", nil)

	logger.LoginSuccess(context.Background(), req, "admin1", "admin@demo.com", "admin")
	logger.RequestAssigned(context.Background(), req, "admin1", "REQ-004", "vol4", true)

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	ev := rec.events[0]
	if ev.Category != audit.CategoryAdmin || ev.EventType != audit.EventRequestAssigned {
		t.Errorf("got %s/%s", ev.Category, ev.EventType)
	}
	if ev.RequestID != "REQ-004" || ev.VolunteerID != "vol4" || ev.ActorID != "admin1" {
		t.Errorf("got %+v", ev)
	}
}

func TestLogger_FailureReason(t *testing.T) {
	rec := &memRecorder{}
	logger := auditlog.New(rec, zap.NewNop(), auditlog.Config{})
	req := httptest.NewRequest("POST", "/volunteer/requests/REQ-404/accept", nil)

	logger.RequestAccepted(context.Background(), req, "vol4", "REQ-404", "vol4", false)

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	if rec.events[0].Success || rec.events[0].FailureReason == "" {
		t.Errorf("got %+v", rec.events[0])
	}
}

func TestLogger_StoreErrorIsSwallowed(t *testing.T) {
	rec := &memRecorder{err: errors.New("mongo down")}
	logger := auditlog.New(rec, zap.NewNop(), auditlog.Config{})
	logger.Logout(context.Background(), httptest.NewRequest("GET", "/", nil), "victim1")
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded for", map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18", "X-Real-IP": "192.168.1.1"}, "127.0.0.1:12345", "203.0.113.195"},
		{"real ip", map[string]string{"X-Real-IP": "192.168.1.100"}, "127.0.0.1:12345", "192.168.1.100"},
		{"remote addr", nil, "10.0.0.5:12345", "10.0.0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &memRecorder{}
			logger := auditlog.New(rec, zap.NewNop(), auditlog.Config{Auth: auditlog.ModeDB})

			req := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			req.RemoteAddr = tt.remote

			logger.LoginSuccess(context.Background(), req, "victim1", "victim@demo.com", "victim")
			if len(rec.events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(rec.events))
			}
			if rec.events[0].IP != tt.want {
				t.Errorf("IP: got %q, want %q", rec.events[0].IP, tt.want)
			}
		})
	}
}

func TestLogger_WithMongo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Relief: auditlog.ModeDB})
	logger.RequestCompleted(ctx, httptest.NewRequest("POST", "/", nil), "vol4", "REQ-004", "vol4", true)

	events, err := store.GetByRequest(ctx, "REQ-004", 10)
	if err != nil {
		t.Fatalf("GetByRequest: %v", err)
	}
	if len(events) != 1 || events[0].EventType != audit.EventRequestCompleted {
		t.Errorf("got %+v", events)
	}
}
