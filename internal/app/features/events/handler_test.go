package events_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/sahara/internal/app/features/events"
	"github.com/dalemusser/sahara/internal/domain/models"
	"github.com/dalemusser/sahara/internal/testutil"
	"go.uber.org/zap"
)

// readEvent returns the next event name and data, skipping comments.
func readEvent(t *testing.T, br *bufio.Reader) (name, data string) {
	t.Helper()
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if name != "" {
				return name, data
			}
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestServe_StreamsStatsOnChange(t *testing.T) {
	relief := testutil.NewRelief(t)
	h := events.NewHandler(relief.Bus, relief.Store, time.Hour, zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(h.Serve))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, "GET", srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type: got %q", ct)
	}
	br := bufio.NewReader(resp.Body)

	name, data := readEvent(t, br)
	var st models.Stats
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if name != "stats" || st.Total != 10 {
		t.Errorf("first event: %s %+v", name, st)
	}

	// The subscription is registered before the first event is written.
	relief.Store.AddRequest(models.RequestDraft{Title: "t", Priority: models.PriorityLow, VictimID: "victim1"})

	name, data = readEvent(t, br)
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if name != "stats" || st.Total != 11 || st.Pending != 8 {
		t.Errorf("second event: %s %+v", name, st)
	}
}

func TestServe_UnsubscribesOnDisconnect(t *testing.T) {
	relief := testutil.NewRelief(t)
	base := relief.Bus.Len()
	h := events.NewHandler(relief.Bus, relief.Store, time.Hour, zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(h.Serve))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, _ := http.NewRequestWithContext(ctx, "GET", srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	readEvent(t, bufio.NewReader(resp.Body))
	if relief.Bus.Len() != base+1 {
		t.Fatalf("subscribers: got %d, want %d", relief.Bus.Len(), base+1)
	}

	cancel()
	resp.Body.Close()

	deadline := time.Now().Add(2 * time.Second)
	for relief.Bus.Len() != base {
		if time.Now().After(deadline) {
			t.Fatalf("subscriber not removed: %d", relief.Bus.Len())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRoutes_RequireSignedIn(t *testing.T) {
	relief := testutil.NewRelief(t)
	h := events.NewHandler(relief.Bus, relief.Store, 0, zap.NewNop())
	router := events.Routes(h, testutil.NewSessionManager(t))

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest("GET", "/"))
	rec.AssertStatus(t, http.StatusUnauthorized)
}
