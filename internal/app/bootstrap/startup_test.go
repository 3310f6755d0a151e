package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/sahara/internal/app/system/auditlog"
	"github.com/dalemusser/sahara/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func testAppConfig() AppConfig {
	return AppConfig{
		MongoDatabase:      "sahara",
		SessionKey:         testutil.TestSessionKey,
		SessionName:        "sahara-test",
		SessionMaxAge:      time.Hour,
		SessionIdleTimeout: 30 * time.Minute,
		DriftEnabled:       true,
		DriftInterval:      time.Hour,
		DriftChancePct:     10,
		EventsHeartbeat:    time.Second,
		AuditLogAuth:       auditlog.ModeLog,
		AuditLogAdmin:      auditlog.ModeLog,
		AuditLogRelief:     auditlog.ModeLog,
		DefaultLanguage:    "en",
	}
}

func testDeps(t *testing.T, appCfg AppConfig) DBDeps {
	t.Helper()
	auditLog := auditlog.New(nil, testLogger(), auditlog.Config{})
	deps, err := buildRelief(appCfg, auditLog, testLogger())
	if err != nil {
		t.Fatalf("buildRelief: %v", err)
	}
	t.Cleanup(deps.Registry.Close)
	return deps
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"defaults", func(*AppConfig) {}, false},
		{"no mongo is fine", func(c *AppConfig) { c.MongoURI = "" }, false},
		{"valid mongo uri", func(c *AppConfig) { c.MongoURI = "mongodb://localhost:27017" }, false},
		{"bad mongo uri", func(c *AppConfig) { c.MongoURI = "postgres://nope" }, true},
		{"chance below zero", func(c *AppConfig) { c.DriftChancePct = -1 }, true},
		{"chance above hundred", func(c *AppConfig) { c.DriftChancePct = 101 }, true},
		{"zero interval with drift", func(c *AppConfig) { c.DriftInterval = 0 }, true},
		{"zero interval without drift", func(c *AppConfig) { c.DriftEnabled = false; c.DriftInterval = 0 }, false},
		{"negative latency", func(c *AppConfig) { c.ActionLatency = -time.Second }, true},
		{"zero idle timeout", func(c *AppConfig) { c.SessionIdleTimeout = 0 }, true},
		{"unknown audit mode", func(c *AppConfig) { c.AuditLogRelief = "sometimes" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testAppConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{}, cfg, testLogger())
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildRelief_DriftFollowsConfig(t *testing.T) {
	cfg := testAppConfig()
	if deps := testDeps(t, cfg); deps.Drift == nil {
		t.Error("expected a drift simulator when drift is enabled")
	}

	cfg.DriftEnabled = false
	if deps := testDeps(t, cfg); deps.Drift != nil {
		t.Error("expected no drift simulator when drift is disabled")
	}
}

func TestConnectDB_WithoutMongo(t *testing.T) {
	cfg := testAppConfig()
	deps, err := ConnectDB(context.Background(), &config.CoreConfig{}, cfg, testLogger())
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	t.Cleanup(deps.Registry.Close)

	if deps.MongoClient != nil || deps.Audit != nil {
		t.Error("expected no Mongo dependencies without a mongo_uri")
	}
	if deps.AuditLog == nil || deps.Relief == nil || deps.Accounts == nil {
		t.Error("expected in-memory dependencies to be built")
	}
	if err := EnsureSchema(context.Background(), &config.CoreConfig{}, cfg, deps, testLogger()); err != nil {
		t.Errorf("EnsureSchema without Mongo: %v", err)
	}
}

func TestStartupShutdown(t *testing.T) {
	cfg := testAppConfig()
	deps := testDeps(t, cfg)
	ctx := context.Background()

	if err := Startup(ctx, &config.CoreConfig{}, cfg, deps, testLogger()); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if deps.Bus.Len() == 0 {
		t.Error("expected the metrics observer to subscribe to the bus")
	}
	if err := Shutdown(ctx, &config.CoreConfig{}, cfg, deps, testLogger()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if deps.Bus.Len() != 0 {
		t.Errorf("expected no subscribers after shutdown, got %d", deps.Bus.Len())
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := testAppConfig()
	deps := testDeps(t, cfg)
	h, err := BuildHandler(&config.CoreConfig{Env: "dev"}, cfg, deps, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func do(t *testing.T, c *http.Client, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func TestBuildHandler_PublicRoutes(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/health", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/login", http.StatusOK},
		{"/preferences", http.StatusOK},
		{"/forbidden", http.StatusForbidden},
		{"/unauthorized", http.StatusUnauthorized},
		{"/no-such-page", http.StatusNotFound},
		{"/victim", http.StatusUnauthorized},
		{"/events", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res := do(t, c, http.MethodGet, srv.URL+tt.path, nil)
			if res.StatusCode != tt.status {
				t.Errorf("GET %s = %d, want %d", tt.path, res.StatusCode, tt.status)
			}
		})
	}

	res := do(t, c, http.MethodGet, srv.URL+"/", nil)
	if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/login" {
		t.Errorf("GET / = %d -> %q, want 303 -> /login", res.StatusCode, res.Header.Get("Location"))
	}
}

func TestBuildHandler_VictimFlow(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	res := do(t, c, http.MethodPost, srv.URL+"/login/quick", map[string]string{"role": "victim"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("quick login = %d, want 200", res.StatusCode)
	}

	res = do(t, c, http.MethodGet, srv.URL+"/", nil)
	if loc := res.Header.Get("Location"); loc != "/victim" {
		t.Errorf("GET / redirected to %q, want /victim", loc)
	}

	res = do(t, c, http.MethodGet, srv.URL+"/victim", nil)
	if res.StatusCode != http.StatusOK {
		t.Errorf("GET /victim = %d, want 200", res.StatusCode)
	}

	res = do(t, c, http.MethodPost, srv.URL+"/victim/sos", map[string]string{"location": "Ward 7"})
	if res.StatusCode != http.StatusCreated {
		t.Errorf("POST /victim/sos = %d, want 201", res.StatusCode)
	}

	res = do(t, c, http.MethodGet, srv.URL+"/admin", nil)
	if res.StatusCode != http.StatusForbidden {
		t.Errorf("victim GET /admin = %d, want 403", res.StatusCode)
	}

	res = do(t, c, http.MethodPost, srv.URL+"/logout", nil)
	if res.StatusCode != http.StatusOK {
		t.Errorf("POST /logout = %d, want 200", res.StatusCode)
	}
	res = do(t, c, http.MethodGet, srv.URL+"/victim", nil)
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("GET /victim after logout = %d, want 401", res.StatusCode)
	}
}

func TestBuildHandler_AdminAuditWithoutMongo(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	res := do(t, c, http.MethodPost, srv.URL+"/login/quick", map[string]string{"role": "admin"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("quick login = %d, want 200", res.StatusCode)
	}

	res = do(t, c, http.MethodGet, srv.URL+"/admin", nil)
	if res.StatusCode != http.StatusOK {
		t.Errorf("GET /admin = %d, want 200", res.StatusCode)
	}

	res = do(t, c, http.MethodGet, srv.URL+"/admin/audit", nil)
	if res.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("GET /admin/audit = %d, want 503", res.StatusCode)
	}
}

func TestBuildHandler_LanguageToggle(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t)

	res := do(t, c, http.MethodPost, srv.URL+"/preferences/language/toggle", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("toggle = %d, want 200", res.StatusCode)
	}

	res = do(t, c, http.MethodGet, srv.URL+"/preferences", nil)
	var prefs struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(res.Body).Decode(&prefs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.EqualFold(prefs.Language, "hi") {
		t.Errorf("language = %q, want hi", prefs.Language)
	}
}

func TestConnectDB_WithMongo(t *testing.T) {
	// SetupTestDB skips the test when no server is configured.
	db := testutil.SetupTestDB(t)
	uri := os.Getenv(testutil.MongoURIEnv)

	cfg := testAppConfig()
	cfg.MongoURI = uri
	cfg.MongoDatabase = db.Name()
	ctx := context.Background()

	deps, err := ConnectDB(ctx, &config.CoreConfig{}, cfg, testLogger())
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	if deps.Audit == nil || deps.MongoClient == nil {
		t.Fatal("expected Mongo dependencies with a mongo_uri")
	}
	if err := EnsureSchema(ctx, &config.CoreConfig{}, cfg, deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := Shutdown(ctx, &config.CoreConfig{}, cfg, deps, testLogger()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
