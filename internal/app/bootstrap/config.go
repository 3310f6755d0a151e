// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/sahara/internal/app/system/auditlog"
	"github.com/dalemusser/sahara/internal/app/system/i18n"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Sahara.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: SAHARA_MONGO_URI, SAHARA_DRIFT_INTERVAL, etc.
//   - Command-line flags: --mongo_uri, --drift_interval, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "", Desc: "MongoDB connection URI (blank disables the audit store)"},
	{Name: "mongo_database", Default: "sahara", Desc: "MongoDB database name"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "sahara-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime"},
	{Name: "session_idle_timeout", Default: "30m", Desc: "Drop per-session view state after this much inactivity"},

	// Relief simulation
	{Name: "action_latency", Default: "1s", Desc: "Artificial delay applied to every state-changing action"},
	{Name: "drift_enabled", Default: true, Desc: "Run the background assignment simulator"},
	{Name: "drift_interval", Default: "10s", Desc: "Simulator tick interval"},
	{Name: "drift_chance_pct", Default: 10, Desc: "Chance per tick (0-100) of one simulated acceptance"},

	// Live updates
	{Name: "events_heartbeat", Default: "25s", Desc: "Keep-alive interval for the /events stream"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_relief", Default: "all", Desc: "Relief event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	{Name: "default_language", Default: "en", Desc: "Language before a session picks one: 'en' or 'hi'"},

	// Timeouts
	{Name: "ping_timeout", Default: "2s", Desc: "Timeout for database health pings"},
	{Name: "write_timeout", Default: "5s", Desc: "Timeout for audit writes"},
	{Name: "query_timeout", Default: "10s", Desc: "Timeout for audit queries"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, SAHARA_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SAHARA", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		SessionKey:         appValues.String("session_key"),
		SessionName:        appValues.String("session_name"),
		SessionDomain:      appValues.String("session_domain"),
		SessionMaxAge:      appValues.Duration("session_max_age", 24*time.Hour),
		SessionIdleTimeout: appValues.Duration("session_idle_timeout", 30*time.Minute),

		// Relief simulation
		ActionLatency:  appValues.Duration("action_latency", time.Second),
		DriftEnabled:   appValues.Bool("drift_enabled"),
		DriftInterval:  appValues.Duration("drift_interval", 10*time.Second),
		DriftChancePct: appValues.Int("drift_chance_pct"),

		EventsHeartbeat: appValues.Duration("events_heartbeat", 25*time.Second),

		// Audit logging
		AuditLogAuth:   strings.ToLower(appValues.String("audit_log_auth")),
		AuditLogAdmin:  strings.ToLower(appValues.String("audit_log_admin")),
		AuditLogRelief: strings.ToLower(appValues.String("audit_log_relief")),

		DefaultLanguage: i18n.Normalize(appValues.String("default_language")),

		// Timeouts
		PingTimeout:  appValues.Duration("ping_timeout", 2*time.Second),
		WriteTimeout: appValues.Duration("write_timeout", 5*time.Second),
		QueryTimeout: appValues.Duration("query_timeout", 10*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI is only checked when one is set; a blank URI runs the
// app without the audit store.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.MongoURI != "" {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	}

	if appCfg.DriftChancePct < 0 || appCfg.DriftChancePct > 100 {
		return fmt.Errorf("drift_chance_pct must be between 0 and 100, got %d", appCfg.DriftChancePct)
	}
	if appCfg.DriftEnabled && appCfg.DriftInterval <= 0 {
		return fmt.Errorf("drift_interval must be positive when drift is enabled")
	}
	if appCfg.ActionLatency < 0 {
		return fmt.Errorf("action_latency cannot be negative")
	}
	if appCfg.SessionIdleTimeout <= 0 {
		return fmt.Errorf("session_idle_timeout must be positive")
	}

	for name, mode := range map[string]string{
		"audit_log_auth":   appCfg.AuditLogAuth,
		"audit_log_admin":  appCfg.AuditLogAdmin,
		"audit_log_relief": appCfg.AuditLogRelief,
	} {
		switch mode {
		case auditlog.ModeAll, auditlog.ModeDB, auditlog.ModeLog, auditlog.ModeOff, "":
		default:
			return fmt.Errorf("%s must be one of all, db, log, off; got %q", name, mode)
		}
	}

	return nil
}
