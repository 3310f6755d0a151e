// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like ports, TLS,
// logging, CORS and request body limits. Everything specific to the relief
// coordinator lives here and is passed to every lifecycle hook.
type AppConfig struct {
	// MongoDB connection configuration. A blank URI runs the app without a
	// database: relief data is in memory either way, only the audit trail
	// needs Mongo.
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Session management configuration
	SessionKey         string        // Secret key for signing session cookies (must be strong in production)
	SessionName        string        // Cookie name for sessions (default: sahara-session)
	SessionDomain      string        // Cookie domain (blank means current host)
	SessionMaxAge      time.Duration // Cookie lifetime
	SessionIdleTimeout time.Duration // Per-session view state is dropped after this much inactivity

	// Relief simulation
	ActionLatency  time.Duration // Artificial delay before every state-changing action resolves
	DriftEnabled   bool          // Run the background assignment simulator
	DriftInterval  time.Duration // How often the simulator wakes up
	DriftChancePct int           // Chance per tick, in percent, of one simulated acceptance

	// Live updates
	EventsHeartbeat time.Duration // Keep-alive comment interval on /events

	// Audit logging: "all" (db+log), "db", "log", or "off"
	AuditLogAuth   string
	AuditLogAdmin  string
	AuditLogRelief string

	// Language used before a session chooses one ("en" or "hi")
	DefaultLanguage string

	// Operation timeouts applied to Mongo calls
	PingTimeout  time.Duration
	WriteTimeout time.Duration
	QueryTimeout time.Duration
}
