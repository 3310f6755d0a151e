// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/dalemusser/sahara/internal/app/features/admin"
	auditlogfeature "github.com/dalemusser/sahara/internal/app/features/auditlog"
	dashboardfeature "github.com/dalemusser/sahara/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/sahara/internal/app/features/errors"
	eventsfeature "github.com/dalemusser/sahara/internal/app/features/events"
	healthfeature "github.com/dalemusser/sahara/internal/app/features/health"
	heartbeatfeature "github.com/dalemusser/sahara/internal/app/features/heartbeat"
	loginfeature "github.com/dalemusser/sahara/internal/app/features/login"
	logoutfeature "github.com/dalemusser/sahara/internal/app/features/logout"
	preferencesfeature "github.com/dalemusser/sahara/internal/app/features/preferences"
	victimfeature "github.com/dalemusser/sahara/internal/app/features/victim"
	volunteerfeature "github.com/dalemusser/sahara/internal/app/features/volunteer"
	"github.com/dalemusser/sahara/internal/app/system/auth"
	"github.com/dalemusser/sahara/internal/app/system/i18n"
	"github.com/dalemusser/sahara/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend setup and the Startup hook
// have completed. Sahara applies session middleware and mounts the JSON
// feature routers: authentication, the three role dashboards, the audit
// trail, the live update stream and operational endpoints.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	translator := i18n.New()
	errHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()

	// Global auth middleware: loads the session user and preferences into
	// context. Handlers read them via auth.CurrentUser(r) and auth.Language(r).
	r.Use(sessionMgr.LoadSessionUser)

	r.NotFound(errHandler.NotFound)
	r.MethodNotAllowed(errHandler.MethodNotAllowed)

	// Operational endpoints
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Relief, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", promhttp.Handler())

	// Error pages
	r.Get("/forbidden", errHandler.Forbidden)
	r.Get("/unauthorized", errHandler.Unauthorized)

	// Authentication
	loginHandler := loginfeature.NewHandler(
		deps.Accounts,
		sessionMgr,
		deps.Registry,
		deps.AuditLog,
		ratelimit.NewLoginLimiter(),
		translator,
		appCfg.DefaultLanguage,
		logger,
	)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Mount("/signup", loginfeature.SignupRoutes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, deps.Registry, deps.AuditLog, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Landing and role routing
	dashboardHandler := dashboardfeature.NewHandler(logger)
	r.Get("/", dashboardHandler.ServeHome)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// Role dashboards
	victimHandler := victimfeature.NewHandler(deps.Registry, deps.AuditLog, appCfg.DefaultLanguage, logger)
	r.Mount("/victim", victimfeature.Routes(victimHandler, sessionMgr))

	volunteerHandler := volunteerfeature.NewHandler(deps.Registry, deps.Relief, deps.AuditLog, appCfg.DefaultLanguage, logger)
	r.Mount("/volunteer", volunteerfeature.Routes(volunteerHandler, sessionMgr))

	adminHandler := adminfeature.NewHandler(deps.Registry, deps.Relief, deps.AuditLog, appCfg.DefaultLanguage, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler, sessionMgr))

	// Audit trail; without MongoDB the handler answers 503.
	var auditQuerier auditlogfeature.Querier
	if deps.Audit != nil {
		auditQuerier = deps.Audit
	}
	auditHandler := auditlogfeature.NewHandler(auditQuerier, logger)
	r.Mount("/admin/audit", auditlogfeature.Routes(auditHandler, sessionMgr))

	// Live updates and preferences
	eventsHandler := eventsfeature.NewHandler(deps.Bus, deps.Relief, appCfg.EventsHeartbeat, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler, sessionMgr))

	heartbeatHandler := heartbeatfeature.NewHandler(deps.Registry, appCfg.DefaultLanguage, logger)
	r.Mount("/heartbeat", heartbeatfeature.Routes(heartbeatHandler, sessionMgr))

	prefsHandler := preferencesfeature.NewHandler(sessionMgr, deps.Registry, appCfg.DefaultLanguage, logger)
	r.Mount("/preferences", preferencesfeature.Routes(prefsHandler))

	return r, nil
}
