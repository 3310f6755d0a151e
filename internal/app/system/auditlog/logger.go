// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/dalemusser/sahara/internal/app/store/audit"
	"go.uber.org/zap"
)

// Destination settings for a category.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls sign-in, sign-up and sign-out events.
	Auth string
	// Admin controls administrator overrides (assignments, status changes).
	Admin string
	// Relief controls request lifecycle events raised by victims, volunteers
	// and the drift simulator.
	Relief string
}

// Recorder persists audit events.
type Recorder interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger provides convenience methods for logging audit events.
// It logs to the Recorder (normally audit.Store) and to zap. With a nil
// Recorder the "db" half of every setting is skipped.
type Logger struct {
	store  Recorder
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store Recorder, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// clientIP extracts the client IP from the request.
func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func userAgent(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.UserAgent()
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserID != "" {
		fields = append(fields, zap.String("user_id", event.UserID))
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.VolunteerID != "" {
		fields = append(fields, zap.String("volunteer_id", event.VolunteerID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

func (l *Logger) setting(category string) string {
	var s string
	switch category {
	case audit.CategoryAuth:
		s = l.config.Auth
	case audit.CategoryAdmin:
		s = l.config.Admin
	case audit.CategoryRelief:
		s = l.config.Relief
	}
	if s == "" {
		return ModeAll
	}
	return s
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := l.setting(event.Category)
	if setting == ModeOff {
		return
	}
	if setting == ModeAll || setting == ModeLog {
		l.logToZap(event)
	}
	if (setting == ModeAll || setting == ModeDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful sign-in.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID, email, role string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    userID,
		IP:        clientIP(r),
		UserAgent: userAgent(r),
		Success:   true,
		Details:   map[string]string{"email": email, "role": role},
	})
}

// LoginFailed logs a rejected sign-in attempt.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, email, role, reason string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailed,
		IP:            clientIP(r),
		UserAgent:     userAgent(r),
		Success:       false,
		FailureReason: reason,
		Details:       map[string]string{"email": email, "role": role},
	})
}

// SignUp logs a new account.
func (l *Logger) SignUp(ctx context.Context, r *http.Request, userID, email, role string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventSignUp,
		UserID:    userID,
		IP:        clientIP(r),
		UserAgent: userAgent(r),
		Success:   true,
		Details:   map[string]string{"email": email, "role": role},
	})
}

// Logout logs a sign-out.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userID string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		UserID:    userID,
		IP:        clientIP(r),
		UserAgent: userAgent(r),
		Success:   true,
	})
}

// --- Relief Events ---

// RequestCreated logs a victim's new help request.
func (l *Logger) RequestCreated(ctx context.Context, r *http.Request, victimID, requestID, priority string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryRelief,
		EventType: audit.EventRequestCreated,
		UserID:    victimID,
		ActorID:   victimID,
		RequestID: requestID,
		IP:        clientIP(r),
		Success:   true,
		Details:   map[string]string{"priority": priority},
	})
}

// SOSRaised logs an emergency request.
func (l *Logger) SOSRaised(ctx context.Context, r *http.Request, victimID, requestID, location string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryRelief,
		EventType: audit.EventSOSRaised,
		UserID:    victimID,
		ActorID:   victimID,
		RequestID: requestID,
		IP:        clientIP(r),
		Success:   true,
		Details:   map[string]string{"location": location},
	})
}

// RequestAccepted logs a volunteer picking up a request. ok is false when
// the store refused the acceptance.
func (l *Logger) RequestAccepted(ctx context.Context, r *http.Request, actorID, requestID, volunteerID string, ok bool) {
	ev := audit.Event{
		Category:    audit.CategoryRelief,
		EventType:   audit.EventRequestAccepted,
		ActorID:     actorID,
		RequestID:   requestID,
		VolunteerID: volunteerID,
		IP:          clientIP(r),
		Success:     ok,
	}
	if !ok {
		ev.FailureReason = "request or volunteer not found"
	}
	l.Log(ctx, ev)
}

// RequestCompleted logs a volunteer finishing a request.
func (l *Logger) RequestCompleted(ctx context.Context, r *http.Request, actorID, requestID, volunteerID string, ok bool) {
	ev := audit.Event{
		Category:    audit.CategoryRelief,
		EventType:   audit.EventRequestCompleted,
		ActorID:     actorID,
		RequestID:   requestID,
		VolunteerID: volunteerID,
		IP:          clientIP(r),
		Success:     ok,
	}
	if !ok {
		ev.FailureReason = "request not found"
	}
	l.Log(ctx, ev)
}

// DriftAssigned logs an acceptance made by the background simulator.
func (l *Logger) DriftAssigned(ctx context.Context, requestID, volunteerID string) {
	l.Log(ctx, audit.Event{
		Category:    audit.CategoryRelief,
		EventType:   audit.EventDriftAssigned,
		ActorID:     "drift",
		RequestID:   requestID,
		VolunteerID: volunteerID,
		Success:     true,
	})
}

// --- Admin Events ---

// RequestAssigned logs an administrator assigning a request.
func (l *Logger) RequestAssigned(ctx context.Context, r *http.Request, actorID, requestID, volunteerID string, ok bool) {
	ev := audit.Event{
		Category:    audit.CategoryAdmin,
		EventType:   audit.EventRequestAssigned,
		ActorID:     actorID,
		RequestID:   requestID,
		VolunteerID: volunteerID,
		IP:          clientIP(r),
		UserAgent:   userAgent(r),
		Success:     ok,
	}
	if !ok {
		ev.FailureReason = "request or volunteer not found"
	}
	l.Log(ctx, ev)
}

// RequestStatusChanged logs an administrator overriding a request's status.
func (l *Logger) RequestStatusChanged(ctx context.Context, r *http.Request, actorID, requestID, status string, ok bool) {
	ev := audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventRequestStatusChanged,
		ActorID:   actorID,
		RequestID: requestID,
		IP:        clientIP(r),
		UserAgent: userAgent(r),
		Success:   ok,
		Details:   map[string]string{"status": status},
	}
	if !ok {
		ev.FailureReason = "request not found"
	}
	l.Log(ctx, ev)
}

// VolunteerStatusChanged logs an administrator overriding a volunteer's
// availability.
func (l *Logger) VolunteerStatusChanged(ctx context.Context, r *http.Request, actorID, volunteerID, status string, ok bool) {
	ev := audit.Event{
		Category:    audit.CategoryAdmin,
		EventType:   audit.EventVolunteerStatusChanged,
		ActorID:     actorID,
		VolunteerID: volunteerID,
		IP:          clientIP(r),
		UserAgent:   userAgent(r),
		Success:     ok,
		Details:     map[string]string{"status": status},
	}
	if !ok {
		ev.FailureReason = "volunteer not found"
	}
	l.Log(ctx, ev)
}
