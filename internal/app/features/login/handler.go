// internal/app/features/login/handler.go
package login

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/sahara/internal/app/features/dashboard"
	"github.com/dalemusser/sahara/internal/app/features/shared"
	accountstore "github.com/dalemusser/sahara/internal/app/store/accounts"
	"github.com/dalemusser/sahara/internal/app/system/appstate"
	"github.com/dalemusser/sahara/internal/app/system/auditlog"
	"github.com/dalemusser/sahara/internal/app/system/auth"
	"github.com/dalemusser/sahara/internal/app/system/htmlsanitize"
	"github.com/dalemusser/sahara/internal/app/system/i18n"
	"github.com/dalemusser/sahara/internal/app/system/inputval"
	"github.com/dalemusser/sahara/internal/app/system/limits"
	"github.com/dalemusser/sahara/internal/app/system/navigation"
	"github.com/dalemusser/sahara/internal/app/system/ratelimit"
	"github.com/dalemusser/sahara/internal/app/system/respond"
	"github.com/dalemusser/sahara/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves sign-in, one-click demo sign-in and sign-up.
type Handler struct {
	Accounts        *accountstore.Store
	SessionMgr      *auth.SessionManager
	Registry        *appstate.Registry
	AuditLog        *auditlog.Logger
	Limiter         *ratelimit.LoginLimiter // nil disables throttling
	Translator      *i18n.Translator
	DefaultLanguage string
	Log             *zap.Logger
}

func NewHandler(
	accounts *accountstore.Store,
	sessionMgr *auth.SessionManager,
	registry *appstate.Registry,
	auditLog *auditlog.Logger,
	limiter *ratelimit.LoginLimiter,
	translator *i18n.Translator,
	defaultLanguage string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Accounts:        accounts,
		SessionMgr:      sessionMgr,
		Registry:        registry,
		AuditLog:        auditLog,
		Limiter:         limiter,
		Translator:      translator,
		DefaultLanguage: defaultLanguage,
		Log:             logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Payloads                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type quickInput struct {
	Role string `json:"role"`
}

type signupInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
	Phone           string `json:"phone"`
	Location        string `json:"location"`
	Skills          string `json:"skills"`
	Organization    string `json:"organization"`
}

type demoAccount struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginPage struct {
	SignedIn     bool          `json:"signedIn"`
	User         *models.User  `json:"user,omitempty"`
	DemoAccounts []demoAccount `json:"demoAccounts"`
	Language     string        `json:"language"`
}

type sessionResponse struct {
	User     models.User `json:"user"`
	Redirect string      `json:"redirect"`
	Message  string      `json:"message,omitempty"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| Handlers                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeLogin handles GET /login. It lists the demo accounts so a client can
// offer one-click sign-in.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	page := loginPage{Language: shared.RequestLanguage(r, h.DefaultLanguage)}
	if u, ok := auth.CurrentUser(r); ok {
		page.SignedIn = true
		page.User = u
	}
	for _, u := range accountstore.DemoUsers() {
		page.DemoAccounts = append(page.DemoAccounts, demoAccount{Email: u.Email, Role: u.Role})
	}
	respond.OK(w, page)
}

// HandleLoginPost handles POST /login. Email, password and role must all
// match one account.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	lang := shared.RequestLanguage(r, h.DefaultLanguage)

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, in.Email); !ok {
			h.AuditLog.LoginFailed(r.Context(), r, in.Email, in.Role, "rate_limited")
			respond.Error(w, http.StatusTooManyRequests, reason)
			return
		}
	}

	u, err := h.Accounts.Authenticate(in.Email, in.Password, in.Role)
	if err != nil {
		if !errors.Is(err, accountstore.ErrInvalidCredentials) {
			respond.Internal(w, h.Log, "authenticate", err)
			return
		}
		h.AuditLog.LoginFailed(r.Context(), r, in.Email, in.Role, "invalid_credentials")
		respond.Error(w, http.StatusUnauthorized, h.Translator.T(lang, "auth.invalidCredentials"))
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetEmail(in.Email)
	}

	h.startSession(w, r, u, lang, http.StatusOK, "")
}

// HandleQuickLogin handles POST /login/quick: sign in as the demo account
// for a role.
func (h *Handler) HandleQuickLogin(w http.ResponseWriter, r *http.Request) {
	var in quickInput
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	u, ok := h.Accounts.ByRole(strings.ToLower(strings.TrimSpace(in.Role)))
	if !ok {
		respond.Error(w, http.StatusBadRequest, "unknown role")
		return
	}
	h.startSession(w, r, u, shared.RequestLanguage(r, h.DefaultLanguage), http.StatusOK, "")
}

// HandleSignup handles POST /signup. The new account is signed in at once.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var in signupInput
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	lang := shared.RequestLanguage(r, h.DefaultLanguage)

	htmlsanitize.Fields(&in.Name, &in.Phone, &in.Location, &in.Skills, &in.Organization)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))

	var v inputval.Result
	v.Required("name", "Name", in.Name).
		MaxLen("name", "Name", in.Name, limits.MaxNameLen).
		Required("email", "Email", in.Email).
		Email("email", in.Email).
		Required("password", "Password", in.Password).
		OneOf("role", "Role", in.Role, models.RoleVictim, models.RoleVolunteer, models.RoleAdmin).
		Check(in.Password == in.ConfirmPassword, "confirmPassword", h.Translator.T(lang, "auth.passwordMismatch"))
	if v.HasErrors() {
		respond.JSON(w, http.StatusBadRequest, struct {
			Error  string                `json:"error"`
			Fields []inputval.FieldError `json:"fields"`
		}{v.First(), v.Errors})
		return
	}

	u := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Role:     in.Role,
		Phone:    in.Phone,
		Location: in.Location,
	}
	switch in.Role {
	case models.RoleVolunteer:
		u.Skills = in.Skills
	case models.RoleAdmin:
		u.Organization = in.Organization
	}

	u, err := h.Accounts.Register(u, in.Password)
	if errors.Is(err, accountstore.ErrEmailTaken) {
		respond.Error(w, http.StatusConflict, "An account with that email already exists.")
		return
	}
	if err != nil {
		respond.Internal(w, h.Log, "register account", err)
		return
	}
	h.AuditLog.SignUp(r.Context(), r, u.ID, u.Email, u.Role)

	h.startSession(w, r, u, lang, http.StatusCreated, h.Translator.T(lang, "auth.signupSuccess"))
}

// startSession stores u in the cookie, builds the session's facade and
// writes the landing redirect.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, u models.User, lang string, status int, msg string) {
	sid, err := h.SessionMgr.SignIn(w, r, &u)
	if err != nil {
		respond.Internal(w, h.Log, "sign in", err)
		return
	}
	h.Registry.Acquire(sid, &u, lang)
	h.AuditLog.LoginSuccess(r.Context(), r, u.ID, u.Email, u.Role)

	h.Log.Info("user signed in",
		zap.String("user_id", u.ID),
		zap.String("role", u.Role))

	redirect := navigation.SafeBackURL(r, navigation.AfterSignIn(dashboard.Home(u.Role)))
	respond.JSON(w, status, sessionResponse{User: u, Redirect: redirect, Message: msg})
}
