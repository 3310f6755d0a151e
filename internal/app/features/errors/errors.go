// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/sahara/internal/app/system/auth"
	"github.com/dalemusser/sahara/internal/app/system/respond"
)

// pageData is the JSON body of every error page.
type pageData struct {
	Error      string `json:"error"`
	Title      string `json:"title"`
	IsLoggedIn bool   `json:"isLoggedIn"`
	Role       string `json:"role,omitempty"`
	UserName   string `json:"userName,omitempty"`
	BackURL    string `json:"backUrl"`
}

// Handler is the errors feature handler. It has no dependencies.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

func write(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	data := pageData{Error: msg, Title: title, BackURL: backURL}
	if u, ok := auth.CurrentUser(r); ok {
		data.IsLoggedIn = true
		data.Role = u.Role
		data.UserName = u.Name
	}
	respond.JSON(w, status, data)
}

// Forbidden handles GET /forbidden.
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	write(w, r, http.StatusForbidden, "Access denied", "You don't have permission to view this page.", "/dashboard")
}

// Unauthorized handles GET /unauthorized.
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	write(w, r, http.StatusUnauthorized, "Sign in required", "Please sign in to continue.", "/login")
}

// NotFound is the router's fallback for unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	write(w, r, http.StatusNotFound, "Not found", "The page you requested does not exist.", "/")
}

// MethodNotAllowed is the router's fallback for a known path with the wrong
// method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	write(w, r, http.StatusMethodNotAllowed, "Method not allowed", r.Method+" is not supported here.", "/")
}
