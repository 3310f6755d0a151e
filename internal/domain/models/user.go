// internal/domain/models/user.go
package models

import (
	"strings"
	"time"
)

// Roles a signed-in user can hold.
const (
	RoleVictim    = "victim"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"
)

// User is the signed-in person. It is never stored in the relief store; it
// lives in the session and is handed to the facade on login.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"` // victim | volunteer | admin
	Phone        string    `json:"phone,omitempty"`
	Location     string    `json:"location,omitempty"`
	Skills       string    `json:"skills,omitempty"`
	Organization string    `json:"organization,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// ValidRole reports whether role is one of the known roles (case-insensitive).
func ValidRole(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleVictim, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}
