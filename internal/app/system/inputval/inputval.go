// Package inputval validates form input for sign-up and request creation.
package inputval

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// IsValidEmail reports whether s is a bare addr-spec (no display name).
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t<>") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	local, domain := s[:at], s[at+1:]
	return validDotAtoms(local) && validDotAtoms(domain)
}

func validDotAtoms(s string) bool {
	if s == "" || strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return false
	}
	return !strings.Contains(s, "..")
}

// FieldError is one failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects field errors in the order checks ran.
type Result struct {
	Errors []FieldError `json:"errors,omitempty"`
}

// HasErrors reports whether any check failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

func (r *Result) add(field, msg string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: msg})
}

// Required fails when value is blank.
func (r *Result) Required(field, label, value string) *Result {
	if strings.TrimSpace(value) == "" {
		r.add(field, label+" is required.")
	}
	return r
}

// MaxLen fails when value has more than n characters.
func (r *Result) MaxLen(field, label, value string, n int) *Result {
	if utf8.RuneCountInString(value) > n {
		r.add(field, fmt.Sprintf("%s must be at most %d characters.", label, n))
	}
	return r
}

// Email fails when a non-blank value is not a valid address.
func (r *Result) Email(field, value string) *Result {
	if strings.TrimSpace(value) != "" && !IsValidEmail(value) {
		r.add(field, "A valid email address is required.")
	}
	return r
}

// OneOf fails when value is not in allowed.
func (r *Result) OneOf(field, label, value string, allowed ...string) *Result {
	for _, a := range allowed {
		if value == a {
			return r
		}
	}
	r.add(field, fmt.Sprintf("%s must be one of: %s.", label, strings.Join(allowed, ", ")))
	return r
}

// Check records msg when ok is false.
func (r *Result) Check(ok bool, field, msg string) *Result {
	if !ok {
		r.add(field, msg)
	}
	return r
}
