// Package respond writes JSON responses in the shape every handler shares.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dalemusser/sahara/internal/app/system/limits"
	"go.uber.org/zap"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes v with status 200.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// Error writes an ErrorBody.
func Error(w http.ResponseWriter, status int, msg string, details ...string) {
	JSON(w, status, ErrorBody{Error: msg, Details: details})
}

// Internal logs err and writes a 500 without leaking it.
func Internal(w http.ResponseWriter, log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	Error(w, http.StatusInternalServerError, msg)
}

// ErrUnsupportedMedia is returned by Decode for bodies that are neither
// JSON nor form-encoded.
var ErrUnsupportedMedia = errors.New("unsupported content type")

// ErrEmptyBody is returned by Decode when the body holds no JSON value.
var ErrEmptyBody = errors.New("request body is empty")

// Decode reads a JSON body into v. Unknown fields are rejected.
func Decode(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "application/json") {
		return ErrUnsupportedMedia
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, limits.MaxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
