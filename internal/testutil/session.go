package testutil

import (
	"net/http"
	"testing"
	"time"

	accountstore "github.com/dalemusser/sahara/internal/app/store/accounts"
	"github.com/dalemusser/sahara/internal/app/system/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TestSessionKey is a 32-byte key for cookie-store tests.
const TestSessionKey = "0123456789abcdef0123456789abcdef"

// NewSessionManager returns an insecure cookie session manager for tests.
func NewSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(TestSessionKey, "sahara-test", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

// NewAccounts returns the demo account store hashed at the minimum cost.
func NewAccounts(t *testing.T) *accountstore.Store {
	t.Helper()
	s, err := accountstore.New(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("accountstore.New: %v", err)
	}
	return s
}

// WithCookies copies every cookie set on res onto r.
func WithCookies(r *http.Request, res *http.Response) *http.Request {
	for _, c := range res.Cookies() {
		r.AddCookie(c)
	}
	return r
}
