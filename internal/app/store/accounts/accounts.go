// internal/app/store/accounts/accounts.go
package accountstore

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dalemusser/sahara/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost for hashing passwords.
const BcryptCost = 10

var (
	// ErrInvalidCredentials covers unknown email, wrong password and wrong role.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned by Register for an address already in use.
	ErrEmailTaken = errors.New("email already registered")
)

// DemoPassword is shared by the built-in demo accounts.
const DemoPassword = "demo123"

// DemoUsers are the accounts available on a fresh start.
func DemoUsers() []models.User {
	return []models.User{
		{ID: "victim1", Name: "John Doe", Email: "victim@demo.com", Role: models.RoleVictim, Location: "Downtown District, Block A"},
		{ID: "vol1", Name: "Sarah Smith", Email: "volunteer@demo.com", Role: models.RoleVolunteer, Skills: "Medical, First Aid"},
		{ID: "admin1", Name: "Admin User", Email: "admin@demo.com", Role: models.RoleAdmin, Organization: "Sahara Relief"},
	}
}

type account struct {
	user models.User
	hash []byte
}

// Store holds sign-in accounts in memory, keyed by case-folded email.
type Store struct {
	mu      sync.RWMutex
	byEmail map[string]account
	cost    int
	dummy   []byte
	now     func() time.Time
}

// New returns a Store seeded with the demo accounts. A cost of zero uses
// BcryptCost.
func New(cost int) (*Store, error) {
	if cost == 0 {
		cost = BcryptCost
	}
	s := &Store{byEmail: make(map[string]account), cost: cost, now: time.Now}
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	s.dummy = dummy
	for _, u := range DemoUsers() {
		if err := s.put(u, DemoPassword); err != nil {
			return nil, fmt.Errorf("seed %s: %w", u.Email, err)
		}
	}
	return s, nil
}

func (s *Store) put(u models.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}
	s.byEmail[text.Fold(u.Email)] = account{user: u, hash: hash}
	return nil
}

// Authenticate checks email, password and role together.
func (s *Store) Authenticate(email, password, role string) (models.User, error) {
	s.mu.RLock()
	acct, ok := s.byEmail[text.Fold(email)]
	s.mu.RUnlock()
	if !ok {
		// Unknown emails cost the same as bad passwords.
		_ = bcrypt.CompareHashAndPassword(s.dummy, []byte(password))
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if acct.user.Role != role {
		return models.User{}, ErrInvalidCredentials
	}
	return acct.user, nil
}

// ByRole returns the first demo account with role, for one-click sign-in.
func (s *Store) ByRole(role string) (models.User, bool) {
	for _, u := range DemoUsers() {
		if u.Role == role {
			return u, true
		}
	}
	return models.User{}, false
}

// Register creates an account and returns the stored user with its new id.
func (s *Store) Register(u models.User, password string) (models.User, error) {
	key := text.Fold(u.Email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[key]; taken {
		return models.User{}, ErrEmailTaken
	}
	u.ID = uuid.NewString()
	u.CreatedAt = s.now().UTC()
	if err := s.put(u, password); err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	return u, nil
}

// Len reports the number of accounts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail)
}
