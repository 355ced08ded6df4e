// Package credentials holds the immutable, in-memory user set that backs
// login, and the loaders that build it from static configuration.
package credentials

import (
	"fmt"

	"github.com/lumenhub/appliance-portal/internal/core/domain"
)

// StaticStore is read-only after construction, so concurrent Find calls
// need no locking.
type StaticStore struct {
	users map[string]domain.User
}

// NewStaticStore rejects records without a username, hash or salt, and
// duplicate usernames.
func NewStaticStore(users []domain.User) (*StaticStore, error) {
	byName := make(map[string]domain.User, len(users))
	for i, u := range users {
		if u.Username == "" || u.PasswordHash == "" || u.Salt == "" {
			return nil, fmt.Errorf("credentials: user #%d: %w", i, domain.ErrInvalidUser)
		}
		if _, exists := byName[u.Username]; exists {
			return nil, fmt.Errorf("credentials: %q: %w", u.Username, domain.ErrDuplicateUsername)
		}
		byName[u.Username] = u
	}
	return &StaticStore{users: byName}, nil
}

// Find is an exact, case-sensitive match.
func (s *StaticStore) Find(username string) (domain.User, bool) {
	u, ok := s.users[username]
	return u, ok
}

func (s *StaticStore) Len() int { return len(s.users) }
