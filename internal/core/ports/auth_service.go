package ports

import (
	"context"

	"github.com/lumenhub/appliance-portal/internal/core/domain"
)

// AuthService verifies credentials against the credential store.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Hash(password, salt string) string
}

// SessionService issues and validates signed session tokens.
type SessionService interface {
	Issue(user *domain.User) (string, *domain.Session, error)
	Validate(token string) (*domain.Session, error)
}

// LoginThrottle counts failed logins per key. A nil throttle disables it.
type LoginThrottle interface {
	Blocked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
