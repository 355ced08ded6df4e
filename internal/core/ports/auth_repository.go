package ports

import "github.com/lumenhub/appliance-portal/internal/core/domain"

// CredentialStore is the read-only set of registered users loaded once at
// startup. Implementations must be safe for concurrent reads.
type CredentialStore interface {
	Find(username string) (domain.User, bool)
}

// PasswordHasher derives the stored hash for a password and salt.
type PasswordHasher interface {
	Derive(password, salt string) string
}
