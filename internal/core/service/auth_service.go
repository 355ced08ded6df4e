package service

import (
	"context"
	"crypto/subtle"

	"github.com/lumenhub/appliance-portal/internal/core/domain"
	"github.com/lumenhub/appliance-portal/internal/core/ports"
)

// AuthService verifies a username/password pair against the credential store.
type AuthService struct {
	store  ports.CredentialStore
	hasher ports.PasswordHasher
}

func NewAuthService(store ports.CredentialStore, hasher ports.PasswordHasher) *AuthService {
	return &AuthService{store: store, hasher: hasher}
}

// Authenticate returns the matching user or domain.ErrInvalidCredentials.
// Unknown users and wrong passwords fail identically.
func (s *AuthService) Authenticate(_ context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, ok := s.store.Find(username)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	derived := s.hasher.Derive(password, user.Salt)
	if subtle.ConstantTimeCompare([]byte(derived), []byte(user.PasswordHash)) != 1 {
		return nil, domain.ErrInvalidCredentials
	}

	return &user, nil
}

// Hash exposes the derivation used for stored hashes, for provisioning.
func (s *AuthService) Hash(password, salt string) string {
	return s.hasher.Derive(password, salt)
}
