package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lumenhub/appliance-portal/internal/core/domain"
)

const sessionIssuer = "appliance-portal"

// sessionClaims is the signed payload of a session cookie.
type sessionClaims struct {
	DisplayName string `json:"name"`
	Persistent  bool   `json:"persistent"`
	jwt.RegisteredClaims
}

// SessionService mints and validates HS256 session tokens. No server-side
// state is kept, so a token stays valid until it expires even after logout.
type SessionService struct {
	secret []byte
	now    func() time.Time
}

func NewSessionService(secret []byte) *SessionService {
	return &SessionService{secret: secret, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

func (s *SessionService) Issue(user *domain.User) (string, *domain.Session, error) {
	if user == nil || user.Username == "" {
		return "", nil, fmt.Errorf("issue session: %w", domain.ErrInvalidUser)
	}

	issued := s.now().UTC()
	expires := ceilSecond(issued.AddDate(domain.SessionLifetimeYears, 0, 0))

	claims := sessionClaims{
		DisplayName: user.DisplayName,
		Persistent:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    sessionIssuer,
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}

	return signed, claims.session(), nil
}

// Validate fails with domain.ErrSessionInvalid when the token is malformed,
// carries a bad signature, or is past its expiry.
func (s *SessionService) Validate(token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrSessionInvalid
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithTimeFunc(s.now),
		// exp is rejected from the exact second on; the inclusive deadline is
		// enforced below.
		jwt.WithLeeway(time.Second),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: expired", domain.ErrSessionInvalid)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionInvalid, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrSessionInvalid
	}

	sess := claims.session()
	if sess.Expired(s.now()) {
		return nil, fmt.Errorf("%w: expired", domain.ErrSessionInvalid)
	}
	return sess, nil
}

// ceilSecond rounds t up to the whole second, the precision of a JWT
// NumericDate, so the encoded expiry never falls before the intended one.
func ceilSecond(t time.Time) time.Time {
	if r := t.Truncate(time.Second); !r.Equal(t) {
		return r.Add(time.Second)
	}
	return t
}

func (c *sessionClaims) session() *domain.Session {
	sess := &domain.Session{
		Claims: domain.Claims{
			Username:    c.Subject,
			DisplayName: c.DisplayName,
		},
		ID:         c.ID,
		Persistent: c.Persistent,
	}
	if c.IssuedAt != nil {
		sess.IssuedAt = c.IssuedAt.Time.UTC()
	}
	if c.ExpiresAt != nil {
		sess.ExpiresAt = c.ExpiresAt.Time.UTC()
	}
	return sess
}
