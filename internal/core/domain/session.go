package domain

import "time"

// SessionLifetimeYears is fixed: sessions are long lived so the appliance
// page rarely asks for a login.
const SessionLifetimeYears = 1

// Claims are the identity attributes embedded in a session token.
type Claims struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// Session is an authenticated browser context. It lives only inside the
// signed cookie; the server keeps no record of it.
type Session struct {
	Claims     Claims    `json:"claims"`
	ID         string    `json:"id"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	Persistent bool      `json:"persistent"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
