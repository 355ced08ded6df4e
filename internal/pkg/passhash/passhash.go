// Package passhash derives stored password hashes with PBKDF2-HMAC-SHA256.
//
// The parameters are fixed so that hashes provisioned once keep verifying:
// 1000 iterations, a 32 byte key, salt taken as UTF-8 bytes, output encoded
// with standard padded base64.
package passhash

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

const (
	Iterations = 1000
	KeyLength  = 32
)

// Hasher implements ports.PasswordHasher.
type Hasher struct{}

// New returns the PBKDF2 hasher.
func New() Hasher { return Hasher{} }

// Derive is deterministic: equal inputs always yield equal output.
func (Hasher) Derive(password, salt string) string {
	return Derive(password, salt)
}

func Derive(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), Iterations, KeyLength, sha256.New)
	return base64.StdEncoding.EncodeToString(key)
}
