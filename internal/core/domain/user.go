package domain

// User is one registered principal from the static credential source.
// PasswordHash is the base64 PBKDF2 output for the user's password and Salt;
// plaintext passwords are never held.
type User struct {
	Username     string `json:"username" yaml:"username" bson:"username"`
	DisplayName  string `json:"display_name" yaml:"display_name" bson:"display_name"`
	PasswordHash string `json:"-" yaml:"password_hash" bson:"password_hash"`
	Salt         string `json:"-" yaml:"salt" bson:"salt"`
}
