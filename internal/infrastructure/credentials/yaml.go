package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lumenhub/appliance-portal/internal/core/domain"
)

// fileFormat is the on-disk shape of the credential file:
//
//	users:
//	  - username: alice
//	    display_name: Alice
//	    password_hash: Zf6k...
//	    salt: s1
type fileFormat struct {
	Users []domain.User `yaml:"users"`
}

// LoadFile reads the users list from a YAML file.
func LoadFile(path string) ([]domain.User, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("credentials: read %s: %w", path, err)
	}
	return Decode(bytes.NewReader(b))
}

// Decode parses the users list. Unknown keys are rejected so a typo such as
// "pasword_hash" does not silently produce an unusable record.
func Decode(r io.Reader) ([]domain.User, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f fileFormat
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("credentials: decode: %w", err)
	}
	return f.Users, nil
}
