package iothub

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidConnectionString = errors.New("invalid iot hub connection string")

// Credentials is a parsed service connection string:
//
//	HostName=<hub>.azure-devices.net;SharedAccessKeyName=<policy>;SharedAccessKey=<base64>
type Credentials struct {
	HostName string
	KeyName  string
	Key      []byte
}

func ParseConnectionString(s string) (Credentials, error) {
	var c Credentials
	var rawKey string
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return Credentials{}, fmt.Errorf("%w: segment %q", ErrInvalidConnectionString, part)
		}
		switch strings.ToLower(k) {
		case "hostname":
			c.HostName = v
		case "sharedaccesskeyname":
			c.KeyName = v
		case "sharedaccesskey":
			rawKey = v
		}
	}
	if c.HostName == "" || c.KeyName == "" || rawKey == "" {
		return Credentials{}, fmt.Errorf("%w: HostName, SharedAccessKeyName and SharedAccessKey are required", ErrInvalidConnectionString)
	}
	key, err := base64.StdEncoding.DecodeString(rawKey)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: key: %v", ErrInvalidConnectionString, err)
	}
	c.Key = key
	return c, nil
}

// SASToken builds a shared access signature for the hub valid until expiry.
func (c Credentials) SASToken(expiry time.Time) string {
	resource := url.QueryEscape(strings.ToLower(c.HostName))
	se := strconv.FormatInt(expiry.Unix(), 10)

	mac := hmac.New(sha256.New, c.Key)
	mac.Write([]byte(resource + "\n" + se))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return fmt.Sprintf("SharedAccessSignature sr=%s&sig=%s&se=%s&skn=%s",
		resource, url.QueryEscape(sig), se, url.QueryEscape(c.KeyName))
}
