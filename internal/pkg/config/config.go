package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	CredentialsFromFile  = "file"
	CredentialsFromMongo = "mongo"

	HashEndpointOpen          = "open"
	HashEndpointAuthenticated = "authenticated"
	HashEndpointAdmin         = "admin"
	HashEndpointDisabled      = "disabled"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Session      SessionConfig
	Credentials  CredentialsConfig
	Mongo        MongoConfig
	Redis        RedisConfig
	Device       DeviceConfig
	HashEndpoint HashEndpointConfig
}

type SessionConfig struct {
	Secret       string `env:"SESSION_SECRET, required" validate:"min=16"`
	CookieName   string `env:"SESSION_COOKIE, default=appliance_session" validate:"required"`
	CookieSecure bool   `env:"COOKIE_SECURE,  default=false"`
}

type CredentialsConfig struct {
	Source string `env:"CREDENTIALS_SOURCE, default=file" validate:"oneof=file mongo"`
	File   string `env:"CREDENTIALS_FILE,   default=users.yaml" validate:"required_if=Source file"`
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI,              default=mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB,               default=appliance_portal"`
	Collection string `env:"MONGO_USERS_COLLECTION, default=users"`
}

// RedisConfig enables login throttling when Addr is set.
type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR"`
	DB           int           `env:"REDIS_DB,           default=0"`
	MaxFailures  int           `env:"LOGIN_MAX_FAILURES, default=5"   validate:"gte=1"`
	LockoutAfter time.Duration `env:"LOGIN_LOCKOUT,      default=15m" validate:"gt=0"`
}

type DeviceConfig struct {
	ConnectionString string        `env:"IOTHUB_CONNECTION_STRING"`
	DeviceID         string        `env:"DEVICE_ID"`
	Timeout          time.Duration `env:"DEVICE_TIMEOUT, default=10s" validate:"gt=0"`
}

type HashEndpointConfig struct {
	Mode   string   `env:"HASH_ENDPOINT_MODE, default=admin" validate:"oneof=open authenticated admin disabled"`
	Admins []string `env:"HASH_ADMINS"`
}

// Load reads an optional .env file, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith decodes and validates configuration from lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return &cfg, nil
}

// DeviceConfigured reports whether the relay has enough settings to run.
func (c *Config) DeviceConfigured() bool {
	return c.Device.ConnectionString != "" && c.Device.DeviceID != ""
}
