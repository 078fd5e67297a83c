package blog

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrDatabaseDriverUnknown = errors.New("blog: unknown database driver")
	ErrDatabaseDSNRequired   = errors.New("blog: database dsn is required")
	ErrAdminEmailRequired    = errors.New("blog: admin email is required")
	ErrAdminPasswordRequired = errors.New("blog: admin password hash is required")
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DatabaseConfig selects the storage backend. SQLite is the default; the
// postgres driver expects a pgx DSN.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// AuthConfig carries the single-admin credential and session settings. The
// password must be a bcrypt hash, never plaintext.
type AuthConfig struct {
	AdminEmail        string
	AdminPasswordHash string
	SessionSecret     string
	SessionCookie     string
	SessionTTL        time.Duration
	SecureCookies     bool
}

// MarkdownConfig tunes the goldmark rendering engine.
type MarkdownConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// HTTPConfig shapes the served surface.
type HTTPConfig struct {
	Addr    string
	BaseURL string
}

// LoggingConfig configures the go-logger provider.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// Config is the top level configuration for the blog module.
type Config struct {
	Database DatabaseConfig
	Auth     AuthConfig
	Markdown MarkdownConfig
	HTTP     HTTPConfig
	Logging  LoggingConfig
}

// DefaultConfig returns a configuration suitable for local development,
// minus the credentials the caller must always supply.
func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    "file:blog.db?_fk=1",
		},
		Auth: AuthConfig{
			SessionTTL: 24 * time.Hour,
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the parts of the configuration that cannot be defaulted.
func (c Config) Validate() error {
	switch strings.TrimSpace(c.Database.Driver) {
	case DriverSQLite, DriverPostgres:
	default:
		return ErrDatabaseDriverUnknown
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return ErrDatabaseDSNRequired
	}
	if strings.TrimSpace(c.Auth.AdminEmail) == "" {
		return ErrAdminEmailRequired
	}
	if strings.TrimSpace(c.Auth.AdminPasswordHash) == "" {
		return ErrAdminPasswordRequired
	}
	return nil
}
