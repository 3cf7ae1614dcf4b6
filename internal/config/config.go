package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	API     APIConfig
	Session SessionConfig
	Debug   bool
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// APIConfig contains options for the remote investor backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig controls where and how the session credential is persisted.
type SessionConfig struct {
	// FilePath is the location of the durable session file.
	FilePath string
	// Passphrase, when non-empty, enables at-rest encryption of the
	// session file.
	Passphrase string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	timeout, err := parseTimeout(getenvWithDefault("PORTAL_API_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		API: APIConfig{
			BaseURL: getenvWithDefault("PORTAL_API_BASE_URL", "https://api.obsidiancapital.org"),
			Timeout: timeout,
		},
		Session: SessionConfig{
			FilePath:   getenvWithDefault("PORTAL_SESSION_FILE", "session.json"),
			Passphrase: os.Getenv("PORTAL_SESSION_PASSPHRASE"),
		},
		Debug: os.Getenv("PORTAL_DEBUG") == "true",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.API.BaseURL == "" {
		return errors.New("PORTAL_API_BASE_URL must be provided")
	}
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("PORTAL_API_BASE_URL is not a valid URL: %w", err)
	}

	if c.API.Timeout <= 0 {
		return errors.New("PORTAL_API_TIMEOUT_SECONDS must be positive")
	}

	if c.Session.FilePath == "" {
		return errors.New("PORTAL_SESSION_FILE must be provided")
	}

	return nil
}

func parseTimeout(raw string) (time.Duration, error) {
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("PORTAL_API_TIMEOUT_SECONDS must be an integer: %w", err)
	}
	return time.Duration(secs) * time.Second, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
