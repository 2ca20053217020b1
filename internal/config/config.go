// Package config loads the backend configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all settings of the backend.
type Config struct {
	// HTTP server
	Port             string
	CORSAllowOrigins string

	// Database
	SQLiteDBPath string

	// Auth
	JWTSecret     string
	TokenLifetime time.Duration

	// Mail
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Base URL of the frontend, used in password reset links
	AppURL string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:             getEnv("PORT", "3000"),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", ""),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "data/fintrack.db"),

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenLifetime: getEnvDuration("TOKEN_LIFETIME", 7*24*time.Hour),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		SMTPFrom: getEnv("SMTP_FROM", ""),

		AppURL: getEnv("APP_URL", ""),
	}
}

// Validate returns an error describing every invalid setting.
func (c Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.TokenLifetime <= 0 {
		problems = append(problems, "token lifetime must be positive")
	}

	if c.AppURL != "" {
		if _, err := url.Parse(c.AppURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid app URL %q", c.AppURL))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return nil
}

// MailConfigured reports whether all settings needed to send mail are set.
func (c Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != "" && c.AppURL != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
