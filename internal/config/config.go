package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config validation errors
var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
)

// Config holds process-wide configuration for the portal server.
type Config struct {
	// DatabaseURL is the Postgres connection string.
	DatabaseURL string

	// Port the HTTP server listens on.
	Port string

	// JWTSecret signs access, registration and reset tokens.
	JWTSecret string

	// MasterPassword, when set, authenticates any web account. Meant
	// for support staff on private deployments only.
	MasterPassword string

	// PortalBaseURL is the public URL of the member portal frontend,
	// used when building activation and reset links.
	PortalBaseURL string

	// SMTP relay settings for outbound mail.
	SMTPHost string
	SMTPPort string
	SMTPFrom string
	SMTPUser string
	SMTPPass string

	// SemaphoreAPIKey authenticates against the SMS gateway. OTP
	// delivery is disabled when empty.
	SemaphoreAPIKey string
	SemaphoreSender string

	// CandidatePhotoDir is where candidate photos are stored.
	CandidatePhotoDir string

	// SessionSecret signs the credit console session cookie.
	SessionSecret string

	// LoginRatePerMinute caps login and password-reset attempts per
	// client address.
	LoginRatePerMinute int

	// OTPTTL is how long a one-time PIN stays valid.
	OTPTTL time.Duration
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Port:               "8080",
		PortalBaseURL:      "http://localhost:3000",
		SMTPHost:           "localhost",
		SMTPPort:           "25",
		SMTPFrom:           "noreply@localhost",
		CandidatePhotoDir:  "uploads/candidates",
		LoginRatePerMinute: 10,
		OTPTTL:             5 * time.Minute,
	}
}

// FromEnv creates a Config from environment variables, falling back to
// defaults for anything unset.
func FromEnv() Config {
	cfg := DefaultConfig()

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.MasterPassword = os.Getenv("MASTER_PASSWORD")
	cfg.SemaphoreAPIKey = os.Getenv("SEMAPHORE_API_KEY")
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.SessionSecret = os.Getenv("SESSION_SECRET")

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("PORTAL_BASE_URL"); v != "" {
		cfg.PortalBaseURL = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		cfg.SMTPPort = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		cfg.SMTPFrom = v
	}
	if v := os.Getenv("SEMAPHORE_SENDER"); v != "" {
		cfg.SemaphoreSender = v
	}
	if v := os.Getenv("CANDIDATE_PHOTO_DIR"); v != "" {
		cfg.CandidatePhotoDir = v
	}
	if v := os.Getenv("LOGIN_RATE_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LoginRatePerMinute = n
		} else {
			slog.Warn("invalid LOGIN_RATE_PER_MINUTE value, using default",
				"value", v,
				"default", cfg.LoginRatePerMinute,
			)
		}
	}
	if v := os.Getenv("OTP_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.OTPTTL = time.Duration(n) * time.Minute
		} else {
			slog.Warn("invalid OTP_TTL_MINUTES value, using default",
				"value", v,
				"default_minutes", int(cfg.OTPTTL.Minutes()),
			)
		}
	}

	return cfg
}

// Validate checks that required settings are present.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}
