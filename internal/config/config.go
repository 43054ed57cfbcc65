package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Guard modes
const (
	GuardModePresence = "presence"
	GuardModeJWT      = "jwt"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Backend API configuration
	BackendURL       string // used for server-side calls
	BackendPublicURL string // used for browser redirects (login)
	RequestTimeout   time.Duration

	// Route guard configuration
	SessionCookie  string
	ProtectedPaths []string
	UnauthRedirect string
	GuardMode      string // "presence" or "jwt"
	JWTSecret      string

	// Backend liveness probe
	HealthCheckEnabled bool
	HealthSchedule     string

	// Outage alerts
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string

	// Metrics snapshot archive, Azure Blob Storage when StorageAccount is set
	// and a local directory when only ArchiveDir is set
	StorageAccount   string
	StorageContainer string
	ArchiveDir       string
	ArchiveSchedule  string
	ArchiveRetention int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	backendURL := strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:8000"), "/")

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		BackendURL:       backendURL,
		BackendPublicURL: strings.TrimRight(getEnv("BACKEND_PUBLIC_URL", backendURL), "/"),
		RequestTimeout:   time.Duration(getIntEnv("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,

		SessionCookie: getEnv("SESSION_COOKIE", "access_token"),
		ProtectedPaths: getSliceEnv("PROTECTED_PATHS", []string{
			"/search",
			"/businesses/:path*",
		}),
		UnauthRedirect: getEnv("UNAUTH_REDIRECT", "/auth"),
		GuardMode:      strings.ToLower(getEnv("GUARD_MODE", GuardModePresence)),
		JWTSecret:      getEnv("JWT_SECRET_KEY", ""),

		HealthCheckEnabled: getBoolEnv("HEALTH_CHECK_ENABLED", true),
		HealthSchedule:     getEnv("HEALTH_SCHEDULE", "0 */1 * * * *"),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "leadlift-metrics"),
		ArchiveDir:       getEnv("ARCHIVE_DIR", ""),
		ArchiveSchedule:  getEnv("ARCHIVE_SCHEDULE", "0 0 * * * *"),
		ArchiveRetention: getIntEnv("ARCHIVE_RETENTION", 48),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL must not be empty")
	}

	if !strings.HasPrefix(c.BackendURL, "http://") && !strings.HasPrefix(c.BackendURL, "https://") {
		return fmt.Errorf("BACKEND_URL must be an http(s) URL, got %q", c.BackendURL)
	}

	if c.GuardMode != GuardModePresence && c.GuardMode != GuardModeJWT {
		return fmt.Errorf("GUARD_MODE must be '%s' or '%s'", GuardModePresence, GuardModeJWT)
	}

	if c.GuardMode == GuardModeJWT && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required when GUARD_MODE is '%s'", GuardModeJWT)
	}

	if c.SessionCookie == "" {
		return fmt.Errorf("SESSION_COOKIE must not be empty")
	}

	if !strings.HasPrefix(c.UnauthRedirect, "/") {
		return fmt.Errorf("UNAUTH_REDIRECT must be an absolute path")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	if c.ArchiveEnabled() && c.ArchiveRetention < 1 {
		return fmt.Errorf("ARCHIVE_RETENTION must be at least 1")
	}

	return nil
}

// ArchiveEnabled reports whether metrics snapshots should be kept
func (c *Config) ArchiveEnabled() bool {
	return c.StorageAccount != "" || c.ArchiveDir != ""
}

// WriteTimeout bounds a page response. A business page may chain two backend
// rounds (detail, then trends by name), each up to RequestTimeout.
func (c *Config) WriteTimeout() time.Duration {
	return 2*c.RequestTimeout + 15*time.Second
}

// AlertsEnabled reports whether any outage alert channel is configured
func (c *Config) AlertsEnabled() bool {
	return c.TeamsWebhookURL != "" || c.NotificationEmail != ""
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return defaultValue
}
