package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration
// Preferences go to Postgres when DATABASE_URL is set, otherwise to a JSON file
type Config struct {
	// Environment
	Environment string
	Host        string
	Port        string

	// Storage
	DatabaseURL     string
	PreferencesFile string

	// Mapping defaults
	DefaultScale string
	NoteDuration float64

	// HTTP
	CORSAllowedOrigins []string

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	CloudWatchEnabled bool   // Push request metrics to CloudWatch (production only)
}

func Load() *Config {
	return &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		Host:               getEnv("HOST", "0.0.0.0"),
		Port:               getEnv("PORT", "5000"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		PreferencesFile:    getEnv("PREFERENCES_FILE", "preferences.json"),
		DefaultScale:       getEnv("DEFAULT_SCALE", "pentatonic"),
		NoteDuration:       getEnvFloat("NOTE_DURATION", 0.2),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		CloudWatchEnabled:  getEnv("CLOUDWATCH_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		return defaultValue
	}
	return f
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsProduction returns true in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UseDatabase returns true when preferences are stored in Postgres
func (c *Config) UseDatabase() bool {
	return c.DatabaseURL != ""
}

// Addr is the listen address
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}
