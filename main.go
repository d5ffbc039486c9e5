package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/synesthesia-api/internal/api"
	"github.com/Conceptual-Machines/synesthesia-api/internal/config"
	"github.com/Conceptual-Machines/synesthesia-api/internal/database"
	"github.com/Conceptual-Machines/synesthesia-api/internal/metrics"
	"github.com/Conceptual-Machines/synesthesia-api/internal/preferences"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout = 2 * time.Second
	storagePostgres    = "postgres"
	storageFile        = "file"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "synesthesia-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            !cfg.IsProduction(),
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	store, storage := newPreferenceStore(cfg)

	cloudwatch, err := metrics.NewClient(context.Background(), cfg.Environment, cfg.CloudWatchEnabled)
	if err != nil {
		log.Printf("CloudWatch metrics unavailable: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(cfg, api.Dependencies{
		Preferences: preferences.NewService(store),
		Recorder:    metrics.NewRecorder(cloudwatch),
		Storage:     storage,
	}, GetVersion())

	log.Printf("🚀 Starting server on %s (preferences: %s)", cfg.Addr(), storage)
	if err := router.Run(cfg.Addr()); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

// newPreferenceStore uses Postgres when DATABASE_URL is set and the JSON file otherwise
func newPreferenceStore(cfg *config.Config) (preferences.Store, string) {
	if !cfg.UseDatabase() {
		return preferences.NewFileStore(cfg.PreferencesFile), storageFile
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.Migrate(db); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to run migrations:", err)
	}

	return preferences.NewGormStore(db), storagePostgres
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
		"x-user-id":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
