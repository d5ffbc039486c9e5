package api

import (
	"net/http"

	"github.com/Conceptual-Machines/synesthesia-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/synesthesia-api/internal/api/middleware"
	"github.com/Conceptual-Machines/synesthesia-api/internal/config"
	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
	"github.com/Conceptual-Machines/synesthesia-api/internal/metrics"
	"github.com/Conceptual-Machines/synesthesia-api/internal/preferences"
	webhandlers "github.com/Conceptual-Machines/synesthesia-api/internal/web/handlers"
	"github.com/Conceptual-Machines/synesthesia-api/pkg/embedded"
	"github.com/gin-gonic/gin"
)

// Dependencies are the services the router wires into handlers
type Dependencies struct {
	Preferences *preferences.Service
	Recorder    *metrics.Recorder
	Storage     string // "postgres" or "file", reported by /api/health
}

func SetupRouter(cfg *config.Config, deps Dependencies, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(deps.Recorder))

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.CORSAllowedOrigins))

	// Caller identity for preferences
	router.Use(apimiddleware.UserIdentity())

	// Browser shell
	router.StaticFS("/static", http.FS(embedded.Static()))

	webHandler := webhandlers.NewWebHandler(deps.Preferences, version)
	router.GET("/", webHandler.Home)

	api := router.Group("/api")
	{
		healthHandler := handlers.NewHealthHandler(version, deps.Storage)
		api.GET("/health", healthHandler.HealthCheck)

		metricsHandler := handlers.NewMetricsHandler(version, deps.Recorder)
		api.GET("/metrics", metricsHandler.GetMetrics)

		mappingHandler := handlers.NewMappingHandler(handlers.MappingDefaults{
			Scale:        mapping.ScaleOrDefault(cfg.DefaultScale),
			NoteDuration: cfg.NoteDuration,
		}, deps.Recorder)
		api.POST("/detect", mappingHandler.Detect)
		api.POST("/map/text", mappingHandler.MapText)
		api.POST("/map/color", mappingHandler.MapColor)
		api.POST("/map/number", mappingHandler.MapNumber)
		api.POST("/map/auto", mappingHandler.MapAuto)

		experienceHandler := handlers.NewExperienceHandler(mappingHandler, deps.Preferences)
		api.POST("/experience", experienceHandler.Create)

		exportHandler := handlers.NewExportHandler(mappingHandler, deps.Recorder)
		api.POST("/export/midi", exportHandler.MIDI)

		preferencesHandler := handlers.NewPreferencesHandler(deps.Preferences)
		api.GET("/preferences", preferencesHandler.Get)
		api.POST("/preferences", preferencesHandler.Set)
		api.POST("/preferences/preset", preferencesHandler.AddPreset)
	}

	return router
}
