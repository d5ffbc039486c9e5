package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/synesthesia-api/internal/api/middleware"
	"github.com/Conceptual-Machines/synesthesia-api/internal/logger"
	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
	"github.com/Conceptual-Machines/synesthesia-api/internal/preferences"
	"github.com/Conceptual-Machines/synesthesia-api/internal/web/templates"
	"github.com/gin-gonic/gin"
)

const pageTitle = "Synesthesia Simulator"

type WebHandler struct {
	prefs   *preferences.Service
	version string
}

func NewWebHandler(prefs *preferences.Service, version string) *WebHandler {
	return &WebHandler{prefs: prefs, version: version}
}

// Home renders the simulator with the caller's stored preferences preselected
func (h *WebHandler) Home(c *gin.Context) {
	prefs, err := h.prefs.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		// The page still works with defaults
		logger.Warn("Failed to load preferences for index page", logger.Fields{"error": err.Error()})
		prefs = preferences.Defaults()
	}

	scales := make([]string, 0, len(mapping.Scales()))
	for _, s := range mapping.Scales() {
		scales = append(scales, s.String())
	}

	component := templates.Index(templates.IndexData{
		Title:     pageTitle,
		Version:   h.version,
		Scales:    scales,
		Scale:     prefs.Scale,
		Volume:    prefs.Volume,
		Speed:     prefs.Speed,
		Intensity: prefs.Intensity,
	})

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render template"})
	}
}
