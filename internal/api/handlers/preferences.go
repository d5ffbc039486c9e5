package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/synesthesia-api/internal/api/middleware"
	"github.com/Conceptual-Machines/synesthesia-api/internal/models"
	"github.com/Conceptual-Machines/synesthesia-api/internal/preferences"
	"github.com/gin-gonic/gin"
)

type PreferencesHandler struct {
	service *preferences.Service
}

func NewPreferencesHandler(service *preferences.Service) *PreferencesHandler {
	return &PreferencesHandler{service: service}
}

type PresetsResponse struct {
	Presets []models.Preset `json:"presets"`
}

// Get returns the caller's preferences, or the defaults
func (h *PreferencesHandler) Get(c *gin.Context) {
	prefs, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// Set merges the posted fields into the caller's preferences
func (h *PreferencesHandler) Set(c *gin.Context) {
	var update preferences.Update
	if err := bindOptionalJSON(c, &update); err != nil {
		respondBadRequest(c, err)
		return
	}

	prefs, err := h.service.Set(c.Request.Context(), middleware.GetUserID(c), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// AddPreset stores the posted object as a named preset
func (h *PreferencesHandler) AddPreset(c *gin.Context) {
	preset := models.Preset{}
	if err := bindOptionalJSON(c, &preset); err != nil {
		respondBadRequest(c, err)
		return
	}

	presets, err := h.service.AddPreset(c.Request.Context(), middleware.GetUserID(c), preset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PresetsResponse{Presets: presets})
}
