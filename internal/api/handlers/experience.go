package handlers

import (
	"encoding/binary"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/synesthesia-api/internal/api/middleware"
	"github.com/Conceptual-Machines/synesthesia-api/internal/experience"
	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
	"github.com/Conceptual-Machines/synesthesia-api/internal/preferences"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExperienceHandler struct {
	mapper *MappingHandler
	prefs  *preferences.Service
}

func NewExperienceHandler(mapper *MappingHandler, prefs *preferences.Service) *ExperienceHandler {
	return &ExperienceHandler{mapper: mapper, prefs: prefs}
}

// ExperienceRequest maps content with the caller's stored preferences.
// Each settings field that is present overrides the stored value for this
// request only.
type ExperienceRequest struct {
	Content  string            `json:"content"`
	Scale    string            `json:"scale,omitempty"`
	Settings *SettingsOverride `json:"settings,omitempty"`
}

// SettingsOverride is a partial settings change; nil fields keep the stored value
type SettingsOverride struct {
	Volume    *int `json:"volume,omitempty"`
	Speed     *int `json:"speed,omitempty"`
	Intensity *int `json:"intensity,omitempty"`
}

func (o *SettingsOverride) apply(s experience.Settings) experience.Settings {
	if o == nil {
		return s
	}
	if o.Volume != nil {
		s.Volume = *o.Volume
	}
	if o.Speed != nil {
		s.Speed = *o.Speed
	}
	if o.Intensity != nil {
		s.Intensity = *o.Intensity
	}
	return s
}

// Create builds the playback and visual plan for one submission
func (h *ExperienceHandler) Create(c *gin.Context) {
	start := time.Now()

	var req ExperienceRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := checkLength(req.Content); err != nil {
		respondError(c, err)
		return
	}

	prefs, err := h.prefs.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	scale := req.Scale
	if scale == "" {
		scale = prefs.Scale
	}
	settings := req.Settings.apply(prefs.Settings())

	result, err := mapping.MapAuto(req.Content, h.mapper.textOptions(scale))
	if err != nil {
		respondError(c, err)
		return
	}

	session := newRequestSession(c.GetString("request_id"))
	plan, err := session.Build(result, settings)
	if err != nil {
		respondError(c, err)
		return
	}
	h.mapper.record(c, result.Detected.Kind, mappedUnits(result), start)

	c.JSON(http.StatusOK, plan)
}

// newRequestSession seeds the particle jitter from the request ID so a plan can
// be reproduced from its logs
func newRequestSession(requestID string) *experience.Session {
	id, err := uuid.Parse(requestID)
	if err != nil {
		id = uuid.New()
	}
	seed := int64(binary.BigEndian.Uint64(id[:8])) //nolint:gosec // wraparound is fine for a seed
	return experience.NewSession(id.String(), seed)
}
