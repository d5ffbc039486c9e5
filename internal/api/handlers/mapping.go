package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/synesthesia-api/internal/logger"
	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
	"github.com/Conceptual-Machines/synesthesia-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MappingDefaults are applied when a request leaves options out
type MappingDefaults struct {
	Scale        mapping.ScaleName
	NoteDuration float64
}

type MappingHandler struct {
	defaults MappingDefaults
	recorder *metrics.Recorder
}

func NewMappingHandler(defaults MappingDefaults, recorder *metrics.Recorder) *MappingHandler {
	return &MappingHandler{defaults: defaults, recorder: recorder}
}

type ContentRequest struct {
	Content string `json:"content"`
	Scale   string `json:"scale,omitempty"`
}

type TextRequest struct {
	Text  string `json:"text"`
	Scale string `json:"scale,omitempty"`
}

type ColorRequest struct {
	Color *string `json:"color"`
}

// NumberRequest accepts the number as a JSON number or a numeric string
type NumberRequest struct {
	Number json.RawMessage `json:"number"`
}

// value decodes Number; a missing number is zero
func (r NumberRequest) value() (float64, error) {
	raw := bytes.TrimSpace(r.Number)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return mapping.ParseNumber(s)
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return mapping.ParseNumber(string(raw))
	}
	return n, nil
}

// textOptions resolves the scale; unknown names fall back to the default scale
func (h *MappingHandler) textOptions(scale string) mapping.TextOptions {
	name := h.defaults.Scale
	if scale != "" {
		if parsed, err := mapping.ParseScale(scale); err == nil {
			name = parsed
		} else {
			logger.Debug("Unknown scale requested, using default", logger.Fields{"scale": scale})
		}
	}
	return mapping.TextOptions{Scale: name, NoteDuration: h.defaults.NoteDuration}
}

func (h *MappingHandler) record(c *gin.Context, kind mapping.Kind, units int, start time.Time) {
	c.Set("content_kind", kind.String())
	logger.LogMapping(c.Request.Context(), kind.String(), time.Since(start), logger.WithContext(c))
	h.recorder.RecordMapping(c.Request.Context(), kind.String(), units)
}

// Detect classifies content without mapping it
func (h *MappingHandler) Detect(c *gin.Context) {
	var req ContentRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBadRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, mapping.Classify(req.Content))
}

// MapText converts text to a note sequence
func (h *MappingHandler) MapText(c *gin.Context) {
	start := time.Now()

	var req TextRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := checkLength(req.Text); err != nil {
		respondError(c, err)
		return
	}

	result := mapping.MapText(req.Text, h.textOptions(req.Scale))
	h.record(c, mapping.KindText, len(result.Mappings), start)

	c.JSON(http.StatusOK, result)
}

// MapColor converts a hex color to sound parameters
func (h *MappingHandler) MapColor(c *gin.Context) {
	start := time.Now()

	var req ColorRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBadRequest(c, err)
		return
	}
	color := defaultColor
	if req.Color != nil {
		color = *req.Color
	}

	result, err := mapping.MapColor(color)
	if err != nil {
		respondError(c, err)
		return
	}
	h.record(c, mapping.KindColor, 1, start)

	c.JSON(http.StatusOK, result)
}

// MapNumber converts a number to pattern parameters
func (h *MappingHandler) MapNumber(c *gin.Context) {
	start := time.Now()

	var req NumberRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBadRequest(c, err)
		return
	}

	n, err := req.value()
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := mapping.MapNumber(n)
	if err != nil {
		respondError(c, err)
		return
	}
	h.record(c, mapping.KindNumber, 1, start)

	c.JSON(http.StatusOK, result)
}

// MapAuto classifies content and maps it with the matching mapper
func (h *MappingHandler) MapAuto(c *gin.Context) {
	start := time.Now()

	var req ContentRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := checkLength(req.Content); err != nil {
		respondError(c, err)
		return
	}

	result, err := mapping.MapAuto(req.Content, h.textOptions(req.Scale))
	if err != nil {
		respondError(c, err)
		return
	}
	h.record(c, result.Detected.Kind, mappedUnits(result), start)

	c.JSON(http.StatusOK, result)
}

func mappedUnits(result mapping.AutoResult) int {
	if result.Text != nil {
		return len(result.Text.Mappings)
	}
	return 1
}

// bindOptionalJSON decodes the body when there is one. An empty body leaves
// req at its zero value.
func bindOptionalJSON(c *gin.Context, req any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}
