package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/Conceptual-Machines/synesthesia-api/internal/export"
	"github.com/Conceptual-Machines/synesthesia-api/internal/logger"
	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
	"github.com/Conceptual-Machines/synesthesia-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

const (
	minExportBPM = 20
	maxExportBPM = 300
)

type ExportHandler struct {
	mapper   *MappingHandler
	recorder *metrics.Recorder
}

func NewExportHandler(mapper *MappingHandler, recorder *metrics.Recorder) *ExportHandler {
	return &ExportHandler{mapper: mapper, recorder: recorder}
}

type MIDIExportRequest struct {
	Text  string  `json:"text"`
	Scale string  `json:"scale,omitempty"`
	BPM   float64 `json:"bpm,omitempty"`
}

// MIDI renders the text's note sequence as a Standard MIDI File
func (h *ExportHandler) MIDI(c *gin.Context) {
	var req MIDIExportRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := checkLength(req.Text); err != nil {
		respondError(c, err)
		return
	}
	if req.BPM != 0 && (req.BPM < minExportBPM || req.BPM > maxExportBPM) {
		respondBadRequest(c, fmt.Errorf("bpm must be between %d and %d", minExportBPM, maxExportBPM))
		return
	}

	seq := mapping.MapText(req.Text, h.mapper.textOptions(req.Scale))

	var buf bytes.Buffer
	n, err := export.WriteMIDI(&buf, seq, export.MIDIOptions{BPM: req.BPM})
	if err != nil {
		respondError(c, fmt.Errorf("write midi: %w", err))
		return
	}

	fields := logger.WithContext(c)
	fields["notes"] = len(seq.Mappings)
	fields["bytes"] = n
	logger.Info("MIDI exported", fields)
	h.recorder.RecordExport(n)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", midiFilename))
	c.Data(http.StatusOK, midiMIMEType, buf.Bytes())
}
