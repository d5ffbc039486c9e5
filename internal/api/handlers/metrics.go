package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
	"github.com/Conceptual-Machines/synesthesia-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

const bytesToMB = 1024 * 1024

type MetricsHandler struct {
	startTime time.Time
	version   string
	recorder  *metrics.Recorder
}

// NewMetricsHandler reports mapping usage since startup alongside runtime stats
func NewMetricsHandler(version string, recorder *metrics.Recorder) *MetricsHandler {
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
		recorder:  recorder,
	}
}

type MetricsResponse struct {
	Status        string           `json:"status"`
	Service       string           `json:"service"`
	Version       string           `json:"version"`
	APIVersion    string           `json:"api_version"`
	StartTime     string           `json:"start_time"`
	UptimeSeconds float64          `json:"uptime_seconds"`
	Usage         metrics.Snapshot `json:"usage"`
	Scales        []string         `json:"scales"`
	Runtime       RuntimeMetrics   `json:"runtime"`
}

type RuntimeMetrics struct {
	Goroutines int    `json:"goroutines"`
	HeapMB     uint64 `json:"heap_mb"`
	NumGC      uint32 `json:"num_gc"`
}

func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	scales := make([]string, 0, len(mapping.Scales()))
	for _, s := range mapping.Scales() {
		scales = append(scales, s.String())
	}

	c.JSON(http.StatusOK, MetricsResponse{
		Status:        "healthy",
		Service:       serviceName,
		Version:       h.version,
		APIVersion:    apiVersion,
		StartTime:     h.startTime.UTC().Format(time.RFC3339),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Usage:         h.recorder.Snapshot(),
		Scales:        scales,
		Runtime: RuntimeMetrics{
			Goroutines: runtime.NumGoroutine(),
			HeapMB:     m.HeapAlloc / bytesToMB,
			NumGC:      m.NumGC,
		},
	})
}
