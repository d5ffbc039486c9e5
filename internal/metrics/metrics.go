package metrics

import (
	"context"
	"sync"
	"time"
)

// Recorder fans request and mapping metrics out to Sentry and CloudWatch and
// keeps in-process totals for the metrics endpoint
type Recorder struct {
	sentry     *SentryMetrics
	cloudwatch *Client

	mu     sync.Mutex
	totals Snapshot
}

// Snapshot is the process-lifetime usage since startup
type Snapshot struct {
	Requests    int64            `json:"requests"`
	Errors      int64            `json:"errors"`
	Mappings    map[string]int64 `json:"mappings"`
	MappedUnits map[string]int64 `json:"mapped_units"`
	Exports     int64            `json:"midi_exports"`
	ExportBytes int64            `json:"midi_export_bytes"`
}

// NewRecorder combines both sinks. cloudwatch may be nil.
func NewRecorder(cloudwatch *Client) *Recorder {
	return &Recorder{
		sentry:     NewSentryMetrics(),
		cloudwatch: cloudwatch,
		totals: Snapshot{
			Mappings:    map[string]int64{},
			MappedUnits: map[string]int64{},
		},
	}
}

func (r *Recorder) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.totals.Requests++
	if statusCode >= 400 {
		r.totals.Errors++
	}
	r.mu.Unlock()

	r.sentry.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	r.cloudwatch.RecordAPIRequest(endpoint, statusCode, duration)
}

func (r *Recorder) RecordMapping(ctx context.Context, kind string, units int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.totals.Mappings[kind]++
	r.totals.MappedUnits[kind] += int64(units)
	r.mu.Unlock()

	r.sentry.RecordMapping(ctx, kind, units)
	r.cloudwatch.RecordMapping(kind, units)
}

func (r *Recorder) RecordExport(bytes int64) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.totals.Exports++
	r.totals.ExportBytes += bytes
	r.mu.Unlock()

	r.cloudwatch.RecordExport(bytes)
}

// Snapshot copies the current totals
func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{Mappings: map[string]int64{}, MappedUnits: map[string]int64{}}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.totals
	out.Mappings = make(map[string]int64, len(r.totals.Mappings))
	for k, v := range r.totals.Mappings {
		out.Mappings[k] = v
	}
	out.MappedUnits = make(map[string]int64, len(r.totals.MappedUnits))
	for k, v := range r.totals.MappedUnits {
		out.MappedUnits[k] = v
	}
	return out
}
