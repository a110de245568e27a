package metrics

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/chris-regnier/namecheck/internal/metrics"

// Recorder records file events into a Collector and OpenTelemetry instruments.
type Recorder struct {
	collector *Collector

	files        metric.Int64Counter
	cacheLookups metric.Int64Counter
	diagnostics  metric.Int64Counter
	duration     metric.Float64Histogram
}

// NewRecorder creates a recorder backed by collector. A nil meter uses the
// global meter provider.
func NewRecorder(collector *Collector, meter metric.Meter) (*Recorder, error) {
	if meter == nil {
		meter = otel.Meter(meterName)
	}

	files, err := meter.Int64Counter("namecheck.files.analyzed",
		metric.WithDescription("Files analyzed"),
		metric.WithUnit("{file}"))
	if err != nil {
		return nil, err
	}
	cacheLookups, err := meter.Int64Counter("namecheck.cache.lookups",
		metric.WithDescription("Result cache lookups by outcome"),
		metric.WithUnit("{lookup}"))
	if err != nil {
		return nil, err
	}
	diagnostics, err := meter.Int64Counter("namecheck.diagnostics",
		metric.WithDescription("Diagnostics reported by rule"),
		metric.WithUnit("{diagnostic}"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("namecheck.file.duration",
		metric.WithDescription("Per-file analysis duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	return &Recorder{
		collector:    collector,
		files:        files,
		cacheLookups: cacheLookups,
		diagnostics:  diagnostics,
		duration:     duration,
	}, nil
}

// NoOpRecorder returns a recorder that discards all metrics
func NoOpRecorder() *Recorder {
	r, _ := NewRecorder(NewCollector(WithMaxEvents(0)), noop.NewMeterProvider().Meter(meterName))
	return r
}

// Collector returns the in-process collector behind r.
func (r *Recorder) Collector() *Collector {
	return r.collector
}

// FileBuilder helps build a FileEvent incrementally
type FileBuilder struct {
	recorder *Recorder
	event    FileEvent
	started  time.Time
	mu       sync.Mutex
}

// StartFile begins recording the analysis of one file
func (r *Recorder) StartFile(path string, content []byte) *FileBuilder {
	return &FileBuilder{
		recorder: r,
		event: FileEvent{
			Timestamp:   time.Now(),
			FilePath:    path,
			FileSize:    len(content),
			LineCount:   strings.Count(string(content), "\n") + 1,
			CacheResult: CacheDisabled,
		},
		started: time.Now(),
	}
}

// WithCacheResult records a cache lookup result
func (b *FileBuilder) WithCacheResult(result CacheResult) *FileBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.event.CacheResult = result
	return b
}

// Complete finishes recording with the findings per violation code
func (b *FileBuilder) Complete(ctx context.Context, findings map[string]int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.event.Duration = time.Since(b.started)
	b.event.Findings = findings
	b.recorder.record(ctx, b.event)
}

// CompleteWithError finishes recording with an error
func (b *FileBuilder) CompleteWithError(ctx context.Context, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.event.Duration = time.Since(b.started)
	b.event.Error = err.Error()
	b.recorder.record(ctx, b.event)
}

func (r *Recorder) record(ctx context.Context, event FileEvent) {
	r.collector.Record(event)

	status := "ok"
	if event.Error != "" {
		status = "error"
	}
	r.files.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	if event.CacheResult != CacheDisabled {
		r.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", string(event.CacheResult))))
	}
	for code, n := range event.Findings {
		if n > 0 {
			r.diagnostics.Add(ctx, int64(n), metric.WithAttributes(attribute.String("rule", code)))
		}
	}
	r.duration.Record(ctx, float64(event.Duration)/float64(time.Millisecond))
}
