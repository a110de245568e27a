// Package metrics records per-file analysis events. Events are aggregated in
// process for run reports and mirrored to OpenTelemetry instruments.
package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// CacheResult indicates whether a cache lookup was a hit or miss
type CacheResult string

const (
	CacheHit      CacheResult = "hit"
	CacheMiss     CacheResult = "miss"
	CacheDisabled CacheResult = "disabled"
)

// FileEvent captures metrics for analyzing a single file
type FileEvent struct {
	Timestamp time.Time `json:"timestamp"`

	// Input characteristics
	FilePath  string `json:"file_path"`
	FileSize  int    `json:"file_size"` // bytes
	LineCount int    `json:"line_count"`

	// Timing
	Duration time.Duration `json:"duration"`

	// Results, keyed by violation code
	Findings map[string]int `json:"findings,omitempty"`

	CacheResult CacheResult `json:"cache_result"`

	Error string `json:"error,omitempty"`
}

// FindingCount returns the number of findings across all rules.
func (e FileEvent) FindingCount() int {
	n := 0
	for _, c := range e.Findings {
		n += c
	}
	return n
}

// AggregateStats holds computed aggregate statistics
type AggregateStats struct {
	// Counts
	TotalFiles     int64            `json:"total_files"`
	TotalErrors    int64            `json:"total_errors"`
	TotalFindings  int64            `json:"total_findings"`
	FindingsByRule map[string]int64 `json:"findings_by_rule"`

	// Latency stats (in milliseconds for JSON readability)
	AvgDurationMs float64 `json:"avg_duration_ms"`
	P50DurationMs float64 `json:"p50_duration_ms"`
	P95DurationMs float64 `json:"p95_duration_ms"`
	MaxDurationMs float64 `json:"max_duration_ms"`

	// Cache stats
	CacheHits    int64   `json:"cache_hits"`
	CacheMisses  int64   `json:"cache_misses"`
	CacheHitRate float64 `json:"cache_hit_rate"`

	FilesPerSecond float64 `json:"files_per_second"`

	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}

type atomicCounters struct {
	totalFiles    atomic.Int64
	totalErrors   atomic.Int64
	totalFindings atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
}

// Collector collects and stores file events
type Collector struct {
	mu       sync.RWMutex
	events   []FileEvent
	byRule   map[string]int64
	counters atomicCounters

	maxEvents int
	startTime time.Time
}

// CollectorOption configures a Collector
type CollectorOption func(*Collector)

// WithMaxEvents sets the maximum number of events to retain
func WithMaxEvents(n int) CollectorOption {
	return func(c *Collector) {
		c.maxEvents = n
	}
}

// NewCollector creates a new metrics collector
func NewCollector(opts ...CollectorOption) *Collector {
	c := &Collector{
		events:    make([]FileEvent, 0, 256),
		byRule:    make(map[string]int64),
		maxEvents: 10000,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Record adds a file event to the collector
func (c *Collector) Record(event FileEvent) {
	c.counters.totalFiles.Add(1)
	c.counters.totalFindings.Add(int64(event.FindingCount()))
	if event.Error != "" {
		c.counters.totalErrors.Add(1)
	}
	switch event.CacheResult {
	case CacheHit:
		c.counters.cacheHits.Add(1)
	case CacheMiss:
		c.counters.cacheMisses.Add(1)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for code, n := range event.Findings {
		c.byRule[code] += int64(n)
	}

	if c.maxEvents <= 0 {
		return
	}
	c.events = append(c.events, event)
	if len(c.events) > c.maxEvents {
		// drop the oldest 10%
		pruneCount := c.maxEvents / 10
		if pruneCount == 0 {
			pruneCount = 1
		}
		c.events = c.events[pruneCount:]
	}
}

// GetStats computes aggregate statistics from collected events
func (c *Collector) GetStats() AggregateStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	stats := AggregateStats{
		TotalFiles:     c.counters.totalFiles.Load(),
		TotalErrors:    c.counters.totalErrors.Load(),
		TotalFindings:  c.counters.totalFindings.Load(),
		CacheHits:      c.counters.cacheHits.Load(),
		CacheMisses:    c.counters.cacheMisses.Load(),
		FindingsByRule: make(map[string]int64, len(c.byRule)),
		WindowStart:    c.startTime,
		WindowEnd:      now,
	}
	for code, n := range c.byRule {
		stats.FindingsByRule[code] = n
	}

	if lookups := stats.CacheHits + stats.CacheMisses; lookups > 0 {
		stats.CacheHitRate = float64(stats.CacheHits) / float64(lookups)
	}
	if elapsed := now.Sub(c.startTime).Seconds(); elapsed > 0 {
		stats.FilesPerSecond = float64(stats.TotalFiles) / elapsed
	}

	if len(c.events) == 0 {
		return stats
	}

	durations := make([]float64, 0, len(c.events))
	var sum float64
	for _, e := range c.events {
		ms := float64(e.Duration) / float64(time.Millisecond)
		durations = append(durations, ms)
		sum += ms
	}
	sort.Float64s(durations)

	stats.AvgDurationMs = sum / float64(len(durations))
	stats.P50DurationMs = percentile(durations, 0.50)
	stats.P95DurationMs = percentile(durations, 0.95)
	stats.MaxDurationMs = durations[len(durations)-1]
	return stats
}

// GetRecentEvents returns the most recent n events
func (c *Collector) GetRecentEvents(n int) []FileEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if n > len(c.events) {
		n = len(c.events)
	}
	if n <= 0 {
		return nil
	}

	result := make([]FileEvent, n)
	copy(result, c.events[len(c.events)-n:])
	return result
}

// Reset clears all collected metrics
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.events = c.events[:0]
	c.byRule = make(map[string]int64)
	c.counters = atomicCounters{}
	c.startTime = time.Now()
}

// percentile returns the value at the given percentile (0.0-1.0)
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}
