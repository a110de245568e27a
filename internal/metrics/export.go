package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Exporter handles exporting metrics to various formats
type Exporter struct {
	collector *Collector
}

// NewExporter creates a new metrics exporter
func NewExporter(collector *Collector) *Exporter {
	return &Exporter{collector: collector}
}

// ExportJSON writes aggregate stats and recent events to a JSON file
func (e *Exporter) ExportJSON(path string) error {
	report := struct {
		GeneratedAt time.Time      `json:"generated_at"`
		Stats       AggregateStats `json:"stats"`
		Events      []FileEvent    `json:"events"`
	}{
		GeneratedAt: time.Now(),
		Stats:       e.collector.GetStats(),
		Events:      e.collector.GetRecentEvents(1000),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metrics: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// WriteReport writes a human-readable report to the given writer
func (e *Exporter) WriteReport(w io.Writer) error {
	stats := e.collector.GetStats()

	fmt.Fprintf(w, "=== Summary ===\n")
	fmt.Fprintf(w, "Files:     %d\n", stats.TotalFiles)
	fmt.Fprintf(w, "Errors:    %d\n", stats.TotalErrors)
	fmt.Fprintf(w, "Findings:  %d\n", stats.TotalFindings)

	if len(stats.FindingsByRule) > 0 {
		codes := make([]string, 0, len(stats.FindingsByRule))
		for code := range stats.FindingsByRule {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			fmt.Fprintf(w, "  %s: %d\n", code, stats.FindingsByRule[code])
		}
	}

	fmt.Fprintf(w, "\n=== Latency ===\n")
	fmt.Fprintf(w, "Average:  %.2fms\n", stats.AvgDurationMs)
	fmt.Fprintf(w, "P50:      %.2fms\n", stats.P50DurationMs)
	fmt.Fprintf(w, "P95:      %.2fms\n", stats.P95DurationMs)
	fmt.Fprintf(w, "Max:      %.2fms\n", stats.MaxDurationMs)

	fmt.Fprintf(w, "\n=== Cache ===\n")
	fmt.Fprintf(w, "Hits:     %d\n", stats.CacheHits)
	fmt.Fprintf(w, "Misses:   %d\n", stats.CacheMisses)
	fmt.Fprintf(w, "Hit Rate: %.1f%%\n", stats.CacheHitRate*100)

	_, err := fmt.Fprintf(w, "\nFiles/sec: %.2f\n", stats.FilesPerSecond)
	return err
}

// WriteCSV writes events in CSV format for external analysis
func (e *Exporter) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "file_path", "file_size", "line_count", "duration_ms", "finding_count", "cache_result", "error"}); err != nil {
		return err
	}

	for _, ev := range e.collector.GetRecentEvents(e.collector.maxEvents) {
		record := []string{
			ev.Timestamp.Format(time.RFC3339),
			ev.FilePath,
			strconv.Itoa(ev.FileSize),
			strconv.Itoa(ev.LineCount),
			strconv.FormatInt(ev.Duration.Milliseconds(), 10),
			strconv.Itoa(ev.FindingCount()),
			string(ev.CacheResult),
			ev.Error,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes one row per recent file event to a CSV file
func (e *Exporter) ExportCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := e.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Export writes to path as CSV when it ends in ".csv" and as JSON otherwise.
func (e *Exporter) Export(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return e.ExportCSV(path)
	}
	return e.ExportJSON(path)
}
