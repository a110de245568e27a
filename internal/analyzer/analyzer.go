// Package analyzer runs the naming checks over a set of Python files.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/chris-regnier/namecheck/internal/astcheck"
	"github.com/chris-regnier/namecheck/internal/cache"
	"github.com/chris-regnier/namecheck/internal/input"
	"github.com/chris-regnier/namecheck/internal/metrics"
	"github.com/chris-regnier/namecheck/internal/naming"
)

var tracer = otel.Tracer("github.com/chris-regnier/namecheck/internal/analyzer")

// DefaultLevel is the SARIF level of a check with no configured severity.
const DefaultLevel = "warning"

// Finding is a check match anchored in a file.
type Finding struct {
	Path  string `json:"path"`
	Level string `json:"level"`
	astcheck.Match
}

// Analyzer runs a fixed set of checks with one Settings value.
type Analyzer struct {
	checks   []astcheck.Check
	settings naming.Settings
	cache    cache.Manager
	recorder *metrics.Recorder
	levels   map[string]string
	jobs     int
	version  string
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithCache enables result caching
func WithCache(c cache.Manager) Option {
	return func(a *Analyzer) {
		a.cache = c
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(r *metrics.Recorder) Option {
	return func(a *Analyzer) {
		if r != nil {
			a.recorder = r
		}
	}
}

// WithLevels sets the SARIF level per check name
func WithLevels(levels map[string]string) Option {
	return func(a *Analyzer) {
		a.levels = levels
	}
}

// WithJobs bounds the number of files analyzed concurrently; n < 1 means
// GOMAXPROCS.
func WithJobs(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.jobs = n
		}
	}
}

// WithToolVersion sets the version recorded in cache keys
func WithToolVersion(version string) Option {
	return func(a *Analyzer) {
		a.version = version
	}
}

// NewAnalyzer creates an Analyzer for the given checks and settings.
func NewAnalyzer(checks []astcheck.Check, settings naming.Settings, opts ...Option) *Analyzer {
	a := &Analyzer{
		checks:   checks,
		settings: settings,
		recorder: metrics.NoOpRecorder(),
		jobs:     runtime.GOMAXPROCS(0),
		version:  "dev",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze checks every artifact and returns the findings sorted by path,
// byte offset and code. The order does not depend on scheduling.
func (a *Analyzer) Analyze(ctx context.Context, artifacts []input.Artifact) ([]Finding, error) {
	ctx, span := tracer.Start(ctx, "analyze",
		trace.WithAttributes(
			attribute.Int("namecheck.files", len(artifacts)),
			attribute.Int("namecheck.jobs", a.jobs),
			attribute.Int("namecheck.min_name_length", a.settings.MinNameLength()),
		))
	defer span.End()

	perFile := make([][]Finding, len(artifacts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.jobs)
	for i, art := range artifacts {
		g.Go(func() error {
			findings, err := a.analyzeFile(gctx, art)
			if err != nil {
				return err
			}
			perFile[i] = findings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var all []Finding
	for _, findings := range perFile {
		all = append(all, findings...)
	}
	SortFindings(all)

	span.SetAttributes(attribute.Int("namecheck.findings", len(all)))
	return all, nil
}

func (a *Analyzer) analyzeFile(ctx context.Context, art input.Artifact) ([]Finding, error) {
	ctx, span := tracer.Start(ctx, "analyze file",
		trace.WithAttributes(attribute.String("namecheck.path", art.Path)))
	defer span.End()

	source := []byte(art.Content)
	b := a.recorder.StartFile(art.Path, source)

	var key cache.Key
	if a.cache != nil {
		key = a.cacheKey(source)
		entry, err := a.cache.Get(ctx, key)
		switch {
		case err == nil:
			b.WithCacheResult(metrics.CacheHit)
			findings := a.anchor(art.Path, entry.Matches)
			b.Complete(ctx, countByCode(findings))
			return findings, nil
		case errors.Is(err, cache.ErrCacheMiss):
		default:
			slog.Warn("cache lookup failed", "path", art.Path, "error", err)
		}
		b.WithCacheResult(metrics.CacheMiss)
	}

	file, err := astcheck.ParseFile(ctx, art.Path, source)
	if err != nil {
		b.CompleteWithError(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("analyzing %s: %w", art.Path, err)
	}

	matches := []astcheck.Match{}
	for _, c := range a.checks {
		matches = append(matches, c.Run(file, a.settings)...)
	}
	slog.Debug("analyzed file", "path", art.Path, "lines", file.Lines.LineCount(),
		"bindings", len(file.Bindings), "matches", len(matches))

	if a.cache != nil {
		if err := a.cache.Put(ctx, &cache.Entry{Key: key, Matches: matches}); err != nil {
			slog.Warn("cache store failed", "path", art.Path, "error", err)
		}
	}

	findings := a.anchor(art.Path, matches)
	b.Complete(ctx, countByCode(findings))
	span.SetAttributes(
		attribute.Int("namecheck.lines", file.Lines.LineCount()),
		attribute.Int("namecheck.findings", len(findings)),
	)
	return findings, nil
}

func (a *Analyzer) cacheKey(source []byte) cache.Key {
	checkCodes := make([]string, 0, len(a.checks))
	for _, c := range a.checks {
		checkCodes = append(checkCodes, c.Code())
	}
	sort.Strings(checkCodes)
	return cache.Key{
		FileHash:      cache.HashContent(source),
		MinNameLength: a.settings.MinNameLength(),
		Checks:        checkCodes,
		ToolVersion:   a.version,
	}
}

func (a *Analyzer) anchor(path string, matches []astcheck.Match) []Finding {
	findings := make([]Finding, 0, len(matches))
	for _, m := range matches {
		findings = append(findings, Finding{Path: path, Level: a.level(m.Check), Match: m})
	}
	return findings
}

func (a *Analyzer) level(check string) string {
	if l, ok := a.levels[check]; ok && l != "" {
		return l
	}
	return DefaultLevel
}

// SortFindings orders findings by path, byte offset and code.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		fi, fj := findings[i], findings[j]
		if fi.Path != fj.Path {
			return fi.Path < fj.Path
		}
		if fi.Range.Start != fj.Range.Start {
			return fi.Range.Start < fj.Range.Start
		}
		return fi.Code < fj.Code
	})
}

func countByCode(findings []Finding) map[string]int {
	counts := make(map[string]int)
	for _, f := range findings {
		counts[f.Code]++
	}
	return counts
}
