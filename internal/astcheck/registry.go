package astcheck

import (
	"sort"

	"github.com/chris-regnier/namecheck/internal/naming"
)

// Check is the interface that all AST-based checks must implement.
type Check interface {
	// Name returns the unique identifier for this check (e.g. "too-short-name").
	Name() string
	// Code returns the violation code (e.g. "WPS111").
	Code() string
	// Description returns a one-line summary for listings.
	Description() string
	// Run executes the check against a parsed file.
	Run(file *File, settings naming.Settings) []Match
}

// Match represents a single finding from an AST check.
type Match struct {
	Check       string       `json:"check"`
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	Binding     string       `json:"binding"`
	Message     string       `json:"message"`
	Range       naming.Range `json:"range"`
	StartLine   int          `json:"start_line"`
	StartColumn int          `json:"start_column"`
	EndLine     int          `json:"end_line"`
	EndColumn   int          `json:"end_column"`
}

// Registry holds a set of named AST checks.
type Registry struct {
	checks map[string]Check
	codes  map[string]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		checks: make(map[string]Check),
		codes:  make(map[string]string),
	}
}

// Register adds a check to the registry, keyed by its Name().
func (r *Registry) Register(c Check) {
	r.checks[c.Name()] = c
	r.codes[c.Code()] = c.Name()
}

// Get retrieves a check by name or by code.
func (r *Registry) Get(key string) (Check, bool) {
	if c, ok := r.checks[key]; ok {
		return c, true
	}
	if name, ok := r.codes[key]; ok {
		return r.checks[name], true
	}
	return nil, false
}

// Names returns all registered check names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Checks returns all registered checks sorted by code.
func (r *Registry) Checks() []Check {
	checks := make([]Check, 0, len(r.checks))
	for _, c := range r.checks {
		checks = append(checks, c)
	}
	sort.Slice(checks, func(i, j int) bool { return checks[i].Code() < checks[j].Code() })
	return checks
}

// Select returns the checks named by keys (names or codes), sorted by code.
// Unknown keys are returned separately so callers can report them.
func (r *Registry) Select(keys []string) (selected []Check, unknown []string) {
	seen := make(map[string]bool)
	for _, key := range keys {
		c, ok := r.Get(key)
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		if seen[c.Name()] {
			continue
		}
		seen[c.Name()] = true
		selected = append(selected, c)
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Code() < selected[j].Code() })
	return selected, unknown
}
