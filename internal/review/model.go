// Package review implements an interactive terminal browser for the findings
// of a stored run, where each finding can be accepted or rejected.
package review

import (
	"github.com/charmbracelet/bubbles/help"

	"github.com/chris-regnier/namecheck/internal/sarif"
)

// Pane represents which pane is currently active
type Pane int

const (
	PaneFiles Pane = iota
	PaneCode
	PaneDetails
)

// Filter represents the severity filter
type Filter int

const (
	FilterAll Filter = iota
	FilterErrors
	FilterWarnings
	FilterOpen
)

func (f Filter) String() string {
	switch f {
	case FilterErrors:
		return "errors"
	case FilterWarnings:
		return "warnings+"
	case FilterOpen:
		return "unreviewed"
	default:
		return "all"
	}
}

// ReviewModel is the bubbletea model for the review TUI
type ReviewModel struct {
	sarif    *sarif.Log
	rules    map[string]sarif.ReportingDescriptor
	findings []sarif.Result
	files    map[string][]sarif.Result

	// currentFinding indexes the filtered findings
	currentFinding int
	activePane     Pane
	filter         Filter

	accepted map[string]bool
	rejected map[string]bool

	runID     string
	statePath string

	keys     keyMap
	help     help.Model
	quitting bool

	width  int
	height int
}

// Option configures a ReviewModel
type Option func(*ReviewModel)

// WithState persists review decisions for runID at path. Decisions already
// saved there are restored.
func WithState(runID, path string) Option {
	return func(m *ReviewModel) {
		m.runID = runID
		m.statePath = path
	}
}

// NewReviewModel creates a new ReviewModel from a SARIF log
func NewReviewModel(log *sarif.Log, opts ...Option) *ReviewModel {
	m := &ReviewModel{
		sarif:      log,
		rules:      make(map[string]sarif.ReportingDescriptor),
		findings:   []sarif.Result{},
		files:      make(map[string][]sarif.Result),
		activePane: PaneFiles,
		filter:     FilterAll,
		accepted:   make(map[string]bool),
		rejected:   make(map[string]bool),
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, run := range log.Runs {
		for _, rule := range run.Tool.Driver.Rules {
			m.rules[rule.ID] = rule
		}
		for _, result := range run.Results {
			m.findings = append(m.findings, result)
			if uri := result.URI(); uri != "" {
				m.files[uri] = append(m.files[uri], result)
			}
		}
	}

	if m.statePath != "" {
		if state, err := LoadReviewState(m.statePath); err == nil {
			m.applyState(state)
		}
	}
	return m
}

// Decisions returns the number of accepted and rejected findings.
func (m *ReviewModel) Decisions() (accepted, rejected int) {
	return len(m.accepted), len(m.rejected)
}
