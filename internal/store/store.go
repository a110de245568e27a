// Package store persists the SARIF log and summary of each run.
package store

import (
	"context"
	"time"

	"github.com/chris-regnier/namecheck/internal/sarif"
)

// Summary records the outcome of one run next to its SARIF log.
type Summary struct {
	CreatedAt     time.Time      `json:"created_at"`
	Files         int            `json:"files"`
	Findings      int            `json:"findings"`
	ByRule        map[string]int `json:"by_rule,omitempty"`
	MinNameLength int            `json:"min_name_length"`
	// Decision is the gate verdict, pass or fail.
	Decision string `json:"decision,omitempty"`
}

// NewSummary counts the results of a SARIF log.
func NewSummary(doc *sarif.Log, files, minNameLength int) *Summary {
	s := &Summary{
		CreatedAt:     time.Now().UTC(),
		Files:         files,
		ByRule:        make(map[string]int),
		MinNameLength: minNameLength,
	}
	for _, run := range doc.Runs {
		for _, r := range run.Results {
			s.Findings++
			s.ByRule[r.RuleID]++
		}
	}
	return s
}

type Store interface {
	WriteSARIF(ctx context.Context, doc *sarif.Log) (string, error)
	WriteSummary(ctx context.Context, sarifID string, summary *Summary) error
	ReadSARIF(ctx context.Context, id string) (*sarif.Log, error)
	ReadSummary(ctx context.Context, sarifID string) (*Summary, error)
	List(ctx context.Context) ([]string, error)
}
