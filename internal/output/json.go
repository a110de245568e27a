package output

import (
	"encoding/json"
	"fmt"

	"github.com/chris-regnier/namecheck/internal/analyzer"
	"github.com/chris-regnier/namecheck/internal/store"
)

// JSONFormatter renders the run summary and findings as indented JSON.
type JSONFormatter struct{}

type jsonReport struct {
	Summary  *store.Summary     `json:"summary,omitempty"`
	Findings []analyzer.Finding `json:"findings"`
}

func (f *JSONFormatter) Format(result *AnalysisOutput) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("json formatter: result is required")
	}
	report := jsonReport{Summary: result.Summary, Findings: result.Findings}
	if report.Findings == nil {
		report.Findings = []analyzer.Finding{}
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json formatter: %w", err)
	}
	return append(data, '\n'), nil
}
