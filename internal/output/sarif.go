package output

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/chris-regnier/namecheck/internal/sarif"
)

// SARIFFormatter renders the SARIF 2.1.0 log enriched with GitHub Code
// Scanning properties (partial fingerprints, rule precision and tags, and
// invocation metadata).
type SARIFFormatter struct{}

// Format enriches the SARIF log in-place and serializes it as indented JSON
// with a trailing newline.
func (f *SARIFFormatter) Format(result *AnalysisOutput) ([]byte, error) {
	if result == nil || result.SARIFLog == nil {
		return nil, fmt.Errorf("sarif formatter: SARIF log is required")
	}

	log := result.SARIFLog
	for i := range log.Runs {
		enrichRun(&log.Runs[i])
	}

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sarif formatter: %w", err)
	}
	return append(data, '\n'), nil
}

func enrichRun(run *sarif.Run) {
	if run.Tool.Driver.InformationURI == "" {
		run.Tool.Driver.InformationURI = sarif.InformationURI
	}

	if len(run.Invocations) == 0 {
		wd, _ := os.Getwd()
		run.Invocations = []sarif.Invocation{{
			CommandLine:         strings.Join(os.Args, " "),
			WorkingDirectory:    sarif.ArtifactLocation{URI: wd},
			ExecutionSuccessful: true,
		}}
	}

	for i := range run.Tool.Driver.Rules {
		rule := &run.Tool.Driver.Rules[i]
		if rule.Properties == nil {
			rule.Properties = make(map[string]any)
		}
		rule.Properties["precision"] = "very-high"
		rule.Properties["tags"] = []string{"maintainability", "naming"}
	}

	for j := range run.Results {
		enrichResult(&run.Results[j])
	}
}

// enrichResult fingerprints a result by rule, file, offending name and
// message. Line numbers are left out so the fingerprint is stable when code
// above the finding moves.
func enrichResult(r *sarif.Result) {
	if r.PartialFingerprints == nil {
		r.PartialFingerprints = make(map[string]string)
	}

	name, _ := r.Properties["namecheck/name"].(string)
	input := fmt.Sprintf("%s|%s|%s|%s", r.RuleID, r.URI(), name, r.Message.Text)
	hash := sha256.Sum256([]byte(input))
	r.PartialFingerprints["primaryLocationLineHash"] = fmt.Sprintf("%x", hash[:16])
}
