package output

import (
	"encoding/json"
	"testing"

	"github.com/chris-regnier/namecheck/internal/sarif"
)

func TestSARIFFormatter(t *testing.T) {
	result := testOutput()
	data, err := (&SARIFFormatter{}).Format(result)
	if err != nil {
		t.Fatal(err)
	}

	var log sarif.Log
	if err := json.Unmarshal(data, &log); err != nil {
		t.Fatalf("invalid SARIF JSON: %v", err)
	}
	if log.Version != sarif.Version || len(log.Runs) != 1 {
		t.Fatalf("unexpected log: %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.InformationURI != sarif.InformationURI {
		t.Errorf("expected information URI, got %q", run.Tool.Driver.InformationURI)
	}
	if len(run.Invocations) != 1 || !run.Invocations[0].ExecutionSuccessful {
		t.Errorf("expected one successful invocation, got %+v", run.Invocations)
	}
	for _, rule := range run.Tool.Driver.Rules {
		if rule.Properties["precision"] != "very-high" {
			t.Errorf("rule %s missing precision", rule.ID)
		}
	}
	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.Results))
	}
	fp := run.Results[0].PartialFingerprints["primaryLocationLineHash"]
	if len(fp) != 32 {
		t.Errorf("expected 32-char fingerprint, got %q", fp)
	}
	if fp == run.Results[1].PartialFingerprints["primaryLocationLineHash"] {
		t.Error("distinct results must have distinct fingerprints")
	}
}

func TestSARIFFormatter_FingerprintIgnoresLine(t *testing.T) {
	a := sarif.Result{
		RuleID:     "WPS111",
		Message:    sarif.Message{Text: "Found too short name: 'x'"},
		Properties: map[string]any{"namecheck/name": "x"},
		Locations: []sarif.Location{{PhysicalLocation: sarif.PhysicalLocation{
			ArtifactLocation: sarif.ArtifactLocation{URI: "a.py"},
			Region:           sarif.Region{StartLine: 1},
		}}},
	}
	b := a
	b.Properties = map[string]any{"namecheck/name": "x"}
	b.Locations = []sarif.Location{{PhysicalLocation: sarif.PhysicalLocation{
		ArtifactLocation: sarif.ArtifactLocation{URI: "a.py"},
		Region:           sarif.Region{StartLine: 40},
	}}}

	enrichResult(&a)
	enrichResult(&b)
	if a.PartialFingerprints["primaryLocationLineHash"] != b.PartialFingerprints["primaryLocationLineHash"] {
		t.Error("fingerprint should not depend on line number")
	}
}

func TestSARIFFormatter_RequiresLog(t *testing.T) {
	if _, err := (&SARIFFormatter{}).Format(&AnalysisOutput{}); err == nil {
		t.Error("expected error without SARIF log")
	}
}
