package output

import (
	"strings"
	"testing"
)

func TestPrettyFormatter(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	data, err := (&PrettyFormatter{Color: true}).Format(testOutput())
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	for _, want := range []string{
		"app/main.py",
		"Found too short name: 'x'",
		"WPS114",
		"iso_123 = 2",
		"^^^^^^^",
		"2 findings in 1 file (1 error, 1 warning)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "app/main.py") != 1 {
		t.Error("expected findings grouped under a single file header")
	}
}

func TestPrettyFormatter_NoSources(t *testing.T) {
	result := testOutput()
	result.Sources = nil

	data, err := (&PrettyFormatter{}).Format(result)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "^") {
		t.Error("expected no caret lines without sources")
	}
}

func TestPrettyFormatter_NoFindings(t *testing.T) {
	data, err := (&PrettyFormatter{}).Format(&AnalysisOutput{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "No findings.") {
		t.Errorf("unexpected output: %q", data)
	}
}

func TestCaretPadding(t *testing.T) {
	tests := []struct {
		line   string
		column int
		want   string
	}{
		{"x = 1", 1, ""},
		{"    x = 1", 5, "    "},
		{"\tx = 1", 2, "\t"},
		{"héllo = ab", 9, "        "},
		{"", 3, "  "},
	}
	for _, tt := range tests {
		if got := caretPadding(tt.line, tt.column); got != tt.want {
			t.Errorf("caretPadding(%q, %d) = %q, want %q", tt.line, tt.column, got, tt.want)
		}
	}
}

func TestSummaryLine(t *testing.T) {
	got := summaryLine(3, 2, map[string]int{"warning": 2, "note": 1})
	want := "3 findings in 2 files (2 warnings, 1 note)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHighlightLine(t *testing.T) {
	out, err := highlightLine("def fn(a): return a")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "return") {
		t.Errorf("highlighted output lost content: %q", out)
	}
}
