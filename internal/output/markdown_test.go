package output

import (
	"strings"
	"testing"
)

func TestMarkdownFormatter(t *testing.T) {
	data, err := (&MarkdownFormatter{}).Format(testOutput())
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	for _, want := range []string{
		"## namecheck summary",
		"**Findings:** 2 | **Files with findings:** 1",
		"**Files checked:** 1",
		"| WPS111 | Forbid short variable or module names | :red_circle: error | 1 |",
		"<summary><code>app/main.py</code> (2)</summary>",
		"`app/main.py:2:1` **WPS114** Found underscored number name pattern: 'iso\\_123'",
		"*Generated by [namecheck](",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "| WPS111") > strings.Index(out, "| WPS114") {
		t.Error("rules should be listed in code order")
	}
}

func TestMarkdownFormatter_NoFindings(t *testing.T) {
	data, err := (&MarkdownFormatter{}).Format(&AnalysisOutput{})
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "No findings detected.") {
		t.Errorf("expected no-findings message:\n%s", out)
	}
	if strings.Contains(out, "<details>") {
		t.Error("expected no details sections")
	}
}

func TestSeverityPriority(t *testing.T) {
	if !(severityPriority("error") < severityPriority("warning") &&
		severityPriority("warning") < severityPriority("note") &&
		severityPriority("note") < severityPriority("none")) {
		t.Error("unexpected severity ordering")
	}
}
