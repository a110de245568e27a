package output

import (
	"fmt"
	"strings"
)

// TextFormatter renders one line per finding in the conventional
// path:line:col: CODE message form understood by editors and CI annotators.
type TextFormatter struct{}

func (f *TextFormatter) Format(result *AnalysisOutput) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("text formatter: result is required")
	}
	var b strings.Builder
	for _, fd := range result.Findings {
		fmt.Fprintf(&b, "%s:%d:%d: %s %s\n", fd.Path, fd.StartLine, fd.StartColumn, fd.Code, fd.Message)
	}
	return []byte(b.String()), nil
}
