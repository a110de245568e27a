// Package output renders namecheck results as JSON, SARIF, plain text,
// Markdown or styled terminal output.
package output

import (
	"fmt"

	"github.com/chris-regnier/namecheck/internal/analyzer"
	"github.com/chris-regnier/namecheck/internal/sarif"
	"github.com/chris-regnier/namecheck/internal/store"
)

// Formatter renders an AnalysisOutput into a byte slice in a specific format.
type Formatter interface {
	Format(result *AnalysisOutput) ([]byte, error)
}

// AnalysisOutput holds the complete results of a run.
type AnalysisOutput struct {
	Findings []analyzer.Finding
	SARIFLog *sarif.Log
	Summary  *store.Summary
	// Sources maps a file path to its content, for source snippets.
	Sources map[string]string
}

// Formats lists the supported format names.
var Formats = []string{"json", "sarif", "text", "markdown", "pretty"}

// ResolveFormat determines the output format to use. If flagValue is non-empty,
// it is returned directly. Otherwise, "pretty" is returned for TTY output and
// "text" for non-TTY (piped) output.
func ResolveFormat(flagValue string, stdoutIsTTY bool) string {
	if flagValue != "" {
		return flagValue
	}
	if stdoutIsTTY {
		return "pretty"
	}
	return "text"
}

// NewFormatter returns a Formatter for the given format name.
// Returns an error for unknown format names.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "json":
		return &JSONFormatter{}, nil
	case "sarif":
		return &SARIFFormatter{}, nil
	case "text":
		return &TextFormatter{}, nil
	case "markdown":
		return &MarkdownFormatter{}, nil
	case "pretty":
		return &PrettyFormatter{Color: true}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %q (supported: json, sarif, text, markdown, pretty)", format)
	}
}
