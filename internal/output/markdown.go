package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chris-regnier/namecheck/internal/analyzer"
	"github.com/chris-regnier/namecheck/internal/sarif"
)

// MarkdownFormatter renders analysis output as GitHub-Flavored Markdown
// suitable for PR comments. Findings are grouped per file in collapsible
// <details> sections.
type MarkdownFormatter struct{}

// severityPriority returns a sort priority for SARIF severity levels.
// Lower values sort first: error (0) > warning (1) > note (2).
func severityPriority(level string) int {
	switch level {
	case "error":
		return 0
	case "warning":
		return 1
	case "note":
		return 2
	default:
		return 3
	}
}

// severityEmoji returns the GitHub emoji shortcode for a SARIF severity level.
func severityEmoji(level string) string {
	switch level {
	case "error":
		return ":red_circle:"
	case "warning":
		return ":warning:"
	case "note":
		return ":information_source:"
	default:
		return ":grey_question:"
	}
}

// groupByFile returns findings per path, paths sorted.
func groupByFile(findings []analyzer.Finding) ([]string, map[string][]analyzer.Finding) {
	groups := make(map[string][]analyzer.Finding)
	for _, f := range findings {
		groups[f.Path] = append(groups[f.Path], f)
	}
	paths := make([]string, 0, len(groups))
	for p := range groups {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, groups
}

// ruleDescriptions indexes the short descriptions of the log's rules by ID.
func ruleDescriptions(log *sarif.Log) map[string]string {
	descs := make(map[string]string)
	if log == nil {
		return descs
	}
	for _, run := range log.Runs {
		for _, r := range run.Tool.Driver.Rules {
			descs[r.ID] = r.ShortDescription.Text
		}
	}
	return descs
}

// Format produces GFM Markdown output from the analysis results.
func (f *MarkdownFormatter) Format(result *AnalysisOutput) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("markdown formatter: result is required")
	}

	var b strings.Builder
	paths, groups := groupByFile(result.Findings)

	b.WriteString("## namecheck summary\n\n")
	fmt.Fprintf(&b, "**Findings:** %d | **Files with findings:** %d", len(result.Findings), len(paths))
	if result.Summary != nil {
		fmt.Fprintf(&b, " | **Files checked:** %d | **Min name length:** %d", result.Summary.Files, result.Summary.MinNameLength)
	}
	b.WriteString("\n")

	if len(result.Findings) == 0 {
		b.WriteString("\nNo findings detected.\n")
	} else {
		ruleCounts := make(map[string]int)
		ruleLevel := make(map[string]string)
		for _, fd := range result.Findings {
			ruleCounts[fd.Code]++
			if cur, ok := ruleLevel[fd.Code]; !ok || severityPriority(fd.Level) < severityPriority(cur) {
				ruleLevel[fd.Code] = fd.Level
			}
		}
		codes := make([]string, 0, len(ruleCounts))
		for code := range ruleCounts {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		descs := ruleDescriptions(result.SARIFLog)
		b.WriteString("\n### Findings by Rule\n")
		b.WriteString("| Rule | Description | Severity | Count |\n")
		b.WriteString("|------|-------------|----------|-------|\n")
		for _, code := range codes {
			fmt.Fprintf(&b, "| %s | %s | %s %s | %d |\n",
				code, descs[code], severityEmoji(ruleLevel[code]), ruleLevel[code], ruleCounts[code])
		}

		b.WriteString("\n### Findings\n\n")
		for _, path := range paths {
			group := groups[path]
			fmt.Fprintf(&b, "<details>\n<summary><code>%s</code> (%d)</summary>\n\n", path, len(group))
			for _, fd := range group {
				fmt.Fprintf(&b, "- %s `%s:%d:%d` **%s** %s\n",
					severityEmoji(fd.Level), path, fd.StartLine, fd.StartColumn, fd.Code, escapeMarkdown(fd.Message))
			}
			b.WriteString("\n</details>\n\n")
		}
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "*Generated by [namecheck](%s)*\n", sarif.InformationURI)

	return []byte(b.String()), nil
}

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "<", "&lt;", ">", "&gt;")

// escapeMarkdown keeps underscores in names such as iso_123 from turning
// into emphasis.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
