package output

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/chris-regnier/namecheck/internal/analyzer"
)

var (
	fileHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color("170"))

	positionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))

	gutterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(5).
			Align(lipgloss.Right)

	caretStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	summaryStyle = lipgloss.NewStyle().
			Bold(true)

	levelStyles = map[string]lipgloss.Style{
		"error":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"warning": lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		"note":    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	}
)

// PrettyFormatter renders findings grouped by file with the offending source
// line and a caret under the name. Color enables syntax highlighting; it is
// also turned off by NO_COLOR.
type PrettyFormatter struct {
	Color bool
}

func (f *PrettyFormatter) colorEnabled() bool {
	return f.Color && os.Getenv("NO_COLOR") == ""
}

// Format produces pretty terminal output.
func (f *PrettyFormatter) Format(result *AnalysisOutput) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("pretty formatter: result is required")
	}

	var b strings.Builder
	if len(result.Findings) == 0 {
		b.WriteString(summaryStyle.Render("No findings."))
		b.WriteString("\n")
		return []byte(b.String()), nil
	}

	paths, groups := groupByFile(result.Findings)
	levelCounts := make(map[string]int)

	for _, path := range paths {
		b.WriteString(fileHeaderStyle.Render(path))
		b.WriteString("\n")

		var lines []string
		if src, ok := result.Sources[path]; ok {
			lines = strings.Split(src, "\n")
		}

		for _, fd := range groups[path] {
			levelCounts[fd.Level]++
			f.writeFinding(&b, fd, lines)
		}
		b.WriteString("\n")
	}

	b.WriteString(summaryStyle.Render(summaryLine(len(result.Findings), len(paths), levelCounts)))
	b.WriteString("\n")
	return []byte(b.String()), nil
}

func (f *PrettyFormatter) writeFinding(b *strings.Builder, fd analyzer.Finding, lines []string) {
	level := fd.Level
	style, ok := levelStyles[level]
	if !ok {
		style = lipgloss.NewStyle()
	}

	fmt.Fprintf(b, "  %s  %s  %s  %s\n",
		positionStyle.Render(fmt.Sprintf("%d:%d", fd.StartLine, fd.StartColumn)),
		style.Render(level),
		ruleStyle.Render(fd.Code),
		fd.Message)

	if fd.StartLine < 1 || fd.StartLine > len(lines) {
		return
	}
	line := strings.TrimSuffix(lines[fd.StartLine-1], "\r")

	content := line
	if f.colorEnabled() {
		if highlighted, err := highlightLine(line); err == nil {
			content = highlighted
		}
	}
	fmt.Fprintf(b, "  %s │ %s\n", gutterStyle.Render(fmt.Sprintf("%d", fd.StartLine)), content)

	width := 1
	if fd.EndLine == fd.StartLine && fd.EndColumn > fd.StartColumn {
		width = fd.EndColumn - fd.StartColumn
	}
	fmt.Fprintf(b, "  %s │ %s%s\n",
		gutterStyle.Render(""),
		caretPadding(line, fd.StartColumn),
		caretStyle.Render(strings.Repeat("^", width)))
}

// caretPadding returns the whitespace that aligns a caret under the given
// 1-based rune column, copying tabs so the alignment survives tab stops.
func caretPadding(line string, column int) string {
	var pad strings.Builder
	col := 1
	for _, r := range line {
		if col >= column {
			break
		}
		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteRune(' ')
		}
		col++
	}
	for ; col < column; col++ {
		pad.WriteRune(' ')
	}
	return pad.String()
}

func summaryLine(findings, files int, levels map[string]int) string {
	parts := []string{}
	for _, level := range []string{"error", "warning", "note"} {
		if n := levels[level]; n > 0 {
			parts = append(parts, plural(n, level))
		}
	}
	return fmt.Sprintf("%s in %s (%s)", plural(findings, "finding"), plural(files, "file"), strings.Join(parts, ", "))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// highlightLine applies Python syntax highlighting to a single line of code
func highlightLine(line string) (string, error) {
	if !utf8.ValidString(line) {
		return line, nil
	}
	lexer := lexers.Get("python")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return "", err
	}

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	var b strings.Builder
	if err := formatters.TTY256.Format(&b, style, iterator); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}
