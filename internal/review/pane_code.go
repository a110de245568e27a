package review

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Code pane styles
	codePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(4).
			Align(lipgloss.Right)

	highlightedLineStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236"))

	locationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const (
	contextLines = 5 // Lines to show before and after the finding
)

// renderCodePane renders the code view with syntax highlighting
func (m ReviewModel) renderCodePane(width, height int) string {
	var b strings.Builder

	b.WriteString(paneHeaderStyle.Render("Code"))
	b.WriteString("\n\n")

	finding, ok := m.current()
	switch {
	case !ok:
		b.WriteString("No findings to display")
	case len(finding.Locations) == 0:
		b.WriteString("No location information")
	default:
		region := finding.Region()
		b.WriteString(locationStyle.Render(fmt.Sprintf("%s:%d:%d", finding.URI(), region.StartLine, region.StartColumn)))
		b.WriteString("\n\n")
		b.WriteString(readCodeWithContext(finding.URI(), region.StartLine))
	}

	paneStyle := codePaneStyle
	if m.activePane == PaneCode {
		paneStyle = paneStyle.BorderForeground(activeBorderColor)
	}

	return paneStyle.
		Width(max(width-2, 1)).
		Height(max(height-2, 1)).
		Render(b.String())
}

// readCodeWithContext reads a file and returns lines around the target line with syntax highlighting
func readCodeWithContext(filePath string, targetLine int) string {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Sprintf("Error reading file: %v", err)
	}
	defer file.Close()

	lexer := lexers.Match(filePath)
	if lexer == nil {
		lexer = lexers.Get("python")
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Sprintf("Error scanning file: %v", err)
	}

	startLine := max(targetLine-contextLines, 1)
	endLine := min(targetLine+contextLines, len(lines))

	var b strings.Builder
	for i := startLine; i <= endLine; i++ {
		lineNum := lineNumberStyle.Render(fmt.Sprintf("%d", i))
		lineContent, err := highlightLine(lines[i-1], lexer)
		if err != nil {
			lineContent = lines[i-1]
		}

		if i == targetLine {
			lineContent = highlightedLineStyle.Render(lineContent)
			lineNum = highlightedLineStyle.Render(lineNum)
		}

		fmt.Fprintf(&b, "%s │ %s\n", lineNum, lineContent)
	}

	return b.String()
}

// highlightLine applies syntax highlighting to a single line of code
func highlightLine(line string, lexer chroma.Lexer) (string, error) {
	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return "", err
	}

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	var b strings.Builder
	if err := formatters.TTY16m.Format(&b, style, iterator); err != nil {
		return "", err
	}

	return strings.TrimSuffix(b.String(), "\n"), nil
}
