package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// File pane styles
	filePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	fileItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedFileStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Bold(true)

	fileCountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	paneHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	activeBorderColor = lipgloss.Color("170")
)

// renderFilesPane renders the file list with the number of visible findings
// and how many of them were reviewed
func (m ReviewModel) renderFilesPane(width, height int) string {
	var b strings.Builder

	b.WriteString(paneHeaderStyle.Render("Files"))
	b.WriteString("\n\n")

	files := m.getFilteredFiles()
	current := m.currentFile()
	for _, file := range m.getFileList() {
		findings := files[file]
		reviewed := 0
		for _, f := range findings {
			id := findingID(f)
			if m.accepted[id] || m.rejected[id] {
				reviewed++
			}
		}

		count := fileCountStyle.Render(fmt.Sprintf("(%d/%d)", reviewed, len(findings)))
		if file == current {
			b.WriteString(selectedFileStyle.Render("▸ " + file))
		} else {
			b.WriteString(fileItemStyle.Render(file))
		}
		b.WriteString(" " + count + "\n")
	}

	paneStyle := filePaneStyle
	if m.activePane == PaneFiles {
		paneStyle = paneStyle.BorderForeground(activeBorderColor)
	}

	return paneStyle.
		Width(max(width-2, 1)).
		Height(max(height-2, 1)).
		Render(b.String())
}
