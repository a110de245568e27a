package review

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var statusBarStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// View implements tea.Model
func (m ReviewModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpView := m.help.View(m.keys)
	bodyHeight := max(m.height-lipgloss.Height(helpView)-1, 6)
	topHeight := bodyHeight / 2
	filesWidth := m.width / 3

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderFilesPane(filesWidth, topHeight),
		m.renderCodePane(m.width-filesWidth, topHeight),
	)
	details := m.renderDetailsPane(m.width, bodyHeight-topHeight)

	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		details,
		statusBarStyle.Width(m.width).Render(m.statusLine()),
		helpView,
	)
}

func (m ReviewModel) statusLine() string {
	filtered := len(m.getFilteredFindings())
	position := 0
	if filtered > 0 {
		position = m.currentFinding + 1
	}
	accepted, rejected := m.Decisions()
	return fmt.Sprintf("%d/%d (%s) in %s  ·  %d accepted, %d rejected",
		position, filtered, m.filter, plural(len(m.files), "file"), accepted, rejected)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
