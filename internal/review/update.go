package review

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chris-regnier/namecheck/internal/sarif"
)

// Init implements tea.Model
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			// Log error but don't prevent quit
			if err := m.saveState(); err != nil {
				slog.Warn("failed to save review state", "err", err)
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			if n := len(m.getFilteredFindings()); n > 0 {
				m.currentFinding = (m.currentFinding + 1) % n
			}

		case key.Matches(msg, m.keys.Prev):
			if n := len(m.getFilteredFindings()); n > 0 {
				m.currentFinding = (m.currentFinding - 1 + n) % n
			}

		case key.Matches(msg, m.keys.NextFile):
			m.jumpFile(1)

		case key.Matches(msg, m.keys.PrevFile):
			m.jumpFile(-1)

		case key.Matches(msg, m.keys.Accept):
			if finding, ok := m.current(); ok {
				id := findingID(finding)
				m.accepted[id] = true
				delete(m.rejected, id)
				m.clampAfterDecision()
			}

		case key.Matches(msg, m.keys.Reject):
			if finding, ok := m.current(); ok {
				id := findingID(finding)
				m.rejected[id] = true
				delete(m.accepted, id)
				m.clampAfterDecision()
			}

		case key.Matches(msg, m.keys.Clear):
			if finding, ok := m.current(); ok {
				id := findingID(finding)
				delete(m.accepted, id)
				delete(m.rejected, id)
			}

		case key.Matches(msg, m.keys.Pane):
			m.activePane = (m.activePane + 1) % 3

		case key.Matches(msg, m.keys.Errors):
			m.setFilter(FilterErrors)

		case key.Matches(msg, m.keys.Warnings):
			m.setFilter(FilterWarnings)

		case key.Matches(msg, m.keys.Open):
			m.setFilter(FilterOpen)

		case key.Matches(msg, m.keys.All):
			m.setFilter(FilterAll)

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}

func (m *ReviewModel) setFilter(f Filter) {
	m.filter = f
	m.currentFinding = 0
}

// clampAfterDecision keeps the selection in range when a decision removes the
// finding from the unreviewed filter.
func (m *ReviewModel) clampAfterDecision() {
	if n := len(m.getFilteredFindings()); m.currentFinding >= n {
		m.currentFinding = max(n-1, 0)
	}
}

// findingID identifies a finding across runs of the same source
func findingID(result sarif.Result) string {
	region := result.Region()
	return fmt.Sprintf("%s:%s:%d:%d", result.RuleID, result.URI(), region.StartLine, region.StartColumn)
}

// saveState writes review decisions when a state path is configured
func (m *ReviewModel) saveState() error {
	if m.statePath == "" {
		return nil
	}
	return SaveReviewState(m, m.runID, m.statePath)
}
