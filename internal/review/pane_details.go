package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Details pane styles
	detailsPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(0, 1)

	severityErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)

	severityWarningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")).
				Bold(true)

	severityNoteStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("75"))

	reviewStatusAcceptedStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("46")).
					Bold(true)

	reviewStatusRejectedStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("196")).
					Bold(true)
)

// renderDetailsPane renders the selected finding and its rule documentation
func (m ReviewModel) renderDetailsPane(width, height int) string {
	var b strings.Builder

	b.WriteString(paneHeaderStyle.Render("Details"))
	b.WriteString("\n\n")

	finding, ok := m.current()
	if !ok {
		b.WriteString("No findings to display")
	} else {
		severityStyle := lipgloss.NewStyle()
		switch finding.Level {
		case "error":
			severityStyle = severityErrorStyle
		case "warning":
			severityStyle = severityWarningStyle
		case "note":
			severityStyle = severityNoteStyle
		}

		rule := m.rules[finding.RuleID]
		title := finding.RuleID
		if rule.Name != "" {
			title += " " + rule.Name
		}
		b.WriteString(title + "  " + severityStyle.Render(strings.ToUpper(finding.Level)))

		id := findingID(finding)
		if m.accepted[id] {
			b.WriteString("  " + reviewStatusAcceptedStyle.Render("✓ Accepted"))
		} else if m.rejected[id] {
			b.WriteString("  " + reviewStatusRejectedStyle.Render("✗ Rejected"))
		}
		b.WriteString("\n\n")

		var md strings.Builder
		md.WriteString(finding.Message.Text)
		md.WriteString("\n\n")
		if name, ok := finding.Properties["namecheck/name"].(string); ok && name != "" {
			fmt.Fprintf(&md, "**Name:** `%s`\n\n", name)
		}
		if kind, ok := finding.Properties["namecheck/binding"].(string); ok && kind != "" {
			fmt.Fprintf(&md, "**Bound by:** %s\n\n", kind)
		}
		if rule.Help != nil && rule.Help.Markdown != "" {
			md.WriteString(rule.Help.Markdown)
		} else if rule.ShortDescription.Text != "" {
			md.WriteString(rule.ShortDescription.Text)
		}

		content := md.String()
		rendered, err := renderMarkdown(content, max(width-6, 20))
		if err != nil {
			rendered = content
		}
		b.WriteString(rendered)
	}

	paneStyle := detailsPaneStyle
	if m.activePane == PaneDetails {
		paneStyle = paneStyle.BorderForeground(activeBorderColor)
	}

	return paneStyle.
		Width(max(width-2, 1)).
		Height(max(height-2, 1)).
		MaxHeight(max(height, 3)).
		Render(b.String())
}

// renderMarkdown renders markdown text using glamour
func renderMarkdown(text string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	out, err := r.Render(text)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}
