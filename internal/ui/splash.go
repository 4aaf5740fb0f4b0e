package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dungeonedit/internal/lifecycle"
)

// renderSplash renders the startup screen. While the busy indicator is open
// a spinner is shown under the logo; in debug mode the log tail follows.
func (m Model) renderSplash() string {
	styles := m.theme.Styles()

	var b strings.Builder
	if m.width >= LayoutLogoWidth {
		b.WriteString(styles.Logo.Render(m.logo))
	} else {
		b.WriteString(styles.Logo.Render("DungeonEdit"))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render(m.appTitle))
	b.WriteString("\n\n")

	if m.has(lifecycle.RoleBusy) {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(styles.Text.Render("Loading game content..."))
	} else {
		b.WriteString(styles.FaintText.Render("Starting..."))
	}

	body := lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String())

	if len(m.logLines) > 0 {
		var logs strings.Builder
		for _, line := range m.logLines {
			logs.WriteString(styles.FaintText.Render(truncateMiddle(line, maxInt(20, m.width-4))))
			logs.WriteString("\n")
		}
		console := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color(m.theme.BorderMuted)).
			Width(maxInt(20, m.width-2)).
			Render(strings.TrimRight(logs.String(), "\n"))
		body = lipgloss.JoinVertical(lipgloss.Center, body, "", console)
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
