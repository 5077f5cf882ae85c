package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	contentWidth := max(10, m.width)

	header := titleStyle.Render(" boundarymap ─ choose a region to compare ")
	header = lipgloss.NewStyle().Width(contentWidth).Render(header)

	body := boxStyle.Render(m.l.View())

	keys := []string{"↑↓ move", "/ filter", "Enter choose", "q quit"}
	footer := lipgloss.JoinVertical(lipgloss.Left,
		dimStyle.Render(" "+m.status+" "),
		dimStyle.Render("  "+strings.Join(keys, "  ")),
	)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}
