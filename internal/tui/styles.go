package tui

import (
	"github.com/charmbracelet/lipgloss"

	"boundarymap/internal/atlas"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)

	roleStyles = map[atlas.Role]lipgloss.Style{
		atlas.RiverBank:          lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
		atlas.ReferenceBoundary:  dimStyle,
		atlas.ComparisonBoundary: lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		atlas.ReferenceOutline:   appStyle,
	}
)
