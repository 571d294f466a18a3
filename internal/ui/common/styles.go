// Package common provides shared styles and utilities for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/uno-online/internal/game/card"
)

// Icon constants
const (
	TurnIcon   = "👉"
	WinnerIcon = "🏆"
	CardIcon   = "🂠"
)

// Lipgloss Styles
var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	PromptStyle = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	NoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	ActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(6).
			Align(lipgloss.Center).
			Bold(true)

	colorCodes = map[card.Color]lipgloss.Color{
		card.Red:       lipgloss.Color("#E53935"),
		card.Green:     lipgloss.Color("#43A047"),
		card.Blue:      lipgloss.Color("#1E88E5"),
		card.Yellow:    lipgloss.Color("#FDD835"),
		card.ColorNone: lipgloss.Color("#9E9E9E"),
	}
)

// ColorStyle is the foreground style of a card color.
func ColorStyle(c card.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorCodes[c]).Bold(true)
}

// RenderCard draws a bordered card face in its color. A selected card gets a
// thick border.
func RenderCard(c card.Card, selected bool) string {
	style := cardStyle.BorderForeground(colorCodes[c.Color]).Foreground(colorCodes[c.Color])
	if selected {
		style = style.Border(lipgloss.ThickBorder())
	}
	return style.Render(c.Value.Symbol())
}
