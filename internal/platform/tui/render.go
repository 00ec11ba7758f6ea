package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/console-flappy/internal/core"
)

// colorStyle returns a lipgloss style for a core.Color, using the same
// palette entries the console draws with.
func colorStyle(c core.Color) lipgloss.Style {
	if c == core.ColorDefault {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(c.ANSI())))
}

// Shared styles
var (
	titleStyle = colorStyle(core.ColorBrightYellow).Bold(true)
	labelStyle = colorStyle(core.ColorBrightWhite)
	hintStyle  = colorStyle(core.ColorGray)
	errorStyle = colorStyle(core.ColorBrightRed)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 2)

	activeButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Bold(true).
				Padding(0, 2)
)

// centerText pads text on the left so it is centered in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
