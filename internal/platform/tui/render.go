package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pose-catcher/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorFruitLow:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorFruitHigh: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorHazard:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	core.ColorFuse:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorBasket:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorLane:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorHUD:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorPose:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorAlert:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	core.ColorDim:       lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
