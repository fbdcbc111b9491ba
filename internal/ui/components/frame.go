package components

import (
	"charm.land/lipgloss/v2"

	"github.com/rajvimal/scorecard/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked sections
// so that cards line up.
func ContentWidth(frameWidth int) int {
	// Leave room for the stadium border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 72)
}

// StadiumFrame wraps content in a thick-border frame, centered in the
// given dimensions.
func StadiumFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(theme.Secondary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 2).
		Render(content)
}

// TitledCard is a Card with a heading line.
func TitledCard(title, content string, cw int) string {
	return Card(theme.Heading.Render(title)+"\n\n"+content, cw)
}

// Button renders a fixed-width menu button.
func Button(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(label)
}
