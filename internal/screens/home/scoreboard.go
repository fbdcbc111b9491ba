package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rajvimal/scorecard/internal/resume"
	"github.com/rajvimal/scorecard/internal/ui/components"
	"github.com/rajvimal/scorecard/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// renderProfile renders the player card: name, title and tagline.
func renderProfile(r *resume.Resume, cw int, compact bool) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(strings.ToUpper(r.Name))
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(r.Title)

	rows := []string{name, title}
	if !compact && r.Tagline != "" {
		rows = append(rows, theme.Hint.Render(r.Tagline))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}

// renderStatsBar shows the first three impact metrics in a double-bordered box.
func renderStatsBar(metrics []resume.ImpactMetric, cw int) string {
	valueStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var cells []string
	for i, m := range metrics {
		if i == 3 {
			break
		}
		cells = append(cells, valueStyle.Render(m.Value)+" "+labelStyle.Render(strings.ToUpper(m.Label)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(cells, "   "))
}

// renderTicker renders the commentary strip.
func renderTicker(line string, cw int) string {
	tag := lipgloss.NewStyle().
		Foreground(theme.Text).
		Background(theme.Live).
		Bold(true).
		Padding(0, 1).
		Render("COMMENTARY")
	text := lipgloss.NewStyle().Foreground(theme.Text).Italic(true).Render(line)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(tag + " " + text)
}

// renderCompactMenu renders menu items as text lines for small terminals
// where bordered buttons would overflow.
func renderCompactMenu(m components.Menu, cw int) string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Border).Render("   "+item.Label))
		case i == m.Selected:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ "+item.Label+" "))
		default:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+item.Label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderTutorial is the first-visit overlay explaining the match formats.
func renderTutorial(r *resume.Resume, cw int) string {
	head := lipgloss.NewStyle().
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Bold(true).
		Padding(0, 2).
		Render("WELCOME TO THE ARENA")
	sub := theme.Hint.Render(r.Name + "'s Interactive Career Mode")

	modes := []struct{ name, desc string }{
		{"TEST MODE", "Strategy, Architecture & Long-term Growth."},
		{"ODI MODE", "Campaigns, Agility & Versatile Execution."},
		{"T20 MODE", "High Impact, Speed & Immediate ROI."},
	}
	rows := make([]string, len(modes))
	for i, m := range modes {
		rows[i] = theme.Selected.Render(m.name) + "\n" + theme.Hint.Render(m.desc)
	}

	body := head + "\n" + sub + "\n\n" +
		theme.Body.Render("This isn't a standard résumé. It's a gamified timeline of a career in content and SEO.") + "\n\n" +
		strings.Join(rows, "\n\n") + "\n\n" +
		components.Button("START THE MATCH", true, buttonWidth)
	return components.Card(lipgloss.NewStyle().Align(lipgloss.Center).Width(cw-6).Render(body), cw)
}
