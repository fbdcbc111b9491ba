package umpire

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rajvimal/scorecard/internal/review"
	"github.com/rajvimal/scorecard/internal/ui/components"
	"github.com/rajvimal/scorecard/internal/ui/theme"
)

var scanFrames = []string{"◐", "◓", "◑", "◒"}

// scanLine is the sweeping bar under the active stage.
func scanLine(frame, width int) string {
	if width < 3 {
		return ""
	}
	pos := frame % (width - 2)
	return strings.Repeat("─", pos) + lipgloss.NewStyle().Foreground(theme.Live).Render("█") +
		strings.Repeat("─", width-pos-3)
}

func renderProgress(script review.Script, sess review.Session, frame, width, height int) string {
	cw := components.ContentWidth(width)

	reached := true
	var rows []string
	for _, step := range script.Steps {
		var row string
		switch {
		case step.Stage == sess.Stage:
			reached = false
			row = theme.Selected.Render(scanFrames[frame%len(scanFrames)] + "  " + step.Title)
		case reached:
			row = theme.Good.Render("✓  " + step.Title)
		default:
			row = theme.Hint.Render("·  " + step.Title)
		}
		rows = append(rows, row)
	}

	header := lipgloss.NewStyle().Foreground(theme.Live).Bold(true).Render("● DRS") + "  " +
		theme.Body.Render(script.Title(sess.Stage))

	content := header + "\n\n" +
		strings.Join(rows, "\n") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Border).Render(scanLine(frame, cw-6))

	return components.StadiumFrame(components.Card(content, cw), width, height)
}

func renderResult(sess review.Session, width, height int) string {
	cw := components.ContentWidth(width)
	fb := sess.Result
	if fb == nil {
		return renderError(sess, width, height)
	}

	verdict := lipgloss.NewStyle().
		Foreground(theme.BgDark).
		Background(theme.Success).
		Bold(true).
		Padding(0, 2).
		Render("DECISION: HIRED")
	if sess.Cached {
		verdict += "  " + theme.Hint.Render("(earlier decision)")
	}

	sections := []string{
		verdict,
		components.ScoreBar(fb.Score, cw-6).View(),
		section("STRENGTHS", fb.Strengths, theme.Success),
		section("GROWTH PLAN", fb.GrowthAreas, theme.Accent),
		section("HIRING SIGNALS", fb.Signals, theme.Secondary),
	}
	return components.StadiumFrame(components.Card(strings.Join(sections, "\n\n"), cw), width, height)
}

func section(title string, items []string, fg color.Color) string {
	head := lipgloss.NewStyle().Foreground(fg).Bold(true).Render(title)
	if len(items) == 0 {
		return head + "\n" + theme.Hint.Render("  none")
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = fmt.Sprintf("  %d. %s", i+1, it)
	}
	return head + "\n" + theme.Body.Render(strings.Join(lines, "\n"))
}

func renderError(sess review.Session, width, height int) string {
	cw := components.ContentWidth(width)
	content := theme.Bad.Render("✗ REVIEW INCOMPLETE") + "\n\n" +
		theme.Body.Render(sess.ErrorMessage) + "\n\n" +
		theme.Hint.Render("press r to ask the third umpire again")
	return components.StadiumFrame(components.Card(content, cw), width, height)
}
