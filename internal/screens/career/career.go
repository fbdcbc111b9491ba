// Package career renders the résumé detail pages: innings (experience),
// big matches (projects) and skill stats.
package career

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rajvimal/scorecard/internal/resume"
	"github.com/rajvimal/scorecard/internal/screens/document"
	"github.com/rajvimal/scorecard/internal/ui/theme"
)

var (
	bulletStyle = lipgloss.NewStyle().Foreground(theme.Text).PaddingLeft(2)
	metaStyle   = lipgloss.NewStyle().Foreground(theme.TextDim)
	valueStyle  = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
)

// NewInnings lists every role, latest first as stored.
func NewInnings(r *resume.Resume) *document.DocumentScreen {
	return document.New("Career Innings", func(width int) string {
		return Innings(r, width)
	})
}

// NewMatches lists the projects.
func NewMatches(r *resume.Resume) *document.DocumentScreen {
	return document.New("Big Matches", func(width int) string {
		return Matches(r, width)
	})
}

// NewStats shows metrics, skills and the rest of the profile.
func NewStats(r *resume.Resume) *document.DocumentScreen {
	return document.New("Skill Stats", func(width int) string {
		return Stats(r, width)
	})
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(max(width, 20)).Render(s)
}

func bullets(items []string, width int) string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = bulletStyle.Width(max(width, 20)).Render("• " + it)
	}
	return strings.Join(out, "\n")
}

// Innings renders the experience section.
func Innings(r *resume.Resume, width int) string {
	var b strings.Builder
	for i, e := range r.Experience {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s\n%s\n",
			theme.Selected.Render(strings.ToUpper(e.Role)),
			metaStyle.Render(fmt.Sprintf("%s · %s · %s – %s", e.Company, e.Location, e.StartDate, e.EndDate)))
		if e.KeyOutcome != "" {
			b.WriteString(valueStyle.Render("★ "+e.KeyOutcome) + "\n")
		}
		b.WriteString(bullets(e.Bullets, width))
	}
	if len(r.LeadershipHighlights) > 0 {
		b.WriteString("\n\n" + theme.Heading.Render("CAPTAINCY") + "\n")
		b.WriteString(bullets(r.LeadershipHighlights, width))
	}
	return b.String()
}

// Matches renders the projects section.
func Matches(r *resume.Resume, width int) string {
	var b strings.Builder
	for i, p := range r.Projects {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(theme.Selected.Render(p.Title) + "\n")
		if p.Subtitle != "" {
			b.WriteString(metaStyle.Render(p.Subtitle) + "\n")
		}
		b.WriteString(wrap(p.Description, width) + "\n")
		for _, m := range p.Metrics {
			b.WriteString(valueStyle.Render("  ▲ "+m) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Stats renders metrics, skills, tools, languages, education, badges and
// recent updates.
func Stats(r *resume.Resume, width int) string {
	var sections []string

	if len(r.ImpactMetrics) > 0 {
		rows := make([]string, len(r.ImpactMetrics))
		for i, m := range r.ImpactMetrics {
			rows[i] = fmt.Sprintf("%s  %s  %s",
				valueStyle.Width(10).Render(m.Value),
				theme.Body.Render(m.Label),
				metaStyle.Render(m.Description))
		}
		sections = append(sections, theme.Heading.Render("IMPACT")+"\n"+strings.Join(rows, "\n"))
	}

	for _, c := range r.SkillCategories {
		rows := make([]string, len(c.Items))
		for i, it := range c.Items {
			row := "• " + it.Name
			if it.UseCase != "" {
				row += metaStyle.Render(" · " + it.UseCase)
			}
			rows[i] = bulletStyle.Render(row)
		}
		sections = append(sections, theme.Heading.Render(strings.ToUpper(c.Name))+"\n"+strings.Join(rows, "\n"))
	}

	if len(r.EmergingSkills) > 0 {
		sections = append(sections, theme.Heading.Render("NETS PRACTICE")+"\n"+wrap(strings.Join(r.EmergingSkills, " · "), width))
	}
	if len(r.Tools) > 0 {
		sections = append(sections, theme.Heading.Render("KIT BAG")+"\n"+wrap(strings.Join(r.Tools, " · "), width))
	}
	if len(r.Languages) > 0 {
		sections = append(sections, theme.Heading.Render("LANGUAGES")+"\n"+strings.Join(r.Languages, " · "))
	}
	if r.Education.Degree != "" {
		sections = append(sections, theme.Heading.Render("ACADEMY")+"\n"+
			fmt.Sprintf("%s\n%s", r.Education.Degree, metaStyle.Render(r.Education.Institution+" · "+r.Education.Year)))
	}
	if len(r.Badges) > 0 {
		rows := make([]string, len(r.Badges))
		for i, bd := range r.Badges {
			rows[i] = fmt.Sprintf("%s %s  %s", bd.Icon, valueStyle.Render(bd.Name), metaStyle.Render(bd.Description))
		}
		sections = append(sections, theme.Heading.Render("TROPHY CABINET")+"\n"+strings.Join(rows, "\n"))
	}
	if len(r.LatestUpdates) > 0 {
		rows := make([]string, len(r.LatestUpdates))
		for i, u := range r.LatestUpdates {
			rows[i] = fmt.Sprintf("%s  %s", metaStyle.Render(u.Date), u.Text)
		}
		sections = append(sections, theme.Heading.Render("LATEST")+"\n"+strings.Join(rows, "\n"))
	}
	return strings.Join(sections, "\n\n")
}
