package resume

import (
	"fmt"
	"net/url"
	"strings"
)

// PlainText renders the résumé in an ATS-friendly plain-text layout.
func PlainText(r *Resume) string {
	var b strings.Builder

	b.WriteString(strings.ToUpper(r.Name) + "\n")
	b.WriteString(r.Title + "\n")
	fmt.Fprintf(&b, "%s | %s | %s\n", r.Contact.Email, r.Contact.Phone, r.Contact.Location)
	fmt.Fprintf(&b, "LinkedIn: %s\n\n", r.Contact.LinkedIn)

	b.WriteString("SUMMARY\n" + r.Summary + "\n\n")

	exps := make([]string, len(r.Experience))
	for i, e := range r.Experience {
		var eb strings.Builder
		eb.WriteString("\n" + strings.ToUpper(e.Role) + "\n")
		fmt.Fprintf(&eb, "%s | %s - %s\n", e.Company, e.StartDate, e.EndDate)
		eb.WriteString(bulletList(e.Bullets, "- "))
		eb.WriteString("\n")
		exps[i] = eb.String()
	}
	b.WriteString("EXPERIENCE\n" + strings.Join(exps, "\n") + "\n\n")

	b.WriteString("EDUCATION\n" + r.Education.Degree + "\n")
	fmt.Fprintf(&b, "%s | %s\n\n", r.Education.Institution, r.Education.Year)

	b.WriteString("SKILLS\n")
	for _, c := range r.SkillCategories {
		fmt.Fprintf(&b, "%s: %s\n", c.Name, strings.Join(c.names(), ", "))
	}
	fmt.Fprintf(&b, "Tools: %s\n\n", strings.Join(r.Tools, ", "))

	projects := make([]string, len(r.Projects))
	for i, p := range r.Projects {
		projects[i] = fmt.Sprintf("\n%s\n%s\nMetrics: %s\n", p.Title, p.Description, strings.Join(p.Metrics, "; "))
	}
	b.WriteString("PROJECTS\n" + strings.Join(projects, "\n"))

	return strings.TrimSpace(b.String())
}

// Markdown renders the résumé as a markdown document.
func Markdown(r *Resume) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.Name)
	fmt.Fprintf(&b, "**%s**\n\n", r.Title)
	if r.Tagline != "" {
		fmt.Fprintf(&b, "_%s_\n\n", r.Tagline)
	}
	fmt.Fprintf(&b, "%s · %s · %s · [LinkedIn](https://%s)\n\n",
		r.Contact.Email, r.Contact.Phone, r.Contact.Location, strings.TrimPrefix(r.Contact.LinkedIn, "https://"))

	b.WriteString("## Summary\n\n" + r.Summary + "\n\n")

	if len(r.ImpactMetrics) > 0 {
		b.WriteString("## Impact\n\n| Metric | Value | Where |\n|---|---|---|\n")
		for _, m := range r.ImpactMetrics {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", m.Label, m.Value, m.Company)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Experience\n\n")
	for _, e := range r.Experience {
		fmt.Fprintf(&b, "### %s, %s\n\n", e.Role, e.Company)
		fmt.Fprintf(&b, "_%s – %s · %s_\n\n", e.StartDate, e.EndDate, e.Location)
		b.WriteString(bulletList(e.Bullets, "- "))
		b.WriteString("\n\n")
	}

	if len(r.LeadershipHighlights) > 0 {
		b.WriteString("## Leadership\n\n" + bulletList(r.LeadershipHighlights, "- ") + "\n\n")
	}

	if len(r.Projects) > 0 {
		b.WriteString("## Projects\n\n")
		for _, p := range r.Projects {
			fmt.Fprintf(&b, "### %s\n\n", p.Title)
			if p.Subtitle != "" {
				fmt.Fprintf(&b, "_%s_\n\n", p.Subtitle)
			}
			b.WriteString(p.Description + "\n\n")
			b.WriteString(bulletList(p.Metrics, "- ") + "\n\n")
		}
	}

	b.WriteString("## Skills\n\n")
	for _, c := range r.SkillCategories {
		fmt.Fprintf(&b, "- **%s:** %s\n", c.Name, strings.Join(c.names(), ", "))
	}
	fmt.Fprintf(&b, "- **Tools:** %s\n\n", strings.Join(r.Tools, ", "))

	b.WriteString("## Education\n\n")
	fmt.Fprintf(&b, "%s, %s (%s)\n", r.Education.Degree, r.Education.Institution, r.Education.Year)

	if len(r.Languages) > 0 {
		fmt.Fprintf(&b, "\n## Languages\n\n%s\n", strings.Join(r.Languages, ", "))
	}

	return b.String()
}

func (c SkillCategory) names() []string {
	out := make([]string, len(c.Items))
	for i, it := range c.Items {
		out[i] = it.Name
	}
	return out
}

func bulletList(items []string, prefix string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = prefix + it
	}
	return strings.Join(lines, "\n")
}

// ShareLinks are the outbound URLs offered on the share screen.
type ShareLinks struct {
	Profile  string
	LinkedIn string
	QRCode   string
}

// Share builds the share links for a public profile URL.
func Share(profileURL string) ShareLinks {
	esc := url.QueryEscape(profileURL)
	return ShareLinks{
		Profile:  profileURL,
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + esc,
		QRCode:   "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=" + esc + "&color=000000&bgcolor=ffffff",
	}
}
