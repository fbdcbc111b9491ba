package share

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rajvimal/scorecard/internal/resume"
	"github.com/rajvimal/scorecard/internal/screen"
	"github.com/rajvimal/scorecard/internal/ui/components"
	"github.com/rajvimal/scorecard/internal/ui/theme"
)

// ShareScreen lists the share links for the profile.
type ShareScreen struct {
	name  string
	links resume.ShareLinks
}

var _ screen.Screen = (*ShareScreen)(nil)

// New creates the share screen for profileURL.
func New(r *resume.Resume, profileURL string) *ShareScreen {
	return &ShareScreen{name: r.Name, links: resume.Share(profileURL)}
}

func (s *ShareScreen) Init() tea.Cmd { return nil }

func (s *ShareScreen) Title() string { return "Share Profile" }

func (s *ShareScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *ShareScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	link := lipgloss.NewStyle().Foreground(theme.Secondary).Underline(true)

	rows := []string{
		theme.Title.Render("SHARE " + strings.ToUpper(s.name) + "'S SCORECARD"),
		"",
		theme.Heading.Render("PROFILE"),
		link.Render(s.links.Profile),
		"",
		theme.Heading.Render("LINKEDIN"),
		link.Render(s.links.LinkedIn),
		"",
		theme.Heading.Render("QR CODE"),
		link.Render(s.links.QRCode),
	}
	card := lipgloss.NewStyle().Width(cw - 6).Render(strings.Join(rows, "\n"))
	return components.StadiumFrame(components.Card(card, cw), width, height)
}
