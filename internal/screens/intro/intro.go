package intro

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/rajvimal/scorecard/internal/resume"
	"github.com/rajvimal/scorecard/internal/router"
	"github.com/rajvimal/scorecard/internal/screen"
	"github.com/rajvimal/scorecard/internal/store"
	"github.com/rajvimal/scorecard/internal/ui/theme"
)

// stepAt lists when each title card after the first appears, measured
// from the start of the intro.
var stepAt = []time.Duration{
	1500 * time.Millisecond, // name
	2700 * time.Millisecond, // stat 1
	3500 * time.Millisecond, // stat 2
	4300 * time.Millisecond, // stat 3
	5300 * time.Millisecond, // logo
}

// Duration is how long the intro runs before handing over.
const Duration = 7800 * time.Millisecond

// Fanfare plays the crowd swell.
type Fanfare interface {
	PlayFanfare()
}

type stepMsg int

type doneMsg struct{}

// IntroScreen is the first-launch title sequence.
type IntroScreen struct {
	resume      *resume.Resume
	fanfare     Fanfare
	flags       store.FlagRepo
	homeFactory func() screen.Screen

	step         int
	transitioned bool
}

var _ screen.Screen = (*IntroScreen)(nil)

// New creates the intro. fanfare and flags may be nil.
func New(r *resume.Resume, fanfare Fanfare, flags store.FlagRepo, homeFactory func() screen.Screen) *IntroScreen {
	return &IntroScreen{
		resume:      r,
		fanfare:     fanfare,
		flags:       flags,
		homeFactory: homeFactory,
	}
}

func (s *IntroScreen) Title() string {
	return ""
}

func (s *IntroScreen) Init() tea.Cmd {
	return tea.Batch(s.playFanfare, after(stepAt[0], stepMsg(1)))
}

func (s *IntroScreen) playFanfare() tea.Msg {
	if s.fanfare != nil {
		s.fanfare.PlayFanfare()
	}
	return nil
}

func after(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func (s *IntroScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		n := int(msg)
		if s.transitioned || n <= s.step {
			return s, nil
		}
		s.step = n
		if n < len(stepAt) {
			return s, after(stepAt[n]-stepAt[n-1], stepMsg(n+1))
		}
		return s, after(Duration-stepAt[len(stepAt)-1], doneMsg{})

	case doneMsg:
		return s, s.transition()

	case tea.KeyPressMsg:
		return s, s.transition()
	}
	return s, nil
}

// Step reports the current title card, 0 through len(stepAt).
func (s *IntroScreen) Step() int {
	return s.step
}

func (s *IntroScreen) transition() tea.Cmd {
	if s.transitioned {
		return nil
	}
	s.transitioned = true
	if s.flags != nil {
		if err := s.flags.Set(context.Background(), store.FlagIntroSeen); err != nil {
			log.Warn().Err(err).Msg("could not record intro as seen")
		}
	}
	home := s.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func (s *IntroScreen) View(width, height int) string {
	var content string
	switch {
	case s.step == 0:
		content = dim("A CAREER MODE PRODUCTION") + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("BROADCAST STYLE")
	case s.step == 1:
		first, rest, _ := strings.Cut(strings.ToUpper(s.resume.Name), " ")
		content = dim("I N T R O D U C I N G") + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(first) + "\n" +
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(rest)
	case s.step <= 4:
		content = s.statCard(s.step - 2)
	default:
		content = RenderBanner(width) + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("PRESS START")
	}

	if s.step < len(stepAt) {
		content += "\n\n\n" + theme.Hint.Render("press any key to skip")
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *IntroScreen) statCard(i int) string {
	if i >= len(s.resume.ImpactMetrics) {
		return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(strings.ToUpper(s.resume.Title))
	}
	m := s.resume.ImpactMetrics[i]
	return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(m.Value) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render(strings.ToUpper(m.Label))
}

func dim(s string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(s)
}
