package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/rajvimal/scorecard/internal/audio"
	"github.com/rajvimal/scorecard/internal/contact"
	"github.com/rajvimal/scorecard/internal/resume"
	"github.com/rajvimal/scorecard/internal/router"
	"github.com/rajvimal/scorecard/internal/screen"
	"github.com/rajvimal/scorecard/internal/screens/career"
	"github.com/rajvimal/scorecard/internal/screens/contactform"
	"github.com/rajvimal/scorecard/internal/screens/document"
	"github.com/rajvimal/scorecard/internal/screens/share"
	"github.com/rajvimal/scorecard/internal/screens/umpire"
	"github.com/rajvimal/scorecard/internal/store"
	"github.com/rajvimal/scorecard/internal/ui/components"
	"github.com/rajvimal/scorecard/internal/ui/layout"
)

// TickerInterval is how long each commentary line stays up.
const TickerInterval = 4 * time.Second

// Cues plays transient UI sounds.
type Cues interface {
	PlayTransientCue(c audio.Cue)
}

// Deps are the collaborators the home screen hands to the screens it opens.
type Deps struct {
	Resume     *resume.Resume
	Sequencer  umpire.Sequencer
	Cues       Cues
	Flags      store.FlagRepo
	Submitter  contact.Submitter
	ProfileURL string
}

type tickerMsg struct{}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps         Deps
	menu         components.Menu
	commentary   []string
	line         int
	showTutorial bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.EscapeHandler = (*HomeScreen)(nil)

// New creates the home screen. The tutorial overlay shows unless the
// tutorial flag is already set.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{
		deps:       deps,
		commentary: resume.Commentary(deps.Resume),
	}

	if deps.Flags != nil {
		seen, err := deps.Flags.IsSet(context.Background(), store.FlagTutorialSeen)
		if err != nil {
			log.Warn().Err(err).Msg("could not read tutorial flag")
		}
		h.showTutorial = !seen
	}

	r := deps.Resume
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			h.cue(audio.CueClick)
			return router.Push(build())
		}
	}

	items := []components.MenuItem{
		{Label: "CAREER INNINGS", Hint: "Every role, ball by ball", Action: push(func() screen.Screen { return career.NewInnings(r) })},
		{Label: "BIG MATCHES", Hint: "Campaigns that changed the game", Action: push(func() screen.Screen { return career.NewMatches(r) })},
		{Label: "SKILL STATS", Hint: "Impact, skills and kit bag", Action: push(func() screen.Screen { return career.NewStats(r) })},
		{Label: "THIRD UMPIRE REVIEW", Hint: "Ask the TV umpire for a decision", Action: push(func() screen.Screen { return umpire.New(deps.Sequencer) }), Disabled: deps.Sequencer == nil},
		{Label: "PLAIN TEXT", Hint: "ATS-friendly résumé", Action: push(func() screen.Screen { return document.Text("Plain Text", resume.PlainText(r)) })},
		{Label: "SHARE", Hint: "Profile, LinkedIn and QR links", Action: push(func() screen.Screen { return share.New(r, deps.ProfileURL) }), Disabled: deps.ProfileURL == ""},
		{Label: "SIGN THE PLAYER", Hint: "Send an offer", Action: push(func() screen.Screen { return contactform.New(deps.Submitter) }), Disabled: deps.Submitter == nil},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)
	h.menu.OnMove = func(int) tea.Cmd {
		h.cue(audio.CueHover)
		return nil
	}
	return h
}

func (h *HomeScreen) cue(c audio.Cue) {
	if h.deps.Cues != nil {
		h.deps.Cues.PlayTransientCue(c)
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return tickerTick()
}

func tickerTick() tea.Cmd {
	return tea.Tick(TickerInterval, func(time.Time) tea.Msg { return tickerMsg{} })
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// HandlesEscape is true while the tutorial overlay is up.
func (h *HomeScreen) HandlesEscape() bool {
	return h.showTutorial
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.showTutorial {
		return []layout.KeyHint{{Key: "Enter", Description: "Start the match"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickerMsg:
		if len(h.commentary) > 0 {
			h.line = (h.line + 1) % len(h.commentary)
		}
		return h, tickerTick()

	case tea.KeyPressMsg:
		if h.showTutorial {
			switch msg.String() {
			case "enter", "esc", "space":
				h.dismissTutorial()
			}
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) dismissTutorial() {
	h.showTutorial = false
	h.cue(audio.CueClick)
	if h.deps.Flags == nil {
		return
	}
	if err := h.deps.Flags.Set(context.Background(), store.FlagTutorialSeen); err != nil {
		log.Warn().Err(err).Msg("could not record tutorial as seen")
	}
}

// Commentary returns the ticker line on air.
func (h *HomeScreen) Commentary() string {
	if len(h.commentary) == 0 {
		return ""
	}
	return h.commentary[h.line]
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	if h.showTutorial {
		return components.StadiumFrame(renderTutorial(h.deps.Resume, cw), width, height)
	}

	sections := []string{renderProfile(h.deps.Resume, cw, compact)}
	if !compact {
		sections = append(sections, renderStatsBar(h.deps.Resume.ImpactMetrics, cw))
	}
	sections = append(sections, renderTicker(h.Commentary(), cw))
	if compact {
		sections = append(sections, renderCompactMenu(h.menu, cw))
	} else {
		sections = append(sections, h.menu.ButtonView(buttonWidth, cw))
	}

	return components.StadiumFrame(strings.Join(sections, "\n\n"), width, height)
}
