package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/rajvimal/scorecard/internal/audio"
	"github.com/rajvimal/scorecard/internal/contact"
	"github.com/rajvimal/scorecard/internal/resume"
	"github.com/rajvimal/scorecard/internal/router"
	"github.com/rajvimal/scorecard/internal/screen"
	"github.com/rajvimal/scorecard/internal/screens/home"
	"github.com/rajvimal/scorecard/internal/screens/intro"
	"github.com/rajvimal/scorecard/internal/screens/umpire"
	"github.com/rajvimal/scorecard/internal/store"
	"github.com/rajvimal/scorecard/internal/ui/layout"
)

// Audio is what the TUI needs from the audio engine.
type Audio interface {
	PlayTransientCue(c audio.Cue)
	PlayFanfare()
}

// Options holds the dependencies for the TUI.
type Options struct {
	Resume     *resume.Resume
	Sequencer  umpire.Sequencer
	Audio      Audio
	Flags      store.FlagRepo
	Submitter  contact.Submitter
	ProfileURL string

	// SkipIntro starts on the home screen even on first launch.
	SkipIntro bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	player string
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	if opts.Resume == nil {
		opts.Resume = resume.Default()
	}
	return AppModel{
		router: router.New(initialScreen(opts)),
		player: opts.Resume.Name,
	}
}

func initialScreen(opts Options) screen.Screen {
	deps := home.Deps{
		Resume:     opts.Resume,
		Sequencer:  opts.Sequencer,
		Flags:      opts.Flags,
		Submitter:  opts.Submitter,
		ProfileURL: opts.ProfileURL,
	}
	var fanfare intro.Fanfare
	if opts.Audio != nil {
		deps.Cues = opts.Audio
		fanfare = opts.Audio
	}
	homeFactory := func() screen.Screen { return home.New(deps) }

	if opts.SkipIntro || opts.Flags == nil {
		return homeFactory()
	}
	seen, err := opts.Flags.IsSet(context.Background(), store.FlagIntroSeen)
	if err != nil {
		log.Warn().Err(err).Msg("could not read intro flag")
	}
	if seen {
		return homeFactory()
	}
	return intro.New(opts.Resume, fanfare, opts.Flags, homeFactory)
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.player, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
}

// Run starts the Bubble Tea program and blocks until it exits. Screens
// still on the stack are closed on the way out.
func Run(opts Options) error {
	m := newAppModel(opts)
	defer m.router.CloseAll()

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
