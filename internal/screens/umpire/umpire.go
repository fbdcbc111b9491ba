// Package umpire is the third umpire review screen. It renders the
// sequencer's session and owns it while on screen.
package umpire

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/rajvimal/scorecard/internal/review"
	"github.com/rajvimal/scorecard/internal/screen"
	"github.com/rajvimal/scorecard/internal/ui/layout"
)

// FrameInterval paces the loading animation.
const FrameInterval = 40 * time.Millisecond

// Sequencer is the part of *review.Sequencer the screen drives.
type Sequencer interface {
	Script() review.Script
	Start(ctx context.Context) review.Session
	Session() (review.Session, bool)
	Close()
	Forget()
}

type frameMsg struct{ run int }

// ReviewScreen shows one review session.
type ReviewScreen struct {
	seq     Sequencer
	session review.Session
	open    bool
	run     int // bumps on every Start so stale frame ticks die out
	frame   int
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)
var _ screen.Closer = (*ReviewScreen)(nil)

// New creates the screen. The session starts in Init.
func New(seq Sequencer) *ReviewScreen {
	return &ReviewScreen{seq: seq}
}

func (s *ReviewScreen) Title() string {
	return "Third Umpire Review"
}

func (s *ReviewScreen) Init() tea.Cmd {
	return s.start()
}

func (s *ReviewScreen) start() tea.Cmd {
	s.session = s.seq.Start(context.Background())
	s.open = true
	s.run++
	s.frame = 0
	if !s.session.Loading {
		return nil
	}
	return s.tick()
}

func (s *ReviewScreen) tick() tea.Cmd {
	run := s.run
	return tea.Tick(FrameInterval, func(time.Time) tea.Msg {
		return frameMsg{run: run}
	})
}

// Close ends the session. The router calls it when the screen is popped.
func (s *ReviewScreen) Close() {
	if s.open {
		s.seq.Close()
		s.open = false
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.run != s.run || !s.open {
			return s, nil
		}
		s.refresh()
		if !s.session.Loading {
			return s, nil
		}
		s.frame++
		return s, s.tick()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "r":
			// Retry after an error.
			if s.session.Stage == review.StageError {
				s.Close()
				return s, s.start()
			}
		case "n":
			// Fresh review instead of the cached decision.
			if s.session.Stage == review.StageResult {
				s.seq.Forget()
				s.Close()
				return s, s.start()
			}
		}
	}
	return s, nil
}

func (s *ReviewScreen) refresh() {
	if sess, ok := s.seq.Session(); ok {
		s.session = sess
	}
}

// Session returns the last observed session.
func (s *ReviewScreen) Session() review.Session {
	return s.session
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Esc", Description: "Close review"}}
	switch s.session.Stage {
	case review.StageError:
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
	case review.StageResult:
		hints = append(hints, layout.KeyHint{Key: "N", Description: "New review"})
	}
	return hints
}

func (s *ReviewScreen) View(width, height int) string {
	switch s.session.Stage {
	case review.StageResult:
		return renderResult(s.session, width, height)
	case review.StageError:
		return renderError(s.session, width, height)
	default:
		return renderProgress(s.seq.Script(), s.session, s.frame, width, height)
	}
}
