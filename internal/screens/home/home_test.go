package home

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajvimal/scorecard/internal/audio"
	"github.com/rajvimal/scorecard/internal/contact"
	"github.com/rajvimal/scorecard/internal/resume"
	"github.com/rajvimal/scorecard/internal/review"
	"github.com/rajvimal/scorecard/internal/router"
	"github.com/rajvimal/scorecard/internal/store"
)

type cueLog struct {
	mu   sync.Mutex
	cues []audio.Cue
}

func (c *cueLog) PlayTransientCue(cue audio.Cue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cues = append(c.cues, cue)
}

type nopSequencer struct{}

func (nopSequencer) Script() review.Script                { return review.Quick }
func (nopSequencer) Start(context.Context) review.Session { return review.Session{Stage: review.StageInit, Loading: true} }
func (nopSequencer) Session() (review.Session, bool)      { return review.Session{}, false }
func (nopSequencer) Close()                               {}
func (nopSequencer) Forget()                              {}

func openFlags(t *testing.T) store.FlagRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "home.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st.FlagRepo()
}

func newHome(t *testing.T, flags store.FlagRepo) (*HomeScreen, *cueLog) {
	cues := &cueLog{}
	return New(Deps{
		Resume:     resume.Default(),
		Sequencer:  nopSequencer{},
		Cues:       cues,
		Flags:      flags,
		Submitter:  contact.NewSimulatedSubmitter(nopLogger),
		ProfileURL: "https://raj.example",
	}), cues
}

func key(code rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: code} }

func TestTutorialShowsOnce(t *testing.T) {
	flags := openFlags(t)

	h, _ := newHome(t, flags)
	require.True(t, h.HandlesEscape())
	assert.Contains(t, h.View(120, 40), "WELCOME TO THE ARENA")

	h.Update(key(tea.KeyEnter))
	assert.False(t, h.HandlesEscape())
	assert.NotContains(t, h.View(120, 40), "WELCOME TO THE ARENA")

	again, _ := newHome(t, flags)
	assert.False(t, again.HandlesEscape())
}

func TestTutorialSwallowsMenuKeys(t *testing.T) {
	h, _ := newHome(t, openFlags(t))
	_, cmd := h.Update(key(tea.KeyDown))
	assert.Nil(t, cmd)
	assert.Zero(t, h.menu.Selected)
}

func TestMenuCues(t *testing.T) {
	h, cues := newHome(t, nil)

	h.Update(key(tea.KeyDown))
	h.Update(key(tea.KeyDown))
	_, cmd := h.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Skill Stats", msg.Screen.Title())
	assert.Equal(t, []audio.Cue{audio.CueHover, audio.CueHover, audio.CueClick}, cues.cues)
}

func TestMenuOpensEveryScreen(t *testing.T) {
	h, _ := newHome(t, nil)
	want := []string{"Career Innings", "Big Matches", "Skill Stats", "Third Umpire Review", "Plain Text", "Share Profile", "Sign The Player"}
	for i, title := range want {
		h.menu.Selected = i
		_, cmd := h.Update(key(tea.KeyEnter))
		require.NotNil(t, cmd, title)
		msg, ok := cmd().(router.PushScreenMsg)
		require.True(t, ok, title)
		assert.Equal(t, title, msg.Screen.Title())
	}
}

func TestMissingDepsDisableItems(t *testing.T) {
	h := New(Deps{Resume: resume.Default()})
	var disabled []string
	for _, it := range h.menu.Items {
		if it.Disabled {
			disabled = append(disabled, it.Label)
		}
	}
	assert.Equal(t, []string{"THIRD UMPIRE REVIEW", "SHARE", "SIGN THE PLAYER"}, disabled)
	assert.False(t, h.HandlesEscape(), "no flag store, no tutorial")
}

func TestTickerRotates(t *testing.T) {
	h, _ := newHome(t, nil)
	lines := resume.Commentary(resume.Default())
	require.NotEmpty(t, lines)

	assert.Equal(t, lines[0], h.Commentary())
	for range lines {
		_, cmd := h.Update(tickerMsg{})
		require.NotNil(t, cmd)
	}
	assert.Equal(t, lines[0], h.Commentary(), "wraps around")

	h.Update(tickerMsg{})
	assert.Equal(t, lines[1], h.Commentary())
}

func TestViewShowsProfile(t *testing.T) {
	h, _ := newHome(t, nil)
	view := h.View(120, 40)
	assert.Contains(t, view, "RAJ VIMAL")
	assert.Contains(t, view, "COMMENTARY")
	assert.Contains(t, view, "CAREER INNINGS")

	compact := h.View(80, 20)
	assert.Contains(t, compact, "CAREER INNINGS")
}

var nopLogger = zerolog.Nop()
