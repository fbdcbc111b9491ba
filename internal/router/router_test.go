package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajvimal/scorecard/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	closed  int
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }
func (s *stubScreen) Close()               { s.closed++ }

func TestPushPop(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	review := &stubScreen{title: "review"}
	r.Push(review)
	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "review", r.Active().Title())
	assert.True(t, review.initRan)

	r.Pop()
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "home", r.Active().Title())
	assert.Equal(t, 1, review.closed)

	r.Pop()
	assert.Equal(t, 1, r.Depth(), "bottom screen stays")
	assert.Zero(t, home.closed)
}

func TestReplace(t *testing.T) {
	intro := &stubScreen{title: "intro"}
	r := New(intro)

	home := &stubScreen{title: "home"}
	r.Update(ReplaceScreenMsg{Screen: home})

	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "home", r.View(80, 24))
	assert.True(t, home.initRan)
	assert.Equal(t, 1, intro.closed)
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "plain text"})
	r.Replace(&stubScreen{title: "share"})

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "share", r.Active().Title())
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	top := &stubScreen{title: "top"}
	r.Update(PushScreenMsg{Screen: top})

	r.Update("ping")
	require.Len(t, top.got, 1)
	assert.Empty(t, home.got)
}

func TestCloseAll(t *testing.T) {
	a, b := &stubScreen{title: "a"}, &stubScreen{title: "b"}
	r := New(a)
	r.Push(b)
	r.CloseAll()
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed)
}

func TestCommandHelpers(t *testing.T) {
	s := &stubScreen{title: "x"}
	msg := Push(s)()
	assert.Equal(t, PushScreenMsg{Screen: s}, msg)
	assert.Equal(t, PopScreenMsg{}, Pop())
}
