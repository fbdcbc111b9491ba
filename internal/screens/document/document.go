// Package document is a scrollable text screen used for the plain-text
// résumé and the career detail pages.
package document

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/rajvimal/scorecard/internal/screen"
	"github.com/rajvimal/scorecard/internal/ui/layout"
)

// Renderer produces the document body for a given width.
type Renderer func(width int) string

// DocumentScreen shows a rendered document in a viewport.
type DocumentScreen struct {
	title    string
	render   Renderer
	vp       viewport.Model
	rendered int // width of the last render, 0 before the first
}

var _ screen.Screen = (*DocumentScreen)(nil)
var _ screen.KeyHintProvider = (*DocumentScreen)(nil)

// New creates a document screen.
func New(title string, render Renderer) *DocumentScreen {
	return &DocumentScreen{
		title:  title,
		render: render,
		vp:     viewport.New(),
	}
}

// Text creates a document screen for fixed text.
func Text(title, body string) *DocumentScreen {
	return New(title, func(int) string { return body })
}

func (d *DocumentScreen) Init() tea.Cmd {
	return nil
}

func (d *DocumentScreen) Title() string {
	return d.title
}

func (d *DocumentScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "PgUp/PgDn", Description: "Page"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DocumentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	d.vp, cmd = d.vp.Update(msg)
	return d, cmd
}

func (d *DocumentScreen) View(width, height int) string {
	d.vp.SetWidth(width)
	d.vp.SetHeight(height)
	if d.rendered != width {
		d.vp.SetContent(d.render(width - 2))
		d.rendered = width
	}
	return d.vp.View()
}

// AtTop reports whether the viewport is scrolled to the top.
func (d *DocumentScreen) AtTop() bool {
	return d.vp.AtTop()
}
