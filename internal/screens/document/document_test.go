package document

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func lines(n int) string {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "line %02d\n", i)
	}
	return b.String()
}

func TestViewRendersForWidth(t *testing.T) {
	widths := []int{}
	d := New("Career", func(w int) string {
		widths = append(widths, w)
		return "over " + fmt.Sprint(w)
	})
	assert.Equal(t, "Career", d.Title())

	assert.Contains(t, d.View(80, 10), "over 78")
	d.View(80, 10)
	assert.Equal(t, []int{78}, widths, "cached per width")

	assert.Contains(t, d.View(100, 10), "over 98")
}

func TestScroll(t *testing.T) {
	d := Text("Plain Text", lines(50))
	view := d.View(40, 10)
	assert.Contains(t, view, "line 00")
	assert.True(t, d.AtTop())

	d.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	view = d.View(40, 10)
	assert.False(t, d.AtTop())
	assert.NotContains(t, view, "line 00")
	assert.Contains(t, view, "line 01")
}
