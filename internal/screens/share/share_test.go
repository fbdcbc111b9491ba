package share

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rajvimal/scorecard/internal/resume"
)

func TestView(t *testing.T) {
	s := New(resume.Default(), "https://raj.example")
	assert.Equal(t, "Share Profile", s.Title())
	assert.Equal(t, resume.Share("https://raj.example"), s.links)

	view := s.View(200, 40)
	assert.Contains(t, view, "RAJ VIMAL'S SCORECARD")
	assert.Contains(t, view, "https://raj.example")
}
