// Package analysis produces recruiter-facing feedback for a résumé.
package analysis

import (
	"context"
	"strings"

	"github.com/rajvimal/scorecard/internal/resume"
)

// Feedback is the structured verdict shown on the result card.
// Any list may be empty.
type Feedback struct {
	Score       float64  `json:"score"`
	Strengths   []string `json:"strengths"`
	GrowthAreas []string `json:"growthPlan"`
	Signals     []string `json:"suggestions"`
}

// Analyzer turns a résumé into Feedback. Implementations must honor ctx
// cancellation.
type Analyzer interface {
	Analyze(ctx context.Context, r *resume.Resume) (*Feedback, error)
}

// normalize clamps the score to 0..100 and drops blank list entries.
func (f *Feedback) normalize() {
	switch {
	case f.Score < 0:
		f.Score = 0
	case f.Score > 100:
		f.Score = 100
	}
	f.Strengths = compact(f.Strengths)
	f.GrowthAreas = compact(f.GrowthAreas)
	f.Signals = compact(f.Signals)
}

func compact(items []string) []string {
	out := items[:0:0]
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
