package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/rajvimal/scorecard/internal/resume"
)

// Offline derives Feedback from the résumé's own impact metrics without
// calling a provider. It is used when no API key is configured.
type Offline struct {
	// Latency simulates a provider round trip.
	Latency time.Duration
}

func (o Offline) Analyze(ctx context.Context, r *resume.Resume) (*Feedback, error) {
	if o.Latency > 0 {
		t := time.NewTimer(o.Latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	first := r.FirstName()
	fb := &Feedback{Score: 90 + float64(min(len(r.ImpactMetrics)+len(r.Experience), 9))}

	for _, m := range r.ImpactMetrics {
		if len(fb.Strengths) == 3 {
			break
		}
		s := fmt.Sprintf("%s delivered %s %s", first, m.Value, m.Label)
		if m.Company != "" {
			s += " at " + m.Company
		}
		fb.Strengths = append(fb.Strengths, s+".")
	}

	for _, c := range r.SkillCategories {
		if len(fb.GrowthAreas) == 3 {
			break
		}
		fb.GrowthAreas = append(fb.GrowthAreas, fmt.Sprintf("Ready to scale %s across larger teams.", c.Name))
	}

	if len(r.Experience) > 0 {
		e := r.Experience[0]
		fb.Signals = append(fb.Signals, fmt.Sprintf("Currently %s at %s.", e.Role, e.Company))
	}
	if len(r.LeadershipHighlights) > 0 {
		fb.Signals = append(fb.Signals, r.LeadershipHighlights[0])
	}
	fb.Signals = append(fb.Signals, fmt.Sprintf("%d innings of proven delivery.", len(r.Experience)))

	fb.normalize()
	return fb, nil
}
