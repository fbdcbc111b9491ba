package review

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Stage is a named point of the review.
type Stage string

const (
	StageInit            Stage = "INIT"
	StageUltraEdge       Stage = "ULTRA_EDGE"
	StageLeadCheck       Stage = "LEAD_CHECK"
	StageBallTracking    Stage = "BALL_TRACKING"
	StageDecisionPending Stage = "DECISION_PENDING"
	StageResult          Stage = "RESULT"
	StageError           Stage = "ERROR"
)

// Terminal reports whether s ends a session.
func (s Stage) Terminal() bool {
	return s == StageResult || s == StageError
}

// Step schedules a stage at an offset from Start.
type Step struct {
	Stage  Stage
	Offset time.Duration
	Title  string
}

// Script is the static timeline of a review.
type Script struct {
	Name        string
	Steps       []Step
	MinDuration time.Duration
	Narration   []string
}

// Broadcast is the full-length review, paced to the narration.
var Broadcast = Script{
	Name: "broadcast",
	Steps: []Step{
		{Stage: StageInit, Offset: 0, Title: "TV UMPIRE: LISTENING"},
		{Stage: StageUltraEdge, Offset: 4500 * time.Millisecond, Title: "REVIEW: SEO STRATEGY"},
		{Stage: StageLeadCheck, Offset: 8000 * time.Millisecond, Title: "REVIEW: LEAD GENERATION"},
		{Stage: StageBallTracking, Offset: 10500 * time.Millisecond, Title: "REVIEW: LEADERSHIP"},
		{Stage: StageDecisionPending, Offset: 14000 * time.Millisecond, Title: "DECISION PENDING"},
	},
	MinDuration: 17500 * time.Millisecond,
	Narration: []string{
		"TV Umpire to Director...",
		"Reviewing an All-Rounder resume.",
		"SEO strategy... on point.",
		"Leads... on the board.",
		"Leadership... under pressure.",
		"I have made my decision...",
		"To Hire... Raj Vimal.",
	},
}

// Quick is a short review with the same shape.
var Quick = Script{
	Name: "quick",
	Steps: []Step{
		{Stage: StageInit, Offset: 0, Title: "TV UMPIRE: LISTENING"},
		{Stage: StageUltraEdge, Offset: 1200 * time.Millisecond, Title: "REVIEW: SEO STRATEGY"},
		{Stage: StageLeadCheck, Offset: 2600 * time.Millisecond, Title: "REVIEW: LEAD GENERATION"},
		{Stage: StageDecisionPending, Offset: 4000 * time.Millisecond, Title: "DECISION PENDING"},
	},
	MinDuration: 4500 * time.Millisecond,
	Narration: []string{
		"TV Umpire to Director...",
		"Checking the numbers.",
		"Decision... Hire.",
	},
}

// Scripts lists the built-in scripts by name.
var Scripts = map[string]Script{
	Broadcast.Name: Broadcast,
	Quick.Name:     Quick,
}

// ScriptByName looks up a built-in script.
func ScriptByName(name string) (Script, error) {
	s, ok := Scripts[strings.ToLower(name)]
	if !ok {
		return Script{}, fmt.Errorf("unknown review variant %q (want broadcast or quick)", name)
	}
	return s, nil
}

// Title returns the display title of a scripted stage.
func (s Script) Title(st Stage) string {
	for _, step := range s.Steps {
		if step.Stage == st {
			return step.Title
		}
	}
	return string(st)
}

// Validate checks that the script can be played.
func (s Script) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New("script has no steps")
	}
	if s.Steps[0].Offset != 0 {
		return fmt.Errorf("first step %s must start at 0, got %s", s.Steps[0].Stage, s.Steps[0].Offset)
	}
	seen := make(map[Stage]bool, len(s.Steps))
	for i, step := range s.Steps {
		if step.Stage == "" {
			return fmt.Errorf("step %d has no stage", i)
		}
		if step.Stage.Terminal() {
			return fmt.Errorf("step %d: %s is reserved", i, step.Stage)
		}
		if seen[step.Stage] {
			return fmt.Errorf("step %d: duplicate stage %s", i, step.Stage)
		}
		seen[step.Stage] = true
		if i > 0 && step.Offset <= s.Steps[i-1].Offset {
			return fmt.Errorf("step %d: offset %s not after %s", i, step.Offset, s.Steps[i-1].Offset)
		}
	}
	if last := s.Steps[len(s.Steps)-1].Offset; s.MinDuration < last {
		return fmt.Errorf("min duration %s is shorter than last offset %s", s.MinDuration, last)
	}
	return nil
}
