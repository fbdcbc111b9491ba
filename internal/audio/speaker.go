package audio

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Speaker turns a line of text into speech. Speak blocks until the line
// has been spoken or ctx is cancelled.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Voice tunes speech output. Rate and Pitch are multipliers around 1.0.
type Voice struct {
	Rate  float64
	Pitch float64
}

// DefaultVoice is slightly fast and deep, like a radio call.
var DefaultVoice = Voice{Rate: 1.1, Pitch: 0.8}

const baseWPM = 175

func (v Voice) wpm() int {
	if v.Rate <= 0 {
		return baseWPM
	}
	return int(baseWPM * v.Rate)
}

// ExecSpeaker runs a command-line synthesizer with the text as the final
// argument.
type ExecSpeaker struct {
	Path string
	Args []string
}

func (s ExecSpeaker) Speak(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, s.Path, append(append([]string(nil), s.Args...), text)...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", s.Path, err)
	}
	return nil
}

// PacedSpeaker is silent. It waits roughly as long as the line would take
// to say, so timing matches a real voice.
type PacedSpeaker struct {
	Voice Voice
}

// Estimate returns the speaking time for text.
func (s PacedSpeaker) Estimate(text string) time.Duration {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return time.Duration(words) * time.Minute / time.Duration(s.Voice.wpm())
}

func (s PacedSpeaker) Speak(ctx context.Context, text string) error {
	d := s.Estimate(text)
	if d == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// DetectSpeaker returns the first synthesizer found on PATH, falling back
// to a PacedSpeaker.
func DetectSpeaker(v Voice) Speaker {
	wpm := strconv.Itoa(v.wpm())
	pitch := strconv.Itoa(int(min(50*max(v.Pitch, 0.1), 99)))

	candidates := []ExecSpeaker{
		{Path: "say", Args: []string{"-r", wpm}},
		{Path: "espeak-ng", Args: []string{"-s", wpm, "-p", pitch}},
		{Path: "espeak", Args: []string{"-s", wpm, "-p", pitch}},
	}
	for _, c := range candidates {
		if p, err := lookPath(c.Path); err == nil {
			c.Path = p
			return c
		}
	}
	return PacedSpeaker{Voice: v}
}
