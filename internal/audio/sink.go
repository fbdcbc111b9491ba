package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Sink plays an encoded WAV clip. Play blocks until playback finishes or
// ctx is cancelled.
type Sink interface {
	Play(ctx context.Context, wav []byte) error
}

// NopSink discards every clip.
type NopSink struct{}

func (NopSink) Play(ctx context.Context, _ []byte) error { return ctx.Err() }

// ExecSink pipes clips to an external player.
type ExecSink struct {
	Path string
	Args []string

	// FileArg makes the sink write the clip to a temp file and pass its
	// path as the last argument, for players that cannot read stdin.
	FileArg bool
}

func (s ExecSink) Play(ctx context.Context, wav []byte) error {
	args := append([]string(nil), s.Args...)

	var stdin *bytes.Reader
	if s.FileArg {
		f, err := os.CreateTemp("", "scorecard-*.wav")
		if err != nil {
			return fmt.Errorf("temp clip: %w", err)
		}
		defer os.Remove(f.Name())
		if _, err := f.Write(wav); err != nil {
			f.Close()
			return fmt.Errorf("write clip: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write clip: %w", err)
		}
		args = append(args, f.Name())
	} else {
		stdin = bytes.NewReader(wav)
	}

	cmd := exec.CommandContext(ctx, s.Path, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", s.Path, err)
	}
	return nil
}

var lookPath = exec.LookPath

// DetectSink returns an ExecSink for the first player found on PATH, or
// NopSink when there is none.
func DetectSink() Sink {
	candidates := []ExecSink{
		{Path: "paplay"},
		{Path: "aplay", Args: []string{"-q"}},
		{Path: "afplay", FileArg: true},
	}
	for _, c := range candidates {
		if p, err := lookPath(c.Path); err == nil {
			c.Path = p
			return c
		}
	}
	return NopSink{}
}
