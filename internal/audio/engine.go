// Package audio synthesizes short sound cues and drives sequenced
// narration with a single, cancellable narration cursor.
package audio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LinePause is the gap between narrated lines.
const LinePause = 400 * time.Millisecond

// Engine plays cues and narration. The process owns one Engine; at most one
// narration sequence is live on it at a time.
type Engine struct {
	sink    Sink
	speaker Speaker
	logger  zerolog.Logger
	pause   time.Duration

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	current *Narration
	noise   []float64
	clips   map[Cue][]byte
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink sets the clip player. Default NopSink.
func WithSink(s Sink) Option { return func(e *Engine) { e.sink = s } }

// WithSpeaker sets the speech synthesizer. Default PacedSpeaker.
func WithSpeaker(s Speaker) Option { return func(e *Engine) { e.speaker = s } }

// WithLogger sets the logger used for swallowed failures.
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithLinePause overrides LinePause.
func WithLinePause(d time.Duration) Option { return func(e *Engine) { e.pause = d } }

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		sink:    NopSink{},
		speaker: PacedSpeaker{Voice: DefaultVoice},
		logger:  zerolog.Nop(),
		pause:   LinePause,
		clips:   make(map[Cue][]byte),
	}
	for _, o := range opts {
		o(e)
	}
	e.base, e.cancel = context.WithCancel(context.Background())
	return e
}

// Narration is the handle for one SpeakSequence call.
type Narration struct {
	engine *Engine
	cancel context.CancelFunc
	done   chan struct{}

	// guarded by engine.mu
	finished bool
}

// Cancel stops this narration. It is a no-op once the narration has
// finished or been superseded.
func (n *Narration) Cancel() {
	if n == nil || n.engine == nil {
		return
	}
	n.engine.mu.Lock()
	defer n.engine.mu.Unlock()
	n.engine.stopLocked(n)
}

// Done is closed when the narration goroutine has exited.
func (n *Narration) Done() <-chan struct{} {
	return n.done
}

func finishedNarration() *Narration {
	done := make(chan struct{})
	close(done)
	return &Narration{cancel: func() {}, done: done, finished: true}
}

// stopLocked cancels n. Caller holds e.mu.
func (e *Engine) stopLocked(n *Narration) {
	if n.finished {
		return
	}
	n.finished = true
	n.cancel()
	if e.current == n {
		e.current = nil
	}
}

// PlayTransientCue plays a cue in the background. Failures are logged at
// debug level and otherwise ignored.
func (e *Engine) PlayTransientCue(c Cue) {
	e.goSafe("cue "+c.String(), func() {
		e.playCue(e.base, c)
	})
}

// PlayFanfare plays the intro crowd swell in the background.
func (e *Engine) PlayFanfare() {
	e.PlayTransientCue(CueFanfare)
}

// SpeakSequence narrates lines in order and returns immediately. Each line
// is bracketed by static bursts, with LinePause between lines. Any
// previous sequence is cancelled first. onComplete runs once after the
// last trailing burst unless the sequence is cancelled before then.
func (e *Engine) SpeakSequence(lines []string, onComplete func()) *Narration {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return finishedNarration()
	}
	if e.current != nil {
		e.stopLocked(e.current)
	}
	ctx, cancel := context.WithCancel(e.base)
	n := &Narration{engine: e, cancel: cancel, done: make(chan struct{})}
	e.current = n
	e.wg.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.wg.Done()
		defer close(n.done)
		defer cancel()
		e.narrate(ctx, n, lines, onComplete)
	}()
	return n
}

// CancelSequence stops the current narration, if any.
func (e *Engine) CancelSequence() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current != nil {
		e.stopLocked(e.current)
	}
}

// Close cancels all audio and waits for background playback to exit.
// The Engine is unusable afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	if e.current != nil {
		e.stopLocked(e.current)
	}
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()
}

func (e *Engine) narrate(ctx context.Context, n *Narration, lines []string, onComplete func()) {
	for i, line := range lines {
		if ctx.Err() != nil {
			return
		}
		e.playCue(ctx, CueStatic)
		if ctx.Err() != nil {
			return
		}
		if err := e.speak(ctx, line); err != nil && ctx.Err() == nil {
			e.logger.Debug().Err(err).Str("line", line).Msg("speech failed")
		}
		if ctx.Err() != nil {
			return
		}
		e.playCue(ctx, CueStatic)

		if i < len(lines)-1 && !sleep(ctx, e.pause) {
			return
		}
	}

	e.mu.Lock()
	if n.finished || ctx.Err() != nil {
		e.mu.Unlock()
		return
	}
	n.finished = true
	if e.current == n {
		e.current = nil
	}
	e.mu.Unlock()

	if onComplete != nil {
		e.safe("narration callback", onComplete)
	}
}

func (e *Engine) speak(ctx context.Context, line string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("speaker panic: %v", r)
		}
	}()
	return e.speaker.Speak(ctx, line)
}

func (e *Engine) playCue(ctx context.Context, c Cue) {
	e.safe("cue "+c.String(), func() {
		wav := e.clip(c)
		if wav == nil {
			return
		}
		if err := e.sink.Play(ctx, wav); err != nil && ctx.Err() == nil {
			e.logger.Debug().Err(err).Stringer("cue", c).Msg("cue playback failed")
		}
	})
}

// clip renders and caches the WAV for a cue.
func (e *Engine) clip(c Cue) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	if wav, ok := e.clips[c]; ok {
		return wav
	}
	if e.noise == nil {
		e.noise = noiseBuffer(1712)
	}
	samples := Render(c, e.noise)
	if samples == nil {
		return nil
	}
	wav := EncodeWAV(samples, SampleRate)
	e.clips[c] = wav
	return wav
}

func (e *Engine) goSafe(what string, fn func()) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.wg.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.wg.Done()
		e.safe(what, fn)
	}()
}

func (e *Engine) safe(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug().Interface("panic", r).Str("what", what).Msg("audio failure swallowed")
		}
	}()
	fn()
}

// sleep waits for d and reports whether it completed without ctx ending.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
