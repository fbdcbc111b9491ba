package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	at   time.Duration
	what string
}

// recorder collects cue and speech events relative to a start time.
type recorder struct {
	mu     sync.Mutex
	start  time.Time
	events []event
}

func newRecorder() *recorder { return &recorder{start: time.Now()} }

func (r *recorder) add(what string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{at: time.Since(r.start), what: what})
}

func (r *recorder) snapshot() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event(nil), r.events...)
}

type recordingSink struct{ rec *recorder }

func (s recordingSink) Play(ctx context.Context, wav []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.rec.add("cue")
	return nil
}

// secondSpeaker takes one second per line.
type secondSpeaker struct{ rec *recorder }

func (s secondSpeaker) Speak(ctx context.Context, text string) error {
	s.rec.add("say " + text)
	if !sleep(ctx, time.Second) {
		return ctx.Err()
	}
	return nil
}

func newTestEngine(rec *recorder, opts ...Option) *Engine {
	base := []Option{WithSink(recordingSink{rec}), WithSpeaker(secondSpeaker{rec})}
	return NewEngine(append(base, opts...)...)
}

func TestSpeakSequence_Order(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := newRecorder()
		e := newTestEngine(rec)
		defer e.Close()

		n := e.SpeakSequence([]string{"TV Umpire to Director...", "Leads... on the board."}, func() {
			rec.add("complete")
		})
		<-n.Done()

		want := []event{
			{0, "cue"},
			{0, "say TV Umpire to Director..."},
			{time.Second, "cue"},
			{1400 * time.Millisecond, "cue"},
			{1400 * time.Millisecond, "say Leads... on the board."},
			{2400 * time.Millisecond, "cue"},
			{2400 * time.Millisecond, "complete"},
		}
		assert.Equal(t, want, rec.snapshot())
	})
}

func TestSpeakSequence_SupersedesPrevious(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := newRecorder()
		e := newTestEngine(rec)
		defer e.Close()

		var first, second int
		n1 := e.SpeakSequence([]string{"old one", "old two"}, func() { first++ })
		time.Sleep(500 * time.Millisecond)
		n2 := e.SpeakSequence([]string{"new"}, func() { second++ })
		<-n1.Done()
		<-n2.Done()

		assert.Equal(t, 0, first)
		assert.Equal(t, 1, second)
		assert.Equal(t, []event{
			{0, "cue"},
			{0, "say old one"},
			{500 * time.Millisecond, "cue"},
			{500 * time.Millisecond, "say new"},
			{1500 * time.Millisecond, "cue"},
		}, rec.snapshot())
	})
}

func TestNarration_Cancel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := newRecorder()
		e := newTestEngine(rec)
		defer e.Close()

		called := false
		n := e.SpeakSequence([]string{"a", "b", "c"}, func() { called = true })
		time.Sleep(1200 * time.Millisecond) // inside the pause after "a"
		n.Cancel()
		<-n.Done()
		time.Sleep(10 * time.Second)

		assert.False(t, called)
		assert.Len(t, rec.snapshot(), 3) // cue, say a, cue
		n.Cancel()
	})
}

func TestNarration_StaleHandleDoesNotCancelNewer(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := newRecorder()
		e := newTestEngine(rec)
		defer e.Close()

		old := e.SpeakSequence([]string{"a"}, nil)
		<-old.Done()

		done := false
		n := e.SpeakSequence([]string{"b"}, func() { done = true })
		old.Cancel()
		<-n.Done()
		assert.True(t, done)
	})
}

func TestCancelSequence(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := newRecorder()
		e := newTestEngine(rec)
		defer e.Close()

		e.CancelSequence() // idle

		called := false
		n := e.SpeakSequence([]string{"a"}, func() { called = true })
		time.Sleep(100 * time.Millisecond)
		e.CancelSequence()
		<-n.Done()
		assert.False(t, called)
	})
}

func TestSpeakSequence_Empty(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		e := NewEngine()
		defer e.Close()

		called := 0
		<-e.SpeakSequence(nil, func() { called++ }).Done()
		assert.Equal(t, 1, called)
	})
}

type failingSpeaker struct{}

func (failingSpeaker) Speak(context.Context, string) error { return errors.New("no voice") }

type panickingSink struct{}

func (panickingSink) Play(context.Context, []byte) error { panic("device gone") }

func TestFailuresAreSwallowed(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var logs bytes.Buffer
		e := NewEngine(
			WithSink(panickingSink{}),
			WithSpeaker(failingSpeaker{}),
			WithLogger(zerolog.New(zerolog.SyncWriter(&logs)).Level(zerolog.DebugLevel)),
		)

		e.PlayTransientCue(CueHover)
		e.PlayTransientCue(CueClick)

		called := false
		<-e.SpeakSequence([]string{"one", "two"}, func() { called = true }).Done()
		e.Close()

		assert.True(t, called)
		assert.Contains(t, logs.String(), "speech failed")
		assert.Contains(t, logs.String(), "audio failure swallowed")
	})
}

func TestCallbackPanicIsSwallowed(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		e := NewEngine()
		defer e.Close()
		<-e.SpeakSequence([]string{"x"}, func() { panic("ui gone") }).Done()
	})
}

func TestClose(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := newRecorder()
		e := newTestEngine(rec)

		called := false
		n := e.SpeakSequence([]string{"a", "b"}, func() { called = true })
		time.Sleep(300 * time.Millisecond)
		e.Close()
		e.Close()

		select {
		case <-n.Done():
		default:
			t.Fatal("narration still running after Close")
		}

		after := e.SpeakSequence([]string{"late"}, func() { called = true })
		<-after.Done()
		e.PlayTransientCue(CueClick)
		time.Sleep(5 * time.Second)

		assert.False(t, called)
		assert.Len(t, rec.snapshot(), 2)
	})
}

type countingSink struct {
	mu    sync.Mutex
	sizes []int
}

func (s *countingSink) Play(_ context.Context, wav []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sizes = append(s.sizes, len(wav))
	return nil
}

func (s *countingSink) played() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.sizes...)
}

func TestPlayTransientCue(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sink := &countingSink{}
		e := NewEngine(WithSink(sink))
		defer e.Close()

		e.PlayTransientCue(CueClick)
		synctest.Wait()
		e.PlayFanfare()
		synctest.Wait()

		noise := noiseBuffer(1)
		sizes := sink.played()
		require.Len(t, sizes, 2)
		assert.Equal(t, len(EncodeWAV(Render(CueClick, noise), SampleRate)), sizes[0])
		assert.Equal(t, len(EncodeWAV(Render(CueFanfare, noise), SampleRate)), sizes[1])
	})
}

func ExampleEngine_SpeakSequence() {
	e := NewEngine(WithSpeaker(PacedSpeaker{Voice: Voice{Rate: 100}}), WithLinePause(0))
	defer e.Close()

	n := e.SpeakSequence([]string{"I have made my decision..."}, func() {
		fmt.Println("decision made")
	})
	<-n.Done()
	// Output: decision made
}
