// Package review runs the timed "third umpire" review: a fixed stage
// script that plays while the résumé is analysed, ending in a result or
// an error.
package review

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rajvimal/scorecard/internal/analysis"
	"github.com/rajvimal/scorecard/internal/audio"
	"github.com/rajvimal/scorecard/internal/resume"
)

// DefaultAnalysisTimeout bounds an analysis call.
const DefaultAnalysisTimeout = 30 * time.Second

// Analyzer produces the feedback a session waits for.
type Analyzer interface {
	Analyze(ctx context.Context, r *resume.Resume) (*analysis.Feedback, error)
}

// Narrator speaks the script's narration. *audio.Engine implements it.
type Narrator interface {
	SpeakSequence(lines []string, onComplete func()) *audio.Narration
}

// Config is the static configuration of a Sequencer.
type Config struct {
	Script          Script
	Resume          *resume.Resume
	AnalysisTimeout time.Duration
}

// DefaultConfig uses the broadcast script and the built-in résumé.
func DefaultConfig() Config {
	return Config{
		Script:          Broadcast,
		Resume:          resume.Default(),
		AnalysisTimeout: DefaultAnalysisTimeout,
	}
}

// Session is a read-only snapshot of the open review.
type Session struct {
	ID           string
	Stage        Stage
	Loading      bool
	Result       *analysis.Feedback
	ErrorMessage string
	Err          error
	StartedAt    time.Time

	// Cached is set when the result was reused from an earlier session.
	Cached bool
}

// EventKind classifies an Event.
type EventKind int

const (
	EventStage EventKind = iota
	EventResult
	EventError
	EventClosed
)

func (k EventKind) String() string {
	switch k {
	case EventStage:
		return "stage"
	case EventResult:
		return "result"
	case EventError:
		return "error"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event reports a session change. Elapsed is measured from Start.
type Event struct {
	Kind    EventKind
	Session Session
	Elapsed time.Duration
}

// Observer receives events in order. It is called with the Sequencer's
// lock held and must not block or call back into the Sequencer.
type Observer func(Event)

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(s *Sequencer) { s.observers = append(s.observers, o) }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Sequencer) { s.logger = l }
}

// Sequencer owns at most one review session at a time.
type Sequencer struct {
	cfg       Config
	analyzer  Analyzer
	narrator  Narrator
	observers []Observer
	logger    zerolog.Logger

	mu        sync.Mutex
	gen       uint64
	sess      *Session
	next      int // index of the next step to emit
	timers    []*time.Timer
	cancel    context.CancelFunc
	narration *audio.Narration
	cached    *analysis.Feedback
}

// New creates a Sequencer. narrator may be nil.
func New(cfg Config, analyzer Analyzer, narrator Narrator, opts ...Option) (*Sequencer, error) {
	if err := cfg.Script.Validate(); err != nil {
		return nil, fmt.Errorf("review script %q: %w", cfg.Script.Name, err)
	}
	if analyzer == nil {
		return nil, errors.New("review: analyzer is required")
	}
	if cfg.Resume == nil {
		cfg.Resume = resume.Default()
	}
	if cfg.AnalysisTimeout <= 0 {
		cfg.AnalysisTimeout = DefaultAnalysisTimeout
	}

	s := &Sequencer{
		cfg:      cfg,
		analyzer: analyzer,
		narrator: narrator,
		logger:   zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Script returns the script this Sequencer plays.
func (s *Sequencer) Script() Script {
	return s.cfg.Script
}

// Start opens a session, tearing down any open one first. With a cached
// result the session opens directly in StageResult.
func (s *Sequencer) Start(ctx context.Context) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess != nil {
		s.closeLocked()
	}

	s.gen++
	gen := s.gen
	sess := &Session{ID: uuid.NewString(), StartedAt: time.Now()}
	s.sess = sess

	if s.cached != nil {
		sess.Stage = StageResult
		sess.Result = s.cached
		sess.Cached = true
		s.logger.Debug().Str("session", sess.ID).Msg("review opened with cached result")
		s.emitLocked(EventResult)
		return *sess
	}

	steps := s.cfg.Script.Steps
	sess.Stage = steps[0].Stage
	sess.Loading = true
	s.next = 1
	s.logger.Debug().Str("session", sess.ID).Str("script", s.cfg.Script.Name).Msg("review started")
	s.emitLocked(EventStage)

	for i := 1; i < len(steps); i++ {
		s.timers = append(s.timers, time.AfterFunc(steps[i].Offset, func() {
			s.advance(gen, i)
		}))
	}

	if s.narrator != nil && len(s.cfg.Script.Narration) > 0 {
		s.narration = s.narrator.SpeakSequence(s.cfg.Script.Narration, nil)
	}

	actx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	go s.join(actx, gen)

	return *sess
}

// Close ends the open session, cancelling its timers, analysis and
// narration. It is a no-op without a session.
func (s *Sequencer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

// Session returns a snapshot of the open session.
func (s *Sequencer) Session() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return Session{}, false
	}
	return *s.sess, true
}

// Forget drops the cached result so the next Start replays the script.
func (s *Sequencer) Forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
}

func (s *Sequencer) closeLocked() {
	if s.sess == nil {
		return
	}
	s.gen++
	s.stopLocked()
	last := *s.sess
	s.sess = nil
	s.logger.Debug().Str("session", last.ID).Msg("review closed")
	s.notifyLocked(Event{Kind: EventClosed, Session: last, Elapsed: time.Since(last.StartedAt)})
}

// stopLocked cancels timers, analysis and narration of the current session.
func (s *Sequencer) stopLocked() {
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.narration != nil {
		s.narration.Cancel()
		s.narration = nil
	}
}

// current reports whether gen still names the open, loading session.
func (s *Sequencer) current(gen uint64) bool {
	return gen == s.gen && s.sess != nil && s.sess.Loading
}

func (s *Sequencer) advance(gen uint64, i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(gen) {
		return
	}
	s.emitThroughLocked(i)
}

// emitThroughLocked emits every step up to and including i that has not
// been emitted yet, in script order.
func (s *Sequencer) emitThroughLocked(i int) {
	steps := s.cfg.Script.Steps
	for ; s.next <= i && s.next < len(steps); s.next++ {
		s.sess.Stage = steps[s.next].Stage
		s.emitLocked(EventStage)
	}
}

// join waits for both the analysis and the minimum duration.
func (s *Sequencer) join(ctx context.Context, gen uint64) {
	g, gctx := errgroup.WithContext(ctx)

	var fb *analysis.Feedback
	g.Go(func() error {
		var err error
		fb, err = s.analyze(gctx)
		return err
	})
	g.Go(func() error {
		t := time.NewTimer(s.cfg.Script.MinDuration)
		defer t.Stop()
		select {
		case <-gctx.Done():
			return gctx.Err()
		case <-t.C:
			return nil
		}
	})

	err := g.Wait()
	var fe *FailureError
	if err != nil && !errors.As(err, &fe) {
		err = &FailureError{Cause: err}
	}
	s.finish(gen, fb, err)
}

func (s *Sequencer) analyze(ctx context.Context) (*analysis.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.AnalysisTimeout)
	defer cancel()

	type result struct {
		fb  *analysis.Feedback
		err error
	}
	ch := make(chan result, 1)
	go func() {
		fb, err := s.analyzer.Analyze(ctx, s.cfg.Resume)
		ch <- result{fb, err}
	}()

	select {
	case r := <-ch:
		switch {
		case r.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, &FailureError{Cause: fmt.Errorf("%w after %s", ErrAnalysisTimeout, s.cfg.AnalysisTimeout)}
		case r.err != nil:
			return nil, &FailureError{Cause: r.err}
		case r.fb == nil:
			return nil, &FailureError{Cause: errNoFeedback}
		}
		return r.fb, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &FailureError{Cause: fmt.Errorf("%w after %s", ErrAnalysisTimeout, s.cfg.AnalysisTimeout)}
		}
		return nil, &FailureError{Cause: ctx.Err()}
	}
}

func (s *Sequencer) finish(gen uint64, fb *analysis.Feedback, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(gen) {
		return
	}

	if err != nil {
		s.stopLocked()
		s.sess.Stage = StageError
		s.sess.Loading = false
		s.sess.Err = err
		s.sess.ErrorMessage = Message(err)
		s.logger.Warn().Err(err).Str("session", s.sess.ID).Msg("review analysis failed")
		s.emitLocked(EventError)
		return
	}

	// Stages due at the same instant as the join are emitted first.
	s.emitDueLocked()
	s.stopLocked()
	s.sess.Stage = StageResult
	s.sess.Loading = false
	s.sess.Result = fb
	s.cached = fb
	s.logger.Info().Str("session", s.sess.ID).Float64("score", fb.Score).Msg("review decided")
	s.emitLocked(EventResult)
}

func (s *Sequencer) emitDueLocked() {
	elapsed := time.Since(s.sess.StartedAt)
	steps := s.cfg.Script.Steps
	last := s.next - 1
	for i := s.next; i < len(steps) && steps[i].Offset <= elapsed; i++ {
		last = i
	}
	s.emitThroughLocked(last)
}

func (s *Sequencer) emitLocked(kind EventKind) {
	s.notifyLocked(Event{Kind: kind, Session: *s.sess, Elapsed: time.Since(s.sess.StartedAt)})
}

func (s *Sequencer) notifyLocked(ev Event) {
	for _, o := range s.observers {
		o(ev)
	}
}
