package streammd

import (
	"math/rand/v2"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	// DefaultTickInterval is the cadence at which the cursor advances.
	DefaultTickInterval = 50 * time.Millisecond
	// DefaultMinSpeed is the default lower bound of characters per tick.
	DefaultMinSpeed = 1
	// DefaultMaxSpeed is the default upper bound of characters per tick.
	DefaultMaxSpeed = 5
)

// PublishFunc receives the revealed prefix after every change, together with
// whether the full target has been revealed. Calls are serialized; the
// function must not call back into the Scheduler.
type PublishFunc func(display string, done bool)

// Scheduler reveals a growing prefix of a target text on a fixed cadence.
// The per-tick step is drawn uniformly from the configured speed range, so
// the reveal rate varies the way human typing does. All methods are safe for
// concurrent use.
type Scheduler struct {
	mu        sync.Mutex
	target    string
	cursor    int
	streaming bool
	minSpeed  int
	maxSpeed  int
	interval  time.Duration
	publish   PublishFunc
	stop      chan struct{} // non-nil while the tick loop is alive
}

// NewScheduler creates a Scheduler that reports reveals to publish. The
// scheduler is idle until Start is called; SetTarget and SetStreaming publish
// immediately even while idle.
func NewScheduler(publish PublishFunc, opts ...Option) *Scheduler {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Scheduler{
		streaming: cfg.streaming,
		minSpeed:  cfg.minSpeed,
		maxSpeed:  cfg.maxSpeed,
		interval:  cfg.interval,
		publish:   publish,
	}
}

// Start begins the periodic reveal. Calling Start on a running scheduler is a
// no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.startLocked()
}

func (s *Scheduler) startLocked() {
	stop := make(chan struct{})
	s.stop = stop
	go s.run(stop, s.interval)
}

// Stop tears down the tick timer. No publish happens after Stop returns. The
// cursor is left where it was; Start resumes from it.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	s.stop = nil
}

func (s *Scheduler) run(stop chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.tick(stop)
		}
	}
}

// tick advances the cursor once. A tick that raced with Stop or a re-arm is
// discarded: the stop channel it was started with is no longer current.
func (s *Scheduler) tick(stop chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != stop {
		return
	}
	s.stepLocked()
}

// step advances the cursor once, as a tick would, and reports whether the
// cursor moved and whether the target is fully revealed. It is the
// synchronous entry point used by Simulate.
func (s *Scheduler) step() (advanced, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepLocked()
}

func (s *Scheduler) stepLocked() (advanced, done bool) {
	if !s.streaming || s.cursor >= len(s.target) {
		return false, s.cursor >= len(s.target)
	}
	s.cursor = advanceCursor(s.target, s.cursor, s.drawSpeed())
	s.publishLocked()
	return true, s.cursor >= len(s.target)
}

// drawSpeed draws a fresh uniform speed each tick; it is deliberately not
// smoothed across ticks. Degenerate ranges still yield at least one
// character so progress is guaranteed.
func (s *Scheduler) drawSpeed() int {
	lo, hi := s.minSpeed, s.maxSpeed
	if hi < lo {
		hi = lo
	}
	n := lo
	if span := hi - lo + 1; span > 1 {
		n = lo + rand.IntN(span)
	}
	if n < 1 {
		n = 1
	}
	return n
}

// SetTarget replaces the target text. If the new target is shorter than the
// current cursor the cursor is clamped and the new prefix published
// immediately, so truncation never waits for a tick. While streaming is
// disabled the full new target is published at once.
func (s *Scheduler) SetTarget(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = text
	if !s.streaming || s.cursor > len(text) {
		s.cursor = len(text)
		s.publishLocked()
		return
	}
	// The old cursor may fall inside a multi-byte character of the new text.
	for s.cursor > 0 && s.cursor < len(text) && !utf8.RuneStart(text[s.cursor]) {
		s.cursor--
	}
}

// SetStreaming toggles the gradual reveal. Disabling snaps the cursor to the
// end of the target and publishes the full text, bypassing the tick cadence.
func (s *Scheduler) SetStreaming(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streaming == enabled {
		return
	}
	s.streaming = enabled
	if !enabled {
		s.cursor = len(s.target)
		s.publishLocked()
	}
}

// SetSpeedRange replaces the per-tick speed bounds. The tick timer is torn
// down and restarted so the new cadence starts a fresh period; the cursor is
// preserved.
func (s *Scheduler) SetSpeedRange(min, max int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minSpeed, s.maxSpeed = min, max
	if s.stop != nil {
		s.stopLocked()
		s.startLocked()
	}
}

// Republish publishes the current display buffer without advancing.
func (s *Scheduler) Republish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishLocked()
}

// Display returns the currently revealed prefix of the target.
func (s *Scheduler) Display() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target[:s.cursor]
}

// Done reports whether the full target has been revealed.
func (s *Scheduler) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor >= len(s.target)
}

func (s *Scheduler) publishLocked() {
	if s.publish == nil {
		return
	}
	s.publish(s.target[:s.cursor], s.cursor >= len(s.target))
}

// advanceCursor moves cursor forward by chars characters, never splitting a
// multi-byte character and never passing the end of text.
func advanceCursor(text string, cursor, chars int) int {
	for chars > 0 && cursor < len(text) {
		_, size := utf8.DecodeRuneInString(text[cursor:])
		cursor += size
		chars--
	}
	return cursor
}
