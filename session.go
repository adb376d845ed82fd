package streammd

import "sync/atomic"

// Session composes a Scheduler with the auto-repair engine: every prefix the
// scheduler publishes is repaired and delivered to the sink as a Frame. The
// scheduler deals in prefixes and the repair engine in whole strings; the
// processed text is recomputed from scratch on every change.
type Session struct {
	sched  *Scheduler
	sink   FrameSink
	repair atomic.Bool
	frame  atomic.Pointer[Frame]
}

// NewSession creates a Session delivering frames to sink.
func NewSession(sink FrameSink, opts ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	s := &Session{sink: sink}
	s.repair.Store(cfg.repair)
	s.frame.Store(&Frame{Done: true})
	s.sched = NewScheduler(s.publish, opts...)
	return s
}

// Start begins the periodic reveal.
func (s *Session) Start() { s.sched.Start() }

// Stop tears down the tick timer. No frame is delivered after Stop returns.
func (s *Session) Stop() { s.sched.Stop() }

// SetTarget replaces the target text.
func (s *Session) SetTarget(text string) { s.sched.SetTarget(text) }

// SetStreaming toggles the gradual reveal; disabling publishes the full
// target immediately.
func (s *Session) SetStreaming(enabled bool) { s.sched.SetStreaming(enabled) }

// SetSpeedRange replaces the per-tick speed bounds, restarting the cadence.
func (s *Session) SetSpeedRange(min, max int) { s.sched.SetSpeedRange(min, max) }

// SetRepair toggles the auto-repair heuristics and republishes the current
// frame so the change takes effect without waiting for a tick.
func (s *Session) SetRepair(enabled bool) {
	s.repair.Store(enabled)
	s.sched.Republish()
}

// Frame returns the most recently published frame.
func (s *Session) Frame() Frame { return *s.frame.Load() }

// step advances the underlying scheduler once; used by Simulate.
func (s *Session) step() (advanced, done bool) { return s.sched.step() }

func (s *Session) republish() { s.sched.Republish() }

func (s *Session) publish(display string, done bool) {
	fr := Frame{
		Display:   display,
		Processed: Repair(display, s.repair.Load()),
		Done:      done,
	}
	s.frame.Store(&fr)
	if s.sink != nil {
		_ = s.sink.WriteFrame(fr)
	}
}
