package streammd

import "time"

// Option configures a Scheduler or Session.
type Option func(*config)

type config struct {
	interval  time.Duration
	minSpeed  int
	maxSpeed  int
	streaming bool
	repair    bool
}

func defaultConfig() config {
	return config{
		interval:  DefaultTickInterval,
		minSpeed:  DefaultMinSpeed,
		maxSpeed:  DefaultMaxSpeed,
		streaming: true,
	}
}

// WithTickInterval sets the reveal cadence. Non-positive values keep the default.
func WithTickInterval(d time.Duration) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.interval = d
		}
	}
}

// WithSpeedRange bounds how many characters are revealed per tick. The draw
// itself guarantees forward progress, so a zero min is tolerated.
func WithSpeedRange(min, max int) Option {
	return func(cfg *config) {
		cfg.minSpeed, cfg.maxSpeed = min, max
	}
}

// WithStreaming enables or disables the gradual reveal. When disabled the
// full target is published immediately.
func WithStreaming(enabled bool) Option {
	return func(cfg *config) {
		cfg.streaming = enabled
	}
}

// WithRepair enables or disables the auto-repair heuristics on published
// frames. The spoiler rewrite applies regardless.
func WithRepair(enabled bool) Option {
	return func(cfg *config) {
		cfg.repair = enabled
	}
}
