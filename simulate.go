package streammd

import (
	"fmt"
	"io"
	"time"
)

// SimulateRequest configures Simulate.
type SimulateRequest struct {
	Reader io.Reader
	Sink   FrameSink
	// TickInterval is the delay between frames; zero delivers frames
	// back to back.
	TickInterval time.Duration
	// MinSpeed and MaxSpeed bound characters revealed per frame. Both
	// zero selects the defaults.
	MinSpeed int
	MaxSpeed int
	Repair   bool
}

// Simulate reads a complete Markdown document from Reader and replays it as a
// live stream, delivering one repaired frame per tick to Sink. It blocks
// until the final frame (Done set) has been delivered and is intended for
// simulating inference-style arrival over an already known text.
func Simulate(req SimulateRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("simulate: Reader is nil")
	}
	if req.Sink == nil {
		return fmt.Errorf("simulate: Sink is nil")
	}
	data, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("simulate: read: %w", err)
	}
	if err := ValidateInput(data); err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	opts := []Option{
		WithRepair(req.Repair),
		WithTickInterval(req.TickInterval),
	}
	if req.MinSpeed != 0 || req.MaxSpeed != 0 {
		opts = append(opts, WithSpeedRange(req.MinSpeed, req.MaxSpeed))
	}
	var sinkErr error
	session := NewSession(FrameFunc(func(fr Frame) error {
		if sinkErr == nil {
			sinkErr = req.Sink.WriteFrame(fr)
		}
		return sinkErr
	}), opts...)
	session.SetTarget(string(data))
	if len(data) == 0 {
		session.republish()
		if sinkErr != nil {
			return fmt.Errorf("simulate: write frame: %w", sinkErr)
		}
		return nil
	}
	for {
		advanced, done := session.step()
		if sinkErr != nil {
			return fmt.Errorf("simulate: write frame: %w", sinkErr)
		}
		if done || !advanced {
			return nil
		}
		if req.TickInterval > 0 {
			time.Sleep(req.TickInterval)
		}
	}
}
