package streammd

import (
	"strings"
	"testing"
)

func TestSessionRepairsEveryFrame(t *testing.T) {
	target := "intro\n```js\nlet x = 1\n```\ndone"
	var frames []Frame
	s := NewSession(FrameFunc(func(fr Frame) error {
		frames = append(frames, fr)
		return nil
	}), WithRepair(true), WithSpeedRange(3, 7))
	s.SetTarget(target)
	for {
		if _, done := s.step(); done {
			break
		}
	}
	if len(frames) == 0 {
		t.Fatalf("no frames delivered")
	}
	for i, fr := range frames {
		if want := Repair(fr.Display, true); fr.Processed != want {
			t.Fatalf("frame %d processed mismatch\nwant: %q\n got: %q", i, want, fr.Processed)
		}
	}
	last := frames[len(frames)-1]
	if !last.Done || last.Display != target {
		t.Fatalf("final frame incomplete: done=%v display=%q", last.Done, last.Display)
	}
}

func TestSessionRepairToggleRepublishes(t *testing.T) {
	target := "spoiler !!!x!!! and **bold"
	var frames []Frame
	s := NewSession(FrameFunc(func(fr Frame) error {
		frames = append(frames, fr)
		return nil
	}), WithRepair(true), WithStreaming(false))
	s.SetTarget(target)
	if len(frames) != 1 {
		t.Fatalf("expected one frame after full reveal, got %d", len(frames))
	}
	if got := frames[0].Processed; !strings.HasSuffix(got, "**bold**") {
		t.Fatalf("bold not closed with repair on: %q", got)
	}
	s.SetRepair(false)
	if len(frames) != 2 {
		t.Fatalf("toggle did not republish, got %d frames", len(frames))
	}
	got := frames[1].Processed
	if strings.HasSuffix(got, "**bold**") {
		t.Fatalf("bold closed with repair off: %q", got)
	}
	if !strings.Contains(got, ":spoiler[x]") {
		t.Fatalf("spoiler rewrite must survive the toggle: %q", got)
	}
	if s.Frame().Processed != got {
		t.Fatalf("Frame() out of sync with last published frame")
	}
}
