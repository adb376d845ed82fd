// Package streammd simulates live, character-by-character arrival of a
// Markdown document and keeps the partial document renderable while it is
// still in flight.
//
// Two components compose the core. A Scheduler owns a cursor into a target
// text and advances it on a fixed cadence by a randomly drawn number of
// characters, publishing the revealed prefix. Repair inspects such a prefix
// and heuristically closes whatever construct the truncation left open (an
// unterminated code fence, a dangling bold marker, an unclosed link target),
// so a downstream Markdown renderer never sees unbalanced markup.
//
// A Session wires the two together and delivers repaired frames to a sink:
//
//	sink := streammd.FrameFunc(func(fr streammd.Frame) error {
//		fmt.Print(fr.Processed)
//		return nil
//	})
//	err := streammd.Simulate(streammd.SimulateRequest{
//		Reader: strings.NewReader(doc),
//		Sink:   sink,
//		Repair: true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// The repair engine is a bounded best-effort heuristic, not a parser; it
// assumes the text only ever grows at the tail, which holds for any prefix
// the Scheduler publishes.
package streammd
