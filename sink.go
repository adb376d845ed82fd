package streammd

// Frame is one published snapshot of a streaming session.
type Frame struct {
	// Display is the revealed prefix of the target text.
	Display string
	// Processed is Display after auto-repair, ready for rendering.
	Processed string
	// Done reports that the full target has been revealed.
	Done bool
}

// FrameSink receives frames as the stream advances. WriteFrame calls are
// serialized.
type FrameSink interface {
	WriteFrame(Frame) error
}

// FrameFunc adapts a function to a FrameSink.
type FrameFunc func(Frame) error

// WriteFrame calls f.
func (f FrameFunc) WriteFrame(fr Frame) error { return f(fr) }
