package streammd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns the processed text of a frame into ANSI output for
// terminal display. It wraps glamour's TermRenderer and flattens directive
// spans into constructs glamour understands before rendering.
type Renderer struct {
	tr    *glamour.TermRenderer
	width int
}

// NewRenderer creates a Renderer wrapping at width columns. Extra glamour
// options are appended after the defaults, so callers can pin a style for
// non-terminal output.
func NewRenderer(width int, opts ...glamour.TermRendererOption) (*Renderer, error) {
	all := append([]glamour.TermRendererOption{
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	}, opts...)
	tr, err := glamour.NewTermRenderer(all...)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	return &Renderer{tr: tr, width: width}, nil
}

// Width returns the wrap width the renderer was created with.
func (r *Renderer) Width() int {
	return r.width
}

// RenderFrame renders processed text to ANSI. Trailing newlines are trimmed
// so callers can redraw each frame over the previous one as the stream
// grows.
func (r *Renderer) RenderFrame(processed string) (string, error) {
	out, err := r.tr.Render(FlattenDirectives(processed))
	if err != nil {
		return "", fmt.Errorf("render frame: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}
