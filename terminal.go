package streammd

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/ansi"
)

// Cursor control for in-place frame redraw.
const (
	cursorUpFmt  = "\x1b[%dA"
	cursorToCol1 = "\x1b[1G"
	eraseBelow   = "\x1b[0J"
)

// TermControl repositions the cursor so each rendered frame overwrites the
// previous one instead of scrolling.
type TermControl struct {
	w     io.Writer
	width int
}

// NewTermControl creates a TermControl for a terminal of the given width.
func NewTermControl(w io.Writer, width int) *TermControl {
	return &TermControl{w: w, width: width}
}

// ClearLines moves the cursor up n lines, returns it to column one, and
// erases everything below.
func (t *TermControl) ClearLines(n int) error {
	if n <= 0 {
		return nil
	}
	_, err := fmt.Fprintf(t.w, cursorUpFmt+cursorToCol1+eraseBelow, n)
	return err
}

// CountLines reports how many terminal lines rendered occupies, accounting
// for ANSI escape sequences and wrapping at the configured width.
func (t *TermControl) CountLines(rendered string) int {
	if rendered == "" {
		return 0
	}
	lines := strings.Split(rendered, "\n")
	total := 0
	for i, line := range lines {
		if i == len(lines)-1 && line == "" {
			continue
		}
		w := ansi.PrintableRuneWidth(line)
		switch {
		case w == 0:
			total++
		case t.width > 0:
			total += (w + t.width - 1) / t.width
		default:
			total++
		}
	}
	return total
}
