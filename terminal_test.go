package streammd

import (
	"strings"
	"testing"
)

func TestTermControlCountLines(t *testing.T) {
	tests := []struct {
		name  string
		width int
		in    string
		want  int
	}{
		{name: "empty", width: 80, in: "", want: 0},
		{name: "single line", width: 80, in: "hello", want: 1},
		{name: "two lines", width: 80, in: "hello\nworld", want: 2},
		{name: "trailing newline not counted", width: 80, in: "hello\n", want: 1},
		{name: "blank interior line counts", width: 80, in: "a\n\nb", want: 3},
		{name: "wrapped line", width: 10, in: strings.Repeat("x", 25), want: 3},
		{name: "exact multiple of width", width: 10, in: strings.Repeat("x", 20), want: 2},
		{name: "ansi sequences ignored", width: 10, in: "\x1b[1mhi\x1b[0m", want: 1},
		{name: "zero width falls back to line count", width: 0, in: strings.Repeat("x", 200), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := NewTermControl(&strings.Builder{}, tt.width)
			if got := tc.CountLines(tt.in); got != tt.want {
				t.Fatalf("CountLines(%q) width=%d: want %d, got %d", tt.in, tt.width, tt.want, got)
			}
		})
	}
}

func TestTermControlClearLines(t *testing.T) {
	var b strings.Builder
	tc := NewTermControl(&b, 80)
	if err := tc.ClearLines(2); err != nil {
		t.Fatalf("ClearLines: %v", err)
	}
	if got, want := b.String(), "\x1b[2A\x1b[1G\x1b[0J"; got != want {
		t.Fatalf("ClearLines(2) wrote %q, want %q", got, want)
	}
}

func TestTermControlClearLinesZeroIsNoop(t *testing.T) {
	var b strings.Builder
	tc := NewTermControl(&b, 80)
	if err := tc.ClearLines(0); err != nil {
		t.Fatalf("ClearLines: %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("ClearLines(0) wrote %q", b.String())
	}
}
