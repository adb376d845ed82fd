package streammd

import (
	"strings"
	"testing"
)

func TestFlattenDirectives(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "spoiler masked",
			in:   "the killer is :spoiler[secret]!",
			want: "the killer is ██████!",
		},
		{
			name: "badge bracketed",
			in:   "release :badge[beta]{variant=info}",
			want: "release **[beta]**",
		},
		{
			name: "callout becomes blockquote",
			in:   ":::callout[Heads up]\nMind the gap.\n:::",
			want: "> **Heads up**\n> Mind the gap.",
		},
		{
			name: "callout without title",
			in:   ":::callout\nBody.\n:::",
			want: "> **Note**\n> Body.",
		},
		{
			name: "unterminated container untouched",
			in:   ":::callout[Heads up]\nstill streaming",
			want: ":::callout[Heads up]\nstill streaming",
		},
		{
			name: "plain text untouched",
			in:   "nothing to see",
			want: "nothing to see",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlattenDirectives(tt.in); got != tt.want {
				t.Fatalf("FlattenDirectives(%q)\nwant: %q\n got: %q", tt.in, tt.want, got)
			}
		})
	}
}

func TestStyleDirectivesHidesSpoilerContent(t *testing.T) {
	styles := DefaultDirectiveStyles()
	got := StyleDirectives("reveal :spoiler[the truth] now", styles)
	if strings.Contains(got, "the truth") {
		t.Fatalf("spoiler content leaked: %q", got)
	}
	if !strings.Contains(got, "reveal") || !strings.Contains(got, "now") {
		t.Fatalf("surrounding text mangled: %q", got)
	}
}

func TestStyleDirectivesKeepsBadgeContent(t *testing.T) {
	styles := DefaultDirectiveStyles()
	got := StyleDirectives("state: :badge[experimental]", styles)
	if !strings.Contains(got, "experimental") {
		t.Fatalf("badge content missing: %q", got)
	}
}
