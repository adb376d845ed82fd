package streammd

import (
	"regexp"
	"strings"
)

// Directive names the downstream renderer special-cases.
const (
	DirectiveSpoiler = "spoiler"
	DirectiveBadge   = "badge"
	DirectiveCallout = "callout"
)

// Attr is a single directive attribute.
type Attr struct {
	Key   string
	Value string
}

// Directive is an extended Markdown construct the renderer maps to a span-
// or div-like element, distinct from standard Markdown syntax.
type Directive struct {
	Name    string
	Content string
	Attrs   []Attr
}

// Inline returns the inline span form, `:name[content]{key=value}`.
func (d Directive) Inline() string {
	var b strings.Builder
	b.WriteByte(':')
	b.WriteString(d.Name)
	b.WriteByte('[')
	b.WriteString(d.Content)
	b.WriteByte(']')
	d.writeAttrs(&b)
	return b.String()
}

// Container returns the block form fenced with `:::`, wrapping body.
func (d Directive) Container(body string) string {
	var b strings.Builder
	b.WriteString(":::")
	b.WriteString(d.Name)
	if d.Content != "" {
		b.WriteByte('[')
		b.WriteString(d.Content)
		b.WriteByte(']')
	}
	d.writeAttrs(&b)
	b.WriteByte('\n')
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(":::")
	return b.String()
}

func (d Directive) writeAttrs(b *strings.Builder) {
	if len(d.Attrs) == 0 {
		return
	}
	b.WriteByte('{')
	for i, a := range d.Attrs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(a.Value)
	}
	b.WriteByte('}')
}

// ParseInlineDirective parses the inline span form produced by
// Directive.Inline. It reports false when s is not exactly one known inline
// directive.
func ParseInlineDirective(s string) (Directive, bool) {
	sub := inlineDirectivePattern.FindStringSubmatch(s)
	if sub == nil || sub[0] != s || sub[1] != ":" {
		return Directive{}, false
	}
	return Directive{Name: sub[2], Content: sub[3], Attrs: parseAttrs(sub[4])}, true
}

var spoilerPattern = regexp.MustCompile(`!!!(.*?)!!!`)

// rewriteSpoilers converts every `!!!x!!!` span into a spoiler directive.
// This is a content transform defining the document's extended syntax, not a
// stream repair, which is why it applies regardless of the repair toggle.
func rewriteSpoilers(text string) string {
	if !strings.Contains(text, "!!!") {
		return text
	}
	return spoilerPattern.ReplaceAllString(text, ":"+DirectiveSpoiler+"[${1}]")
}
