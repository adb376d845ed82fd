package streammd

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// DirectiveStyles groups the terminal presentation of the known directives.
type DirectiveStyles struct {
	Spoiler lipgloss.Style
	Badge   lipgloss.Style
	Callout lipgloss.Style
}

// DefaultDirectiveStyles returns the stock directive presentation: spoilers
// hidden behind a block of their own color, badges inverted, callout titles
// bold.
func DefaultDirectiveStyles() DirectiveStyles {
	return DirectiveStyles{
		Spoiler: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Background(lipgloss.Color("8")),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("63")).
			Padding(0, 1),
		Callout: lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true),
	}
}

var (
	// The leading colons are captured because Go regexps have no
	// lookbehind: a match with more than one colon is the head of a
	// container form and must be left alone.
	inlineDirectivePattern = regexp.MustCompile(
		`(:+)(spoiler|badge|callout)\[([^\]\n]*)\](?:\{([^}\n]*)\})?`)
	containerDirectivePattern = regexp.MustCompile(
		`(?ms)^:::(spoiler|badge|callout)(?:\[([^\]\n]*)\])?(?:\{([^}\n]*)\})?[ \t]*\n(.*?)^:::[ \t]*$`)
)

// FlattenDirectives rewrites directive spans into plain Markdown a generic
// renderer can display: spoiler content is masked, badges become bracketed
// strong text, callouts become blockquotes with a bold title. Unterminated
// containers are left alone until their closing fence arrives.
func FlattenDirectives(text string) string {
	text = containerDirectivePattern.ReplaceAllStringFunc(text, func(m string) string {
		name, content, _, body := splitContainer(m)
		switch name {
		case DirectiveCallout:
			return flattenCallout(content, body)
		default:
			return quoteBlock(flattenInline(name, content), body)
		}
	})
	return inlineDirectivePattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := inlineDirectivePattern.FindStringSubmatch(m)
		if sub[1] != ":" {
			return m
		}
		return flattenInline(sub[2], sub[3])
	})
}

// StyleDirectives is the ANSI counterpart of FlattenDirectives, used when
// frames bypass the Markdown renderer and go to the terminal as-is.
func StyleDirectives(text string, styles DirectiveStyles) string {
	text = containerDirectivePattern.ReplaceAllStringFunc(text, func(m string) string {
		name, content, _, body := splitContainer(m)
		title := content
		if title == "" {
			title = strings.ToUpper(name[:1]) + name[1:]
		}
		switch name {
		case DirectiveCallout:
			return styles.Callout.Render("▍ "+title) + "\n" + body
		default:
			return styleInline(name, content, styles) + "\n" + body
		}
	})
	return inlineDirectivePattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := inlineDirectivePattern.FindStringSubmatch(m)
		if sub[1] != ":" {
			return m
		}
		return styleInline(sub[2], sub[3], styles)
	})
}

func flattenInline(name, content string) string {
	switch name {
	case DirectiveSpoiler:
		return maskSpoiler(content)
	case DirectiveBadge:
		return "**[" + content + "]**"
	default:
		return content
	}
}

func styleInline(name, content string, styles DirectiveStyles) string {
	switch name {
	case DirectiveSpoiler:
		return styles.Spoiler.Render(maskSpoiler(content))
	case DirectiveBadge:
		return styles.Badge.Render(content)
	default:
		return content
	}
}

func flattenCallout(title, body string) string {
	if title == "" {
		title = "Note"
	}
	return quoteBlock("**"+title+"**", body)
}

func quoteBlock(head, body string) string {
	var b strings.Builder
	b.WriteString("> ")
	b.WriteString(head)
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		b.WriteString("\n> ")
		b.WriteString(line)
	}
	return b.String()
}

func maskSpoiler(content string) string {
	n := utf8.RuneCountInString(content)
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func splitContainer(m string) (name, content, attrs, body string) {
	sub := containerDirectivePattern.FindStringSubmatch(m)
	return sub[1], sub[2], sub[3], sub[4]
}

// parseAttrs splits a `key=value key=value` attribute list.
func parseAttrs(s string) []Attr {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	attrs := make([]Attr, 0, len(fields))
	for _, f := range fields {
		key, value, _ := strings.Cut(f, "=")
		attrs = append(attrs, Attr{Key: key, Value: value})
	}
	return attrs
}
