package streammd

import (
	"regexp"
	"strings"
)

const fenceMarker = "```"

var openLinkPattern = regexp.MustCompile(`\[[^\[\]]*\]\([^()]*$`)

// Repair returns text with the construct left open by mid-stream truncation
// heuristically closed. The spoiler rewrite always applies; the closing
// heuristics run only when enabled is true, and at most one of them fires per
// call. Stages are ordered outermost construct first: an open code fence or
// math block swallows everything after it, so inline checks must not run on
// text that is really fence content.
//
// Repair is pure and total; unrecognized or already balanced input is
// returned unchanged.
func Repair(text string, enabled bool) string {
	text = rewriteSpoilers(text)
	if !enabled {
		return text
	}
	if strings.Count(text, fenceMarker)%2 == 1 {
		return text + "\n" + fenceMarker
	}
	if strings.Count(text, "$$")%2 == 1 {
		return text + "$$"
	}
	// Earlier lines are assumed balanced: the stream only grows at the tail.
	// A line of nothing but backticks is a fence marker mid-arrival, not an
	// inline code span.
	if line := lastLine(text); strings.Count(line, "`")%2 == 1 && strings.Trim(line, "`") != "" {
		return text + "`"
	}
	if closed, ok := closeBold(text); ok {
		return closed
	}
	if openLinkPattern.MatchString(text) {
		return text + ")"
	}
	return text
}

func lastLine(text string) string {
	return text[strings.LastIndexByte(text, '\n')+1:]
}

// closeBold closes a trailing `**` opener. The odd marker count keeps
// balanced text untouched; the tail check keeps the stage from firing when a
// closer or italic marker already follows the last opener. Trailing
// whitespace is trimmed first, since a space between content and `**` would
// demote the emphasis to plain text.
func closeBold(text string) (string, bool) {
	if strings.Count(text, "**")%2 == 0 {
		return "", false
	}
	idx := strings.LastIndex(text, "**")
	if containsUnescapedStar(text[idx+2:]) {
		return "", false
	}
	return strings.TrimRight(text, " \t\r\n") + "**", true
}

func containsUnescapedStar(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '*':
			return true
		}
	}
	return false
}
