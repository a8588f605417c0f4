package markup

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// tagPattern matches a single start, end or empty-element tag.
// Attribute content may hold '=', ':', whitespace and quoted strings.
// It never crosses a '<', so an unterminated tag is left in place.
var tagPattern = regexp.MustCompile(`</?[A-Za-z_][\w:.\-]*(?:[^<>"']|"[^"<]*"|'[^'<]*')*>`)

// Strip removes every tag from text.
// The returned table maps offsets in the stripped text to the number of
// characters removed before them. Text without tags is returned unchanged
// with an empty table.
func Strip(text string) (string, *AdjustmentTable) {
	table := &AdjustmentTable{}

	matches := tagPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text, table
	}

	var b strings.Builder
	b.Grow(len(text))

	removed := 0 // characters removed so far
	pos := 0     // character offset reached in the original text
	last := 0    // byte offset just past the previous tag

	for _, m := range matches {
		segment := text[last:m[0]]
		b.WriteString(segment)
		pos += utf8.RuneCountInString(segment)

		tagLen := utf8.RuneCountInString(text[m[0]:m[1]])
		key := pos - removed
		removed += tagLen
		table.record(key, removed)

		pos += tagLen
		last = m[1]
	}
	b.WriteString(text[last:])

	return b.String(), table
}
