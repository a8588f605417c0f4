// Package reconcile recovers the literal text behind a surface form that an
// annotator returned with its whitespace collapsed.
//
// Annotators may report "New York" for a document that reads "New   York"
// or "New\nYork". Reconcile relocates the match in the original text with a
// whitespace-flexible pattern and returns the text exactly as written.
package reconcile

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/custodia-labs/namedrop/internal/core/domain"
)

// flexibleSpace matches one or more whitespace characters of any kind.
const flexibleSpace = `[\s\v\p{Z}\x{85}]+`

// Reconcile returns the literal substring of original that produced the
// normalized surface form, matched at offset.
// Surface forms without whitespace are returned unchanged. When the form
// does not match at offset, normalized is returned as is.
func Reconcile(original string, offset int, normalized string) string {
	form, err := Locate(original, offset, normalized)
	if err != nil {
		return normalized
	}
	return form
}

// Locate is Reconcile with the miss reported as domain.ErrReconciliationMiss.
func Locate(original string, offset int, normalized string) (string, error) {
	return LocateWithin(original, offset, offset, normalized)
}

// LocateWithin is Locate for a match that may start anywhere in
// [offset, limit]. It is used when offset was measured in text from which
// markup has since been removed, so the literal match can only have moved
// right, and by no more than limit-offset characters. A match starting past
// limit belongs to another occurrence and is a miss.
func LocateWithin(original string, offset, limit int, normalized string) (string, error) {
	if !strings.ContainsFunc(normalized, unicode.IsSpace) {
		return normalized, nil
	}

	start, ok := byteOffset(original, offset)
	if !ok {
		return "", fmt.Errorf("%w: offset %d outside text", domain.ErrReconciliationMiss, offset)
	}
	if limit < offset {
		limit = offset
	}
	last, ok := byteOffset(original, limit)
	if !ok {
		last = len(original)
	}

	pattern, err := Pattern(normalized)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrReconciliationMiss, err)
	}

	loc := pattern.FindStringIndex(original[start:])
	if loc == nil || start+loc[0] > last {
		return "", fmt.Errorf("%w: %q at offset %d", domain.ErrReconciliationMiss, normalized, offset)
	}
	return original[start+loc[0] : start+loc[1]], nil
}

// Pattern compiles normalized into a literal pattern in which every maximal
// run of whitespace matches one or more whitespace characters of any kind.
func Pattern(normalized string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.Grow(len(normalized) + 16)

	inSpace := false
	literalStart := 0
	for i, r := range normalized {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteString(regexp.QuoteMeta(normalized[literalStart:i]))
				b.WriteString(flexibleSpace)
				inSpace = true
			}
			continue
		}
		if inSpace {
			literalStart = i
			inSpace = false
		}
	}
	if !inSpace {
		b.WriteString(regexp.QuoteMeta(normalized[literalStart:]))
	}

	return regexp.Compile(b.String())
}

// byteOffset converts a character offset into a byte offset in s.
// An offset equal to the character count addresses the end of s.
func byteOffset(s string, offset int) (int, bool) {
	if offset < 0 {
		return 0, false
	}
	n := 0
	for i := range s {
		if n == offset {
			return i, true
		}
		n++
	}
	if n == offset {
		return len(s), true
	}
	return 0, false
}
