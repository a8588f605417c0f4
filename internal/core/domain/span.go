package domain

import (
	"time"
	"unicode/utf8"
)

// TextSpan is a contiguous run of document text.
// Start is the character offset of the first rune of Text in the document.
type TextSpan struct {
	// Start is the character offset of the span within the document.
	Start int

	// Text is the literal span content, possibly including inline markup.
	Text string
}

// Length returns the span length in characters.
func (s TextSpan) Length() int {
	return utf8.RuneCountInString(s.Text)
}

// End returns the exclusive end offset of the span.
func (s TextSpan) End() int {
	return s.Start + s.Length()
}

// Selection is the user's current selection within a document.
type Selection struct {
	// DocumentID identifies the document the selection belongs to.
	// Accepted spans are tracked per document.
	DocumentID string

	TextSpan
}

// NameType is the semantic tag a region of the document is committed to,
// e.g. "persName" or "placeName". The empty NameType means untyped.
type NameType string

// Untyped is the NameType used when classification fails.
const Untyped NameType = ""

// IsTyped returns true if the name type carries a semantic tag.
func (t NameType) IsTyped() bool {
	return t != Untyped
}

// String returns the string representation.
func (t NameType) String() string {
	if t == Untyped {
		return "untyped"
	}
	return string(t)
}

// AcceptedSpan is a document region already committed to a tag.
// Accepted spans are owned by the caller's document model; the
// annotation pipeline only reads them.
type AcceptedSpan struct {
	// ID is the unique identifier for the accepted span.
	ID string

	// Start is the character offset of the region in the document.
	Start int

	// Length is the region length in characters.
	Length int

	// NameType is the tag the region is committed to.
	NameType NameType

	// URI is the resource the region was linked to, if any.
	URI string

	// SurfaceForm is the literal document text of the region.
	SurfaceForm string

	// CreatedAt is when the region was accepted.
	CreatedAt time.Time
}

// End returns the exclusive end offset of the span.
func (s AcceptedSpan) End() int {
	return s.Start + s.Length
}

// Overlaps reports whether the half-open ranges of s and other intersect.
// Zero-length spans overlap nothing.
func (s AcceptedSpan) Overlaps(other AcceptedSpan) bool {
	if s.Length <= 0 || other.Length <= 0 {
		return false
	}
	return s.Start < other.End() && other.Start < s.End()
}

// Contains reports whether other lies entirely within s.
func (s AcceptedSpan) Contains(other AcceptedSpan) bool {
	return s.Start <= other.Start && other.End() <= s.End()
}
