package domain

import "unicode/utf8"

// descriptionLimit is the number of characters of an abstract shown
// before it is truncated.
const descriptionLimit = 100

// RawAnnotation is a candidate entity as returned by an Annotator.
// Offset is relative to the tag-free text that was submitted.
type RawAnnotation struct {
	// SurfaceForm is the matched text. Annotators may collapse whitespace,
	// so it can differ from the literal document text.
	SurfaceForm string

	// Offset is the character offset of the match in the submitted text.
	Offset int

	// Label is the preferred display label of the resource, if known.
	Label string

	// URI identifies the recognised resource.
	URI string

	// Abstract is a short description of the resource, if known.
	Abstract string

	// Types are the annotator's type names for the resource
	// (e.g. "DBpedia:Person"). Used by classifiers.
	Types []string

	// Support is the annotator's prominence metric for the resource.
	Support int

	// Score is the annotator's confidence in the match.
	Score float64
}

// ResolvedAnnotation is a RawAnnotation positioned in original-document
// coordinates. It is immutable once produced by the pipeline.
type ResolvedAnnotation struct {
	RawAnnotation

	// OriginalSurfaceForm is the literal document text that produced the match.
	OriginalSurfaceForm string

	// DocumentOffset is the character offset of the match in the document.
	DocumentOffset int
}

// Length returns the length of the original surface form in characters.
func (a ResolvedAnnotation) Length() int {
	return utf8.RuneCountInString(a.OriginalSurfaceForm)
}

// End returns the exclusive document end offset of the annotation.
func (a ResolvedAnnotation) End() int {
	return a.DocumentOffset + a.Length()
}

// Span returns the document region the annotation would occupy
// if accepted with the given name type.
func (a ResolvedAnnotation) Span(nameType NameType) AcceptedSpan {
	return AcceptedSpan{
		Start:       a.DocumentOffset,
		Length:      a.Length(),
		NameType:    nameType,
		URI:         a.URI,
		SurfaceForm: a.OriginalSurfaceForm,
	}
}

// DisplayName returns the label, falling back to the recognised surface form.
func (a ResolvedAnnotation) DisplayName() string {
	if a.Label != "" {
		return a.Label
	}
	if a.OriginalSurfaceForm != "" {
		return a.OriginalSurfaceForm
	}
	return a.SurfaceForm
}

// Description returns the beginning of the resource abstract, which is
// usually enough to tell whether the match is the right resource.
// Falls back to the URI when no abstract is available.
func (a ResolvedAnnotation) Description() string {
	if a.Abstract == "" {
		return a.URI
	}
	if utf8.RuneCountInString(a.Abstract) <= descriptionLimit {
		return a.Abstract
	}
	runes := []rune(a.Abstract)
	return string(runes[:descriptionLimit]) + " ..."
}

// Suggestion is a resolved annotation that passed acceptance filtering,
// together with the name type it was classified as.
type Suggestion struct {
	Annotation ResolvedAnnotation
	NameType   NameType
}
