package driving

import (
	"context"

	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driven"
)

// Status describes how an annotation request ended.
type Status string

// Request outcomes. Only StatusOK carries suggestions.
const (
	// StatusOK means the annotator was called and candidates were filtered.
	StatusOK Status = "ok"

	// StatusNoSelection means nothing was selected; nothing was done.
	StatusNoSelection Status = "no_selection"

	// StatusEmpty means the annotator recognised no entities.
	StatusEmpty Status = "empty"
)

// AnnotateRequest describes one run of the annotation pipeline.
type AnnotateRequest struct {
	// Selection supplies the document span to annotate.
	Selection driven.SelectionProvider

	// Settings are passed through to the annotator.
	Settings domain.AnnotatorSettings

	// Approve commits accepted suggestions to the span store.
	Approve bool
}

// Result is the outcome of one annotation request.
type Result struct {
	// Status describes how the request ended.
	Status Status

	// DocumentID is the document the selection belonged to.
	DocumentID string

	// Selection is the span that was annotated.
	Selection domain.TextSpan

	// Suggestions are the accepted candidates in ascending document offset.
	Suggestions []domain.Suggestion

	// Committed are the spans stored when the request asked for approval.
	Committed []domain.AcceptedSpan

	// Candidates is the number of annotations the annotator returned.
	Candidates int

	// Skipped is the number of malformed annotations that were dropped.
	Skipped int

	// Rejected is the number of candidates that clashed with accepted spans.
	Rejected int
}

// AnnotationService runs the annotation pipeline.
type AnnotationService interface {
	// Annotate strips markup from the selection, annotates it, maps the
	// candidates back to document offsets and filters them against the
	// document's accepted spans.
	Annotate(ctx context.Context, req AnnotateRequest) (*Result, error)

	// AnnotateAll runs several requests concurrently. Results are returned
	// in request order. The first error cancels the remaining requests; the
	// results are returned with it, nil for requests that did not complete.
	// Commits are per request, so completed approvals are kept.
	AnnotateAll(ctx context.Context, reqs []AnnotateRequest) ([]*Result, error)

	// Approve commits suggestions from an earlier run after checking them
	// again against the document's accepted spans. Returns the committed spans.
	Approve(ctx context.Context, documentID string, suggestions []domain.Suggestion) ([]domain.AcceptedSpan, error)
}
