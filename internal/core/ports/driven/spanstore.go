package driven

import (
	"context"

	"github.com/custodia-labs/namedrop/internal/core/domain"
)

// SpanStore persists the regions of each document already committed to a tag.
type SpanStore interface {
	// List returns the accepted spans of a document ordered by start offset.
	List(ctx context.Context, documentID string) ([]domain.AcceptedSpan, error)

	// Add commits spans to a document. Either all spans are stored or none.
	// Spans without an ID are assigned one.
	Add(ctx context.Context, documentID string, spans []domain.AcceptedSpan) error

	// Remove deletes one accepted span.
	// Returns domain.ErrNotFound if it does not exist.
	Remove(ctx context.Context, documentID, id string) error

	// Clear deletes all accepted spans of a document.
	Clear(ctx context.Context, documentID string) error
}
