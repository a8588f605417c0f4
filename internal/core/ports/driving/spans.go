package driving

import (
	"context"

	"github.com/custodia-labs/namedrop/internal/core/domain"
)

// SpanService manages the accepted spans of documents.
type SpanService interface {
	// List returns the accepted spans of a document ordered by start offset.
	List(ctx context.Context, documentID string) ([]domain.AcceptedSpan, error)

	// Remove deletes one accepted span.
	Remove(ctx context.Context, documentID, id string) error

	// Clear deletes all accepted spans of a document.
	Clear(ctx context.Context, documentID string) error
}
