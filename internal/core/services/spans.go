package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driven"
	"github.com/custodia-labs/namedrop/internal/core/ports/driving"
)

// Ensure SpanService implements the interface.
var _ driving.SpanService = (*SpanService)(nil)

// SpanService manages accepted spans.
type SpanService struct {
	store driven.SpanStore
}

// NewSpanService creates a new span service.
func NewSpanService(store driven.SpanStore) *SpanService {
	return &SpanService{store: store}
}

// List returns the accepted spans of a document ordered by start offset.
func (s *SpanService) List(ctx context.Context, documentID string) ([]domain.AcceptedSpan, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: document id required", domain.ErrInvalidInput)
	}
	return s.store.List(ctx, documentID)
}

// Remove deletes one accepted span.
func (s *SpanService) Remove(ctx context.Context, documentID, id string) error {
	if documentID == "" || id == "" {
		return fmt.Errorf("%w: document id and span id required", domain.ErrInvalidInput)
	}
	return s.store.Remove(ctx, documentID, id)
}

// Clear deletes all accepted spans of a document.
func (s *SpanService) Clear(ctx context.Context, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("%w: document id required", domain.ErrInvalidInput)
	}
	return s.store.Clear(ctx, documentID)
}
