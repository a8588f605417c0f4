package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driven"
)

// Ensure SpanStore implements the interface.
var _ driven.SpanStore = (*SpanStore)(nil)

// SpanStore is an in-memory implementation of driven.SpanStore.
type SpanStore struct {
	mu    sync.RWMutex
	spans map[string][]domain.AcceptedSpan
}

// NewSpanStore creates a new in-memory span store.
func NewSpanStore() *SpanStore {
	return &SpanStore{
		spans: make(map[string][]domain.AcceptedSpan),
	}
}

// List returns the accepted spans of a document ordered by start offset.
func (s *SpanStore) List(_ context.Context, documentID string) ([]domain.AcceptedSpan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.spans[documentID]
	result := make([]domain.AcceptedSpan, len(stored))
	copy(result, stored)
	return result, nil
}

// Add commits spans to a document. Nothing is stored if any span is invalid.
func (s *SpanStore) Add(_ context.Context, documentID string, spans []domain.AcceptedSpan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(s.spans[documentID])+len(spans))
	for _, existing := range s.spans[documentID] {
		seen[existing.ID] = true
	}

	now := time.Now()
	prepared := make([]domain.AcceptedSpan, 0, len(spans))
	for _, span := range spans {
		if span.Start < 0 || span.Length <= 0 {
			return fmt.Errorf("%w: span [%d, %d)", domain.ErrInvalidInput, span.Start, span.End())
		}
		if span.ID == "" {
			span.ID = uuid.New().String()
		}
		if seen[span.ID] {
			return fmt.Errorf("%w: duplicate span id %s", domain.ErrInvalidInput, span.ID)
		}
		seen[span.ID] = true
		if span.CreatedAt.IsZero() {
			span.CreatedAt = now
		}
		prepared = append(prepared, span)
	}

	merged := append(s.spans[documentID][:len(s.spans[documentID]):len(s.spans[documentID])], prepared...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start < merged[j].Start
	})
	s.spans[documentID] = merged
	return nil
}

// Remove deletes one accepted span.
func (s *SpanStore) Remove(_ context.Context, documentID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.spans[documentID]
	for i := range stored {
		if stored[i].ID == id {
			s.spans[documentID] = append(stored[:i:i], stored[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("span %s: %w", id, domain.ErrNotFound)
}

// Clear deletes all accepted spans of a document.
func (s *SpanStore) Clear(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.spans, documentID)
	return nil
}
