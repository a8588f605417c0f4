package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driven"
)

// spanStore implements driven.SpanStore.
type spanStore struct {
	store *Store
}

var _ driven.SpanStore = (*spanStore)(nil)

// List returns the accepted spans of a document ordered by start offset.
func (s *spanStore) List(ctx context.Context, documentID string) ([]domain.AcceptedSpan, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, start_offset, length, name_type, uri, surface_form, created_at
		FROM accepted_spans WHERE document_id = ?
		ORDER BY start_offset, rowid
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying spans: %w", err)
	}
	defer rows.Close()

	return scanSpans(rows)
}

// Add commits spans in a single transaction.
func (s *spanStore) Add(ctx context.Context, documentID string, spans []domain.AcceptedSpan) error {
	if len(spans) == 0 {
		return nil
	}

	now := time.Now().UTC()
	prepared := make([]domain.AcceptedSpan, len(spans))
	for i, span := range spans {
		if span.Start < 0 || span.Length <= 0 {
			return fmt.Errorf("%w: span [%d, %d)", domain.ErrInvalidInput, span.Start, span.End())
		}
		if span.ID == "" {
			span.ID = uuid.New().String()
		}
		if span.CreatedAt.IsZero() {
			span.CreatedAt = now
		}
		prepared[i] = span
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO accepted_spans (id, document_id, start_offset, length, name_type, uri, surface_form, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, span := range prepared {
		if _, err := stmt.ExecContext(ctx, span.ID, documentID, span.Start, span.Length,
			string(span.NameType), span.URI, span.SurfaceForm, span.CreatedAt.UTC()); err != nil {
			return fmt.Errorf("inserting span %s: %w", span.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing spans: %w", err)
	}
	return nil
}

// Remove deletes one accepted span.
func (s *spanStore) Remove(ctx context.Context, documentID, id string) error {
	res, err := s.store.db.ExecContext(ctx,
		"DELETE FROM accepted_spans WHERE document_id = ? AND id = ?", documentID, id)
	if err != nil {
		return fmt.Errorf("removing span: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing span: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("span %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Clear deletes all accepted spans of a document.
func (s *spanStore) Clear(ctx context.Context, documentID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM accepted_spans WHERE document_id = ?", documentID)
	if err != nil {
		return fmt.Errorf("clearing spans: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

func scanSpans(rows *sql.Rows) ([]domain.AcceptedSpan, error) {
	spans := make([]domain.AcceptedSpan, 0)
	for rows.Next() {
		var span domain.AcceptedSpan
		var nameType string
		var createdAt sql.NullTime
		if err := rows.Scan(&span.ID, &span.Start, &span.Length, &nameType,
			&span.URI, &span.SurfaceForm, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning span: %w", err)
		}
		span.NameType = domain.NameType(nameType)
		if createdAt.Valid {
			span.CreatedAt = createdAt.Time
		}
		spans = append(spans, span)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spans: %w", err)
	}
	return spans, nil
}
