package mcp

import (
	"context"

	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driving"
)

// mockAnnotationService is a mock implementation of driving.AnnotationService.
type mockAnnotationService struct {
	result *driving.Result
	err    error

	lastReq       driving.AnnotateRequest
	lastSelection domain.Selection
}

func (m *mockAnnotationService) Annotate(ctx context.Context, req driving.AnnotateRequest) (*driving.Result, error) {
	m.lastReq = req
	if req.Selection != nil {
		m.lastSelection, _ = req.Selection.Selection(ctx)
	}
	return m.result, m.err
}

func (m *mockAnnotationService) AnnotateAll(ctx context.Context, reqs []driving.AnnotateRequest) ([]*driving.Result, error) {
	results := make([]*driving.Result, len(reqs))
	for i, req := range reqs {
		r, err := m.Annotate(ctx, req)
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return results, nil
}

func (m *mockAnnotationService) Approve(
	_ context.Context,
	_ string,
	_ []domain.Suggestion,
) ([]domain.AcceptedSpan, error) {
	return nil, m.err
}

// mockSpanService is a mock implementation of driving.SpanService.
type mockSpanService struct {
	spans []domain.AcceptedSpan
	err   error

	lastDocumentID string
}

func (m *mockSpanService) List(_ context.Context, documentID string) ([]domain.AcceptedSpan, error) {
	m.lastDocumentID = documentID
	return m.spans, m.err
}

func (m *mockSpanService) Remove(_ context.Context, documentID, _ string) error {
	m.lastDocumentID = documentID
	return m.err
}

func (m *mockSpanService) Clear(_ context.Context, documentID string) error {
	m.lastDocumentID = documentID
	return m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.Settings) error { return m.err }

func (m *mockSettingsService) Set(_, _ string) error { return m.err }

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) GetDefaults() domain.Settings { return domain.DefaultSettings() }
