package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/namedrop/internal/acceptance"
	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driven"
	"github.com/custodia-labs/namedrop/internal/core/ports/driving"
	"github.com/custodia-labs/namedrop/internal/logger"
	"github.com/custodia-labs/namedrop/internal/markup"
	"github.com/custodia-labs/namedrop/internal/reconcile"
)

// Ensure AnnotationService implements the interface.
var _ driving.AnnotationService = (*AnnotationService)(nil)

// DefaultConcurrency is the number of requests AnnotateAll runs at once.
const DefaultConcurrency = 4

// AnnotationService runs the strip, annotate, reconcile, remap and filter
// pipeline for a selection.
type AnnotationService struct {
	annotator   driven.Annotator
	store       driven.SpanStore
	filter      *acceptance.Filter
	concurrency int

	// Filtering and committing are serialised per document.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAnnotationService creates a new annotation service.
// A nil policy defaults to acceptance.StrictPolicy.
func NewAnnotationService(
	annotator driven.Annotator,
	classifier driven.Classifier,
	policy driven.TaggingPolicy,
	store driven.SpanStore,
) *AnnotationService {
	return &AnnotationService{
		annotator:   annotator,
		store:       store,
		filter:      acceptance.New(classifier, policy),
		concurrency: DefaultConcurrency,
		locks:       make(map[string]*sync.Mutex),
	}
}

// SetConcurrency sets how many requests AnnotateAll runs at once.
// Values below one are ignored.
func (s *AnnotationService) SetConcurrency(n int) {
	if n >= 1 {
		s.concurrency = n
	}
}

// Annotate runs the pipeline for one selection.
func (s *AnnotationService) Annotate(ctx context.Context, req driving.AnnotateRequest) (*driving.Result, error) {
	if req.Selection == nil {
		return nil, fmt.Errorf("%w: no selection provider", domain.ErrInvalidInput)
	}
	if err := req.Settings.Validate(); err != nil {
		return nil, err
	}

	sel, err := req.Selection.Selection(ctx)
	if errors.Is(err, domain.ErrNoSelection) {
		logger.Info("nothing selected")
		return &driving.Result{Status: driving.StatusNoSelection}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get selection: %w", err)
	}

	logger.Section(fmt.Sprintf("Annotating %s [%d, %d)", sel.DocumentID, sel.Start, sel.End()))
	result := &driving.Result{
		DocumentID: sel.DocumentID,
		Selection:  sel.TextSpan,
	}

	stripped, table := markup.Strip(sel.Text)
	logger.Debug("removed %d characters of markup, adjustments %s", table.TotalRemoved(), table)

	raw, err := s.annotator.Annotate(ctx, stripped, req.Settings)
	if err != nil {
		return nil, domain.NewServiceError(req.Settings.Endpoint, err)
	}
	result.Candidates = len(raw)
	if len(raw) == 0 {
		logger.Info("%v", domain.ErrEmptyResult)
		result.Status = driving.StatusEmpty
		return result, nil
	}

	resolved, skipped := resolve(sel, stripped, table, raw)
	result.Skipped = skipped

	unlock := s.lock(sel.DocumentID)
	defer unlock()

	accepted, err := s.store.List(ctx, sel.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("list accepted spans: %w", err)
	}

	decisions := s.filter.Apply(ctx, resolved, accepted)
	result.Suggestions = acceptance.Accepted(decisions)
	result.Rejected = len(decisions) - len(result.Suggestions)

	if req.Approve {
		committed, err := s.commit(ctx, sel.DocumentID, result.Suggestions)
		if err != nil {
			return nil, err
		}
		result.Committed = committed
	}

	logger.Info("%d candidates, %d suggested, %d rejected, %d skipped",
		result.Candidates, len(result.Suggestions), result.Rejected, result.Skipped)
	result.Status = driving.StatusOK
	return result, nil
}

// AnnotateAll runs requests concurrently and returns results in request order.
// On error the results are still returned; requests that failed or were
// cancelled have a nil entry, and completed ones keep what they committed.
func (s *AnnotationService) AnnotateAll(ctx context.Context, reqs []driving.AnnotateRequest) ([]*driving.Result, error) {
	results := make([]*driving.Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range reqs {
		g.Go(func() error {
			res, err := s.Annotate(gctx, reqs[i])
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

// Approve commits suggestions from an earlier run. Suggestions that now
// clash with the document's accepted spans are dropped.
func (s *AnnotationService) Approve(
	ctx context.Context,
	documentID string,
	suggestions []domain.Suggestion,
) ([]domain.AcceptedSpan, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: document id required", domain.ErrInvalidInput)
	}

	unlock := s.lock(documentID)
	defer unlock()

	accepted, err := s.store.List(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("list accepted spans: %w", err)
	}

	decisions := s.filter.Recheck(suggestions, accepted)
	for _, d := range decisions {
		if !d.Accepted {
			logger.Warn("not approving %q at %d: overlaps %s span at %d",
				d.Suggestion.Annotation.OriginalSurfaceForm, d.Suggestion.Annotation.DocumentOffset,
				d.Conflict.NameType, d.Conflict.Start)
		}
	}

	return s.commit(ctx, documentID, acceptance.Accepted(decisions))
}

// commit stores suggestions as accepted spans in one batch.
func (s *AnnotationService) commit(
	ctx context.Context,
	documentID string,
	suggestions []domain.Suggestion,
) ([]domain.AcceptedSpan, error) {
	if len(suggestions) == 0 {
		return nil, nil
	}

	now := time.Now()
	spans := make([]domain.AcceptedSpan, 0, len(suggestions))
	for _, sg := range suggestions {
		span := sg.Annotation.Span(sg.NameType)
		span.ID = uuid.New().String()
		span.CreatedAt = now
		spans = append(spans, span)
	}

	if err := s.store.Add(ctx, documentID, spans); err != nil {
		return nil, fmt.Errorf("commit spans: %w", err)
	}
	logger.Debug("committed %d spans to %s", len(spans), documentID)
	return spans, nil
}

// lock acquires the document's lock and returns its release function.
func (s *AnnotationService) lock(documentID string) func() {
	s.mu.Lock()
	l, ok := s.locks[documentID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[documentID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// resolve positions raw annotations in document coordinates, offset-ascending.
// The literal surface form is recovered from the markup-bearing selection
// using the tag-free offset, and must start no later than the remapped
// position; anything further right is another occurrence.
// Malformed annotations are skipped and counted.
func resolve(
	sel domain.Selection,
	stripped string,
	table *markup.AdjustmentTable,
	raw []domain.RawAnnotation,
) ([]domain.ResolvedAnnotation, int) {
	ordered := make([]domain.RawAnnotation, len(raw))
	copy(ordered, raw)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Offset < ordered[j].Offset
	})

	strippedLen := utf8.RuneCountInString(stripped)
	resolved := make([]domain.ResolvedAnnotation, 0, len(ordered))
	skipped := 0
	for _, a := range ordered {
		if a.SurfaceForm == "" || a.Offset < 0 || a.Offset >= strippedLen {
			logger.Warn("skipping malformed annotation %q at %d (text has %d characters)",
				a.SurfaceForm, a.Offset, strippedLen)
			skipped++
			continue
		}

		// Markup only shifts a match right, up to its remapped position.
		limit := markup.Remap(a.Offset, table, 0)
		original, err := reconcile.LocateWithin(sel.Text, a.Offset, limit, a.SurfaceForm)
		if err != nil {
			logger.Debug("%v", err)
			original = a.SurfaceForm
		}

		resolved = append(resolved, domain.ResolvedAnnotation{
			RawAnnotation:       a,
			OriginalSurfaceForm: original,
			DocumentOffset:      markup.Remap(a.Offset, table, sel.Start),
		})
	}
	return resolved, skipped
}
