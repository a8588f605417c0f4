// Package annotator holds Annotator decorators shared by all annotator
// implementations.
package annotator

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.Annotator = (*RateLimited)(nil)

// RateLimited throttles calls to another Annotator with a token bucket and
// reports every failure as a *domain.ServiceError.
type RateLimited struct {
	next   driven.Annotator
	bucket *rate.Limiter
}

// NewRateLimited allows perSecond calls per second with bursts of one.
// A non-positive rate disables throttling.
func NewRateLimited(next driven.Annotator, perSecond float64) *RateLimited {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &RateLimited{
		next:   next,
		bucket: rate.NewLimiter(limit, 1),
	}
}

// Annotate waits for a token and then delegates.
func (r *RateLimited) Annotate(
	ctx context.Context,
	text string,
	settings domain.AnnotatorSettings,
) ([]domain.RawAnnotation, error) {
	if err := r.bucket.Wait(ctx); err != nil {
		return nil, domain.NewServiceError(settings.Endpoint, err)
	}
	result, err := r.next.Annotate(ctx, text, settings)
	if err != nil {
		return nil, domain.NewServiceError(settings.Endpoint, err)
	}
	return result, nil
}
