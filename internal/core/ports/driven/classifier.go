package driven

import (
	"context"

	"github.com/custodia-labs/namedrop/internal/core/domain"
)

// Classifier decides which name type a candidate annotation maps to.
type Classifier interface {
	// Classify returns the name type for the annotation.
	// Returns domain.ErrUnclassified (or any error) when no type applies;
	// callers treat failures as untyped rather than rejecting the candidate.
	Classify(ctx context.Context, annotation domain.ResolvedAnnotation) (domain.NameType, error)
}
