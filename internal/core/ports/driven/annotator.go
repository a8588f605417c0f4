package driven

import (
	"context"

	"github.com/custodia-labs/namedrop/internal/core/domain"
)

// Annotator recognises named entities in plain text.
// Implementations may be a remote service or a local gazetteer.
type Annotator interface {
	// Annotate returns the entities recognised in text. Offsets are
	// character offsets into text. An empty result is not an error.
	// Transport and parse failures are reported as *domain.ServiceError.
	Annotate(ctx context.Context, text string, settings domain.AnnotatorSettings) ([]domain.RawAnnotation, error)
}
