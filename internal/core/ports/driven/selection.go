package driven

import (
	"context"

	"github.com/custodia-labs/namedrop/internal/core/domain"
)

// SelectionProvider supplies the span of the document the user selected.
type SelectionProvider interface {
	// Selection returns the current selection.
	// Returns domain.ErrNoSelection when nothing is selected.
	Selection(ctx context.Context) (domain.Selection, error)
}
