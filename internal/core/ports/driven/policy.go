package driven

import "github.com/custodia-labs/namedrop/internal/core/domain"

// TaggingPolicy decides which name types may share a region of a document.
type TaggingPolicy interface {
	// Name returns the policy name for logging and configuration.
	Name() string

	// Compatible reports whether candidate may be accepted although it
	// overlaps existing. Candidate NameType is domain.Untyped when
	// classification failed.
	Compatible(candidate, existing domain.AcceptedSpan) bool
}
