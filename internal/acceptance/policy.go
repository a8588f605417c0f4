package acceptance

import (
	"fmt"

	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driven"
)

// Ensure policies implement the interface.
var (
	_ driven.TaggingPolicy = StrictPolicy{}
	_ driven.TaggingPolicy = NestingPolicy{}
)

// StrictPolicy never lets a candidate overlap an accepted span:
// a region already tagged cannot be re-tagged.
type StrictPolicy struct{}

// Name returns the policy name.
func (StrictPolicy) Name() string {
	return string(domain.PolicyStrict)
}

// Compatible always returns false.
func (StrictPolicy) Compatible(_, _ domain.AcceptedSpan) bool {
	return false
}

// NestingPolicy lets a typed candidate nest strictly inside, or strictly
// around, an accepted span of a different name type, e.g. a placeName
// inside an orgName. Untyped candidates and partial overlaps are rejected.
type NestingPolicy struct{}

// Name returns the policy name.
func (NestingPolicy) Name() string {
	return string(domain.PolicyNesting)
}

// Compatible reports whether candidate and existing nest.
func (NestingPolicy) Compatible(candidate, existing domain.AcceptedSpan) bool {
	if !candidate.NameType.IsTyped() || !existing.NameType.IsTyped() {
		return false
	}
	if candidate.NameType == existing.NameType {
		return false
	}
	if candidate.Start == existing.Start && candidate.Length == existing.Length {
		return false
	}
	return existing.Contains(candidate) || candidate.Contains(existing)
}

// PolicyFor returns the built-in policy for a mode.
func PolicyFor(mode domain.PolicyMode) (driven.TaggingPolicy, error) {
	switch mode {
	case domain.PolicyStrict, "":
		return StrictPolicy{}, nil
	case domain.PolicyNesting:
		return NestingPolicy{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown policy %q", domain.ErrInvalidInput, mode)
	}
}
