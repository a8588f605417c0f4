// Package acceptance decides which candidate annotations may be accepted
// without clashing with regions of the document that are already tagged.
package acceptance

import (
	"context"
	"sort"

	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driven"
	"github.com/custodia-labs/namedrop/internal/logger"
)

// Decision is the outcome of checking one candidate.
type Decision struct {
	// Suggestion is the candidate with the name type it was classified as.
	Suggestion domain.Suggestion

	// Accepted is true if the candidate may be accepted.
	Accepted bool

	// Conflict is the accepted span that blocked the candidate, if rejected.
	Conflict *domain.AcceptedSpan
}

// Filter checks candidates against accepted spans using a classifier
// and a tagging policy supplied by the caller.
type Filter struct {
	classifier driven.Classifier
	policy     driven.TaggingPolicy
}

// New creates a filter. A nil classifier treats every candidate as untyped;
// a nil policy defaults to StrictPolicy.
func New(classifier driven.Classifier, policy driven.TaggingPolicy) *Filter {
	if policy == nil {
		policy = StrictPolicy{}
	}
	return &Filter{
		classifier: classifier,
		policy:     policy,
	}
}

// Classify returns the candidate's name type, or domain.Untyped when the
// classifier is missing or fails. Failures are logged, never returned.
func (f *Filter) Classify(ctx context.Context, candidate domain.ResolvedAnnotation) domain.NameType {
	if f.classifier == nil {
		return domain.Untyped
	}
	nameType, err := f.classifier.Classify(ctx, candidate)
	if err != nil {
		logger.Warn("classifying %q (%s): %v", candidate.DisplayName(), candidate.URI, err)
		return domain.Untyped
	}
	return nameType
}

// Evaluate classifies candidate and checks it against accepted.
func (f *Filter) Evaluate(
	ctx context.Context,
	candidate domain.ResolvedAnnotation,
	accepted []domain.AcceptedSpan,
) Decision {
	nameType := f.Classify(ctx, candidate)
	return f.check(domain.Suggestion{Annotation: candidate, NameType: nameType}, accepted)
}

// IsAcceptable reports whether candidate may be accepted given accepted.
func (f *Filter) IsAcceptable(
	ctx context.Context,
	candidate domain.ResolvedAnnotation,
	accepted []domain.AcceptedSpan,
) bool {
	return f.Evaluate(ctx, candidate, accepted).Accepted
}

// Apply checks a batch of candidates in ascending document offset order.
// Each accepted candidate blocks later overlapping ones; rejected
// candidates never block anything. The accepted slice is not modified.
func (f *Filter) Apply(
	ctx context.Context,
	candidates []domain.ResolvedAnnotation,
	accepted []domain.AcceptedSpan,
) []Decision {
	ordered := make([]domain.ResolvedAnnotation, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DocumentOffset < ordered[j].DocumentOffset
	})

	working := make([]domain.AcceptedSpan, len(accepted), len(accepted)+len(ordered))
	copy(working, accepted)

	decisions := make([]Decision, 0, len(ordered))
	for _, candidate := range ordered {
		d := f.Evaluate(ctx, candidate, working)
		if d.Accepted {
			working = append(working, candidate.Span(d.Suggestion.NameType))
		} else {
			logger.Debug("rejected %q at %d: overlaps %s span at %d",
				candidate.OriginalSurfaceForm, candidate.DocumentOffset,
				d.Conflict.NameType, d.Conflict.Start)
		}
		decisions = append(decisions, d)
	}
	return decisions
}

// Accepted returns the suggestions of the accepted decisions, in order.
func Accepted(decisions []Decision) []domain.Suggestion {
	result := make([]domain.Suggestion, 0, len(decisions))
	for _, d := range decisions {
		if d.Accepted {
			result = append(result, d.Suggestion)
		}
	}
	return result
}

// Recheck evaluates already classified suggestions against accepted,
// keeping their name types. Used when committing suggestions that were
// produced by an earlier pipeline run.
func (f *Filter) Recheck(suggestions []domain.Suggestion, accepted []domain.AcceptedSpan) []Decision {
	ordered := make([]domain.Suggestion, len(suggestions))
	copy(ordered, suggestions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Annotation.DocumentOffset < ordered[j].Annotation.DocumentOffset
	})

	working := make([]domain.AcceptedSpan, len(accepted), len(accepted)+len(ordered))
	copy(working, accepted)

	decisions := make([]Decision, 0, len(ordered))
	for _, s := range ordered {
		d := f.check(s, working)
		if d.Accepted {
			working = append(working, s.Annotation.Span(s.NameType))
		}
		decisions = append(decisions, d)
	}
	return decisions
}

// check applies the tagging policy to every overlapping accepted span.
func (f *Filter) check(s domain.Suggestion, accepted []domain.AcceptedSpan) Decision {
	span := s.Annotation.Span(s.NameType)
	for i := range accepted {
		if !span.Overlaps(accepted[i]) {
			continue
		}
		if !f.policy.Compatible(span, accepted[i]) {
			conflict := accepted[i]
			return Decision{Suggestion: s, Accepted: false, Conflict: &conflict}
		}
	}
	return Decision{Suggestion: s, Accepted: true}
}
