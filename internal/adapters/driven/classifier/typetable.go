// Package classifier maps annotator resource types to name types.
package classifier

import (
	"context"
	"fmt"

	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driven"
)

// Ensure TypeTable implements the interface.
var _ driven.Classifier = (*TypeTable)(nil)

// TypeTable classifies an annotation by the first of its types found in a table.
type TypeTable struct {
	types map[string]domain.NameType
}

// NewTypeTable creates a classifier from a type name to name type table.
// Entries with an empty name type are ignored.
func NewTypeTable(types map[string]domain.NameType) *TypeTable {
	table := make(map[string]domain.NameType, len(types))
	for k, v := range types {
		if v.IsTyped() {
			table[k] = v
		}
	}
	return &TypeTable{types: table}
}

// Classify returns the name type of the first known type of the annotation.
// Returns domain.ErrUnclassified when none is known.
func (c *TypeTable) Classify(_ context.Context, annotation domain.ResolvedAnnotation) (domain.NameType, error) {
	for _, t := range annotation.Types {
		if nameType, ok := c.types[t]; ok {
			return nameType, nil
		}
	}
	return domain.Untyped, fmt.Errorf("%s %v: %w", annotation.URI, annotation.Types, domain.ErrUnclassified)
}
