// Package domain defines the core entities for namedrop.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - TextSpan / Selection: A run of document text and where it starts
//   - RawAnnotation: A candidate entity as reported by an annotator
//   - ResolvedAnnotation: A candidate positioned in document coordinates
//   - AcceptedSpan: A document region already committed to a name type
//   - Suggestion: A resolved annotation that passed acceptance filtering
//
// All offsets are character (rune) indices counted from the start of the
// full document, never byte indices.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
