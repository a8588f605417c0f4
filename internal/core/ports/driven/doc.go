// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the annotation pipeline to function:
//
//   - Annotator: Recognises entities in tag-free text
//   - SelectionProvider: Supplies the selected document span
//   - SpanStore: Accepted span persistence
//   - TaggingPolicy: Which name types may overlap
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Classifier: Maps annotations to name types. Without it every
//     candidate is untyped and checked with the generic overlap rule.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or annotator package
package driven
