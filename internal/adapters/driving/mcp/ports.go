package mcp

import (
	"github.com/custodia-labs/namedrop/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Annotation runs the annotation pipeline.
	Annotation driving.AnnotationService

	// Span manages accepted spans. Optional.
	Span driving.SpanService

	// Settings supplies annotator settings. Optional; defaults are used
	// when it is nil. Read on every call so configuration changes apply
	// without a restart.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Annotation == nil {
		return ErrMissingAnnotationService
	}
	return nil
}
