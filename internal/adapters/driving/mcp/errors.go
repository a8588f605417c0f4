// Package mcp provides an MCP (Model Context Protocol) server adapter for namedrop.
// It lets assistants annotate text and inspect accepted spans.
package mcp

import "errors"

// ErrMissingAnnotationService is returned when the annotation service is not provided.
var ErrMissingAnnotationService = errors.New("mcp: annotation service is required")
