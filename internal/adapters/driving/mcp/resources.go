package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for namedrop resources.
	uriScheme = "namedrop://"

	// spansPrefix precedes the percent-encoded document ID in span resource URIs.
	spansPrefix = uriScheme + "spans/"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: spansPrefix + "{documentId}",
		Name:        "document-spans",
		Description: "Accepted spans of a document; the document ID must be percent-encoded",
		MIMEType:    "application/json",
	}, s.handleSpansResource)
}

// handleSpansResource returns the accepted spans of a document.
func (s *Server) handleSpansResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	spans, err := s.ports.Span.List(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("listing spans: %w", err)
	}

	out := make([]SpanOutput, len(spans))
	for i := range spans {
		out[i] = toSpanOutput(spans[i])
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling spans: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like
// namedrop://spans/{documentId}. Returns "" when the URI does not match.
func extractDocumentID(uri string) string {
	rest, ok := strings.CutPrefix(uri, spansPrefix)
	if !ok || rest == "" {
		return ""
	}
	docID, err := url.PathUnescape(rest)
	if err != nil {
		return ""
	}
	return docID
}

// SpansURI returns the resource URI for the accepted spans of a document.
func SpansURI(documentID string) string {
	return spansPrefix + url.PathEscape(documentID)
}
