package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/namedrop/internal/adapters/driven/selection"
	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driving"
)

// AnnotateInput is the input schema for the annotate tool.
type AnnotateInput struct {
	Text       string   `json:"text" jsonschema:"the selected text, markup included"`
	DocumentID string   `json:"document_id" jsonschema:"identifier of the document the text belongs to"`
	Start      int      `json:"start,omitempty" jsonschema:"character offset of the text in the document"`
	Confidence *float64 `json:"confidence,omitempty" jsonschema:"minimum confidence in [0, 1], overrides settings"`
	Support    *int     `json:"support,omitempty" jsonschema:"minimum support, overrides settings"`
	Approve    bool     `json:"approve,omitempty" jsonschema:"accept all suggestions for the document"`
}

// AnnotateOutput is the output schema for the annotate tool.
type AnnotateOutput struct {
	Status      string             `json:"status"`
	Suggestions []SuggestionOutput `json:"suggestions"`
	Committed   []SpanOutput       `json:"committed,omitempty"`
	Candidates  int                `json:"candidates"`
	Skipped     int                `json:"skipped"`
	Rejected    int                `json:"rejected"`
}

// SuggestionOutput represents a single suggested entity.
type SuggestionOutput struct {
	Name        string `json:"name"`
	SurfaceForm string `json:"surface_form"`
	Offset      int    `json:"offset"`
	Length      int    `json:"length"`
	NameType    string `json:"name_type,omitempty"`
	URI         string `json:"uri"`
	Description string `json:"description,omitempty"`
}

// ListSpansInput is the input schema for the list_spans tool.
type ListSpansInput struct {
	DocumentID string `json:"document_id" jsonschema:"identifier of the document"`
}

// ListSpansOutput is the output schema for the list_spans tool.
type ListSpansOutput struct {
	Spans []SpanOutput `json:"spans"`
	Count int          `json:"count"`
}

// RemoveSpanInput is the input schema for the remove_span tool.
type RemoveSpanInput struct {
	DocumentID string `json:"document_id" jsonschema:"identifier of the document"`
	SpanID     string `json:"span_id" jsonschema:"identifier of the accepted span"`
}

// RemoveSpanOutput is the output schema for the remove_span tool.
type RemoveSpanOutput struct {
	Removed bool `json:"removed"`
}

// SpanOutput represents an accepted span.
type SpanOutput struct {
	ID          string `json:"id"`
	Start       int    `json:"start"`
	Length      int    `json:"length"`
	NameType    string `json:"name_type,omitempty"`
	URI         string `json:"uri,omitempty"`
	SurfaceForm string `json:"surface_form,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "annotate",
		Description: "Suggest named entities in a text selection, with offsets in the original document",
	}, s.handleAnnotate)

	if s.ports.Span == nil {
		return
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_spans",
		Description: "List the regions of a document already accepted as named entities",
	}, s.handleListSpans)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_span",
		Description: "Remove an accepted region from a document",
	}, s.handleRemoveSpan)
}

// handleAnnotate handles the annotate tool invocation.
func (s *Server) handleAnnotate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnnotateInput,
) (*mcp.CallToolResult, AnnotateOutput, error) {
	if input.DocumentID == "" {
		return nil, AnnotateOutput{}, fmt.Errorf("%w: document_id is required", domain.ErrInvalidInput)
	}

	settings, err := s.annotatorSettings()
	if err != nil {
		return nil, AnnotateOutput{}, err
	}
	if input.Confidence != nil {
		settings.Confidence = *input.Confidence
	}
	if input.Support != nil {
		settings.Support = *input.Support
	}

	result, err := s.ports.Annotation.Annotate(ctx, driving.AnnotateRequest{
		Selection: selection.NewStatic(input.DocumentID, input.Start, input.Text),
		Settings:  settings,
		Approve:   input.Approve,
	})
	if err != nil {
		return nil, AnnotateOutput{}, err
	}

	output := AnnotateOutput{
		Status:      string(result.Status),
		Suggestions: make([]SuggestionOutput, len(result.Suggestions)),
		Candidates:  result.Candidates,
		Skipped:     result.Skipped,
		Rejected:    result.Rejected,
	}

	for i, sg := range result.Suggestions {
		a := sg.Annotation
		output.Suggestions[i] = SuggestionOutput{
			Name:        a.DisplayName(),
			SurfaceForm: a.OriginalSurfaceForm,
			Offset:      a.DocumentOffset,
			Length:      a.Length(),
			NameType:    string(sg.NameType),
			URI:         a.URI,
			Description: a.Description(),
		}
	}
	for _, span := range result.Committed {
		output.Committed = append(output.Committed, toSpanOutput(span))
	}

	return nil, output, nil
}

// handleListSpans handles the list_spans tool invocation.
func (s *Server) handleListSpans(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListSpansInput,
) (*mcp.CallToolResult, ListSpansOutput, error) {
	spans, err := s.ports.Span.List(ctx, input.DocumentID)
	if err != nil {
		return nil, ListSpansOutput{}, err
	}

	output := ListSpansOutput{
		Spans: make([]SpanOutput, len(spans)),
		Count: len(spans),
	}
	for i := range spans {
		output.Spans[i] = toSpanOutput(spans[i])
	}

	return nil, output, nil
}

// handleRemoveSpan handles the remove_span tool invocation.
func (s *Server) handleRemoveSpan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RemoveSpanInput,
) (*mcp.CallToolResult, RemoveSpanOutput, error) {
	err := s.ports.Span.Remove(ctx, input.DocumentID, input.SpanID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, RemoveSpanOutput{Removed: false}, nil
	}
	if err != nil {
		return nil, RemoveSpanOutput{}, err
	}
	return nil, RemoveSpanOutput{Removed: true}, nil
}

func toSpanOutput(s domain.AcceptedSpan) SpanOutput {
	return SpanOutput{
		ID:          s.ID,
		Start:       s.Start,
		Length:      s.Length,
		NameType:    string(s.NameType),
		URI:         s.URI,
		SurfaceForm: s.SurfaceForm,
	}
}
