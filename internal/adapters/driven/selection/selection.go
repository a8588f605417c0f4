// Package selection provides SelectionProvider implementations for callers
// without an editor: a range of a file on disk, or a fixed selection.
package selection

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driven"
)

// Ensure the providers implement the interface.
var (
	_ driven.SelectionProvider = (*File)(nil)
	_ driven.SelectionProvider = Static{}
)

// File selects a character range of a UTF-8 file.
type File struct {
	// Path is the document file.
	Path string

	// DocumentID identifies the document. Defaults to the absolute path.
	DocumentID string

	// Start is the character offset of the selection.
	Start int

	// Length is the selection length in characters. Zero means no selection
	// unless All is set.
	Length int

	// All selects the whole document.
	All bool
}

// Selection reads the file and returns the selected range.
func (f *File) Selection(ctx context.Context) (domain.Selection, error) {
	if err := ctx.Err(); err != nil {
		return domain.Selection{}, err
	}
	if !f.All && f.Length <= 0 {
		return domain.Selection{}, domain.ErrNoSelection
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return domain.Selection{}, fmt.Errorf("read document: %w", err)
	}
	if !utf8.Valid(data) {
		return domain.Selection{}, fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrInvalidInput, f.Path)
	}

	docID, err := f.documentID()
	if err != nil {
		return domain.Selection{}, err
	}

	runes := []rune(string(data))
	start, end := 0, len(runes)
	if !f.All {
		start, end = f.Start, f.Start+f.Length
		if start < 0 || end > len(runes) {
			return domain.Selection{}, fmt.Errorf("%w: range [%d, %d) outside document of %d characters",
				domain.ErrInvalidInput, start, end, len(runes))
		}
	}
	if start == end {
		return domain.Selection{}, domain.ErrNoSelection
	}

	return domain.Selection{
		DocumentID: docID,
		TextSpan:   domain.TextSpan{Start: start, Text: string(runes[start:end])},
	}, nil
}

func (f *File) documentID() (string, error) {
	if f.DocumentID != "" {
		return f.DocumentID, nil
	}
	abs, err := filepath.Abs(f.Path)
	if err != nil {
		return "", fmt.Errorf("resolve document path: %w", err)
	}
	return abs, nil
}

// Static returns a fixed selection. An empty Text means nothing is selected.
type Static struct {
	Value domain.Selection
}

// NewStatic creates a provider for text starting at start in documentID.
func NewStatic(documentID string, start int, text string) Static {
	return Static{Value: domain.Selection{
		DocumentID: documentID,
		TextSpan:   domain.TextSpan{Start: start, Text: text},
	}}
}

// Selection returns the fixed selection.
func (s Static) Selection(ctx context.Context) (domain.Selection, error) {
	if err := ctx.Err(); err != nil {
		return domain.Selection{}, err
	}
	if s.Value.Text == "" {
		return domain.Selection{}, domain.ErrNoSelection
	}
	if s.Value.Start < 0 {
		return domain.Selection{}, fmt.Errorf("%w: negative selection start %d", domain.ErrInvalidInput, s.Value.Start)
	}
	return s.Value, nil
}
