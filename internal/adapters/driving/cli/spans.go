package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/namedrop/internal/core/domain"
)

var spansJSON bool

var spansCmd = &cobra.Command{
	Use:   "spans",
	Short: "Manage accepted spans",
	Long: `List or remove the regions of a document that have been accepted.

A document is named by its ID. A path to an existing file is converted to
the absolute path, which is the default ID used by annotate.`,
}

var spansListCmd = &cobra.Command{
	Use:   "list [document]",
	Short: "List accepted spans of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpansList,
}

var spansRemoveCmd = &cobra.Command{
	Use:   "remove [document] [span-id]",
	Short: "Remove an accepted span",
	Args:  cobra.ExactArgs(2),
	RunE:  runSpansRemove,
}

var spansClearCmd = &cobra.Command{
	Use:   "clear [document]",
	Short: "Remove all accepted spans of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpansClear,
}

func init() {
	spansListCmd.Flags().BoolVar(&spansJSON, "json", false, "output spans as JSON")

	spansCmd.AddCommand(spansListCmd)
	spansCmd.AddCommand(spansRemoveCmd)
	spansCmd.AddCommand(spansClearCmd)
	rootCmd.AddCommand(spansCmd)
}

type spanOutput struct {
	ID          string    `json:"id"`
	Start       int       `json:"start"`
	Length      int       `json:"length"`
	NameType    string    `json:"name_type,omitempty"`
	URI         string    `json:"uri,omitempty"`
	SurfaceForm string    `json:"surface_form,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toSpanOutput(s domain.AcceptedSpan) spanOutput {
	return spanOutput{
		ID:          s.ID,
		Start:       s.Start,
		Length:      s.Length,
		NameType:    string(s.NameType),
		URI:         s.URI,
		SurfaceForm: s.SurfaceForm,
		CreatedAt:   s.CreatedAt,
	}
}

func runSpansList(cmd *cobra.Command, args []string) error {
	if spanService == nil {
		return errors.New("span service not configured")
	}

	docID := resolveDocumentID(args[0])
	spans, err := spanService.List(commandContext(cmd), docID)
	if err != nil {
		return fmt.Errorf("failed to list spans: %w", err)
	}

	if spansJSON {
		out := make([]spanOutput, len(spans))
		for i := range spans {
			out[i] = toSpanOutput(spans[i])
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal spans: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(spans) == 0 {
		cmd.Println("No accepted spans.")
		return nil
	}

	cmd.Printf("Accepted spans for %s:\n", docID)
	for _, s := range spans {
		cmd.Printf("  %s  %d-%d  %-10s %q\n", s.ID, s.Start, s.End(), s.NameType, s.SurfaceForm)
		if s.URI != "" {
			cmd.Printf("      %s\n", s.URI)
		}
	}
	return nil
}

func runSpansRemove(cmd *cobra.Command, args []string) error {
	if spanService == nil {
		return errors.New("span service not configured")
	}

	if err := spanService.Remove(commandContext(cmd), resolveDocumentID(args[0]), args[1]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("span not found: %s", args[1])
		}
		return fmt.Errorf("failed to remove span: %w", err)
	}

	cmd.Printf("Removed span %s\n", args[1])
	return nil
}

func runSpansClear(cmd *cobra.Command, args []string) error {
	if spanService == nil {
		return errors.New("span service not configured")
	}

	docID := resolveDocumentID(args[0])
	if err := spanService.Clear(commandContext(cmd), docID); err != nil {
		return fmt.Errorf("failed to clear spans: %w", err)
	}

	cmd.Printf("Cleared accepted spans for %s\n", docID)
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
