package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/namedrop/internal/adapters/driven/selection"
	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driving"
)

var (
	annotateStart       int
	annotateLength      int
	annotateAll         bool
	annotateDocID       string
	annotateApprove     bool
	annotateInteractive bool
	annotateJSON        bool
	annotateConfidence  float64
	annotateSupport     int
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [file...]",
	Short: "Suggest named entities for a selection",
	Long: `Annotates a character range of each file with named entities.

Markup tags are stripped before the text is sent to the annotator and every
suggestion is mapped back to its position in the original file. Candidates
that overlap regions already accepted for the document are dropped.

Use --approve to accept every suggestion, or --interactive to confirm each
one. Accepted regions are stored and block later overlapping suggestions.
With several files, commits are per file: if one file fails, files that
were already approved keep their spans and are listed before the error.`,
	Example: `  namedrop annotate letter.xml --start 120 --length 400
  namedrop annotate --all --interactive letter.xml
  namedrop annotate --all --json a.xml b.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().IntVar(&annotateStart, "start", 0, "character offset of the selection")
	annotateCmd.Flags().IntVarP(&annotateLength, "length", "n", 0, "selection length in characters")
	annotateCmd.Flags().BoolVarP(&annotateAll, "all", "a", false, "select the whole file")
	annotateCmd.Flags().StringVar(&annotateDocID, "doc", "", "document ID (defaults to the absolute file path)")
	annotateCmd.Flags().BoolVar(&annotateApprove, "approve", false, "accept all suggestions")
	annotateCmd.Flags().BoolVarP(&annotateInteractive, "interactive", "i", false, "confirm each suggestion")
	annotateCmd.Flags().BoolVar(&annotateJSON, "json", false, "output results as JSON")
	annotateCmd.Flags().Float64Var(&annotateConfidence, "confidence", domain.DefaultConfidence, "minimum confidence, overrides settings")
	annotateCmd.Flags().IntVar(&annotateSupport, "support", domain.DefaultSupport, "minimum support, overrides settings")
	annotateCmd.MarkFlagsMutuallyExclusive("approve", "interactive")
	annotateCmd.MarkFlagsMutuallyExclusive("json", "interactive")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if annotateDocID != "" && len(args) > 1 {
		return errors.New("--doc can only be used with a single file")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	annotatorSettings := settings.Annotator
	if cmd.Flags().Changed("confidence") {
		annotatorSettings.Confidence = annotateConfidence
	}
	if cmd.Flags().Changed("support") {
		annotatorSettings.Support = annotateSupport
	}

	reqs := make([]driving.AnnotateRequest, len(args))
	for i, path := range args {
		reqs[i] = driving.AnnotateRequest{
			Selection: &selection.File{
				Path:       path,
				DocumentID: annotateDocID,
				Start:      annotateStart,
				Length:     annotateLength,
				All:        annotateAll,
			},
			Settings: annotatorSettings,
			Approve:  annotateApprove,
		}
	}

	ctx := commandContext(cmd)
	results, err := annotationService.AnnotateAll(ctx, reqs)
	if err != nil {
		reportCommitted(cmd, args, results)
		return fmt.Errorf("annotate failed: %w", err)
	}

	if annotateInteractive {
		if err := reviewSuggestions(ctx, cmd, results); err != nil {
			return err
		}
	}

	if annotateJSON {
		return outputAnnotateJSON(cmd, args, results)
	}

	for i, result := range results {
		outputAnnotateText(cmd, args[i], result)
	}
	return nil
}

// reportCommitted lists the files whose spans were stored before a
// sibling request failed. Commits are per file and are not rolled back.
func reportCommitted(cmd *cobra.Command, files []string, results []*driving.Result) {
	for i, result := range results {
		if result == nil || len(result.Committed) == 0 {
			continue
		}
		cmd.Printf("%s: accepted %d span(s) before the error\n", files[i], len(result.Committed))
	}
}

// reviewSuggestions asks the user to confirm each suggestion and commits
// the confirmed ones per document.
func reviewSuggestions(ctx context.Context, cmd *cobra.Command, results []*driving.Result) error {
	reader := bufio.NewReader(cmd.InOrStdin())

	for _, result := range results {
		if result.Status != driving.StatusOK || len(result.Suggestions) == 0 {
			continue
		}

		var chosen []domain.Suggestion
		for _, s := range result.Suggestions {
			prompt := fmt.Sprintf("%s %q at %d as %s?",
				s.Annotation.DisplayName(), s.Annotation.OriginalSurfaceForm, s.Annotation.DocumentOffset, s.NameType)
			if confirm(cmd, reader, prompt) {
				chosen = append(chosen, s)
			}
		}
		if len(chosen) == 0 {
			continue
		}

		committed, err := annotationService.Approve(ctx, result.DocumentID, chosen)
		if err != nil {
			return fmt.Errorf("failed to approve suggestions: %w", err)
		}
		result.Committed = committed
	}
	return nil
}

type annotateOutput struct {
	File        string             `json:"file"`
	DocumentID  string             `json:"document_id,omitempty"`
	Status      string             `json:"status"`
	Start       int                `json:"start"`
	Suggestions []suggestionOutput `json:"suggestions"`
	Committed   []spanOutput       `json:"committed,omitempty"`
	Candidates  int                `json:"candidates"`
	Skipped     int                `json:"skipped"`
	Rejected    int                `json:"rejected"`
}

type suggestionOutput struct {
	Name        string `json:"name"`
	SurfaceForm string `json:"surface_form"`
	Offset      int    `json:"offset"`
	Length      int    `json:"length"`
	NameType    string `json:"name_type,omitempty"`
	URI         string `json:"uri"`
	Description string `json:"description,omitempty"`
}

func toSuggestionOutput(s domain.Suggestion) suggestionOutput {
	return suggestionOutput{
		Name:        s.Annotation.DisplayName(),
		SurfaceForm: s.Annotation.OriginalSurfaceForm,
		Offset:      s.Annotation.DocumentOffset,
		Length:      s.Annotation.Length(),
		NameType:    string(s.NameType),
		URI:         s.Annotation.URI,
		Description: s.Annotation.Description(),
	}
}

func outputAnnotateJSON(cmd *cobra.Command, files []string, results []*driving.Result) error {
	out := make([]annotateOutput, len(results))
	for i, result := range results {
		out[i] = annotateOutput{
			File:        files[i],
			DocumentID:  result.DocumentID,
			Status:      string(result.Status),
			Start:       result.Selection.Start,
			Suggestions: make([]suggestionOutput, 0, len(result.Suggestions)),
			Candidates:  result.Candidates,
			Skipped:     result.Skipped,
			Rejected:    result.Rejected,
		}
		for _, s := range result.Suggestions {
			out[i].Suggestions = append(out[i].Suggestions, toSuggestionOutput(s))
		}
		for _, span := range result.Committed {
			out[i].Committed = append(out[i].Committed, toSpanOutput(span))
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnnotateText(cmd *cobra.Command, file string, result *driving.Result) {
	switch result.Status {
	case driving.StatusNoSelection:
		cmd.Printf("%s: nothing selected (use --start/--length or --all)\n", file)
		return
	case driving.StatusEmpty:
		cmd.Printf("%s: no entities recognised\n", file)
		return
	}

	cmd.Printf("%s: %d suggestion(s) from %d candidate(s)", file, len(result.Suggestions), result.Candidates)
	if result.Rejected > 0 {
		cmd.Printf(", %d already tagged", result.Rejected)
	}
	if result.Skipped > 0 {
		cmd.Printf(", %d skipped", result.Skipped)
	}
	cmd.Println()

	for i, s := range result.Suggestions {
		a := s.Annotation
		cmd.Printf("  [%d] %s  %d-%d  %s\n", i+1, a.DisplayName(), a.DocumentOffset, a.End(), s.NameType)
		if a.OriginalSurfaceForm != a.DisplayName() {
			cmd.Printf("      Text: %q\n", a.OriginalSurfaceForm)
		}
		if desc := a.Description(); desc != "" {
			cmd.Printf("      %s\n", desc)
		}
	}

	if len(result.Committed) > 0 {
		cmd.Printf("Accepted %d span(s).\n", len(result.Committed))
	}
}

// confirm prints a yes/no prompt. On a terminal a single key press answers
// it; otherwise a line is read from the command input.
func confirm(cmd *cobra.Command, reader *bufio.Reader, prompt string) bool {
	cmd.Print(prompt + " [y/N]: ")

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		key := readKey(f)
		cmd.Println()
		return key == 'y' || key == 'Y'
	}

	answer := strings.ToLower(readLine(reader))
	cmd.Println()
	return answer == "y" || answer == "yes"
}

//nolint:errcheck // CLI helper, error ignored for UX
func readKey(f *os.File) byte {
	state, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return 0
	}
	defer term.Restore(int(f.Fd()), state)

	buf := make([]byte, 1)
	if _, err := f.Read(buf); err != nil {
		return 0
	}
	return buf[0]
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
