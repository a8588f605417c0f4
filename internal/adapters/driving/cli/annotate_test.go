package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driving"
)

const parisDocument = "<i>Paris</i> is lovely"

func TestAnnotateCmd_Flags(t *testing.T) {
	for _, name := range []string{"start", "length", "all", "doc", "approve", "interactive", "json", "confidence", "support"} {
		assert.NotNil(t, annotateCmd.Flags().Lookup(name), "missing flag %s", name)
	}
	assert.Equal(t, "n", annotateCmd.Flags().Lookup("length").Shorthand)
	assert.Equal(t, "i", annotateCmd.Flags().Lookup("interactive").Shorthand)
}

func TestAnnotateCmd_RequiresFile(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "annotate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestAnnotateCmd_SuggestsEntities(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := writeDocument(t, parisDocument)
	out, err := execute(t, "annotate", "--all", path)

	require.NoError(t, err)
	assert.Contains(t, out, "1 suggestion(s) from 1 candidate(s)")
	assert.Contains(t, out, "[1] Paris  3-8  placeName")
	assert.Contains(t, out, "Paris is the capital")
}

func TestAnnotateCmd_SelectionRange(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := writeDocument(t, "Dear Sir, "+parisDocument)
	out, err := execute(t, "annotate", "--start", "10", "--length", "22", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Paris  13-18  placeName")
}

func TestAnnotateCmd_NoSelection(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := writeDocument(t, parisDocument)
	out, err := execute(t, "annotate", path)

	require.NoError(t, err)
	assert.Contains(t, out, "nothing selected")
}

func TestAnnotateCmd_NoEntities(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := writeDocument(t, "<p>nothing to see</p>")
	out, err := execute(t, "annotate", "--all", path)

	require.NoError(t, err)
	assert.Contains(t, out, "no entities recognised")
}

func TestAnnotateCmd_ConfidenceOverride(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := writeDocument(t, parisDocument)
	out, err := execute(t, "annotate", "--all", "--confidence", "0.95", path)

	require.NoError(t, err)
	assert.Contains(t, out, "no entities recognised")
}

func TestAnnotateCmd_InvalidSettings(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := writeDocument(t, parisDocument)
	_, err := execute(t, "annotate", "--all", "--confidence", "2", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "confidence")
}

func TestAnnotateCmd_ApproveBlocksLaterSuggestions(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := writeDocument(t, parisDocument)

	out, err := execute(t, "annotate", "--all", "--approve", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Accepted 1 span(s).")

	out, err = execute(t, "spans", "list", path)
	require.NoError(t, err)
	assert.Contains(t, out, "3-8")
	assert.Contains(t, out, `"Paris"`)

	out, err = execute(t, "annotate", "--all", path)
	require.NoError(t, err)
	assert.Contains(t, out, "0 suggestion(s) from 1 candidate(s), 1 already tagged")
}

func TestAnnotateCmd_Interactive(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := writeDocument(t, parisDocument)
	rootCmd.SetIn(strings.NewReader("y\n"))

	out, err := execute(t, "annotate", "--all", "--interactive", path)
	require.NoError(t, err)
	assert.Contains(t, out, `Paris "Paris" at 3 as placeName? [y/N]`)
	assert.Contains(t, out, "Accepted 1 span(s).")

	out, err = execute(t, "spans", "list", "--json", path)
	require.NoError(t, err)
	var spans []spanOutput
	require.NoError(t, json.Unmarshal([]byte(out), &spans))
	require.Len(t, spans, 1)
	assert.Equal(t, 3, spans[0].Start)
}

func TestAnnotateCmd_InteractiveDeclined(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := writeDocument(t, parisDocument)
	rootCmd.SetIn(strings.NewReader("n\n"))

	out, err := execute(t, "annotate", "--all", "--interactive", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "Accepted")

	out, err = execute(t, "spans", "list", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No accepted spans.")
}

func TestAnnotateCmd_ApproveAndInteractiveExclusive(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := writeDocument(t, parisDocument)
	_, err := execute(t, "annotate", "--all", "--approve", "--interactive", path)
	assert.Error(t, err)
}

func TestAnnotateCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	first := writeDocument(t, parisDocument)
	second := writeDocument(t, "nobody")

	out, err := execute(t, "annotate", "--all", "--json", first, second)
	require.NoError(t, err)

	var results []annotateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)

	assert.Equal(t, "ok", results[0].Status)
	require.Len(t, results[0].Suggestions, 1)
	assert.Equal(t, 3, results[0].Suggestions[0].Offset)
	assert.Equal(t, 5, results[0].Suggestions[0].Length)
	assert.Equal(t, "placeName", results[0].Suggestions[0].NameType)
	abs, err := filepath.Abs(first)
	require.NoError(t, err)
	assert.Equal(t, abs, results[0].DocumentID)

	assert.Equal(t, "empty", results[1].Status)
	assert.Empty(t, results[1].Suggestions)
}

func TestAnnotateCmd_DocRequiresSingleFile(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "annotate", "--all", "--doc", "letter", "a.xml", "b.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--doc")
}

func TestAnnotateCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "annotate", "--all", filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "annotate failed")
}

func TestAnnotateCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	annotationService = nil

	_, err := execute(t, "annotate", "--all", "a.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "annotation service not configured")
}

func TestAnnotateCmd_ReportsCommitsBeforeFailure(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := writeDocument(t, parisDocument)
	missing := filepath.Join(t.TempDir(), "missing.xml")

	out, err := execute(t, "annotate", "--all", "--approve", path, missing)
	require.Error(t, err)

	spans, listErr := spanService.List(context.Background(), path)
	require.NoError(t, listErr)
	if len(spans) == 1 {
		assert.Contains(t, out, path+": accepted 1 span(s) before the error")
	} else {
		assert.NotContains(t, out, "before the error")
	}
}

func TestReportCommitted(t *testing.T) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	reportCommitted(cmd, []string{"a.xml", "b.xml", "c.xml"}, []*driving.Result{
		{Committed: []domain.AcceptedSpan{{ID: "1"}, {ID: "2"}}},
		nil,
		{},
	})

	assert.Equal(t, "a.xml: accepted 2 span(s) before the error\n", buf.String())
}
