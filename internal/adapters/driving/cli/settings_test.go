package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_Show(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "Endpoint: http://spotlight.dbpedia.org/rest/annotate")
	assert.Contains(t, out, "Confidence: 0.2")
	assert.Contains(t, out, "Support: 20")
	assert.Contains(t, out, "Rate: 2 requests/s")
	assert.Contains(t, out, "Gazetteer: (default)")
	assert.Contains(t, out, "Mode: Strict")
	assert.Contains(t, out, "DBpedia:Person -> persName")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsCmd_SetThenShow(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "settings", "set", "policy.mode", "nesting")
	require.NoError(t, err)
	assert.Contains(t, out, "Set policy.mode = nesting")

	_, err = execute(t, "settings", "set", "annotator.rate", "0")
	require.NoError(t, err)

	_, err = execute(t, "settings", "set", "classifier.types.DBpedia:Writer", "persName")
	require.NoError(t, err)

	out, err = execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Mode: Nesting")
	assert.Contains(t, out, "Rate: unlimited")
	assert.Contains(t, out, "DBpedia:Writer -> persName")
}

func TestSettingsCmd_SetInvalid(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	tests := [][]string{
		{"settings", "set", "annotator.confidence", "high"},
		{"settings", "set", "annotator.confidence", "1.5"},
		{"settings", "set", "policy.mode", "loose"},
		{"settings", "set", "unknown.key", "1"},
	}
	for _, args := range tests {
		_, err := execute(t, args...)
		assert.Error(t, err, "args %v", args)
	}
}

func TestSettingsCmd_Keys(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "settings", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "annotator.confidence")
	assert.Contains(t, out, "policy.mode")
	assert.Contains(t, out, "classifier.types.<type>")
}

func TestSettingsCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	settingsService = nil

	_, err := execute(t, "settings", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
