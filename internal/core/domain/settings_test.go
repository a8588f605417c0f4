package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAnnotatorSettings(t *testing.T) {
	s := DefaultAnnotatorSettings()

	assert.InDelta(t, 0.2, s.Confidence, 1e-9)
	assert.Equal(t, 20, s.Support)
	assert.Equal(t, "http://spotlight.dbpedia.org/rest/annotate", s.Endpoint)
	assert.NoError(t, s.Validate())
}

func TestAnnotatorSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings AnnotatorSettings
		wantErr  bool
	}{
		{"defaults", DefaultAnnotatorSettings(), false},
		{"confidence zero", AnnotatorSettings{Confidence: 0, Support: 0, Endpoint: "https://a.example/x"}, false},
		{"confidence one", AnnotatorSettings{Confidence: 1, Support: 5, Endpoint: "https://a.example"}, false},
		{"confidence negative", AnnotatorSettings{Confidence: -0.1, Endpoint: DefaultEndpoint}, true},
		{"confidence above one", AnnotatorSettings{Confidence: 1.5, Endpoint: DefaultEndpoint}, true},
		{"support negative", AnnotatorSettings{Support: -1, Endpoint: DefaultEndpoint}, true},
		{"endpoint empty", AnnotatorSettings{Confidence: 0.5}, true},
		{"endpoint relative", AnnotatorSettings{Endpoint: "/rest/annotate"}, true},
		{"endpoint no host", AnnotatorSettings{Endpoint: "file:///tmp/x"}, true},
		{"endpoint garbage", AnnotatorSettings{Endpoint: "://bad"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPolicyMode_IsValid(t *testing.T) {
	assert.True(t, PolicyStrict.IsValid())
	assert.True(t, PolicyNesting.IsValid())
	assert.False(t, PolicyMode("").IsValid())
	assert.False(t, PolicyMode("lenient").IsValid())
}

func TestPolicyMode_Description(t *testing.T) {
	assert.Contains(t, PolicyStrict.Description(), "Strict")
	assert.Contains(t, PolicyNesting.Description(), "Nesting")
	assert.Equal(t, "Unknown", PolicyMode("other").Description())
}

func TestDefaultTypes(t *testing.T) {
	types := DefaultTypes()

	assert.Equal(t, NameType("persName"), types["DBpedia:Person"])
	assert.Equal(t, NameType("placeName"), types["DBpedia:Place"])
	assert.Equal(t, NameType("orgName"), types["DBpedia:Organisation"])

	// Callers may mutate the returned map.
	types["DBpedia:Person"] = "other"
	assert.Equal(t, NameType("persName"), DefaultTypes()["DBpedia:Person"])
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, DefaultAnnotatorSettings(), s.Annotator)
	assert.InDelta(t, DefaultRate, s.Rate, 1e-9)
	assert.Equal(t, PolicyStrict, s.Policy)
	assert.Empty(t, s.Gazetteer)
	assert.Len(t, s.Types, len(DefaultTypes()))
}
