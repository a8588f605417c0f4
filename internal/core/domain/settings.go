package domain

import (
	"fmt"
	"net/url"
)

// Default annotator settings.
const (
	DefaultConfidence = 0.2
	DefaultSupport    = 20
	DefaultEndpoint   = "http://spotlight.dbpedia.org/rest/annotate"
	DefaultRate       = 2.0
)

// AnnotatorSettings are the per-call options passed to an Annotator.
type AnnotatorSettings struct {
	// Confidence is the minimum disambiguation confidence, in [0, 1].
	Confidence float64

	// Support is the minimum resource prominence, >= 0.
	Support int

	// Endpoint is the annotation service URL.
	Endpoint string
}

// DefaultAnnotatorSettings returns the settings used when none are configured.
func DefaultAnnotatorSettings() AnnotatorSettings {
	return AnnotatorSettings{
		Confidence: DefaultConfidence,
		Support:    DefaultSupport,
		Endpoint:   DefaultEndpoint,
	}
}

// Validate checks the settings are within range.
func (s AnnotatorSettings) Validate() error {
	if s.Confidence < 0 || s.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v not in [0, 1]", ErrInvalidInput, s.Confidence)
	}
	if s.Support < 0 {
		return fmt.Errorf("%w: support %d is negative", ErrInvalidInput, s.Support)
	}
	u, err := url.Parse(s.Endpoint)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: endpoint %q is not an absolute URL", ErrInvalidInput, s.Endpoint)
	}
	return nil
}

// PolicyMode selects the tagging policy used by acceptance filtering.
type PolicyMode string

// Available policy modes.
const (
	// PolicyStrict rejects any overlap with an accepted span.
	PolicyStrict PolicyMode = "strict"

	// PolicyNesting allows typed candidates to nest inside or around
	// accepted spans of a different type.
	PolicyNesting PolicyMode = "nesting"
)

// IsValid returns true if the policy mode is recognised.
func (m PolicyMode) IsValid() bool {
	switch m {
	case PolicyStrict, PolicyNesting:
		return true
	default:
		return false
	}
}

// Description returns a human-readable description of the mode.
func (m PolicyMode) Description() string {
	switch m {
	case PolicyStrict:
		return "Strict (tagged regions cannot be re-tagged)"
	case PolicyNesting:
		return "Nesting (different name types may nest)"
	default:
		return "Unknown"
	}
}

// Settings holds all user-configurable options.
type Settings struct {
	Annotator AnnotatorSettings

	// Rate is the maximum number of annotator calls per second.
	Rate float64

	// Gazetteer is the path of the local gazetteer file.
	Gazetteer string

	// Policy selects the acceptance tagging policy.
	Policy PolicyMode

	// Types maps annotator type names to name types for classification.
	Types map[string]NameType
}

// DefaultTypes returns the default annotator type to name type mapping.
func DefaultTypes() map[string]NameType {
	return map[string]NameType{
		"DBpedia:Person":       "persName",
		"Schema:Person":        "persName",
		"DBpedia:Place":        "placeName",
		"Schema:Place":         "placeName",
		"DBpedia:Organisation": "orgName",
		"Schema:Organization":  "orgName",
	}
}

// DefaultSettings returns the settings used when no configuration exists.
// The gazetteer path is left empty; callers resolve it against their data
// directory.
func DefaultSettings() Settings {
	return Settings{
		Annotator: DefaultAnnotatorSettings(),
		Rate:      DefaultRate,
		Policy:    PolicyStrict,
		Types:     DefaultTypes(),
	}
}
