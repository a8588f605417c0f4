package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/namedrop/internal/core/domain"
	"github.com/custodia-labs/namedrop/internal/core/ports/driven"
	"github.com/custodia-labs/namedrop/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyConfidence = "annotator.confidence"
	keySupport    = "annotator.support"
	keyEndpoint   = "annotator.endpoint"
	keyRate       = "annotator.rate"
	keyGazetteer  = "annotator.gazetteer"
	keyPolicyMode = "policy.mode"
	prefixTypes   = "classifier.types"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults; configured types extend the default type table.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Annotator: domain.AnnotatorSettings{
			Confidence: s.getFloat(keyConfidence, defaults.Annotator.Confidence),
			Support:    s.getInt(keySupport, defaults.Annotator.Support),
			Endpoint:   s.getString(keyEndpoint, defaults.Annotator.Endpoint),
		},
		Rate:      s.getFloat(keyRate, defaults.Rate),
		Gazetteer: s.configStore.GetString(keyGazetteer),
		Policy:    s.getPolicyMode(defaults.Policy),
		Types:     defaults.Types,
	}

	for typeName, nameType := range s.configStore.GetStringMap(prefixTypes) {
		settings.Types[typeName] = domain.NameType(nameType)
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Annotator.Validate(); err != nil {
		return err
	}
	if !settings.Policy.IsValid() {
		return fmt.Errorf("%w: policy mode %q", domain.ErrInvalidInput, settings.Policy)
	}

	if err := s.configStore.Set(keyConfidence, settings.Annotator.Confidence); err != nil {
		return fmt.Errorf("save confidence: %w", err)
	}
	if err := s.configStore.Set(keySupport, settings.Annotator.Support); err != nil {
		return fmt.Errorf("save support: %w", err)
	}
	if err := s.configStore.Set(keyEndpoint, settings.Annotator.Endpoint); err != nil {
		return fmt.Errorf("save endpoint: %w", err)
	}
	if err := s.configStore.Set(keyRate, settings.Rate); err != nil {
		return fmt.Errorf("save rate: %w", err)
	}
	if settings.Gazetteer != "" {
		if err := s.configStore.Set(keyGazetteer, settings.Gazetteer); err != nil {
			return fmt.Errorf("save gazetteer: %w", err)
		}
	}
	if err := s.configStore.Set(keyPolicyMode, string(settings.Policy)); err != nil {
		return fmt.Errorf("save policy mode: %w", err)
	}

	defaults := domain.DefaultTypes()
	for typeName, nameType := range settings.Types {
		if defaults[typeName] == nameType {
			continue
		}
		if err := s.configStore.Set(prefixTypes+"."+typeName, string(nameType)); err != nil {
			return fmt.Errorf("save type %s: %w", typeName, err)
		}
	}

	return nil
}

// Set parses and stores a single setting. Keys below classifier.types
// map an annotator type name to a name type.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyConfidence:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Annotator.Confidence = v
	case keySupport:
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Annotator.Support = v
	case keyEndpoint:
		settings.Annotator.Endpoint = value
	case keyRate:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		settings.Rate = v
	case keyGazetteer:
		settings.Gazetteer = value
	case keyPolicyMode:
		settings.Policy = domain.PolicyMode(value)
	default:
		typeName, ok := strings.CutPrefix(key, prefixTypes+".")
		if !ok || typeName == "" {
			return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
		}
		settings.Types[typeName] = domain.NameType(value)
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save type %s: %w", typeName, err)
		}
		return nil
	}

	return s.Save(settings)
}

// Keys returns the setting keys accepted by Set, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{keyConfidence, keySupport, keyEndpoint, keyRate, keyGazetteer, keyPolicyMode, prefixTypes + ".<type>"}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getPolicyMode(defaultVal domain.PolicyMode) domain.PolicyMode {
	mode := domain.PolicyMode(s.configStore.GetString(keyPolicyMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
