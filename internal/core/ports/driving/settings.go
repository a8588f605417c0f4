package driving

import "github.com/custodia-labs/namedrop/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// Set parses and stores a single setting by key.
	Set(key, value string) error

	// Keys returns the setting keys accepted by Set.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
