package driving

import "github.com/custodia-labs/curio-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its config key and persists it.
	Set(key, value string) error

	// Keys returns the settable config keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Validate checks the current settings are usable.
	Validate() error
}
