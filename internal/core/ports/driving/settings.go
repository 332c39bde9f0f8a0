package driving

import "github.com/custodia-labs/mailblocks/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, filling unset keys with defaults.
	Get() (*domain.Settings, error)

	// Save validates and persists settings.
	Save(settings *domain.Settings) error

	// Set updates a single dot-notation key from its string form.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string

	// Validate checks the current configuration.
	Validate() error

	// GetDefaults returns the default settings.
	GetDefaults() domain.Settings
}
