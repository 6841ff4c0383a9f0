package driving

import "github.com/custodia-labs/pdfindex/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, with defaults for unset keys.
	Get() (*domain.AppSettings, error)

	// Save persists settings.
	Save(settings *domain.AppSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// SetValue sets one configuration key from its string form.
	SetValue(key, value string) error

	// Keys returns the configuration keys the service understands.
	Keys() []string
}
