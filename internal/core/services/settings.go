package services

import (
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageBackend  = "storage.backend"
	keyStorageDataDir  = "storage.data_dir"
	keyLibraryRoot     = "library.root"
	keyTopicsSeparator = "topics.path_separator"
	keyLayoutSpacingX  = "layout.spacing_x"
	keyLayoutSpacingY  = "layout.spacing_y"
)

var settingsKeys = []string{
	keyLayoutSpacingX,
	keyLayoutSpacingY,
	keyLibraryRoot,
	keyStorageBackend,
	keyStorageDataDir,
	keyTopicsSeparator,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir),
		},
		Library: domain.LibrarySettings{
			Root: s.configStore.GetString(keyLibraryRoot),
		},
		Topics: domain.TopicSettings{
			PathSeparator: s.getString(keyTopicsSeparator, defaults.Topics.PathSeparator),
			Layout: domain.LayoutOptions{
				SpacingX: s.getFloat(keyLayoutSpacingX, defaults.Topics.Layout.SpacingX),
				SpacingY: s.getFloat(keyLayoutSpacingY, defaults.Topics.Layout.SpacingY),
			},
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := validateSettings(settings); err != nil {
		return err
	}

	if err := s.configStore.Set(keyStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if err := s.setOrDelete(keyStorageDataDir, settings.Storage.DataDir); err != nil {
		return fmt.Errorf("save storage data_dir: %w", err)
	}
	if err := s.setOrDelete(keyLibraryRoot, settings.Library.Root); err != nil {
		return fmt.Errorf("save library root: %w", err)
	}
	if err := s.configStore.Set(keyTopicsSeparator, settings.Topics.PathSeparator); err != nil {
		return fmt.Errorf("save topics path_separator: %w", err)
	}
	if err := s.configStore.Set(keyLayoutSpacingX, settings.Topics.Layout.SpacingX); err != nil {
		return fmt.Errorf("save layout spacing_x: %w", err)
	}
	if err := s.configStore.Set(keyLayoutSpacingY, settings.Topics.Layout.SpacingY); err != nil {
		return fmt.Errorf("save layout spacing_y: %w", err)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys returns the keys accepted by SetValue.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingsKeys))
	copy(keys, settingsKeys)
	return keys
}

// SetValue parses value for key, validates it and saves the settings.
func (s *SettingsService) SetValue(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	trimmed := strings.TrimSpace(value)
	switch key {
	case keyStorageBackend:
		settings.Storage.Backend = domain.StorageBackend(trimmed)
	case keyStorageDataDir:
		settings.Storage.DataDir = trimmed
	case keyLibraryRoot:
		settings.Library.Root = trimmed
	case keyTopicsSeparator:
		// Separators are usually padded with spaces.
		settings.Topics.PathSeparator = value
	case keyLayoutSpacingX, keyLayoutSpacingY:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return domain.NewValidationError(key, fmt.Sprintf("not a number: %q", value))
		}
		if key == keyLayoutSpacingX {
			settings.Topics.Layout.SpacingX = f
		} else {
			settings.Topics.Layout.SpacingY = f
		}
	default:
		return domain.NewValidationError(key, "unknown setting")
	}

	return s.Save(settings)
}

func validateSettings(settings *domain.AppSettings) error {
	if err := validation.Validate(settings.Storage.Backend,
		validation.By(func(any) error {
			if !settings.Storage.Backend.IsValid() {
				return fmt.Errorf("must be %q or %q", domain.StorageBackendBolt, domain.StorageBackendSQLite)
			}
			return nil
		}),
	); err != nil {
		return domain.NewValidationError(keyStorageBackend, err.Error())
	}
	if err := validation.Validate(settings.Topics.PathSeparator, validation.Required); err != nil {
		return domain.NewValidationError(keyTopicsSeparator, err.Error())
	}
	if err := validation.Validate(settings.Topics.Layout.SpacingX, validation.Required, validation.Min(0.0).Exclusive()); err != nil {
		return domain.NewValidationError(keyLayoutSpacingX, err.Error())
	}
	if err := validation.Validate(settings.Topics.Layout.SpacingY, validation.Required, validation.Min(0.0).Exclusive()); err != nil {
		return domain.NewValidationError(keyLayoutSpacingY, err.Error())
	}
	return nil
}

func (s *SettingsService) setOrDelete(key, value string) error {
	if value == "" {
		return s.configStore.Delete(key)
	}
	return s.configStore.Set(key, value)
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
