package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfindex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, service.GetDefaults(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("storage.backend", "sqlite")
	_ = store.Set("storage.data_dir", "/var/lib/pdfindex")
	_ = store.Set("library.root", "/srv/pdfs")
	_ = store.Set("topics.path_separator", " / ")
	_ = store.Set("layout.spacing_x", 300)
	_ = store.Set("layout.spacing_y", 75.5)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StorageBackendSQLite, settings.Storage.Backend)
	assert.Equal(t, "/var/lib/pdfindex", settings.Storage.DataDir)
	assert.Equal(t, "/srv/pdfs", settings.Library.Root)
	assert.Equal(t, " / ", settings.Topics.PathSeparator)
	assert.Equal(t, 300.0, settings.Topics.Layout.SpacingX)
	assert.Equal(t, 75.5, settings.Topics.Layout.SpacingY)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("storage.backend", "postgres")
	_ = store.Set("layout.spacing_x", -5)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StorageBackendBolt, settings.Storage.Backend)
	assert.Equal(t, domain.DefaultLayoutOptions().SpacingX, settings.Topics.Layout.SpacingX)
}

func TestSettingsService_SaveAndGet(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	settings := service.GetDefaults()
	settings.Storage.Backend = domain.StorageBackendSQLite
	settings.Library.Root = "/docs"

	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
	_, exists := store.Get("storage.data_dir")
	assert.False(t, exists)
}

func TestSettingsService_Save_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(s *domain.AppSettings)
		field string
	}{
		{"backend", func(s *domain.AppSettings) { s.Storage.Backend = "mongo" }, "storage.backend"},
		{"separator", func(s *domain.AppSettings) { s.Topics.PathSeparator = "" }, "topics.path_separator"},
		{"spacing x", func(s *domain.AppSettings) { s.Topics.Layout.SpacingX = 0 }, "layout.spacing_x"},
		{"spacing y", func(s *domain.AppSettings) { s.Topics.Layout.SpacingY = -1 }, "layout.spacing_y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)
			settings := service.GetDefaults()
			tt.edit(&settings)

			err := service.Save(&settings)

			require.ErrorIs(t, err, domain.ErrValidation)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Empty(t, store.Keys())
		})
	}
}

func TestSettingsService_SetValue(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetValue("storage.backend", " sqlite "))
	require.NoError(t, service.SetValue("layout.spacing_y", "90"))
	require.NoError(t, service.SetValue("topics.path_separator", " :: "))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StorageBackendSQLite, settings.Storage.Backend)
	assert.Equal(t, 90.0, settings.Topics.Layout.SpacingY)
	assert.Equal(t, " :: ", settings.Topics.PathSeparator)
}

func TestSettingsService_SetValue_Errors(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.SetValue("nope", "x"), domain.ErrValidation)
	assert.ErrorIs(t, service.SetValue("layout.spacing_x", "wide"), domain.ErrValidation)
	assert.ErrorIs(t, service.SetValue("storage.backend", "mongo"), domain.ErrValidation)
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()

	assert.Contains(t, keys, "storage.backend")
	assert.Contains(t, keys, "library.root")
	assert.IsIncreasing(t, keys)
}
