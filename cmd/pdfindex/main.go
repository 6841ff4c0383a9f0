// Command pdfindex is the topic and highlight index for a PDF library.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/pdfindex/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pdfindex/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/pdfindex/internal/adapters/driven/storage/bolt"
	"github.com/custodia-labs/pdfindex/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/cli"
	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
	"github.com/custodia-labs/pdfindex/internal/core/services"
)

// Set by the linker: -ldflags "-X main.version=..."
var version = "dev"

// Environment variables read from the process or a .env file.
const (
	envHome    = "PDFINDEX_HOME"
	envBackend = "PDFINDEX_BACKEND"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	_ = godotenv.Load()
	home := os.Getenv(envHome)

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading settings: %v\n", err)
		return err
	}

	cli.SetVersion(version)
	wiring := cli.Services{
		Settings:    settingsService,
		LibraryRoot: settings.Library.Root,
	}

	store, err := openStore(storageSettings(settings, home, os.Getenv(envBackend)))
	if err != nil {
		// Settings stay usable so a broken backend can be reconfigured.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		defer store.Close()

		topics := services.NewTopicService(store)
		topics.SetDisplayOptions(settings.Topics.PathSeparator, settings.Topics.Layout)

		wiring.Library = services.NewLibraryService(store, filesystem.NewResolver(settings.Library.Root))
		wiring.Highlight = services.NewHighlightService(store)
		wiring.Topic = topics
		wiring.Bookmark = services.NewBookmarkService(store)
		wiring.Backup = services.NewBackupService(store)
		wiring.Integrity = services.NewIntegrityService(store)
	}
	cli.SetServices(wiring)

	return cli.Execute(ctx)
}

// storageSettings applies the environment overrides. A custom home keeps
// its data under home/data unless a data directory is configured.
func storageSettings(settings *domain.AppSettings, home, backend string) domain.StorageSettings {
	s := settings.Storage
	if b := domain.StorageBackend(backend); b.IsValid() {
		s.Backend = b
	}
	if s.DataDir == "" && home != "" {
		s.DataDir = filepath.Join(home, "data")
	}
	return s
}

func openStore(s domain.StorageSettings) (driven.Storage, error) {
	switch s.Backend {
	case domain.StorageBackendSQLite:
		return sqlite.NewStore(s.DataDir)
	case domain.StorageBackendBolt, "":
		return bolt.NewStore(s.DataDir)
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", domain.ErrStorageUnavailable, s.Backend)
	}
}
