// Command mailblocks imports MJML email templates into editable block trees.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/mailblocks/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mailblocks/internal/adapters/driven/parser/xmltree"
	"github.com/custodia-labs/mailblocks/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mailblocks/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/mailblocks/internal/adapters/driving/cli"
	"github.com/custodia-labs/mailblocks/internal/converter"
	"github.com/custodia-labs/mailblocks/internal/core/domain"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
	"github.com/custodia-labs/mailblocks/internal/core/services"
	"github.com/custodia-labs/mailblocks/internal/logger"
	"github.com/custodia-labs/mailblocks/internal/preprocessors"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// buildServices wires the config file, template store and import pipeline.
func buildServices(configDir string) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	store, closeStore, err := openTemplateStore(configDir, settings.Storage)
	if err != nil {
		return nil, err
	}

	importService := services.NewImportService(
		preprocessors.DefaultPipeline(),
		xmltree.New(),
		converter.New(),
	)

	return &cli.Services{
		Import:    importService,
		Templates: services.NewTemplateService(importService, store),
		Settings:  settingsService,
		Close:     closeStore,
	}, nil
}

// openTemplateStore opens the configured backend. SQLite data lives under
// the config directory when one is given and no data_dir is set.
func openTemplateStore(configDir string, cfg domain.StorageSettings) (driven.TemplateStore, func() error, error) {
	if cfg.Backend == domain.StorageMemory {
		logger.Debug("storage: memory")
		return memory.NewTemplateStore(), nil, nil
	}

	dataDir := cfg.DataDir
	if dataDir == "" && configDir != "" {
		dataDir = filepath.Join(configDir, "data")
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening template store: %w", err)
	}
	logger.Debug("storage: sqlite %s", store.Path())

	return store.TemplateStore(), store.Close, nil
}
