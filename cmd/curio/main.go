// Command curio curates museum collection metadata from the terminal.
package main

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/custodia-labs/curio-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/curio-cli/internal/adapters/driven/lock"
	"github.com/custodia-labs/curio-cli/internal/adapters/driven/recordstore/remote"
	"github.com/custodia-labs/curio-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/curio-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/curio-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/curio-cli/internal/core/services"
	"github.com/custodia-labs/curio-cli/internal/logger"
)

// envAPIBase overrides the configured backend URL.
const envAPIBase = "CURIO_API_BASE"

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		logger.Error("Failed to open config: %v", err)
		return 1
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		logger.Error("Failed to read settings: %v", err)
		return 1
	}

	// A base URL from the environment or --api-url wins over the file,
	// including after the file is reloaded.
	var overridden atomic.Bool
	baseURL := settings.API.BaseURL
	if env := os.Getenv(envAPIBase); env != "" {
		if err := (domain.APISettings{BaseURL: env}).Validate(); err != nil {
			logger.Warn("Ignoring %s: %v", envAPIBase, err)
		} else {
			baseURL = env
			overridden.Store(true)
		}
	}

	client := remote.New(remote.Config{
		BaseURL:   baseURL,
		Timeout:   settings.API.Timeout,
		RateLimit: settings.API.RateLimit,
		Burst:     settings.API.Burst,
	})
	cli.SetAPIURLOverride(func(u string) error {
		if err := (domain.APISettings{BaseURL: u}).Validate(); err != nil {
			return err
		}
		client.SetBaseURL(u)
		overridden.Store(true)
		return nil
	})

	var history driven.BulkHistoryStore = memory.NewBulkHistoryStore()
	if settings.Bulk.HistoryEnabled {
		store, err := sqlite.NewStore("")
		if err != nil {
			logger.Warn("Bulk history disabled: %v", err)
		} else {
			defer store.Close()
			history = store.BulkHistoryStore()
		}
	}

	var guard driven.OperationGuard
	if fg, err := lock.NewFileGuard(""); err != nil {
		logger.Warn("Running without operation locks: %v", err)
	} else {
		guard = fg
	}

	cli.SetServices(cli.Services{
		Collection: services.NewCollectionService(client),
		Metadata:   services.NewMetadataService(client),
		Bulk: services.NewBulkDispatcher(client, history, guard, services.BulkConfig{
			ConsistencyCheck: settings.Bulk.ConsistencyCheck,
		}),
		Settings: settingsService,
	})

	cli.SetConfigWatcher(func(ctx context.Context, onReload func(string)) error {
		w := file.NewWatcher(configStore, func(*file.ConfigStore) {
			if overridden.Load() {
				return
			}
			current, err := settingsService.Get()
			if err != nil {
				logger.Warn("Reloaded config is unreadable: %v", err)
				return
			}
			if err := current.API.Validate(); err != nil {
				logger.Warn("Reloaded config is invalid: %v", err)
				return
			}
			client.SetBaseURL(current.API.BaseURL)
			onReload(client.BaseURL())
		})
		return w.Run(ctx)
	})

	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
