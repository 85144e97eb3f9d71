// Package infrastructure provides core service initialization for application startup.
// It assembles the shared dependencies (logging, metrics, database, storage, and the
// optional classification service) that domain systems require.
package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/nyaysetu/internal/config"
	"github.com/JaimeStill/nyaysetu/internal/llm"
	"github.com/JaimeStill/nyaysetu/internal/metrics"
	"github.com/JaimeStill/nyaysetu/internal/schema"
	"github.com/JaimeStill/nyaysetu/pkg/database"
	"github.com/JaimeStill/nyaysetu/pkg/lifecycle"
	"github.com/JaimeStill/nyaysetu/pkg/logging"
	"github.com/JaimeStill/nyaysetu/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Service is nil when no classification provider is configured.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Database  database.System
	Storage   storage.System
	Service   llm.Client
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging, nil)

	db, err := database.New(&cfg.Database, schema.Migrations(), logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	service, err := llm.New(lc.Context(), &cfg.Classifier.Service, logger)
	if err != nil {
		return nil, fmt.Errorf("classification service init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Metrics:   metrics.New(),
		Database:  db,
		Storage:   store,
		Service:   service,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}

	if closer, ok := i.Service.(io.Closer); ok {
		i.Lifecycle.OnShutdown("classification-service", func(context.Context) error {
			return closer.Close()
		})
	}
	return nil
}
