// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, storage, task queue) that
// domain systems require.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/lab-catalog/internal/config"
	"github.com/JaimeStill/lab-catalog/pkg/database"
	"github.com/JaimeStill/lab-catalog/pkg/lifecycle"
	"github.com/JaimeStill/lab-catalog/pkg/logging"
	"github.com/JaimeStill/lab-catalog/pkg/queue"
	"github.com/JaimeStill/lab-catalog/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Queue     queue.Queue
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	q, err := queue.New(&cfg.Queue, logger)
	if err != nil {
		return nil, fmt.Errorf("queue init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Queue:     q,
	}, nil
}

// Start registers every system with the lifecycle coordinator. The queue
// starts last so its workers never run before storage and database are up.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	if err := i.Queue.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("queue start failed: %w", err)
	}
	return nil
}

// Health reports per-component status for readiness probes. The result is
// healthy only once startup hooks have finished and the database answers a
// ping within ctx.
func (i *Infrastructure) Health(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{"lifecycle": "ready", "database": "ok"}
	healthy := true

	if !i.Lifecycle.Ready() {
		status["lifecycle"] = "starting"
		healthy = false
	}
	if err := i.Database.Ping(ctx); err != nil {
		status["database"] = err.Error()
		healthy = false
	}
	return status, healthy
}
