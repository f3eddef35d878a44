package main

import (
	"fmt"
	"time"

	"github.com/JaimeStill/lab-catalog/internal/bibliography"
	"github.com/JaimeStill/lab-catalog/internal/config"
	"github.com/JaimeStill/lab-catalog/internal/documents"
	"github.com/JaimeStill/lab-catalog/internal/infrastructure"
	"github.com/JaimeStill/lab-catalog/pkg/queue"
)

// Worker owns the infrastructure needed to parse documents outside the API process.
type Worker struct {
	infra *infrastructure.Infrastructure
}

// NewWorker builds the worker. The queue must use the redis backend; the
// submit_only flag is ignored so this process always consumes.
func NewWorker(cfg *config.Config) (*Worker, error) {
	if cfg.Queue.Backend != queue.BackendRedis {
		return nil, fmt.Errorf("worker requires the redis queue backend, got %s", cfg.Queue.Backend)
	}
	cfg.Queue.SubmitOnly = false

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	parser, err := bibliography.NewParser(cfg.Parsing.JournalSuffixes)
	if err != nil {
		return nil, fmt.Errorf("parser init failed: %w", err)
	}

	logger := infra.Logger.With("module", "worker")

	// Registers the parse handler on infra.Queue.
	documents.New(
		documents.NewStore(infra.Database.Connection(), logger, cfg.API.Pagination),
		infra.Storage,
		infra.Queue,
		parser,
		logger,
	)

	infra.Logger.Info("worker initialized",
		"version", cfg.Version,
		"workers", cfg.Queue.Workers,
		"storage", cfg.Storage.Backend,
	)

	return &Worker{infra: infra}, nil
}

// Start begins all subsystems; queue consumers start last.
func (w *Worker) Start() error {
	w.infra.Logger.Info("starting worker")

	if err := w.infra.Start(); err != nil {
		return err
	}

	go func() {
		w.infra.Lifecycle.WaitForStartup()
		w.infra.Logger.Info("worker ready")
	}()

	return nil
}

// Shutdown stops consumers after in-flight tasks finish, up to timeout.
func (w *Worker) Shutdown(timeout time.Duration) error {
	w.infra.Logger.Info("initiating shutdown")
	return w.infra.Lifecycle.Shutdown(timeout)
}
