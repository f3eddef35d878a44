// Package queue hands work from request handlers to background workers.
// Tasks are fire-and-forget: a handler error is logged and the task is not
// retried.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/JaimeStill/lab-catalog/pkg/lifecycle"
)

var (
	ErrClosed         = errors.New("queue: closed")
	ErrUnknownKind    = errors.New("queue: no handler registered for task kind")
	ErrInvalidPayload = errors.New("queue: invalid task payload")
)

// Task is a unit of background work routed to a Handler by Kind.
type Task struct {
	ID      string          `json:"id"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// NewTask encodes payload and assigns a fresh ID.
func NewTask(kind string, payload any) (Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Task{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return Task{
		ID:      uuid.NewString(),
		Kind:    kind,
		Payload: data,
	}, nil
}

// Decode unmarshals the task payload into T.
func Decode[T any](task Task) (T, error) {
	var v T
	if err := json.Unmarshal(task.Payload, &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return v, nil
}

// Handler processes a single task.
type Handler func(ctx context.Context, task Task) error

// Queue accepts tasks and dispatches them to registered handlers once started.
type Queue interface {
	// Handle registers h for kind. Registration must precede Start.
	Handle(kind string, h Handler)
	Submit(ctx context.Context, task Task) error
	Start(lc *lifecycle.Coordinator) error
}

// New builds the backend selected by cfg.Backend.
func New(cfg *Config, logger *slog.Logger) (Queue, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemory(cfg.Workers, cfg.Buffer, logger), nil
	case BackendRedis:
		workers := cfg.Workers
		if cfg.SubmitOnly {
			workers = 0
		}
		return NewRedis(&cfg.Redis, workers, logger)
	default:
		return nil, fmt.Errorf("unknown queue backend: %s", cfg.Backend)
	}
}

type registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func newRegistry() *registry {
	return &registry{handlers: make(map[string]Handler)}
}

func (r *registry) set(kind string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = h
}

func (r *registry) kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		kinds = append(kinds, k)
	}
	return kinds
}

// dispatch runs the handler for task and logs the outcome. Panics in a
// handler are recovered so one task cannot stop a worker.
func (r *registry) dispatch(ctx context.Context, logger *slog.Logger, task Task) {
	r.mu.RLock()
	h, ok := r.handlers[task.Kind]
	r.mu.RUnlock()

	if !ok {
		logger.Error("task dropped", "task_id", task.ID, "kind", task.Kind, "error", ErrUnknownKind)
		return
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Error("task panicked", "task_id", task.ID, "kind", task.Kind, "panic", p)
		}
	}()

	if err := h(ctx, task); err != nil {
		logger.Error("task failed", "task_id", task.ID, "kind", task.Kind, "error", err)
		return
	}
	logger.Debug("task completed", "task_id", task.ID, "kind", task.Kind)
}
