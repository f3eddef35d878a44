package queue

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/lab-catalog/pkg/lifecycle"
)

// memory is an in-process queue backed by a bounded channel.
type memory struct {
	*registry
	tasks   chan Task
	workers int
	logger  *slog.Logger
	closed  atomic.Bool
}

// NewMemory creates an in-process queue with the given worker count and buffer size.
func NewMemory(workers, buffer int, logger *slog.Logger) Queue {
	if workers < 1 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &memory{
		registry: newRegistry(),
		tasks:    make(chan Task, buffer),
		workers:  workers,
		logger:   logger.With("system", "queue", "backend", "memory"),
	}
}

func (m *memory) Handle(kind string, h Handler) {
	m.set(kind, h)
}

// Submit blocks while the buffer is full, until ctx is done.
func (m *memory) Submit(ctx context.Context, task Task) error {
	if m.closed.Load() {
		return ErrClosed
	}

	select {
	case m.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *memory) Start(lc *lifecycle.Coordinator) error {
	m.logger.Info("starting queue workers", "workers", m.workers, "buffer", cap(m.tasks))

	ctx := lc.Context()
	g, gctx := errgroup.WithContext(ctx)

	for i := range m.workers {
		g.Go(func() error {
			m.work(gctx, i)
			return nil
		})
	}

	lc.OnShutdown(func() {
		<-ctx.Done()

		m.closed.Store(true)
		g.Wait()

		if n := len(m.tasks); n > 0 {
			m.logger.Warn("queue stopped with pending tasks", "pending", n)
		}
		m.logger.Info("queue workers stopped")
	})

	return nil
}

func (m *memory) work(ctx context.Context, id int) {
	logger := m.logger.With("worker", id)
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-m.tasks:
			m.dispatch(context.WithoutCancel(ctx), logger, task)
		}
	}
}
