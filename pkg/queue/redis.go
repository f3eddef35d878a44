package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/lab-catalog/pkg/lifecycle"
)

// pollTimeout bounds each BLPOP so workers observe shutdown promptly.
const pollTimeout = time.Second

// redisQueue pushes tasks onto per-kind lists and pops them with BLPOP, so
// tasks can be consumed by a separate worker process.
type redisQueue struct {
	*registry
	client  *redis.Client
	prefix  string
	workers int
	logger  *slog.Logger
}

// NewRedis creates a redis-backed queue. workers may be zero for a process
// that only submits tasks.
func NewRedis(cfg *RedisConfig, workers int, logger *slog.Logger) (Queue, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return newRedisQueue(client, cfg.Prefix, workers, logger), nil
}

func newRedisQueue(client *redis.Client, prefix string, workers int, logger *slog.Logger) *redisQueue {
	if workers < 0 {
		workers = 0
	}
	return &redisQueue{
		registry: newRegistry(),
		client:   client,
		prefix:   prefix,
		workers:  workers,
		logger:   logger.With("system", "queue", "backend", "redis"),
	}
}

func (q *redisQueue) Handle(kind string, h Handler) {
	q.set(kind, h)
}

func (q *redisQueue) Submit(ctx context.Context, task Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("encode task: %w", err)
	}

	if err := q.client.RPush(ctx, q.key(task.Kind), data).Err(); err != nil {
		if errors.Is(err, redis.ErrClosed) {
			return ErrClosed
		}
		return fmt.Errorf("push task: %w", err)
	}
	return nil
}

func (q *redisQueue) Start(lc *lifecycle.Coordinator) error {
	q.logger.Info("starting queue", "addr", q.client.Options().Addr, "workers", q.workers)

	ctx := lc.Context()

	lc.OnStartup(func() {
		if err := q.client.Ping(ctx).Err(); err != nil {
			q.logger.Error("redis ping failed", "error", err)
			return
		}
		q.logger.Info("redis connection established")
	})

	kinds := q.kinds()
	keys := make([]string, len(kinds))
	for i, k := range kinds {
		keys[i] = q.key(k)
	}

	g, gctx := errgroup.WithContext(ctx)
	if len(keys) > 0 {
		for i := range q.workers {
			g.Go(func() error {
				q.work(gctx, i, keys)
				return nil
			})
		}
	}

	lc.OnShutdown(func() {
		<-ctx.Done()
		g.Wait()

		if err := q.client.Close(); err != nil {
			q.logger.Error("redis close failed", "error", err)
			return
		}
		q.logger.Info("queue stopped")
	})

	return nil
}

func (q *redisQueue) work(ctx context.Context, id int, keys []string) {
	logger := q.logger.With("worker", id)

	for {
		if ctx.Err() != nil {
			return
		}

		res, err := q.client.BLPop(ctx, pollTimeout, keys...).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			logger.Error("pop task failed", "error", err)
			sleep(ctx, pollTimeout)
			continue
		}

		// res is [key, value]
		var task Task
		if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
			logger.Error("discarding malformed task", "key", res[0], "error", err)
			continue
		}

		q.dispatch(context.WithoutCancel(ctx), logger, task)
	}
}

func (q *redisQueue) key(kind string) string {
	if q.prefix == "" {
		return kind
	}
	return q.prefix + ":" + kind
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
