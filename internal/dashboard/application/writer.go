package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	sharedDomain "github.com/felixgeelhaar/eventboard/internal/shared/domain"
	"github.com/felixgeelhaar/eventboard/pkg/observability"
)

// DefaultWriteQueueSize bounds the number of persistence jobs waiting to run.
const DefaultWriteQueueSize = 256

// DefaultWriteTimeout bounds one gateway call.
const DefaultWriteTimeout = 10 * time.Second

// EventPublisher forwards domain events after their write has been attempted.
type EventPublisher interface {
	PublishDomainEvent(ctx context.Context, event sharedDomain.DomainEvent) error
}

// writeJob is one persistence call plus the event announcing it.
type writeJob struct {
	operation  string
	collection string
	id         string
	write      func(ctx context.Context) error
	event      sharedDomain.DomainEvent
}

// WriteStats reports what the write-behind queue has done so far. Dropped
// counts jobs refused because the queue was full or already closed.
type WriteStats struct {
	Pending   int   `json:"pending"`
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
	Dropped   int64 `json:"dropped"`
}

// writeBehind runs persistence jobs on one goroutine in submission order.
// Failures are logged and counted, never retried.
type writeBehind struct {
	jobs      chan writeJob
	done      chan struct{}
	timeout   time.Duration
	publisher EventPublisher
	logger    *slog.Logger
	metrics   observability.Metrics

	closeOnce sync.Once
	closed    atomic.Bool
	succeeded atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
}

func newWriteBehind(size int, timeout time.Duration, publisher EventPublisher, metrics observability.Metrics, logger *slog.Logger) *writeBehind {
	if size <= 0 {
		size = DefaultWriteQueueSize
	}
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	w := &writeBehind{
		jobs:      make(chan writeJob, size),
		done:      make(chan struct{}),
		timeout:   timeout,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
	go w.run()
	return w
}

// enqueue hands a job to the writer without ever blocking. Callers hold the
// coordinator lock, so accepted jobs reach the writer in mutation order. A
// full queue drops the job; the in-memory change stands.
func (w *writeBehind) enqueue(job writeJob) {
	if w.closed.Load() {
		w.drop(job, "write dropped after shutdown")
		return
	}
	select {
	case w.jobs <- job:
	default:
		w.drop(job, "write dropped, persistence queue is full")
	}
}

func (w *writeBehind) drop(job writeJob, msg string) {
	w.dropped.Add(1)
	w.metrics.Counter("persistence.write.dropped", 1, observability.T("collection", job.collection))
	w.logger.Warn(msg,
		"operation", job.operation,
		"collection", job.collection,
		"id", job.id,
	)
}

func (w *writeBehind) run() {
	defer close(w.done)
	for job := range w.jobs {
		w.process(job)
	}
}

// process runs the write and then the publish, each under its own timeout.
func (w *writeBehind) process(job writeJob) {
	tags := []observability.Tag{
		observability.T("operation", job.operation),
		observability.T("collection", job.collection),
	}

	timer := observability.StartTimer("persistence.write").WithMetrics(w.metrics).WithTags(tags...)
	if job.write != nil {
		if err := w.withTimeout(job.write); err != nil {
			timer.StopWithError(err)
			w.failed.Add(1)
			w.metrics.Counter("persistence.write.failed", 1, tags...)
			w.logger.Warn("persistence write failed",
				"operation", job.operation,
				"collection", job.collection,
				"id", job.id,
				"error", fmt.Errorf("%w: %w", sharedDomain.ErrPersistence, err),
			)
		} else {
			timer.Stop()
			w.succeeded.Add(1)
			w.metrics.Counter("persistence.write.succeeded", 1, tags...)
		}
	}

	if job.event != nil && w.publisher != nil {
		publish := func(ctx context.Context) error { return w.publisher.PublishDomainEvent(ctx, job.event) }
		if err := w.withTimeout(publish); err != nil {
			w.logger.Warn("event publish failed",
				"routing_key", job.event.RoutingKey(),
				"id", job.id,
				"error", err,
			)
		}
	}
}

func (w *writeBehind) withTimeout(fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	return fn(ctx)
}

func (w *writeBehind) stats() WriteStats {
	return WriteStats{
		Pending:   len(w.jobs),
		Succeeded: w.succeeded.Load(),
		Failed:    w.failed.Load(),
		Dropped:   w.dropped.Load(),
	}
}

// stop stops accepting jobs. Callers hold the coordinator lock so no enqueue
// races with the channel close.
func (w *writeBehind) stop() {
	w.closeOnce.Do(func() {
		w.closed.Store(true)
		close(w.jobs)
	})
}

// wait blocks until every queued job has run or ctx ends.
func (w *writeBehind) wait(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
