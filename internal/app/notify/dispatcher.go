// Package notify provides a bounded asynchronous task dispatcher for
// fire-and-forget work triggered by inbound requests, such as sending
// notification emails after a webhook acknowledgment. Tasks run on a fixed
// worker pool detached from the request context, with a per-task timeout.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Task is a unit of asynchronous work. The context carries the per-task
// timeout; implementations should honor cancellation.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher runs tasks on a fixed pool of workers fed by a bounded queue.
// When the queue is full, Enqueue drops the task rather than blocking the
// caller: notification work is best-effort and must never stall request
// handling.
type Dispatcher struct {
	queue       chan Task
	workers     int
	taskTimeout time.Duration
	logger      *slog.Logger

	dropped atomic.Int64
	wg      sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once
}

// New creates a Dispatcher with the given worker count, queue capacity, and
// per-task timeout. Start must be called before tasks are processed.
func New(workers, queueSize int, taskTimeout time.Duration, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		queue:       make(chan Task, queueSize),
		workers:     workers,
		taskTimeout: taskTimeout,
		logger:      logger,
	}
}

// Start launches the worker pool. Safe to call once; subsequent calls are
// no-ops.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		for i := 0; i < d.workers; i++ {
			d.wg.Add(1)
			go d.worker()
		}
	})
}

// Enqueue submits a task for asynchronous execution. Returns false when the
// queue is full and the task was dropped.
func (d *Dispatcher) Enqueue(task Task) bool {
	select {
	case d.queue <- task:
		return true
	default:
		d.dropped.Add(1)
		d.logger.Warn("notification task dropped, queue full",
			slog.String("task", task.Name),
			slog.Int64("dropped_total", d.dropped.Load()),
		)
		return false
	}
}

// Dropped returns the number of tasks dropped because the queue was full.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Stop closes the queue and waits for in-flight and queued tasks to finish,
// or for ctx to expire. Enqueue must not be called after Stop.
func (d *Dispatcher) Stop(ctx context.Context) error {
	var err error
	d.stopOnce.Do(func() {
		close(d.queue)

		done := make(chan struct{})
		go func() {
			d.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			err = ctx.Err()
		}
	})
	return err
}

// worker drains the queue until it is closed, running each task under the
// configured timeout.
func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for task := range d.queue {
		d.run(task)
	}
}

func (d *Dispatcher) run(task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), d.taskTimeout)
	defer cancel()

	start := time.Now()
	if err := task.Run(ctx); err != nil {
		d.logger.ErrorContext(ctx, "notification task failed",
			slog.String("task", task.Name),
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("error", err),
		)
		return
	}

	d.logger.DebugContext(ctx, "notification task completed",
		slog.String("task", task.Name),
		slog.Duration("elapsed", time.Since(start)),
	)
}
