package async

import (
	"context"
	"sync"
	"time"

	"log/slog"
)

// Job is one batch input: a file of raw generator text to estimate.
type Job struct {
	InputPath   string
	SubmittedAt time.Time
	TraceID     string
}

// ProcessFunc runs the pipeline for one job and writes its output.
type ProcessFunc func(ctx context.Context, job Job) error

// EstimateQueue fans batch jobs out to a fixed worker pool.
type EstimateQueue struct {
	proc    ProcessFunc
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*EstimateQueue)

func WithWorkers(n int) Option {
	return func(q *EstimateQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *EstimateQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(q *EstimateQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewEstimateQueue(proc ProcessFunc, logger *slog.Logger, opts ...Option) *EstimateQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &EstimateQueue{
		proc:    proc,
		logger:  logger,
		workers: 4,
		timeout: time.Minute,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *EstimateQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Debug("worker started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					err := q.proc(ctx, job)
					cancel()

					if err != nil {
						q.logger.Error("estimate job failed", "worker_id", workerID, "input", job.InputPath, "error", err)
					} else {
						q.logger.Info("estimate job done", "worker_id", workerID, "input", job.InputPath)
					}
				}

				q.logger.Debug("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *EstimateQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "input", job.InputPath)
		return nil
	}
	select {
	case q.ch <- job:
	default:
		q.logger.Warn("queue full, applying backpressure", "input", job.InputPath)
		q.ch <- job
	}
	return nil
}

func (q *EstimateQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
