package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Job represents a queued background task.
type Job struct {
	ID       string
	Type     string
	Key      string
	Payload  interface{}
	Attempt  int
	Enqueued time.Time
}

// Handler processes a job.
type Handler func(context.Context, Job) error

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Queue is an in-memory job dispatcher backed by goroutines. Jobs carrying a Key are
// coalesced: while one with the same key is waiting, further ones are dropped.
type Queue struct {
	name    string
	handler Handler

	workers    int
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger

	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	pending map[string]struct{}
}

// NewQueue builds a new queue with the provided handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Queue{
		name:       name,
		handler:    handler,
		workers:    cfg.Workers,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.Logger,
		jobs:       make(chan Job, cfg.BufferSize),
		pending:    make(map[string]struct{}),
	}
}

// Start begins worker consumption. Safe to call once.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
	q.logger.Sugar().Infow("queue started", "queue", q.name, "workers", q.workers)
}

// Stop cancels workers and waits for them to exit.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.cancel()
	q.mu.Unlock()
	q.wg.Wait()
	q.logger.Sugar().Infow("queue stopped", "queue", q.name)
}

// Enqueue pushes a job onto the queue, blocking while the buffer is full. It reports
// false when the job was coalesced into one already waiting.
func (q *Queue) Enqueue(job Job) (bool, error) {
	q.mu.Lock()
	ctx := q.ctx
	if !q.started {
		q.mu.Unlock()
		return false, fmt.Errorf("queue %s not started", q.name)
	}
	if job.Key != "" && job.Attempt == 0 {
		if _, waiting := q.pending[job.Key]; waiting {
			q.mu.Unlock()
			return false, nil
		}
		q.pending[job.Key] = struct{}{}
	}
	q.mu.Unlock()

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}

	select {
	case <-ctx.Done():
		q.release(job)
		return false, fmt.Errorf("queue %s stopped: %w", q.name, ctx.Err())
	case q.jobs <- job:
		return true, nil
	}
}

// Pending returns the number of keyed jobs waiting for a worker.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *Queue) release(job Job) {
	if job.Key == "" {
		return
	}
	q.mu.Lock()
	delete(q.pending, job.Key)
	q.mu.Unlock()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			// Released before running so a mutation during the run schedules a fresh pass.
			q.release(job)
			if err := q.handler(q.ctx, job); err != nil {
				q.handleFailure(job, err)
			}
		}
	}
}

func (q *Queue) handleFailure(job Job, err error) {
	job.Attempt++
	if job.Attempt > q.maxRetries {
		q.logger.Sugar().Errorw("job exceeded retries", "queue", q.name, "job_id", job.ID, "type", job.Type, "error", err)
		return
	}
	q.logger.Sugar().Warnw("job failed, retrying", "queue", q.name, "job_id", job.ID, "type", job.Type, "attempt", job.Attempt, "error", err)

	go func(j Job) {
		timer := time.NewTimer(q.retryDelay)
		defer timer.Stop()
		select {
		case <-q.ctx.Done():
			return
		case <-timer.C:
			if _, err := q.Enqueue(j); err != nil {
				q.logger.Sugar().Errorw("failed to requeue job", "queue", q.name, "job_id", j.ID, "error", err)
			}
		}
	}(job)
}
