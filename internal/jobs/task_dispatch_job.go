package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/ports"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/semaphore"
)

// ErrUnknownTaskKind is recorded on tasks no handler understands. Such tasks are
// dead-lettered without retries.
var ErrUnknownTaskKind = errors.New("unknown task kind")

// UnclaimedJobExpirer runs the delayed expiry of an unclaimed job.
type UnclaimedJobExpirer interface {
	Handle(ctx context.Context, command commands.ExpireUnclaimedJobCommand) (bool, error)
}

// UnconfirmedOfferExpirer runs the delayed revert of an unconfirmed offer.
type UnconfirmedOfferExpirer interface {
	Handle(ctx context.Context, command commands.ExpireUnconfirmedOfferCommand) (bool, error)
}

// DispatchConfig tunes the dispatcher.
type DispatchConfig struct {
	// Workers bounds how many tasks run at once.
	Workers int
	// BatchSize is the most tasks leased per poll.
	BatchSize int
	// MaxAttempts is how many times a task may fail before it is dead-lettered.
	MaxAttempts int
	// RetryBackoff is the delay before the first retry; it doubles on every attempt.
	RetryBackoff time.Duration
}

// TaskDispatchJob polls the task backend every second and runs due tasks on a
// bounded worker pool. Tasks are acked on success, retried with exponential
// backoff on failure and dead-lettered after MaxAttempts failures.
type TaskDispatchJob struct {
	queue           ports.TaskQueue
	expireUnclaimed UnclaimedJobExpirer
	expireOffer     UnconfirmedOfferExpirer
	cfg             DispatchConfig
	pool            *semaphore.Weighted
	now             func() time.Time
	cron            *cron.Cron
	logger          *slog.Logger
}

// NewTaskDispatchJob creates the dispatcher.
func NewTaskDispatchJob(
	queue ports.TaskQueue,
	expireUnclaimed UnclaimedJobExpirer,
	expireOffer UnconfirmedOfferExpirer,
	cfg DispatchConfig,
	now func() time.Time,
	logger *slog.Logger,
) *TaskDispatchJob {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = cfg.Workers
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if now == nil {
		now = time.Now
	}
	return &TaskDispatchJob{
		queue:           queue,
		expireUnclaimed: expireUnclaimed,
		expireOffer:     expireOffer,
		cfg:             cfg,
		pool:            semaphore.NewWeighted(int64(cfg.Workers)),
		now:             now,
		cron:            cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:          logger.With("component", "task_dispatch_job"),
	}
}

// Start begins polling every second. A poll still running when the next one is due
// makes the next one skip.
func (j *TaskDispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Task dispatch poll failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Task dispatch job started (polling every second)",
		"workers", j.cfg.Workers, "batch_size", j.cfg.BatchSize)
	return nil
}

// Stop stops polling and waits for the running poll to finish.
func (j *TaskDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Task dispatch job stopped")
}

// RunOnce leases the due tasks and runs them, returning how many were leased. It
// returns when every leased task has been acked, retried or dead-lettered.
func (j *TaskDispatchJob) RunOnce(ctx context.Context) (int, error) {
	tasks, err := j.queue.Due(ctx, j.now(), j.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("lease due tasks: %w", err)
	}

	var wg sync.WaitGroup
	for _, task := range tasks {
		if err := j.pool.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return len(tasks), err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer j.pool.Release(1)
			j.run(ctx, task)
		}()
	}
	wg.Wait()
	return len(tasks), nil
}

func (j *TaskDispatchJob) run(ctx context.Context, task ports.Task) {
	log := j.logger.With("task_id", task.ID, "kind", string(task.Kind), "job_id", task.JobID.String())

	changed, err := j.execute(ctx, task)
	if err == nil {
		if ackErr := j.queue.Ack(ctx, task); ackErr != nil {
			log.ErrorContext(ctx, "Failed to ack task", "error", ackErr)
			return
		}
		log.DebugContext(ctx, "Task done", "changed", changed)
		return
	}

	if errors.Is(err, ErrUnknownTaskKind) || task.Attempts+1 >= j.cfg.MaxAttempts {
		if dlErr := j.queue.DeadLetter(ctx, task, err); dlErr != nil {
			log.ErrorContext(ctx, "Failed to dead-letter task", "error", dlErr, "cause", err)
			return
		}
		log.ErrorContext(ctx, "Task dead-lettered", "attempts", task.Attempts+1, "error", err)
		return
	}

	at := j.now().Add(j.backoff(task.Attempts))
	if retryErr := j.queue.Retry(ctx, task, at); retryErr != nil {
		log.ErrorContext(ctx, "Failed to re-schedule task", "error", retryErr, "cause", err)
		return
	}
	log.WarnContext(ctx, "Task failed, retrying", "attempts", task.Attempts+1, "retry_at", at, "error", err)
}

func (j *TaskDispatchJob) execute(ctx context.Context, task ports.Task) (bool, error) {
	switch task.Kind {
	case ports.TaskExpireUnclaimedJob:
		cmd, err := commands.NewExpireUnclaimedJobCommand(task.JobID)
		if err != nil {
			return false, err
		}
		return j.expireUnclaimed.Handle(ctx, cmd)
	case ports.TaskExpireUnconfirmedOffer:
		if task.QuoteID == nil {
			return false, fmt.Errorf("%w: %s without quote id", ErrUnknownTaskKind, task.Kind)
		}
		cmd, err := commands.NewExpireUnconfirmedOfferCommand(task.JobID, *task.QuoteID)
		if err != nil {
			return false, err
		}
		return j.expireOffer.Handle(ctx, cmd)
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownTaskKind, task.Kind)
	}
}

// backoff doubles RetryBackoff for every previous attempt, capped at one hour.
func (j *TaskDispatchJob) backoff(attempts int) time.Duration {
	d := j.cfg.RetryBackoff
	for range attempts {
		d *= 2
		if d >= time.Hour {
			return time.Hour
		}
	}
	return d
}
