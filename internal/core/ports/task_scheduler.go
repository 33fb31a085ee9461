package ports

import (
	"context"
	"time"

	"jobmatch/internal/core/domain/model/kernel"
)

// TaskKind names a delayed re-check.
type TaskKind string

const (
	// TaskExpireUnclaimedJob expires an IMMEDIATE job nobody claimed in time.
	TaskExpireUnclaimedJob TaskKind = "expire_unclaimed_job"
	// TaskExpireUnconfirmedOffer reverts an offer the contractor did not confirm in time.
	TaskExpireUnconfirmedOffer TaskKind = "expire_unconfirmed_offer"
)

// Task is a durable delayed callback. Tasks are delivered at least once; handlers
// re-check the job's current state and do nothing when it has moved on.
type Task struct {
	ID       string
	Kind     TaskKind
	JobID    kernel.UUID
	QuoteID  *kernel.UUID
	Attempts int
	RunAt    time.Time
}

// TaskScheduler arms delayed tasks.
type TaskScheduler interface {
	// ScheduleOnce stores task so it runs once delay has elapsed, surviving restarts.
	ScheduleOnce(ctx context.Context, task Task, delay time.Duration) error
}

// TaskQueue is the consumer side of a task backend used by the dispatcher.
type TaskQueue interface {
	TaskScheduler

	// Due leases up to limit tasks whose RunAt is at or before now. A leased task is
	// invisible to other consumers until it is acked, retried or dead-lettered, or
	// until its lease runs out.
	Due(ctx context.Context, now time.Time, limit int) ([]Task, error)

	// Ack removes a task that ran successfully.
	Ack(ctx context.Context, task Task) error

	// Retry re-schedules a failed task at the given time with Attempts incremented.
	Retry(ctx context.Context, task Task, at time.Time) error

	// DeadLetter parks a task that exhausted its attempts, keeping the last error.
	DeadLetter(ctx context.Context, task Task, cause error) error
}
