// Package pgqueue keeps delayed tasks in the delayed_tasks table through a pgx pool.
// Consumers lease rows with FOR UPDATE SKIP LOCKED, so several dispatchers can poll
// the same table without handing out a task twice while its lease holds.
package pgqueue

import (
	"context"
	"time"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const leaseDue = `
update delayed_tasks
   set leased_until = $2
 where id in (
       select id from delayed_tasks
        where not dead
          and run_at <= $1
          and (leased_until is null or leased_until <= $1)
        order by run_at
        limit $3
          for update skip locked)
returning id, kind, job_id, quote_id, attempts, run_at`

// TaskQueue implements ports.TaskQueue on PostgreSQL.
type TaskQueue struct {
	db    *pgxpool.Pool
	lease time.Duration
	now   func() time.Time
}

// NewTaskQueue creates a queue. lease bounds how long a consumer may hold a task.
func NewTaskQueue(db *pgxpool.Pool, lease time.Duration, now func() time.Time) *TaskQueue {
	if now == nil {
		now = time.Now
	}
	return &TaskQueue{db: db, lease: lease, now: now}
}

// ScheduleOnce inserts the task to run delay from now.
func (q *TaskQueue) ScheduleOnce(ctx context.Context, task ports.Task, delay time.Duration) error {
	if err := task.JobID.Validate(); err != nil {
		return err
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := q.now().UTC()

	_, err := q.db.Exec(ctx, `insert into delayed_tasks(id, kind, job_id, quote_id, attempts, run_at, created_at)
values ($1, $2, $3, $4, $5, $6, $7)`,
		task.ID, string(task.Kind), task.JobID.Bytes(), optionalID(task.QuoteID), task.Attempts, now.Add(delay), now,
	)
	return err
}

// Due leases up to limit due tasks.
func (q *TaskQueue) Due(ctx context.Context, now time.Time, limit int) ([]ports.Task, error) {
	rows, err := q.db.Query(ctx, leaseDue, now, now.Add(q.lease), limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanTask)
}

// Ack deletes a finished task.
func (q *TaskQueue) Ack(ctx context.Context, task ports.Task) error {
	_, err := q.db.Exec(ctx, `delete from delayed_tasks where id = $1`, task.ID)
	return err
}

// Retry releases the lease and re-arms the task at the given time.
func (q *TaskQueue) Retry(ctx context.Context, task ports.Task, at time.Time) error {
	_, err := q.db.Exec(ctx, `update delayed_tasks
   set attempts = attempts + 1, run_at = $2, leased_until = null
 where id = $1`, task.ID, at)
	return err
}

// DeadLetter keeps the row with its last error and takes it out of rotation.
func (q *TaskQueue) DeadLetter(ctx context.Context, task ports.Task, cause error) error {
	lastError := ""
	if cause != nil {
		lastError = cause.Error()
	}
	_, err := q.db.Exec(ctx, `update delayed_tasks
   set dead = true, leased_until = null, last_error = $2
 where id = $1`, task.ID, lastError)
	return err
}

// DeadLetters returns the parked tasks with their last error, keyed by task id.
func (q *TaskQueue) DeadLetters(ctx context.Context) (map[string]string, error) {
	rows, err := q.db.Query(ctx, `select id, last_error from delayed_tasks where dead`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var id, lastError string
		if err := rows.Scan(&id, &lastError); err != nil {
			return nil, err
		}
		out[id] = lastError
	}
	return out, rows.Err()
}

func scanTask(row pgx.CollectableRow) (ports.Task, error) {
	var (
		task    ports.Task
		kind    string
		jobID   uuid.UUID
		quoteID *uuid.UUID
	)
	if err := row.Scan(&task.ID, &kind, &jobID, &quoteID, &task.Attempts, &task.RunAt); err != nil {
		return ports.Task{}, err
	}
	task.Kind = ports.TaskKind(kind)
	task.RunAt = task.RunAt.UTC()

	id, err := kernel.UUIDFromGoogle(jobID)
	if err != nil {
		return ports.Task{}, err
	}
	task.JobID = id
	if quoteID != nil {
		q, quoteErr := kernel.UUIDFromGoogle(*quoteID)
		if quoteErr != nil {
			return ports.Task{}, quoteErr
		}
		task.QuoteID = &q
	}
	return task, nil
}

func optionalID(id *kernel.UUID) any {
	if id == nil {
		return nil
	}
	return id.Bytes()
}
