// Package ports defines the contracts between the matching core and its
// infrastructure: stores, the contractor directory, the notifier and the delayed
// task backend.
package ports

import (
	"context"
	"time"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
)

// JobRepository persists job aggregates and their assignments.
//
// Every status change goes through ConditionalUpdate. Implementations must evaluate
// the transition's Condition and apply its Change in one atomic statement and report
// how many rows changed; a read-then-write pair is not acceptable.
type JobRepository interface {
	// Add persists a new job.
	Add(ctx context.Context, aggregate *job.Job) error

	// Get retrieves a job by id. A missing job yields errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// ConditionalUpdate applies tr.Change to job tr.JobID only if the row currently
	// matches tr.Condition. It returns the number of rows changed: 1 on success,
	// 0 when the condition no longer holds.
	//
	// Example:
	//   rows, err := repo.ConditionalUpdate(ctx, tr)
	//   if err != nil {
	//       return err
	//   }
	//   if rows == 0 {
	//       return errs.NewConflictError("job", tr.JobID, "already claimed")
	//   }
	ConditionalUpdate(ctx context.Context, tr job.Transition) (int64, error)

	// ListAssignments returns the workers assigned to a job.
	ListAssignments(ctx context.Context, jobID kernel.UUID) ([]job.Assignment, error)

	// ReplaceAssignments swaps the whole assignment set of a job.
	ReplaceAssignments(ctx context.Context, jobID kernel.UUID, assignments []job.Assignment) error

	// UpdateAssignments moves every assignment of a job to status, stamping the
	// start or completion time.
	UpdateAssignments(ctx context.Context, jobID kernel.UUID, status job.AssignmentStatus, at time.Time) error

	// ListOpen returns jobs that are PENDING or QUOTED, have no contractor and have
	// not passed their claim deadline at now.
	ListOpen(ctx context.Context, now time.Time) ([]*job.Job, error)

	// ListExpiredPending returns up to limit PENDING jobs whose claim deadline is
	// at or before now.
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*job.Job, error)
}
