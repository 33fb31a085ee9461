package jobs

import (
	"context"
	"log/slog"
	"time"

	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// ExpiredJobLister finds PENDING jobs past their claim deadline.
type ExpiredJobLister interface {
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*job.Job, error)
}

// ExpirySweepJob expires IMMEDIATE jobs whose deadline passed while they were still
// PENDING. It catches jobs whose delayed task was lost before the backend stored it.
type ExpirySweepJob struct {
	jobs    ExpiredJobLister
	expirer UnclaimedJobExpirer
	limit   int
	now     func() time.Time
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewExpirySweepJob creates the sweep. limit caps the jobs handled per run.
func NewExpirySweepJob(
	jobs ExpiredJobLister,
	expirer UnclaimedJobExpirer,
	limit int,
	now func() time.Time,
	logger *slog.Logger,
) *ExpirySweepJob {
	if now == nil {
		now = time.Now
	}
	return &ExpirySweepJob{
		jobs:    jobs,
		expirer: expirer,
		limit:   limit,
		now:     now,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "expiry_sweep_job"),
	}
}

// Start runs the sweep at the top of every minute.
func (j *ExpirySweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Expiry sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiry sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep and waits for a running pass.
func (j *ExpirySweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Expiry sweep job stopped")
}

// RunOnce expires the overdue jobs and returns how many changed. A failure on one
// job is logged and does not stop the others.
func (j *ExpirySweepJob) RunOnce(ctx context.Context) (int, error) {
	overdue, err := j.jobs.ListExpiredPending(ctx, j.now(), j.limit)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, overdueJob := range overdue {
		cmd, err := commands.NewExpireUnclaimedJobCommand(overdueJob.ID())
		if err != nil {
			return expired, err
		}
		changed, err := j.expirer.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to expire job", "job_id", overdueJob.ID().String(), "error", err)
			continue
		}
		if changed {
			expired++
		}
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Expired overdue jobs", "count", expired)
	}
	return expired, nil
}

var _ ExpiredJobLister = (ports.JobRepository)(nil)
