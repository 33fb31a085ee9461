package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
)

// CreateJobCommandHandler persists a PENDING job, arms the claim deadline of
// IMMEDIATE jobs and tells eligible contractors about it.
//
// The ExpireUnclaimedJob task is armed before commit. If arming fails the job is rolled
// back, so an IMMEDIATE job never exists without its deadline. A task armed for a job
// whose commit then fails finds no job and does nothing.
type CreateJobCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.LifecycleStateMachine
	geo        services.GeoMatcher
	scheduler  ports.TaskScheduler
	notify     notificationStep
	claimTTL   time.Duration
}

// NewCreateJobCommandHandler creates the handler. claimTTL is how long an IMMEDIATE
// job stays claimable.
func NewCreateJobCommandHandler(
	uowFactory UoWFactory,
	lifecycle services.LifecycleStateMachine,
	geo services.GeoMatcher,
	scheduler ports.TaskScheduler,
	notifier ports.Notifier,
	logger *slog.Logger,
	claimTTL time.Duration,
) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		geo:        geo,
		scheduler:  scheduler,
		notify:     newNotificationStep(notifier, logger, "create_job"),
		claimTTL:   claimTTL,
	}
}

// Handle creates the job and returns it.
func (h CreateJobCommandHandler) Handle(ctx context.Context, command CreateJobCommand) (*job.Job, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	created, err := job.NewJob(kernel.NewUUID(), command.CustomerID(), command.Draft(), h.lifecycle.Now(), h.claimTTL)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.JobRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if created.Type() == job.Immediate {
		task := ports.Task{Kind: ports.TaskExpireUnclaimedJob, JobID: created.ID()}
		if err = h.scheduler.ScheduleOnce(ctx, task, h.claimTTL); err != nil {
			return nil, fmt.Errorf("arm claim deadline: %w", err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	targets := h.nearbyContractorUsers(ctx, uow.ContractorDirectory(), created)

	h.notify.send(ctx, ports.Notification{
		TargetUserIDs: targets,
		Type:          ports.EventNewJobNearby,
		Title:         "New job nearby",
		Message:       fmt.Sprintf("%s needs %d worker(s)", created.Title(), created.WorkersNeeded()),
		Payload:       jobPayload(created.ID(), "jobType", created.Type().String()),
	})

	return created, nil
}

// nearbyContractorUsers computes the notify-set after commit, outside the transaction.
// Failing to list contractors only costs the notification.
func (h CreateJobCommandHandler) nearbyContractorUsers(ctx context.Context, dir ports.ContractorDirectory, j *job.Job) []kernel.UUID {
	contractors, err := dir.ListMatchable(ctx)
	if err != nil {
		h.notify.logger.WarnContext(ctx, "cannot list contractors for notification", "job_id", j.ID().String(), "error", err)
		return nil
	}

	matches := h.geo.FindEligible(j, contractors)
	users := make([]kernel.UUID, 0, len(matches))
	for _, m := range matches {
		users = append(users, m.Contractor.UserID())
	}
	return users
}
