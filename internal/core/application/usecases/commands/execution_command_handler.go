package commands

import (
	"context"
	"fmt"
	"log/slog"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"
)

// ExecutionCommandHandler drives an assigned job through IN_PROGRESS and COMPLETED.
// The assignments of the job follow the job status in the same transaction.
type ExecutionCommandHandler struct {
	uowFactory JobUoWFactory
	lifecycle  services.LifecycleStateMachine
	notify     notificationStep
}

func NewExecutionCommandHandler(
	uowFactory JobUoWFactory,
	lifecycle services.LifecycleStateMachine,
	notifier ports.Notifier,
	logger *slog.Logger,
) ExecutionCommandHandler {
	return ExecutionCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		notify:     newNotificationStep(notifier, logger, "execution"),
	}
}

// Start moves an ACCEPTED job to IN_PROGRESS.
func (h ExecutionCommandHandler) Start(ctx context.Context, command StartJobCommand) (*job.Job, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	return h.run(ctx, command.JobID(), command.ContractorID(), h.lifecycle.Start, job.AssignmentWorking)
}

// Complete moves an IN_PROGRESS job to COMPLETED.
func (h ExecutionCommandHandler) Complete(ctx context.Context, command CompleteJobCommand) (*job.Job, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	return h.run(ctx, command.JobID(), command.ContractorID(), h.lifecycle.Complete, job.AssignmentDone)
}

func (h ExecutionCommandHandler) run(
	ctx context.Context,
	jobID, contractorID kernel.UUID,
	plan func(*job.Job, kernel.UUID) (job.Transition, error),
	assignmentStatus job.AssignmentStatus,
) (*job.Job, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobs := uow.JobRepository()
	j, err := jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	tr, err := plan(j, contractorID)
	if err != nil {
		return nil, err
	}

	rows, err := jobs.ConditionalUpdate(ctx, tr)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errs.NewConflictError("job", j.ID(), fmt.Sprintf("job left %s", tr.Condition.Statuses[0]))
	}
	if err = j.Apply(tr.Change); err != nil {
		return nil, err
	}

	if err = jobs.UpdateAssignments(ctx, j.ID(), assignmentStatus, tr.Change.UpdatedAt); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	n := ports.Notification{
		TargetUserIDs: []kernel.UUID{j.CustomerID()},
		Type:          ports.EventJobStarted,
		Title:         "Job started",
		Message:       fmt.Sprintf("Work on %q has started", j.Title()),
		Payload:       jobPayload(j.ID()),
	}
	if j.Status() == job.Completed {
		n.Type = ports.EventJobCompleted
		n.Title = "Job completed"
		n.Message = fmt.Sprintf("Work on %q is complete", j.Title())
	}
	h.notify.send(ctx, n)

	return j, nil
}
