package commands

import (
	"context"
	"fmt"
	"log/slog"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"
)

// DisputeJobCommandHandler applies the administrative override and informs both the
// customer and the contractor, if any.
type DisputeJobCommandHandler struct {
	uowFactory JobUoWFactory
	lifecycle  services.LifecycleStateMachine
	notify     notificationStep
}

func NewDisputeJobCommandHandler(
	uowFactory JobUoWFactory,
	lifecycle services.LifecycleStateMachine,
	notifier ports.Notifier,
	logger *slog.Logger,
) DisputeJobCommandHandler {
	return DisputeJobCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		notify:     newNotificationStep(notifier, logger, "dispute_job"),
	}
}

func (h DisputeJobCommandHandler) Handle(ctx context.Context, command DisputeJobCommand) (*job.Job, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobs := uow.JobRepository()
	j, err := jobs.Get(ctx, command.JobID())
	if err != nil {
		return nil, err
	}

	tr, err := h.lifecycle.Dispute(j, job.Actor{Role: job.RoleAdmin, ID: command.AdminID()}, command.Reason())
	if err != nil {
		return nil, err
	}

	rows, err := jobs.ConditionalUpdate(ctx, tr)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errs.NewConflictError("job", j.ID(), "job changed while disputing")
	}
	if err = j.Apply(tr.Change); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	targets := append(h.notify.contractorUser(ctx, uow.ContractorDirectory(), j.ContractorID()), j.CustomerID())

	h.notify.send(ctx, ports.Notification{
		TargetUserIDs: targets,
		Type:          ports.EventJobDisputed,
		Title:         "Job disputed",
		Message:       fmt.Sprintf("%q is under dispute: %s", j.Title(), j.DisputeReason()),
		Payload:       jobPayload(j.ID()),
	})

	return j, nil
}
