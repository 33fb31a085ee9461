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

// CancelJobCommandHandler cancels a non-terminal job and tells the other party.
type CancelJobCommandHandler struct {
	uowFactory JobUoWFactory
	lifecycle  services.LifecycleStateMachine
	notify     notificationStep
}

func NewCancelJobCommandHandler(
	uowFactory JobUoWFactory,
	lifecycle services.LifecycleStateMachine,
	notifier ports.Notifier,
	logger *slog.Logger,
) CancelJobCommandHandler {
	return CancelJobCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		notify:     newNotificationStep(notifier, logger, "cancel_job"),
	}
}

func (h CancelJobCommandHandler) Handle(ctx context.Context, command CancelJobCommand) (*job.Job, error) {
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

	tr, err := h.lifecycle.Cancel(j, command.Actor(), command.Reason())
	if err != nil {
		return nil, err
	}

	rows, err := jobs.ConditionalUpdate(ctx, tr)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errs.NewConflictError("job", j.ID(), "job changed while cancelling")
	}
	if err = j.Apply(tr.Change); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	var targets []kernel.UUID
	if command.Actor().Role == job.RoleContractor {
		targets = []kernel.UUID{j.CustomerID()}
	} else {
		targets = h.notify.contractorUser(ctx, uow.ContractorDirectory(), j.ContractorID())
	}

	h.notify.send(ctx, ports.Notification{
		TargetUserIDs: targets,
		Type:          ports.EventJobCancelled,
		Title:         "Job cancelled",
		Message:       fmt.Sprintf("%q was cancelled by the %s: %s", j.Title(), command.Actor().Role, j.CancellationReason()),
		Payload:       jobPayload(j.ID(), "cancelledBy", string(command.Actor().Role)),
	})

	return j, nil
}
