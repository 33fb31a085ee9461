package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"
)

// ExpireUnclaimedJobCommandHandler runs the claim deadline of an IMMEDIATE job. Tasks
// are delivered at least once, so the handler re-reads the job and does nothing
// unless the job is still PENDING. Handle reports whether the job was expired.
type ExpireUnclaimedJobCommandHandler struct {
	uowFactory JobUoWFactory
	lifecycle  services.LifecycleStateMachine
	notify     notificationStep
}

func NewExpireUnclaimedJobCommandHandler(
	uowFactory JobUoWFactory,
	lifecycle services.LifecycleStateMachine,
	notifier ports.Notifier,
	logger *slog.Logger,
) ExpireUnclaimedJobCommandHandler {
	return ExpireUnclaimedJobCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		notify:     newNotificationStep(notifier, logger, "expire_unclaimed_job"),
	}
}

func (h ExpireUnclaimedJobCommandHandler) Handle(ctx context.Context, command ExpireUnclaimedJobCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobs := uow.JobRepository()
	j, err := jobs.Get(ctx, command.JobID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if j.Status() != job.Pending {
		return false, nil
	}

	tr, err := h.lifecycle.Expire(j)
	if errors.Is(err, errs.ErrTransitionIsInvalid) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	rows, err := jobs.ConditionalUpdate(ctx, tr)
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, nil
	}
	if err = j.Apply(tr.Change); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.notify.send(ctx, ports.Notification{
		TargetUserIDs: []kernel.UUID{j.CustomerID()},
		Type:          ports.EventJobExpired,
		Title:         "Job expired",
		Message:       fmt.Sprintf("Nobody claimed %q in time", j.Title()),
		Payload:       jobPayload(j.ID()),
	})

	return true, nil
}
