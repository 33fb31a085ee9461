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

// ConfirmOfferCommandHandler moves an OFFERED job to ACCEPTED. It races with the
// offer expiry task; whichever conditional write lands first wins and the other side
// sees zero rows.
type ConfirmOfferCommandHandler struct {
	uowFactory JobUoWFactory
	lifecycle  services.LifecycleStateMachine
	notify     notificationStep
}

func NewConfirmOfferCommandHandler(
	uowFactory JobUoWFactory,
	lifecycle services.LifecycleStateMachine,
	notifier ports.Notifier,
	logger *slog.Logger,
) ConfirmOfferCommandHandler {
	return ConfirmOfferCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		notify:     newNotificationStep(notifier, logger, "confirm_offer"),
	}
}

func (h ConfirmOfferCommandHandler) Handle(ctx context.Context, command ConfirmOfferCommand) (*job.Job, error) {
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

	tr, err := h.lifecycle.ConfirmOffer(j, command.ContractorID())
	if err != nil {
		return nil, err
	}

	rows, err := jobs.ConditionalUpdate(ctx, tr)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errs.NewConflictError("job", j.ID(), "offer is no longer open")
	}
	if err = j.Apply(tr.Change); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notify.send(ctx, ports.Notification{
		TargetUserIDs: []kernel.UUID{j.CustomerID()},
		Type:          ports.EventOfferConfirmed,
		Title:         "Offer confirmed",
		Message:       fmt.Sprintf("The contractor confirmed %q", j.Title()),
		Payload:       jobPayload(j.ID(), "contractorId", command.ContractorID().String()),
	})

	return j, nil
}
