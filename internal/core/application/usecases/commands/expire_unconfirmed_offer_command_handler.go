package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"
)

// ExpireUnconfirmedOfferCommandHandler returns an unconfirmed offer to QUOTED and
// un-accepts its quote. It is a no-op unless the job is still OFFERED for the very
// quote the task was armed for. Handle reports whether the offer was reverted.
type ExpireUnconfirmedOfferCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.LifecycleStateMachine
	notify     notificationStep
}

func NewExpireUnconfirmedOfferCommandHandler(
	uowFactory UoWFactory,
	lifecycle services.LifecycleStateMachine,
	notifier ports.Notifier,
	logger *slog.Logger,
) ExpireUnconfirmedOfferCommandHandler {
	return ExpireUnconfirmedOfferCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		notify:     newNotificationStep(notifier, logger, "expire_unconfirmed_offer"),
	}
}

func (h ExpireUnconfirmedOfferCommandHandler) Handle(ctx context.Context, command ExpireUnconfirmedOfferCommand) (bool, error) {
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
	if aq := j.AcceptedQuote(); j.Status() != job.Offered || aq == nil || !aq.QuoteID.IsEqual(command.QuoteID()) {
		return false, nil
	}

	offeredTo := j.ContractorID()
	tr, err := h.lifecycle.RevertOffer(j, command.QuoteID())
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

	if _, err = uow.QuoteRepository().SetAccepted(ctx, command.QuoteID(), false, tr.Change.UpdatedAt); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	targets := append(h.notify.contractorUser(ctx, uow.ContractorDirectory(), offeredTo), j.CustomerID())

	h.notify.send(ctx, ports.Notification{
		TargetUserIDs: targets,
		Type:          ports.EventOfferExpired,
		Title:         "Offer expired",
		Message:       fmt.Sprintf("The offer for %q was not confirmed in time", j.Title()),
		Payload:       jobPayload(j.ID(), "quoteId", command.QuoteID().String()),
	})

	return true, nil
}
