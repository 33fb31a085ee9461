package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"
)

// AcceptQuoteCommandHandler turns a quote into an offer to its contractor. For
// IMMEDIATE and SCHEDULED jobs the offer waits for confirmation and is reverted by an
// ExpireUnconfirmedOffer task when the confirmation timeout passes. BIDDING jobs skip
// the confirmation and are ACCEPTED at once.
type AcceptQuoteCommandHandler struct {
	uowFactory   UoWFactory
	lifecycle    services.LifecycleStateMachine
	scheduler    ports.TaskScheduler
	notify       notificationStep
	offerTimeout time.Duration
}

func NewAcceptQuoteCommandHandler(
	uowFactory UoWFactory,
	lifecycle services.LifecycleStateMachine,
	scheduler ports.TaskScheduler,
	notifier ports.Notifier,
	logger *slog.Logger,
	offerTimeout time.Duration,
) AcceptQuoteCommandHandler {
	return AcceptQuoteCommandHandler{
		uowFactory:   uowFactory,
		lifecycle:    lifecycle,
		scheduler:    scheduler,
		notify:       newNotificationStep(notifier, logger, "accept_quote"),
		offerTimeout: offerTimeout,
	}
}

// Handle checks in order: job and quote exist, the quote belongs to the job, the
// caller owns the job, the job is still open. The job write and the quote flag are
// committed together.
func (h AcceptQuoteCommandHandler) Handle(ctx context.Context, command AcceptQuoteCommand) (*job.Job, error) {
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
	quotes := uow.QuoteRepository()

	j, err := jobs.Get(ctx, command.JobID())
	if err != nil {
		return nil, err
	}
	q, err := quotes.Get(ctx, command.QuoteID())
	if err != nil {
		return nil, err
	}
	if !q.BelongsTo(j.ID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("quoteID",
			fmt.Errorf("quote %s does not belong to job %s", q.ID(), j.ID()))
	}

	customer := job.Actor{Role: job.RoleCustomer, ID: command.CustomerID()}
	if !j.IsOwnedBy(customer.ID) {
		return nil, errs.NewForbiddenError(customer.String(), "job", j.ID())
	}

	tr, err := h.lifecycle.AcceptQuote(j, q, customer)
	if err != nil {
		return nil, err
	}

	rows, err := jobs.ConditionalUpdate(ctx, tr)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errs.NewConflictError("job", j.ID(), "already assigned")
	}
	if err = j.Apply(tr.Change); err != nil {
		return nil, err
	}

	now := h.lifecycle.Now()
	rows, err = quotes.SetAccepted(ctx, q.ID(), true, now)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errs.NewConflictError("quote", q.ID(), "already accepted")
	}
	q.SetAccepted(true, now)

	if j.Status() == job.Offered {
		quoteID := q.ID()
		task := ports.Task{Kind: ports.TaskExpireUnconfirmedOffer, JobID: j.ID(), QuoteID: &quoteID}
		if err = h.scheduler.ScheduleOnce(ctx, task, h.offerTimeout); err != nil {
			return nil, fmt.Errorf("arm offer confirmation timeout: %w", err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	contractorID := q.ContractorID()
	targets := h.notify.contractorUser(ctx, uow.ContractorDirectory(), &contractorID)

	n := ports.Notification{
		TargetUserIDs: targets,
		Type:          ports.EventOfferReceived,
		Title:         "New offer",
		Message:       fmt.Sprintf("Your quote for %q was selected, confirm within %s", j.Title(), h.offerTimeout),
		Payload:       jobPayload(j.ID(), "quoteId", q.ID().String()),
	}
	if j.Status() == job.Accepted {
		n.Type = ports.EventQuoteAccepted
		n.Title = "Quote accepted"
		n.Message = fmt.Sprintf("Your quote for %q was accepted", j.Title())
	}
	h.notify.send(ctx, n)

	return j, nil
}
