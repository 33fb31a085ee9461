package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/quote"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"
)

// SubmitQuoteCommandHandler upserts the contractor's quote and marks a PENDING job
// QUOTED. A quote that was already accepted can no longer be revised.
type SubmitQuoteCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.LifecycleStateMachine
	notify     notificationStep
}

func NewSubmitQuoteCommandHandler(
	uowFactory UoWFactory,
	lifecycle services.LifecycleStateMachine,
	notifier ports.Notifier,
	logger *slog.Logger,
) SubmitQuoteCommandHandler {
	return SubmitQuoteCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		notify:     newNotificationStep(notifier, logger, "submit_quote"),
	}
}

// Handle returns the stored quote. When the contractor had already quoted the job the
// returned quote keeps its original id.
func (h SubmitQuoteCommandHandler) Handle(ctx context.Context, command SubmitQuoteCommand) (*quote.Quote, error) {
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
	c, err := uow.ContractorDirectory().Get(ctx, command.ContractorID())
	if err != nil {
		return nil, err
	}
	if !c.IsActive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("contractorID", errors.New("contractor is not active"))
	}
	if !j.Status().IsOpen() || j.ContractorID() != nil {
		return nil, errs.NewTransitionIsInvalidError(j.Status(), job.Quoted)
	}

	if j.Status() == job.Pending {
		if err = h.markQuoted(ctx, jobs, j, c.ID()); err != nil {
			return nil, err
		}
	}

	now := h.lifecycle.Now()
	draft, err := quote.NewQuote(kernel.NewUUID(), j.ID(), c.ID(), command.Terms(), now)
	if err != nil {
		return nil, err
	}
	rows, err := quotes.Upsert(ctx, draft)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errs.NewConflictError("quote", draft.ID(), "accepted quote cannot be revised")
	}

	stored, err := quotes.GetByJobAndContractor(ctx, j.ID(), c.ID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notify.send(ctx, ports.Notification{
		TargetUserIDs: []kernel.UUID{j.CustomerID()},
		Type:          ports.EventQuoteReceived,
		Title:         "New quote",
		Message:       fmt.Sprintf("%s quoted %d for %q", c.Name(), stored.Terms().Amount, j.Title()),
		Payload:       jobPayload(j.ID(), "quoteId", stored.ID().String()),
	})

	return stored, nil
}

// markQuoted moves the job to QUOTED. Losing that race to another quote is fine; losing
// it to anything else is a conflict.
func (h SubmitQuoteCommandHandler) markQuoted(ctx context.Context, jobs ports.JobRepository, j *job.Job, contractorID kernel.UUID) error {
	tr, err := h.lifecycle.MarkQuoted(j, job.Actor{Role: job.RoleContractor, ID: contractorID})
	if err != nil {
		return err
	}

	rows, err := jobs.ConditionalUpdate(ctx, tr)
	if err != nil {
		return err
	}
	if rows == 1 {
		return j.Apply(tr.Change)
	}

	current, err := jobs.Get(ctx, j.ID())
	if err != nil {
		return err
	}
	if current.Status() != job.Quoted || current.ContractorID() != nil {
		return errs.NewConflictError("job", j.ID(), fmt.Sprintf("job moved to %s", current.Status()))
	}
	return nil
}
