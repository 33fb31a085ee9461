package commands

import (
	"context"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/pkg/errs"
)

// CancelQuoteCommandHandler deletes a quote with a conditional delete so a quote that
// gets accepted concurrently survives.
type CancelQuoteCommandHandler struct {
	uowFactory UoWFactory
}

func NewCancelQuoteCommandHandler(uowFactory UoWFactory) CancelQuoteCommandHandler {
	return CancelQuoteCommandHandler{uowFactory: uowFactory}
}

func (h CancelQuoteCommandHandler) Handle(ctx context.Context, command CancelQuoteCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	quotes := uow.QuoteRepository()
	q, err := quotes.Get(ctx, command.QuoteID())
	if err != nil {
		return err
	}
	if !q.ContractorID().IsEqual(command.ContractorID()) {
		actor := job.Actor{Role: job.RoleContractor, ID: command.ContractorID()}
		return errs.NewForbiddenError(actor.String(), "quote", q.ID())
	}

	rows, err := quotes.DeleteUnaccepted(ctx, q.ID(), command.ContractorID())
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.NewConflictError("quote", q.ID(), "accepted quote cannot be withdrawn")
	}

	return uow.Commit(ctx)
}
