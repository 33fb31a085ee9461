package commands

import (
	"errors"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

var ErrAcceptQuoteCommandIsNotConstructed = errors.New(
	"AcceptQuoteCommand must be created via NewAcceptQuoteCommand constructor",
)

// AcceptQuoteCommand is the customer's selection of one quote of their job.
type AcceptQuoteCommand struct {
	jobID      kernel.UUID
	quoteID    kernel.UUID
	customerID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewAcceptQuoteCommand(jobID, quoteID, customerID kernel.UUID) (AcceptQuoteCommand, error) {
	if err := errors.Join(
		wrapRequired("jobID", jobID.Validate()),
		wrapRequired("quoteID", quoteID.Validate()),
		wrapRequired("customerID", customerID.Validate()),
	); err != nil {
		return AcceptQuoteCommand{}, err
	}

	return AcceptQuoteCommand{
		jobID:      jobID,
		quoteID:    quoteID,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptQuoteCommand) Validate() error {
	return c.guard.Validate(ErrAcceptQuoteCommandIsNotConstructed)
}

func (c AcceptQuoteCommand) JobID() kernel.UUID      { return c.jobID }
func (c AcceptQuoteCommand) QuoteID() kernel.UUID    { return c.quoteID }
func (c AcceptQuoteCommand) CustomerID() kernel.UUID { return c.customerID }

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}
