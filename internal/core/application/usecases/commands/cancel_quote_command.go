package commands

import (
	"errors"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/guard"
)

var ErrCancelQuoteCommandIsNotConstructed = errors.New(
	"CancelQuoteCommand must be created via NewCancelQuoteCommand constructor",
)

// CancelQuoteCommand withdraws a contractor's own, not yet accepted quote.
type CancelQuoteCommand struct {
	quoteID      kernel.UUID
	contractorID kernel.UUID
	guard        guard.ConstructorGuard
}

func NewCancelQuoteCommand(quoteID, contractorID kernel.UUID) (CancelQuoteCommand, error) {
	if err := errors.Join(
		wrapRequired("quoteID", quoteID.Validate()),
		wrapRequired("contractorID", contractorID.Validate()),
	); err != nil {
		return CancelQuoteCommand{}, err
	}
	return CancelQuoteCommand{quoteID: quoteID, contractorID: contractorID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelQuoteCommand) Validate() error {
	return c.guard.Validate(ErrCancelQuoteCommandIsNotConstructed)
}

func (c CancelQuoteCommand) QuoteID() kernel.UUID      { return c.quoteID }
func (c CancelQuoteCommand) ContractorID() kernel.UUID { return c.contractorID }
