package commands

import (
	"errors"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/quote"
	"jobmatch/internal/pkg/guard"
)

var ErrSubmitQuoteCommandIsNotConstructed = errors.New(
	"SubmitQuoteCommand must be created via NewSubmitQuoteCommand constructor",
)

// SubmitQuoteCommand places or revises a contractor's quote on an open job.
type SubmitQuoteCommand struct {
	jobID        kernel.UUID
	contractorID kernel.UUID
	terms        quote.Terms
	guard        guard.ConstructorGuard
}

// NewSubmitQuoteCommand validates the identifiers and the quote terms, including the
// advance cap.
func NewSubmitQuoteCommand(jobID, contractorID kernel.UUID, terms quote.Terms) (SubmitQuoteCommand, error) {
	if err := errors.Join(
		wrapRequired("jobID", jobID.Validate()),
		wrapRequired("contractorID", contractorID.Validate()),
		quote.ValidateTerms(terms),
	); err != nil {
		return SubmitQuoteCommand{}, err
	}

	return SubmitQuoteCommand{
		jobID:        jobID,
		contractorID: contractorID,
		terms:        terms,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitQuoteCommand) Validate() error {
	return c.guard.Validate(ErrSubmitQuoteCommandIsNotConstructed)
}

func (c SubmitQuoteCommand) JobID() kernel.UUID        { return c.jobID }
func (c SubmitQuoteCommand) ContractorID() kernel.UUID { return c.contractorID }
func (c SubmitQuoteCommand) Terms() quote.Terms        { return c.terms }
