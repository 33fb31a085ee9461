package commands

import (
	"errors"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/guard"
)

var ErrConfirmOfferCommandIsNotConstructed = errors.New(
	"ConfirmOfferCommand must be created via NewConfirmOfferCommand constructor",
)

// ConfirmOfferCommand is the offered contractor's acceptance of an offer.
type ConfirmOfferCommand struct {
	jobID        kernel.UUID
	contractorID kernel.UUID
	guard        guard.ConstructorGuard
}

func NewConfirmOfferCommand(jobID, contractorID kernel.UUID) (ConfirmOfferCommand, error) {
	if err := errors.Join(
		wrapRequired("jobID", jobID.Validate()),
		wrapRequired("contractorID", contractorID.Validate()),
	); err != nil {
		return ConfirmOfferCommand{}, err
	}
	return ConfirmOfferCommand{jobID: jobID, contractorID: contractorID, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmOfferCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOfferCommandIsNotConstructed)
}

func (c ConfirmOfferCommand) JobID() kernel.UUID        { return c.jobID }
func (c ConfirmOfferCommand) ContractorID() kernel.UUID { return c.contractorID }
