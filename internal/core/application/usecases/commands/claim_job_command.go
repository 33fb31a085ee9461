package commands

import (
	"errors"
	"slices"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

var ErrClaimJobCommandIsNotConstructed = errors.New("ClaimJobCommand must be created via NewClaimJobCommand constructor")

// ClaimJobCommand asks for a direct claim of an IMMEDIATE or SCHEDULED job by a
// contractor with a chosen set of its workers.
type ClaimJobCommand struct {
	jobID        kernel.UUID
	contractorID kernel.UUID
	workerIDs    []kernel.UUID
	guard        guard.ConstructorGuard
}

// NewClaimJobCommand checks that every identifier is set. Worker rules need the job
// and the contractor and are checked by the handler.
func NewClaimJobCommand(jobID, contractorID kernel.UUID, workerIDs []kernel.UUID) (ClaimJobCommand, error) {
	if err := jobID.Validate(); err != nil {
		return ClaimJobCommand{}, errs.NewValueIsRequiredErrorWithCause("jobID", err)
	}
	if err := contractorID.Validate(); err != nil {
		return ClaimJobCommand{}, errs.NewValueIsRequiredErrorWithCause("contractorID", err)
	}
	if len(workerIDs) == 0 {
		return ClaimJobCommand{}, errs.NewValueIsRequiredError("workerIDs")
	}
	for _, id := range workerIDs {
		if err := id.Validate(); err != nil {
			return ClaimJobCommand{}, errs.NewValueIsRequiredErrorWithCause("workerIDs", err)
		}
	}

	return ClaimJobCommand{
		jobID:        jobID,
		contractorID: contractorID,
		workerIDs:    slices.Clone(workerIDs),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ClaimJobCommand) Validate() error {
	return c.guard.Validate(ErrClaimJobCommandIsNotConstructed)
}

func (c ClaimJobCommand) JobID() kernel.UUID        { return c.jobID }
func (c ClaimJobCommand) ContractorID() kernel.UUID { return c.contractorID }

func (c ClaimJobCommand) WorkerIDs() []kernel.UUID {
	return slices.Clone(c.workerIDs)
}
