package commands

import (
	"errors"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

var ErrCancelJobCommandIsNotConstructed = errors.New(
	"CancelJobCommand must be created via NewCancelJobCommand constructor",
)

// CancelJobCommand cancels a job on behalf of its customer or its contractor.
type CancelJobCommand struct {
	jobID  kernel.UUID
	actor  job.Actor
	reason string
	guard  guard.ConstructorGuard
}

// NewCancelJobCommand requires a customer or contractor actor and a reason of at
// least five characters after trimming.
func NewCancelJobCommand(jobID kernel.UUID, actor job.Actor, reason string) (CancelJobCommand, error) {
	if err := errors.Join(wrapRequired("jobID", jobID.Validate()), actor.Validate()); err != nil {
		return CancelJobCommand{}, err
	}
	if actor.Role != job.RoleCustomer && actor.Role != job.RoleContractor {
		return CancelJobCommand{}, errs.NewForbiddenError(actor.String(), "job", jobID)
	}
	reason, err := job.ValidateCancellationReason(reason)
	if err != nil {
		return CancelJobCommand{}, err
	}

	return CancelJobCommand{jobID: jobID, actor: actor, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelJobCommand) Validate() error {
	return c.guard.Validate(ErrCancelJobCommandIsNotConstructed)
}

func (c CancelJobCommand) JobID() kernel.UUID { return c.jobID }
func (c CancelJobCommand) Actor() job.Actor   { return c.actor }
func (c CancelJobCommand) Reason() string     { return c.reason }
