package commands

import (
	"errors"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/guard"
)

var (
	ErrStartJobCommandIsNotConstructed    = errors.New("StartJobCommand must be created via NewStartJobCommand constructor")
	ErrCompleteJobCommandIsNotConstructed = errors.New("CompleteJobCommand must be created via NewCompleteJobCommand constructor")
)

// StartJobCommand is the assigned contractor reporting that work has begun.
type StartJobCommand struct {
	jobID        kernel.UUID
	contractorID kernel.UUID
	guard        guard.ConstructorGuard
}

func NewStartJobCommand(jobID, contractorID kernel.UUID) (StartJobCommand, error) {
	if err := errors.Join(
		wrapRequired("jobID", jobID.Validate()),
		wrapRequired("contractorID", contractorID.Validate()),
	); err != nil {
		return StartJobCommand{}, err
	}
	return StartJobCommand{jobID: jobID, contractorID: contractorID, guard: guard.NewConstructorGuard()}, nil
}

func (c StartJobCommand) Validate() error {
	return c.guard.Validate(ErrStartJobCommandIsNotConstructed)
}

func (c StartJobCommand) JobID() kernel.UUID        { return c.jobID }
func (c StartJobCommand) ContractorID() kernel.UUID { return c.contractorID }

// CompleteJobCommand is the assigned contractor reporting that work is done.
type CompleteJobCommand struct {
	jobID        kernel.UUID
	contractorID kernel.UUID
	guard        guard.ConstructorGuard
}

func NewCompleteJobCommand(jobID, contractorID kernel.UUID) (CompleteJobCommand, error) {
	if err := errors.Join(
		wrapRequired("jobID", jobID.Validate()),
		wrapRequired("contractorID", contractorID.Validate()),
	); err != nil {
		return CompleteJobCommand{}, err
	}
	return CompleteJobCommand{jobID: jobID, contractorID: contractorID, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteJobCommand) Validate() error {
	return c.guard.Validate(ErrCompleteJobCommandIsNotConstructed)
}

func (c CompleteJobCommand) JobID() kernel.UUID        { return c.jobID }
func (c CompleteJobCommand) ContractorID() kernel.UUID { return c.contractorID }
