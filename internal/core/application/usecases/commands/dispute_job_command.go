package commands

import (
	"errors"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/guard"
)

var ErrDisputeJobCommandIsNotConstructed = errors.New(
	"DisputeJobCommand must be created via NewDisputeJobCommand constructor",
)

// DisputeJobCommand is an administrator moving a job into DISPUTED.
type DisputeJobCommand struct {
	jobID   kernel.UUID
	adminID kernel.UUID
	reason  string
	guard   guard.ConstructorGuard
}

func NewDisputeJobCommand(jobID, adminID kernel.UUID, reason string) (DisputeJobCommand, error) {
	if err := errors.Join(
		wrapRequired("jobID", jobID.Validate()),
		wrapRequired("adminID", adminID.Validate()),
	); err != nil {
		return DisputeJobCommand{}, err
	}
	return DisputeJobCommand{jobID: jobID, adminID: adminID, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c DisputeJobCommand) Validate() error {
	return c.guard.Validate(ErrDisputeJobCommandIsNotConstructed)
}

func (c DisputeJobCommand) JobID() kernel.UUID   { return c.jobID }
func (c DisputeJobCommand) AdminID() kernel.UUID { return c.adminID }
func (c DisputeJobCommand) Reason() string       { return c.reason }
