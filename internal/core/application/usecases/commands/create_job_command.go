package commands

import (
	"errors"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

var ErrCreateJobCommandIsNotConstructed = errors.New(
	"CreateJobCommand must be created via NewCreateJobCommand constructor",
)

// CreateJobCommand posts a new job for a customer.
//
// Example:
//
//	loc, _ := kernel.NewLocation(12.9716, 77.5946)
//	cmd, err := NewCreateJobCommand(customerID, job.Draft{
//	    Title:          "Unload a truck",
//	    Type:           job.Immediate,
//	    Location:       loc,
//	    RequiredSkills: []string{"loading"},
//	    WorkersNeeded:  2,
//	})
type CreateJobCommand struct {
	customerID kernel.UUID
	draft      job.Draft
	guard      guard.ConstructorGuard
}

// NewCreateJobCommand validates identifiers and the job type. The remaining rules are
// enforced by job.NewJob.
func NewCreateJobCommand(customerID kernel.UUID, draft job.Draft) (CreateJobCommand, error) {
	if err := customerID.Validate(); err != nil {
		return CreateJobCommand{}, errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	if err := draft.Type.Validate(); err != nil {
		return CreateJobCommand{}, err
	}

	return CreateJobCommand{
		customerID: customerID,
		draft:      draft,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

func (c CreateJobCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateJobCommand) Draft() job.Draft {
	return c.draft
}
