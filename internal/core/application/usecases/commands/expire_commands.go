package commands

import (
	"errors"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/guard"
)

var (
	ErrExpireUnclaimedJobCommandIsNotConstructed = errors.New(
		"ExpireUnclaimedJobCommand must be created via NewExpireUnclaimedJobCommand constructor",
	)
	ErrExpireUnconfirmedOfferCommandIsNotConstructed = errors.New(
		"ExpireUnconfirmedOfferCommand must be created via NewExpireUnconfirmedOfferCommand constructor",
	)
)

// ExpireUnclaimedJobCommand is the delayed check that expires an IMMEDIATE job nobody
// claimed before its deadline.
type ExpireUnclaimedJobCommand struct {
	jobID kernel.UUID
	guard guard.ConstructorGuard
}

func NewExpireUnclaimedJobCommand(jobID kernel.UUID) (ExpireUnclaimedJobCommand, error) {
	if err := wrapRequired("jobID", jobID.Validate()); err != nil {
		return ExpireUnclaimedJobCommand{}, err
	}
	return ExpireUnclaimedJobCommand{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireUnclaimedJobCommand) Validate() error {
	return c.guard.Validate(ErrExpireUnclaimedJobCommandIsNotConstructed)
}

func (c ExpireUnclaimedJobCommand) JobID() kernel.UUID { return c.jobID }

// ExpireUnconfirmedOfferCommand is the delayed check that reverts an offer its
// contractor did not confirm in time.
type ExpireUnconfirmedOfferCommand struct {
	jobID   kernel.UUID
	quoteID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewExpireUnconfirmedOfferCommand(jobID, quoteID kernel.UUID) (ExpireUnconfirmedOfferCommand, error) {
	if err := errors.Join(
		wrapRequired("jobID", jobID.Validate()),
		wrapRequired("quoteID", quoteID.Validate()),
	); err != nil {
		return ExpireUnconfirmedOfferCommand{}, err
	}
	return ExpireUnconfirmedOfferCommand{jobID: jobID, quoteID: quoteID, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireUnconfirmedOfferCommand) Validate() error {
	return c.guard.Validate(ErrExpireUnconfirmedOfferCommandIsNotConstructed)
}

func (c ExpireUnconfirmedOfferCommand) JobID() kernel.UUID   { return c.jobID }
func (c ExpireUnconfirmedOfferCommand) QuoteID() kernel.UUID { return c.quoteID }
