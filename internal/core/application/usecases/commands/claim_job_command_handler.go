package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jobmatch/internal/core/domain/model/contractor"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"
)

// ClaimJobCommandHandler arbitrates direct claims. Any number of contractors may race
// for the same job; the conditional write lets exactly one of them through and every
// other caller receives a ConflictError, whether it lost at the write or read the job
// after the winner committed.
//
// Example:
//
//	handler := NewClaimJobCommandHandler(uowFactory, lsm, notifier, logger)
//	cmd, _ := NewClaimJobCommand(jobID, contractorID, workerIDs)
//	j, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrConflict):
//	    // another contractor was faster
//	case errors.Is(err, errs.ErrTransitionIsInvalid):
//	    // job expired, was cancelled or is disputed
//	}
type ClaimJobCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.LifecycleStateMachine
	notify     notificationStep
}

func NewClaimJobCommandHandler(
	uowFactory UoWFactory,
	lifecycle services.LifecycleStateMachine,
	notifier ports.Notifier,
	logger *slog.Logger,
) ClaimJobCommandHandler {
	return ClaimJobCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		notify:     newNotificationStep(notifier, logger, "claim_job"),
	}
}

// Handle checks the claim preconditions in a fixed order, commits the claim with one
// conditional write together with the worker assignments and the chat channel, and
// notifies the customer.
func (h ClaimJobCommandHandler) Handle(ctx context.Context, command ClaimJobCommand) (*job.Job, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobs := uow.JobRepository()
	j, err := jobs.Get(ctx, command.JobID())
	if err != nil {
		return nil, err
	}

	c, err := uow.ContractorDirectory().Get(ctx, command.ContractorID())
	if err != nil {
		return nil, err
	}

	workerIDs := command.WorkerIDs()
	if err = h.checkClaim(ctx, uow.ContractorDirectory(), j, c, workerIDs); err != nil {
		return nil, err
	}

	tr, err := h.lifecycle.Claim(j, c.ID())
	if err != nil {
		return nil, err
	}

	rows, err := jobs.ConditionalUpdate(ctx, tr)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errs.NewConflictError("job", j.ID(), "already claimed")
	}
	if err = j.Apply(tr.Change); err != nil {
		return nil, err
	}

	if err = jobs.ReplaceAssignments(ctx, j.ID(), job.NewAssignments(j.ID(), workerIDs)); err != nil {
		return nil, err
	}
	if err = uow.ChatChannels().Provision(ctx, j.ID(), j.CustomerID(), c.UserID()); err != nil {
		return nil, fmt.Errorf("provision chat channel: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notify.send(ctx, ports.Notification{
		TargetUserIDs: []kernel.UUID{j.CustomerID()},
		Type:          ports.EventJobClaimed,
		Title:         "Job claimed",
		Message:       fmt.Sprintf("%s claimed %q", c.Name(), j.Title()),
		Payload:       jobPayload(j.ID(), "contractorId", c.ID().String()),
	})

	return j, nil
}

func (h ClaimJobCommandHandler) checkClaim(
	ctx context.Context,
	dir ports.ContractorDirectory,
	j *job.Job,
	c *contractor.Contractor,
	workerIDs []kernel.UUID,
) error {
	if !c.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause("contractorID", errors.New("contractor is not active"))
	}
	if !j.Type().IsClaimable() {
		return errs.NewValueIsInvalidErrorWithCause("jobID",
			fmt.Errorf("%s jobs are not claimable, submit a quote instead", j.Type()))
	}
	if err := services.AlreadyTaken(j); err != nil {
		return err
	}
	if !j.Status().IsOpen() {
		return errs.NewTransitionIsInvalidError(j.Status(), job.Accepted)
	}

	seen := make(map[kernel.UUID]struct{}, len(workerIDs))
	for _, id := range workerIDs {
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("workerIDs", fmt.Errorf("worker %s is listed twice", id))
		}
		seen[id] = struct{}{}
	}

	if len(workerIDs) < j.WorkersNeeded() {
		return errs.NewValueIsInvalidErrorWithCause("workerIDs",
			fmt.Errorf("job needs %d workers, got %d", j.WorkersNeeded(), len(workerIDs)))
	}

	if foreign := c.ForeignWorkers(workerIDs); len(foreign) > 0 {
		return errs.NewValueIsInvalidErrorWithCause("workerIDs",
			fmt.Errorf("worker %s does not belong to contractor %s", foreign[0], c.ID()))
	}

	if j.Type() == job.Scheduled {
		unavailable, err := dir.UnavailableWorkers(ctx, workerIDs, *j.ScheduledStartDate())
		if err != nil {
			return err
		}
		if len(unavailable) > 0 {
			return errs.NewValueIsInvalidErrorWithCause("workerIDs",
				fmt.Errorf("worker %s is unavailable on %s", unavailable[0], j.ScheduledStartDate().Format("2006-01-02")))
		}
	}
	return nil
}
