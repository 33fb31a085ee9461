package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/quote"
	"jobmatch/internal/pkg/errs"
)

// LifecycleStateMachine plans every status change of a job. It checks the transition
// table and the actor's relation to the job, then returns a job.Transition whose
// Condition re-states the expected current state. It never commits anything: the
// caller hands the transition to the store as one conditional write, so the store's
// predicate is the single source of truth when several actors race.
//
// Example usage:
//
//	lsm := NewLifecycleStateMachine(time.Now)
//	tr, err := lsm.Claim(j, contractorID)
//	if err != nil {
//	    return err // Conflict, StateError, Forbidden
//	}
//	rows, err := jobs.ConditionalUpdate(ctx, tr)
//	if rows == 0 {
//	    // another contractor won
//	}
type LifecycleStateMachine struct {
	now func() time.Time
}

// NewLifecycleStateMachine creates a state machine reading time from now.
func NewLifecycleStateMachine(now func() time.Time) LifecycleStateMachine {
	if now == nil {
		now = time.Now
	}
	return LifecycleStateMachine{now: now}
}

// Now returns the state machine's current time.
func (l LifecycleStateMachine) Now() time.Time {
	return l.now()
}

// MarkQuoted plans PENDING -> QUOTED after the first quote on a job.
func (l LifecycleStateMachine) MarkQuoted(j *job.Job, actor job.Actor) (job.Transition, error) {
	if err := l.check(j, job.Quoted, actor); err != nil {
		return job.Transition{}, err
	}
	return l.transition(j, job.Quoted,
		job.Condition{Statuses: []job.Status{job.Pending}, ContractorUnset: true},
		job.Change{}), nil
}

// Claim plans the direct claim of an open job by a contractor. The condition is the
// claim race predicate: contractor unset and status still open.
func (l LifecycleStateMachine) Claim(j *job.Job, contractorID kernel.UUID) (job.Transition, error) {
	if err := AlreadyTaken(j); err != nil {
		return job.Transition{}, err
	}
	actor := job.Actor{Role: job.RoleContractor, ID: contractorID}
	if err := l.check(j, job.Accepted, actor); err != nil {
		return job.Transition{}, err
	}
	return l.transition(j, job.Accepted,
		job.Condition{Statuses: job.OpenStatuses(), ContractorUnset: true},
		job.Change{ContractorID: &contractorID}), nil
}

// AcceptQuote plans the customer's selection of a quote. IMMEDIATE and SCHEDULED jobs
// become OFFERED and wait for the contractor's confirmation; BIDDING jobs become
// ACCEPTED at once.
func (l LifecycleStateMachine) AcceptQuote(j *job.Job, q *quote.Quote, customer job.Actor) (job.Transition, error) {
	if err := q.Validate(); err != nil {
		return job.Transition{}, err
	}
	if !q.BelongsTo(j.ID()) {
		return job.Transition{}, errs.NewValueIsInvalidErrorWithCause("quoteID",
			fmt.Errorf("quote %s does not belong to job %s", q.ID(), j.ID()))
	}

	if customer.Role == job.RoleCustomer && !j.IsOwnedBy(customer.ID) {
		return job.Transition{}, errs.NewForbiddenError(customer.String(), "job", j.ID())
	}
	if err := AlreadyTaken(j); err != nil {
		return job.Transition{}, err
	}

	to := job.Offered
	if j.Type() == job.Bidding {
		to = job.Accepted
	}
	if err := l.check(j, to, customer); err != nil {
		return job.Transition{}, err
	}

	contractorID := q.ContractorID()
	return l.transition(j, to,
		job.Condition{Statuses: job.OpenStatuses(), ContractorUnset: true},
		job.Change{
			ContractorID:  &contractorID,
			AcceptedQuote: &job.AcceptedQuote{QuoteID: q.ID(), Amount: q.Terms().Amount},
		}), nil
}

// AlreadyTaken returns a ConflictError when another claim or offer already gave the job
// a contractor. Callers that read the job after the winner committed lose the same
// race as callers whose conditional write matched no rows.
func AlreadyTaken(j *job.Job) error {
	if j.Status().RequiresContractor() {
		return errs.NewConflictError("job", j.ID(), fmt.Sprintf("already taken, status is %s", j.Status()))
	}
	return nil
}

// ConfirmOffer plans OFFERED -> ACCEPTED by the offered contractor.
func (l LifecycleStateMachine) ConfirmOffer(j *job.Job, contractorID kernel.UUID) (job.Transition, error) {
	actor := job.Actor{Role: job.RoleContractor, ID: contractorID}
	if err := l.check(j, job.Accepted, actor); err != nil {
		return job.Transition{}, err
	}
	if j.Status() != job.Offered {
		return job.Transition{}, errs.NewTransitionIsInvalidError(j.Status(), job.Accepted)
	}
	return l.transition(j, job.Accepted,
		job.Condition{Statuses: []job.Status{job.Offered}, ContractorID: &contractorID},
		job.Change{}), nil
}

// RevertOffer plans OFFERED -> QUOTED when the offer for quoteID was not confirmed in
// time. The condition pins the accepted quote so a later offer is left alone.
func (l LifecycleStateMachine) RevertOffer(j *job.Job, quoteID kernel.UUID) (job.Transition, error) {
	if err := l.check(j, job.Quoted, job.SystemActor()); err != nil {
		return job.Transition{}, err
	}
	if aq := j.AcceptedQuote(); aq == nil || !aq.QuoteID.IsEqual(quoteID) {
		return job.Transition{}, errs.NewTransitionIsInvalidErrorWithCause(j.Status(), job.Quoted,
			fmt.Errorf("offer is not for quote %s", quoteID))
	}
	return l.transition(j, job.Quoted,
		job.Condition{Statuses: []job.Status{job.Offered}, AcceptedQuoteID: &quoteID},
		job.Change{ClearContractor: true, ClearAcceptedQuote: true}), nil
}

// Expire plans PENDING -> EXPIRED for an unclaimed IMMEDIATE job.
func (l LifecycleStateMachine) Expire(j *job.Job) (job.Transition, error) {
	if err := l.check(j, job.Expired, job.SystemActor()); err != nil {
		return job.Transition{}, err
	}
	return l.transition(j, job.Expired,
		job.Condition{Statuses: []job.Status{job.Pending}, ContractorUnset: true},
		job.Change{}), nil
}

// Start plans ACCEPTED -> IN_PROGRESS by the assigned contractor.
func (l LifecycleStateMachine) Start(j *job.Job, contractorID kernel.UUID) (job.Transition, error) {
	if err := l.checkAssigned(j, job.InProgress, contractorID); err != nil {
		return job.Transition{}, err
	}
	now := l.now()
	return l.transition(j, job.InProgress,
		job.Condition{Statuses: []job.Status{job.Accepted}, ContractorID: &contractorID},
		job.Change{StartedAt: &now}), nil
}

// Complete plans IN_PROGRESS -> COMPLETED by the assigned contractor.
func (l LifecycleStateMachine) Complete(j *job.Job, contractorID kernel.UUID) (job.Transition, error) {
	if err := l.checkAssigned(j, job.Completed, contractorID); err != nil {
		return job.Transition{}, err
	}
	now := l.now()
	return l.transition(j, job.Completed,
		job.Condition{Statuses: []job.Status{job.InProgress}, ContractorID: &contractorID},
		job.Change{CompletedAt: &now}), nil
}

// Cancel plans a cancellation by the customer who owns the job or by its contractor.
// The reason must have at least five characters after trimming.
func (l LifecycleStateMachine) Cancel(j *job.Job, actor job.Actor, reason string) (job.Transition, error) {
	reason, err := job.ValidateCancellationReason(reason)
	if err != nil {
		return job.Transition{}, err
	}
	if err = l.check(j, job.Cancelled, actor); err != nil {
		return job.Transition{}, err
	}

	cond := job.Condition{Statuses: []job.Status{j.Status()}}
	if actor.Role == job.RoleContractor {
		if !j.HasContractor(actor.ID) {
			return job.Transition{}, errs.NewForbiddenError(actor.String(), "job", j.ID())
		}
		id := actor.ID
		cond.ContractorID = &id
	}
	return l.transition(j, job.Cancelled, cond,
		job.Change{Cancellation: &job.Cancellation{Reason: reason, By: actor.Role}}), nil
}

// Dispute plans the administrative override into DISPUTED.
func (l LifecycleStateMachine) Dispute(j *job.Job, admin job.Actor, reason string) (job.Transition, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return job.Transition{}, errs.NewValueIsRequiredError("reason")
	}
	if err := l.check(j, job.Disputed, admin); err != nil {
		return job.Transition{}, err
	}
	return l.transition(j, job.Disputed,
		job.Condition{Statuses: []job.Status{j.Status()}},
		job.Change{DisputeReason: reason}), nil
}

// check validates the job and the actor, verifies the transition table and then the
// actor's relation to the job.
func (l LifecycleStateMachine) check(j *job.Job, to job.Status, actor job.Actor) error {
	if err := errors.Join(j.Validate(), actor.Validate()); err != nil {
		return err
	}
	if err := job.ValidateTransition(j.Status(), to, actor.Role, j.Type()); err != nil {
		return err
	}

	switch actor.Role {
	case job.RoleCustomer:
		if !j.IsOwnedBy(actor.ID) {
			return errs.NewForbiddenError(actor.String(), "job", j.ID())
		}
	case job.RoleContractor:
		// an open job has no contractor yet; any contractor may claim or quote it
		if j.ContractorID() != nil && !j.HasContractor(actor.ID) {
			return errs.NewForbiddenError(actor.String(), "job", j.ID())
		}
	case job.RoleSystem, job.RoleAdmin:
	}
	return nil
}

func (l LifecycleStateMachine) checkAssigned(j *job.Job, to job.Status, contractorID kernel.UUID) error {
	if err := l.check(j, to, job.Actor{Role: job.RoleContractor, ID: contractorID}); err != nil {
		return err
	}
	if !j.HasContractor(contractorID) {
		return errs.NewForbiddenError(job.Actor{Role: job.RoleContractor, ID: contractorID}.String(), "job", j.ID())
	}
	return nil
}

func (l LifecycleStateMachine) transition(j *job.Job, to job.Status, cond job.Condition, change job.Change) job.Transition {
	change.Status = to
	change.UpdatedAt = l.now()
	return job.Transition{
		JobID:     j.ID(),
		From:      j.Status(),
		To:        to,
		Condition: cond,
		Change:    change,
	}
}
