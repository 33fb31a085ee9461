package quote

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

const (
	// AdvanceCapPercent is the largest advance a contractor may request, as a
	// percentage of the quote's total amount.
	AdvanceCapPercent = 20
)

var (
	// ErrQuoteIsNotConstructed is returned when a Quote was not created through NewQuote or RestoreQuote.
	ErrQuoteIsNotConstructed = errors.New("Quote must be created via NewQuote or RestoreQuote constructor")
)

// Terms are the money parts of a quote. Amounts are in minor currency units.
type Terms struct {
	Amount           int64
	TotalAmount      int64
	AdvanceRequested bool
	AdvanceAmount    int64
	Note             string
}

// Quote is a contractor's price for a job. There is at most one quote per
// (job, contractor) pair; submitting again replaces the terms of the existing one.
//
// Invariants:
//   - Amount and TotalAmount are positive and Amount does not exceed TotalAmount
//   - An advance is only present when requested and never exceeds 20% of TotalAmount
type Quote struct {
	id           kernel.UUID
	jobID        kernel.UUID
	contractorID kernel.UUID
	terms        Terms
	isAccepted   bool
	createdAt    time.Time
	updatedAt    time.Time
	guard        guard.ConstructorGuard
}

// NewQuote creates an unaccepted quote.
//
// Example:
//
//	q, err := NewQuote(kernel.NewUUID(), jobID, contractorID, Terms{
//	    Amount:           90000,
//	    TotalAmount:      100000,
//	    AdvanceRequested: true,
//	    AdvanceAmount:    20000, // exactly at the cap
//	}, time.Now())
func NewQuote(id, jobID, contractorID kernel.UUID, terms Terms, now time.Time) (*Quote, error) {
	q := &Quote{
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setIDs(id, jobID, contractorID),
		q.setTerms(terms),
	); err != nil {
		return nil, err
	}

	return q, nil
}

// RestoreQuote reconstructs a Quote from persistent storage.
func RestoreQuote(
	id, jobID, contractorID kernel.UUID,
	terms Terms,
	isAccepted bool,
	createdAt, updatedAt time.Time,
) (*Quote, error) {
	q := &Quote{
		isAccepted: isAccepted,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setIDs(id, jobID, contractorID),
		q.setTerms(terms),
	); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate ensures the Quote instance was properly constructed.
func (q *Quote) Validate() error {
	if q == nil {
		return ErrQuoteIsNotConstructed
	}
	return q.guard.Validate(ErrQuoteIsNotConstructed)
}

func (q *Quote) ID() kernel.UUID {
	return q.id
}

func (q *Quote) JobID() kernel.UUID {
	return q.jobID
}

func (q *Quote) ContractorID() kernel.UUID {
	return q.contractorID
}

func (q *Quote) Terms() Terms {
	return q.terms
}

func (q *Quote) IsAccepted() bool {
	return q.isAccepted
}

func (q *Quote) CreatedAt() time.Time {
	return q.createdAt
}

func (q *Quote) UpdatedAt() time.Time {
	return q.updatedAt
}

// BelongsTo reports whether the quote was submitted for jobID.
func (q *Quote) BelongsTo(jobID kernel.UUID) bool {
	return q.jobID.IsEqual(jobID)
}

// SetAccepted mirrors a committed acceptance or revert in memory.
func (q *Quote) SetAccepted(accepted bool, now time.Time) {
	q.isAccepted = accepted
	q.updatedAt = now
}

func (q *Quote) setIDs(id, jobID, contractorID kernel.UUID) error {
	if err := errors.Join(
		id.Validate(),
		wrapRequired("jobID", jobID.Validate()),
		wrapRequired("contractorID", contractorID.Validate()),
	); err != nil {
		return err
	}

	q.id = id
	q.jobID = jobID
	q.contractorID = contractorID
	return nil
}

func (q *Quote) setTerms(t Terms) error {
	if err := ValidateTerms(t); err != nil {
		return err
	}
	t.Note = strings.TrimSpace(t.Note)
	q.terms = t
	return nil
}

// ValidateTerms checks amounts and the advance cap. The cap check is done in integer
// arithmetic so an advance of exactly 20% is always accepted, and it cannot overflow
// for any int64 amount.
func ValidateTerms(t Terms) error {
	var problems []error

	if t.Amount <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is not greater than 0", t.Amount)))
	}
	if t.TotalAmount <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("totalAmount", fmt.Errorf("%d is not greater than 0", t.TotalAmount)))
	} else if t.Amount > t.TotalAmount {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d exceeds total amount %d", t.Amount, t.TotalAmount)))
	}

	switch {
	case t.AdvanceAmount < 0:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("advanceAmount", fmt.Errorf("%d is negative", t.AdvanceAmount)))
	case !t.AdvanceRequested && t.AdvanceAmount != 0:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("advanceAmount", errors.New("set without advanceRequested")))
	case t.TotalAmount > 0 && t.AdvanceAmount > MaxAdvance(t.TotalAmount):
		problems = append(problems, errs.NewValueIsOutOfRangeError("advanceAmount", t.AdvanceAmount, 0, MaxAdvance(t.TotalAmount)))
	}

	return errors.Join(problems...)
}

// MaxAdvance returns the largest advance allowed for a positive totalAmount, rounded
// down. Hundreds and the remainder are scaled separately so no product exceeds totalAmount.
func MaxAdvance(totalAmount int64) int64 {
	return totalAmount/100*AdvanceCapPercent + totalAmount%100*AdvanceCapPercent/100
}

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}
