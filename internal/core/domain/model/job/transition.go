package job

import (
	"slices"
	"time"

	"jobmatch/internal/core/domain/model/kernel"
)

// Condition is the predicate a conditional write must match for its Change to be
// committed. Every field that is set narrows the predicate.
type Condition struct {
	// Statuses lists the acceptable current statuses. It is never empty.
	Statuses []Status
	// ContractorUnset requires contractor_id IS NULL.
	ContractorUnset bool
	// ContractorID requires contractor_id = *ContractorID.
	ContractorID *kernel.UUID
	// AcceptedQuoteID requires accepted_quote_id = *AcceptedQuoteID.
	AcceptedQuoteID *kernel.UUID
}

// Matches evaluates the predicate against an in-memory job. Stores backed by a
// database evaluate the same predicate in their WHERE clause instead.
func (c Condition) Matches(j *Job) bool {
	if !slices.Contains(c.Statuses, j.status) {
		return false
	}
	if c.ContractorUnset && j.contractorID != nil {
		return false
	}
	if c.ContractorID != nil && !j.HasContractor(*c.ContractorID) {
		return false
	}
	if c.AcceptedQuoteID != nil && (j.acceptedQuote == nil || !j.acceptedQuote.QuoteID.IsEqual(*c.AcceptedQuoteID)) {
		return false
	}
	return true
}

// Cancellation records why and by whom a job was cancelled.
type Cancellation struct {
	Reason string
	By     Role
}

// Change is the set of columns a conditional write assigns. Status and UpdatedAt are
// always written; the remaining fields only when set.
type Change struct {
	Status             Status
	ContractorID       *kernel.UUID
	ClearContractor    bool
	AcceptedQuote      *AcceptedQuote
	ClearAcceptedQuote bool
	Cancellation       *Cancellation
	DisputeReason      string
	StartedAt          *time.Time
	CompletedAt        *time.Time
	UpdatedAt          time.Time
}

// Transition is a validated, not yet committed status change of one job.
type Transition struct {
	JobID     kernel.UUID
	From      Status
	To        Status
	Condition Condition
	Change    Change
}
