package job

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
	// MinCancellationReasonLength is the minimum length of a trimmed cancellation reason.
	MinCancellationReasonLength = 5
)

var (
	// ErrJobIsNotConstructed is returned when a Job instance was not created through
	// NewJob or RestoreJob.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob constructor")
)

// AcceptedQuote is the quote a customer picked, with its amount in minor currency units.
type AcceptedQuote struct {
	QuoteID kernel.UUID
	Amount  int64
}

// Draft carries the customer supplied attributes of a new job.
type Draft struct {
	Title              string
	Description        string
	Type               Type
	Location           kernel.Location
	RequiredSkills     []string
	WorkersNeeded      int
	ScheduledStartDate *time.Time
}

// Snapshot is the complete persisted state of a job. It is what repositories read
// and write; domain code works with *Job.
type Snapshot struct {
	ID                 kernel.UUID
	CustomerID         kernel.UUID
	Title              string
	Description        string
	Status             Status
	Type               Type
	Location           kernel.Location
	RequiredSkills     []string
	WorkersNeeded      int
	ContractorID       *kernel.UUID
	AcceptedQuote      *AcceptedQuote
	ExpiresAt          *time.Time
	ScheduledStartDate *time.Time
	CancellationReason string
	CancelledBy        Role
	DisputeReason      string
	StartedAt          *time.Time
	CompletedAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Job is the aggregate root of the matching domain. It tracks a unit of physical
// labor from posting through claim or offer to completion.
//
// Job follows these invariants:
//   - Must have valid identifiers for itself and its customer
//   - WorkersNeeded is positive
//   - IMMEDIATE jobs carry an expiry deadline, SCHEDULED jobs carry a start date
//   - A contractor is referenced iff the status is OFFERED, ACCEPTED, IN_PROGRESS or
//     COMPLETED; CANCELLED and DISPUTED jobs keep whatever contractor they had
//
// A Job is never mutated in place by business code. State changes are planned as a
// Transition, committed by the store with a conditional write, and mirrored in memory
// through Apply once the store reports success.
type Job struct {
	id                 kernel.UUID
	customerID         kernel.UUID
	title              string
	description        string
	status             Status
	jobType            Type
	location           kernel.Location
	requiredSkills     []string
	workersNeeded      int
	contractorID       *kernel.UUID
	acceptedQuote      *AcceptedQuote
	expiresAt          *time.Time
	scheduledStartDate *time.Time
	cancellationReason string
	cancelledBy        Role
	disputeReason      string
	startedAt          *time.Time
	completedAt        *time.Time
	createdAt          time.Time
	updatedAt          time.Time
	guard              guard.ConstructorGuard
}

// NewJob creates a PENDING job without a contractor.
//
// Parameters:
//   - id: Unique identifier for the job
//   - customerID: user id of the customer posting the job
//   - draft: customer supplied attributes
//   - now: creation time
//   - claimTTL: how long an IMMEDIATE job stays claimable; ignored for other types
//
// Returns:
//   - *Job: the created job
//   - error: aggregated validation errors
//
// Example:
//
//	loc, _ := kernel.NewLocation(12.9716, 77.5946)
//	j, err := NewJob(kernel.NewUUID(), customerID, Draft{
//	    Title:         "Fix kitchen sink",
//	    Type:          Immediate,
//	    Location:      loc,
//	    WorkersNeeded: 1,
//	}, time.Now(), 5*time.Minute)
func NewJob(id, customerID kernel.UUID, draft Draft, now time.Time, claimTTL time.Duration) (*Job, error) {
	j := &Job{
		status:    Pending,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	var expiresAt *time.Time
	if draft.Type == Immediate {
		if claimTTL <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("claimTTL", fmt.Errorf("%s is not positive", claimTTL))
		}
		at := now.Add(claimTTL)
		expiresAt = &at
	}

	if err := errors.Join(
		j.setID(id),
		j.setCustomerID(customerID),
		j.setTitle(draft.Title),
		j.setType(draft.Type),
		j.setLocation(draft.Location),
		j.setWorkersNeeded(draft.WorkersNeeded),
		j.setSchedule(draft.Type, expiresAt, draft.ScheduledStartDate),
	); err != nil {
		return nil, err
	}

	j.description = strings.TrimSpace(draft.Description)
	j.requiredSkills = kernel.NormalizeSkills(draft.RequiredSkills)
	return j, nil
}

// RestoreJob reconstructs a Job from persistent storage, checking the same invariants
// NewJob enforces plus the status/contractor consistency rule.
func RestoreJob(s Snapshot) (*Job, error) {
	j := &Job{
		description:        s.Description,
		requiredSkills:     kernel.NormalizeSkills(s.RequiredSkills),
		acceptedQuote:      s.AcceptedQuote,
		cancellationReason: s.CancellationReason,
		cancelledBy:        s.CancelledBy,
		disputeReason:      s.DisputeReason,
		startedAt:          s.StartedAt,
		completedAt:        s.CompletedAt,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(s.ID),
		j.setCustomerID(s.CustomerID),
		j.setTitle(s.Title),
		j.setType(s.Type),
		j.setLocation(s.Location),
		j.setWorkersNeeded(s.WorkersNeeded),
		j.setSchedule(s.Type, s.ExpiresAt, s.ScheduledStartDate),
		j.setStatus(s.Status, s.ContractorID),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// Validate ensures the Job instance was properly constructed.
func (j *Job) Validate() error {
	if j == nil {
		return ErrJobIsNotConstructed
	}
	return j.guard.Validate(ErrJobIsNotConstructed)
}

// IsEqual compares two jobs by identifier.
func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

func (j *Job) ID() kernel.UUID { return j.id }
func (j *Job) CustomerID() kernel.UUID { return j.customerID }
func (j *Job) Title() string { return j.title }
func (j *Job) Description() string { return j.description }
func (j *Job) Status() Status { return j.status }
func (j *Job) Type() Type { return j.jobType }
func (j *Job) Location() kernel.Location { return j.location }
func (j *Job) WorkersNeeded() int { return j.workersNeeded }
func (j *Job) ContractorID() *kernel.UUID { return j.contractorID }
func (j *Job) AcceptedQuote() *AcceptedQuote { return j.acceptedQuote }
func (j *Job) ExpiresAt() *time.Time { return j.expiresAt }
func (j *Job) ScheduledStartDate() *time.Time { return j.scheduledStartDate }
func (j *Job) CancellationReason() string { return j.cancellationReason }
func (j *Job) CancelledBy() Role { return j.cancelledBy }
func (j *Job) DisputeReason() string { return j.disputeReason }
func (j *Job) StartedAt() *time.Time { return j.startedAt }
func (j *Job) CompletedAt() *time.Time { return j.completedAt }
func (j *Job) CreatedAt() time.Time { return j.createdAt }
func (j *Job) UpdatedAt() time.Time { return j.updatedAt }

// RequiredSkills returns a copy of the normalized required skill set.
func (j *Job) RequiredSkills() []string {
	return append([]string(nil), j.requiredSkills...)
}

// HasContractor reports whether id is the job's current contractor.
func (j *Job) HasContractor(id kernel.UUID) bool {
	return j.contractorID != nil && j.contractorID.IsEqual(id)
}

// IsOwnedBy reports whether userID posted the job.
func (j *Job) IsOwnedBy(userID kernel.UUID) bool {
	return j.customerID.IsEqual(userID)
}

// IsOpenAt reports whether the job is listed for contractors at the given time:
// open status, no contractor and not past its claim deadline.
func (j *Job) IsOpenAt(now time.Time) bool {
	if !j.status.IsOpen() || j.contractorID != nil {
		return false
	}
	return j.expiresAt == nil || now.Before(*j.expiresAt)
}

// Snapshot returns the complete state of the job for persistence.
func (j *Job) Snapshot() Snapshot {
	return Snapshot{
		ID:                 j.id,
		CustomerID:         j.customerID,
		Title:              j.title,
		Description:        j.description,
		Status:             j.status,
		Type:               j.jobType,
		Location:           j.location,
		RequiredSkills:     j.RequiredSkills(),
		WorkersNeeded:      j.workersNeeded,
		ContractorID:       j.contractorID,
		AcceptedQuote:      j.acceptedQuote,
		ExpiresAt:          j.expiresAt,
		ScheduledStartDate: j.scheduledStartDate,
		CancellationReason: j.cancellationReason,
		CancelledBy:        j.cancelledBy,
		DisputeReason:      j.disputeReason,
		StartedAt:          j.startedAt,
		CompletedAt:        j.completedAt,
		CreatedAt:          j.createdAt,
		UpdatedAt:          j.updatedAt,
	}
}

// Apply mirrors a committed Change in memory. It must only be called after the
// store reported that the conditional write matched a row.
func (j *Job) Apply(c Change) error {
	next := *j

	next.status = c.Status
	switch {
	case c.ClearContractor:
		next.contractorID = nil
	case c.ContractorID != nil:
		id := *c.ContractorID
		next.contractorID = &id
	}
	switch {
	case c.ClearAcceptedQuote:
		next.acceptedQuote = nil
	case c.AcceptedQuote != nil:
		q := *c.AcceptedQuote
		next.acceptedQuote = &q
	}
	if c.Cancellation != nil {
		next.cancellationReason = c.Cancellation.Reason
		next.cancelledBy = c.Cancellation.By
	}
	if c.DisputeReason != "" {
		next.disputeReason = c.DisputeReason
	}
	if c.StartedAt != nil {
		next.startedAt = c.StartedAt
	}
	if c.CompletedAt != nil {
		next.completedAt = c.CompletedAt
	}
	next.updatedAt = c.UpdatedAt

	if err := next.setStatus(next.status, next.contractorID); err != nil {
		return err
	}

	*j = next
	return nil
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *Job) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	j.customerID = id
	return nil
}

func (j *Job) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	j.title = title
	return nil
}

func (j *Job) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	j.jobType = t
	return nil
}

func (j *Job) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	j.location = location
	return nil
}

func (j *Job) setWorkersNeeded(n int) error {
	if n <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("workersNeeded", fmt.Errorf("%d is not greater than 0", n))
	}
	j.workersNeeded = n
	return nil
}

// setSchedule enforces that only IMMEDIATE jobs expire and only SCHEDULED jobs have
// a start date.
func (j *Job) setSchedule(t Type, expiresAt, scheduledStart *time.Time) error {
	var err error
	switch {
	case t == Immediate && expiresAt == nil:
		err = errs.NewValueIsRequiredError("expiresAt")
	case t != Immediate && expiresAt != nil:
		err = errs.NewValueIsInvalidErrorWithCause("expiresAt", fmt.Errorf("only %s jobs expire", Immediate))
	case t == Scheduled && scheduledStart == nil:
		err = errs.NewValueIsRequiredError("scheduledStartDate")
	case t != Scheduled && scheduledStart != nil:
		err = errs.NewValueIsInvalidErrorWithCause("scheduledStartDate", fmt.Errorf("only %s jobs have a start date", Scheduled))
	}
	if err != nil {
		return err
	}

	j.expiresAt = expiresAt
	j.scheduledStartDate = scheduledStart
	return nil
}

func (j *Job) setStatus(status Status, contractorID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status.RequiresContractor() && contractorID == nil {
		return errs.NewValueIsRequiredErrorWithCause("contractorID", fmt.Errorf("%s job must have a contractor", status))
	}
	if status.ForbidsContractor() && contractorID != nil {
		return errs.NewValueIsInvalidErrorWithCause("contractorID", fmt.Errorf("%s job must not have a contractor", status))
	}
	j.status = status
	j.contractorID = contractorID
	return nil
}

// ValidateCancellationReason trims reason and checks its minimum length.
func ValidateCancellationReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if n := len([]rune(reason)); n < MinCancellationReasonLength {
		return "", errs.NewValueIsInvalidErrorWithCause("reason",
			fmt.Errorf("must be at least %d characters, got %d", MinCancellationReasonLength, n))
	}
	return reason, nil
}
