package job

import (
	"fmt"
	"slices"

	"jobmatch/internal/pkg/errs"
)

// Status is the lifecycle state of a job.
//
// State transitions (actor in parentheses):
//
//	PENDING ──(any)──> QUOTED
//	PENDING, QUOTED ──(contractor claim | customer on BIDDING)──> ACCEPTED
//	PENDING, QUOTED ──(customer)──> OFFERED ──(contractor)──> ACCEPTED
//	OFFERED ──(system)──> QUOTED
//	PENDING ──(system, IMMEDIATE only)──> EXPIRED
//	ACCEPTED ──(contractor)──> IN_PROGRESS ──(contractor)──> COMPLETED
//	PENDING..IN_PROGRESS ──(customer | contractor)──> CANCELLED
//	any but DISPUTED ──(admin)──> DISPUTED
//
// COMPLETED, CANCELLED and EXPIRED are terminal; only the admin dispute override
// leaves them.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Pending
	Quoted
	Offered
	Accepted
	InProgress
	Completed
	Cancelled
	Disputed
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:    "PENDING",
		Quoted:     "QUOTED",
		Offered:    "OFFERED",
		Accepted:   "ACCEPTED",
		InProgress: "IN_PROGRESS",
		Completed:  "COMPLETED",
		Cancelled:  "CANCELLED",
		Disputed:   "DISPUTED",
		Expired:    "EXPIRED",
	}
}

// AllStatuses lists every valid status in declaration order.
func AllStatuses() []Status {
	return []Status{Pending, Quoted, Offered, Accepted, InProgress, Completed, Cancelled, Disputed, Expired}
}

// ParseStatus converts the persisted or wire name of a status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the declared values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no regular transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Expired
}

// IsOpen reports whether the job still accepts quotes, claims and offers.
func (s Status) IsOpen() bool {
	return s == Pending || s == Quoted
}

// RequiresContractor reports whether a job in s must reference a contractor.
func (s Status) RequiresContractor() bool {
	return s == Offered || s == Accepted || s == InProgress || s == Completed
}

// ForbidsContractor reports whether a job in s must not reference a contractor.
// Cancelled and Disputed jobs keep whichever contractor they had.
func (s Status) ForbidsContractor() bool {
	return s == Pending || s == Quoted || s == Expired
}

// OpenStatuses are the statuses from which a job can be claimed or offered.
func OpenStatuses() []Status {
	return []Status{Pending, Quoted}
}

// CancellableStatuses are the statuses from which a job can be cancelled.
func CancellableStatuses() []Status {
	return []Status{Pending, Quoted, Offered, Accepted, InProgress}
}

// rule is one row of the transition table. Nil roles or types match anything.
type rule struct {
	from  []Status
	to    Status
	roles []Role
	types []Type
}

func transitionRules() []rule {
	return []rule{
		{from: []Status{Pending}, to: Quoted},
		{from: OpenStatuses(), to: Accepted, roles: []Role{RoleContractor}, types: []Type{Immediate, Scheduled}},
		{from: OpenStatuses(), to: Accepted, roles: []Role{RoleCustomer}, types: []Type{Bidding}},
		{from: OpenStatuses(), to: Offered, roles: []Role{RoleCustomer}, types: []Type{Immediate, Scheduled}},
		{from: []Status{Offered}, to: Accepted, roles: []Role{RoleContractor}},
		{from: []Status{Offered}, to: Quoted, roles: []Role{RoleSystem}},
		{from: []Status{Pending}, to: Expired, roles: []Role{RoleSystem}, types: []Type{Immediate}},
		{from: []Status{Accepted}, to: InProgress, roles: []Role{RoleContractor}},
		{from: []Status{InProgress}, to: Completed, roles: []Role{RoleContractor}},
		{from: CancellableStatuses(), to: Cancelled, roles: []Role{RoleCustomer, RoleContractor}},
		{
			from:  []Status{Pending, Quoted, Offered, Accepted, InProgress, Completed, Cancelled, Expired},
			to:    Disputed,
			roles: []Role{RoleAdmin},
		},
	}
}

// ValidateTransition checks the transition table for from -> to requested by role on a
// job of the given type. An unlisted pair and a listed pair requested by the wrong role
// or on the wrong job type both yield a TransitionIsInvalidError.
//
// Example:
//
//	err := ValidateTransition(Pending, Expired, RoleSystem, Scheduled)
//	// err: transition is invalid: PENDING -> EXPIRED (cause: ...)
func ValidateTransition(from, to Status, role Role, jobType Type) error {
	var pairKnown bool
	for _, r := range transitionRules() {
		if r.to != to || !slices.Contains(r.from, from) {
			continue
		}
		pairKnown = true

		if (r.roles == nil || slices.Contains(r.roles, role)) && (r.types == nil || slices.Contains(r.types, jobType)) {
			return nil
		}
	}

	if !pairKnown {
		return errs.NewTransitionIsInvalidError(from, to)
	}
	return errs.NewTransitionIsInvalidErrorWithCause(from, to,
		fmt.Errorf("not allowed for %s on a %s job", role, jobType))
}
