package job

import (
	"fmt"
	"time"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
)

// AssignmentStatus follows the job through execution.
type AssignmentStatus string

const (
	AssignmentAssigned AssignmentStatus = "ASSIGNED"
	AssignmentWorking  AssignmentStatus = "WORKING"
	AssignmentDone     AssignmentStatus = "DONE"
)

// ParseAssignmentStatus converts the persisted name of an assignment status.
func ParseAssignmentStatus(s string) (AssignmentStatus, error) {
	switch st := AssignmentStatus(s); st {
	case AssignmentAssigned, AssignmentWorking, AssignmentDone:
		return st, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("assignmentStatus", fmt.Errorf("%q is not a valid assignment status", s))
	}
}

// Assignment links a worker of the claiming contractor to a job. The set of
// assignments of a job is always replaced as a whole.
type Assignment struct {
	JobID       kernel.UUID
	WorkerID    kernel.UUID
	Status      AssignmentStatus
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// NewAssignments builds the ASSIGNED set for the given workers.
func NewAssignments(jobID kernel.UUID, workerIDs []kernel.UUID) []Assignment {
	out := make([]Assignment, 0, len(workerIDs))
	for _, w := range workerIDs {
		out = append(out, Assignment{JobID: jobID, WorkerID: w, Status: AssignmentAssigned})
	}
	return out
}
