package queries

import (
	"errors"
	"math"
	"time"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

var (
	ErrFindCandidatesQueryIsNotConstructed = errors.New(
		"FindCandidatesQuery must be created via NewFindCandidatesQuery constructor",
	)
	ErrFindNearbyJobsQueryIsNotConstructed = errors.New(
		"FindNearbyJobsQuery must be created via NewFindNearbyJobsQuery constructor",
	)
)

// FindCandidatesQuery lists the contractors eligible for a job, nearest first.
type FindCandidatesQuery struct {
	jobID kernel.UUID
	guard guard.ConstructorGuard
}

// NewFindCandidatesQuery creates a candidate lookup for jobID.
func NewFindCandidatesQuery(jobID kernel.UUID) (FindCandidatesQuery, error) {
	if err := jobID.Validate(); err != nil {
		return FindCandidatesQuery{}, errs.NewValueIsRequiredErrorWithCause("jobID", err)
	}
	return FindCandidatesQuery{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q FindCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrFindCandidatesQueryIsNotConstructed)
}

func (q FindCandidatesQuery) JobID() kernel.UUID {
	return q.jobID
}

// CandidateResponse is an eligible contractor and its distance to the job.
type CandidateResponse struct {
	ContractorID     kernel.UUID
	UserID           kernel.UUID
	Name             string
	DistanceKm       float64
	CoverageRadiusKm float64
}

// FindNearbyJobsQuery lists open jobs around a contractor.
//
// A RadiusKm of zero or less searches the contractor's own coverage radius.
type FindNearbyJobsQuery struct {
	contractorID kernel.UUID
	radiusKm     float64
	guard        guard.ConstructorGuard
}

// NewFindNearbyJobsQuery creates a nearby-jobs lookup.
func NewFindNearbyJobsQuery(contractorID kernel.UUID, radiusKm float64) (FindNearbyJobsQuery, error) {
	if err := contractorID.Validate(); err != nil {
		return FindNearbyJobsQuery{}, errs.NewValueIsRequiredErrorWithCause("contractorID", err)
	}
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return FindNearbyJobsQuery{}, errs.NewValueIsInvalidError("radiusKm")
	}
	return FindNearbyJobsQuery{contractorID: contractorID, radiusKm: radiusKm, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q FindNearbyJobsQuery) Validate() error {
	return q.guard.Validate(ErrFindNearbyJobsQueryIsNotConstructed)
}

func (q FindNearbyJobsQuery) ContractorID() kernel.UUID {
	return q.contractorID
}

func (q FindNearbyJobsQuery) RadiusKm() float64 {
	return q.radiusKm
}

// NearbyJobResponse is an open job and its distance to the contractor.
type NearbyJobResponse struct {
	JobID          kernel.UUID
	Title          string
	Type           string
	Status         string
	Location       kernel.Location
	RequiredSkills []string
	WorkersNeeded  int
	ExpiresAt      *time.Time
	DistanceKm     float64
}
