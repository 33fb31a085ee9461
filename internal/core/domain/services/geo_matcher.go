package services

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"jobmatch/internal/core/domain/model/contractor"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
)

// ContractorMatch is an eligible contractor with its distance from the job.
type ContractorMatch struct {
	Contractor *contractor.Contractor
	DistanceKm float64
}

// JobMatch is an open job with its distance from the contractor.
type JobMatch struct {
	Job        *job.Job
	DistanceKm float64
}

// GeoMatcher finds contractors for a job and jobs for a contractor.
//
// Eligibility rules shared by every implementation:
//   - only active and verified contractors take part
//   - when the job lists required skills, at least one worker of the contractor
//     must have at least one of them (case-insensitive)
//   - the haversine distance must not exceed the radius; a distance equal to the
//     radius is inside
//
// Results are ordered by distance ascending with ties broken by id. Empty or
// invalid input yields an empty result, never an error.
type GeoMatcher interface {
	// FindEligible returns the contractors whose coverage radius contains the job.
	FindEligible(j *job.Job, candidates []*contractor.Contractor) []ContractorMatch

	// FindNearbyJobs returns the jobs open at now that lie within radiusKm of the
	// contractor. A radius ≤ 0 means the contractor's own coverage radius.
	FindNearbyJobs(c *contractor.Contractor, radiusKm float64, jobs []*job.Job, now time.Time) []JobMatch
}

// Strategy names accepted by NewGeoMatcher.
const (
	GeoMatcherScan    = "scan"
	GeoMatcherIndexed = "indexed"
)

// NewGeoMatcher returns the strategy registered under name. It is called once at
// composition time.
func NewGeoMatcher(name string) (GeoMatcher, error) {
	switch name {
	case GeoMatcherScan:
		return NewScanGeoMatcher(), nil
	case GeoMatcherIndexed:
		return NewIndexedGeoMatcher(), nil
	default:
		return nil, fmt.Errorf("unknown geo matcher %q, want %q or %q", name, GeoMatcherScan, GeoMatcherIndexed)
	}
}

// distanceKm is the single distance function used by every strategy so that both
// see bit-identical values at the radius boundary. The job location always comes first.
func distanceKm(jobLoc, contractorLoc kernel.Location) float64 {
	return kernel.Haversine(jobLoc.Latitude(), jobLoc.Longitude(), contractorLoc.Latitude(), contractorLoc.Longitude())
}

// prefilterContractor applies the checks that do not depend on distance.
func prefilterContractor(j *job.Job, c *contractor.Contractor) bool {
	if c.Validate() != nil || !c.IsMatchable() {
		return false
	}
	return c.HasSkillFor(j.RequiredSkills())
}

// prefilterJob applies the checks of FindNearbyJobs that do not depend on distance.
func prefilterJob(c *contractor.Contractor, j *job.Job, now time.Time) bool {
	if j.Validate() != nil || !j.IsOpenAt(now) {
		return false
	}
	return c.HasSkillFor(j.RequiredSkills())
}

// effectiveRadius resolves the radius argument of FindNearbyJobs.
func effectiveRadius(c *contractor.Contractor, radiusKm float64) float64 {
	if radiusKm <= 0 {
		return c.CoverageRadius()
	}
	return radiusKm
}

func sortContractorMatches(matches []ContractorMatch) {
	slices.SortFunc(matches, func(a, b ContractorMatch) int {
		if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
			return c
		}
		return compareIDs(a.Contractor.ID(), b.Contractor.ID())
	})
}

func sortJobMatches(matches []JobMatch) {
	slices.SortFunc(matches, func(a, b JobMatch) int {
		if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
			return c
		}
		return compareIDs(a.Job.ID(), b.Job.ID())
	})
}

func compareIDs(a, b kernel.UUID) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
