package services

import (
	"time"

	"jobmatch/internal/core/domain/model/contractor"
	"jobmatch/internal/core/domain/model/job"
)

// ScanGeoMatcher computes the distance to every candidate. It is the reference
// strategy and the right choice for small candidate sets.
type ScanGeoMatcher struct{}

// NewScanGeoMatcher creates a brute force matcher.
func NewScanGeoMatcher() ScanGeoMatcher {
	return ScanGeoMatcher{}
}

// FindEligible implements GeoMatcher.
func (ScanGeoMatcher) FindEligible(j *job.Job, candidates []*contractor.Contractor) []ContractorMatch {
	matches := make([]ContractorMatch, 0)
	if j.Validate() != nil {
		return matches
	}

	for _, c := range candidates {
		if !prefilterContractor(j, c) {
			continue
		}
		d := distanceKm(j.Location(), c.Location())
		if d <= c.CoverageRadius() {
			matches = append(matches, ContractorMatch{Contractor: c, DistanceKm: d})
		}
	}

	sortContractorMatches(matches)
	return matches
}

// FindNearbyJobs implements GeoMatcher.
func (ScanGeoMatcher) FindNearbyJobs(c *contractor.Contractor, radiusKm float64, jobs []*job.Job, now time.Time) []JobMatch {
	matches := make([]JobMatch, 0)
	if c.Validate() != nil || !c.IsMatchable() {
		return matches
	}

	radius := effectiveRadius(c, radiusKm)
	for _, j := range jobs {
		if !prefilterJob(c, j, now) {
			continue
		}
		d := distanceKm(j.Location(), c.Location())
		if d <= radius {
			matches = append(matches, JobMatch{Job: j, DistanceKm: d})
		}
	}

	sortJobMatches(matches)
	return matches
}
