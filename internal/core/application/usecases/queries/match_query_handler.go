package queries

import (
	"context"
	"time"

	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
)

// MatchQueryHandler answers the geo matching queries in both directions. Matching is
// done in memory by the configured GeoMatcher over the directory and the open jobs.
//
// Example:
//
//	handler := NewMatchQueryHandler(jobs, directory, services.NewIndexedGeoMatcher(), time.Now)
//	query, _ := NewFindCandidatesQuery(jobID)
//	candidates, err := handler.FindCandidates(ctx, query)
type MatchQueryHandler struct {
	jobs      ports.JobRepository
	directory ports.ContractorDirectory
	geo       services.GeoMatcher
	now       func() time.Time
}

// NewMatchQueryHandler creates a handler over read-only stores.
func NewMatchQueryHandler(
	jobs ports.JobRepository,
	directory ports.ContractorDirectory,
	geo services.GeoMatcher,
	now func() time.Time,
) MatchQueryHandler {
	if now == nil {
		now = time.Now
	}
	return MatchQueryHandler{jobs: jobs, directory: directory, geo: geo, now: now}
}

// FindCandidates returns the active, verified contractors whose coverage contains
// the job and who employ a worker with a required skill, nearest first.
func (h MatchQueryHandler) FindCandidates(ctx context.Context, query FindCandidatesQuery) ([]CandidateResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	j, err := h.jobs.Get(ctx, query.JobID())
	if err != nil {
		return nil, err
	}
	contractors, err := h.directory.ListMatchable(ctx)
	if err != nil {
		return nil, err
	}

	matches := h.geo.FindEligible(j, contractors)
	out := make([]CandidateResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, CandidateResponse{
			ContractorID:     m.Contractor.ID(),
			UserID:           m.Contractor.UserID(),
			Name:             m.Contractor.Name(),
			DistanceKm:       m.DistanceKm,
			CoverageRadiusKm: m.Contractor.CoverageRadius(),
		})
	}
	return out, nil
}

// FindNearbyJobs returns the open jobs within the radius of the contractor, nearest
// first. A contractor that is inactive or not verified gets an empty list.
func (h MatchQueryHandler) FindNearbyJobs(ctx context.Context, query FindNearbyJobsQuery) ([]NearbyJobResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	c, err := h.directory.Get(ctx, query.ContractorID())
	if err != nil {
		return nil, err
	}
	if !c.IsMatchable() {
		return []NearbyJobResponse{}, nil
	}

	now := h.now()
	open, err := h.jobs.ListOpen(ctx, now)
	if err != nil {
		return nil, err
	}

	matches := h.geo.FindNearbyJobs(c, query.RadiusKm(), open, now)
	out := make([]NearbyJobResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, NearbyJobResponse{
			JobID:          m.Job.ID(),
			Title:          m.Job.Title(),
			Type:           m.Job.Type().String(),
			Status:         m.Job.Status().String(),
			Location:       m.Job.Location(),
			RequiredSkills: m.Job.RequiredSkills(),
			WorkersNeeded:  m.Job.WorkersNeeded(),
			ExpiresAt:      m.Job.ExpiresAt(),
			DistanceKm:     m.DistanceKm,
		})
	}
	return out, nil
}
