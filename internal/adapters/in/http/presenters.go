package http

import (
	"jobmatch/internal/core/application/usecases/queries"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/quote"
	"jobmatch/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func presentLocation(l kernel.Location) servers.Location {
	return servers.Location{Latitude: l.Latitude(), Longitude: l.Longitude()}
}

func presentJob(j *job.Job) servers.Job {
	out := servers.Job{
		Id:                 j.ID().Bytes(),
		CustomerId:         j.CustomerID().Bytes(),
		Title:              j.Title(),
		Description:        optionalString(j.Description()),
		Status:             j.Status().String(),
		Type:               servers.JobType(j.Type().String()),
		Location:           presentLocation(j.Location()),
		RequiredSkills:     nonNil(j.RequiredSkills()),
		WorkersNeeded:      j.WorkersNeeded(),
		ContractorId:       optionalUUID(j.ContractorID()),
		ExpiresAt:          j.ExpiresAt(),
		ScheduledStartDate: j.ScheduledStartDate(),
		CancellationReason: optionalString(j.CancellationReason()),
		CancelledBy:        optionalString(string(j.CancelledBy())),
		DisputeReason:      optionalString(j.DisputeReason()),
		StartedAt:          j.StartedAt(),
		CompletedAt:        j.CompletedAt(),
		CreatedAt:          j.CreatedAt(),
		UpdatedAt:          j.UpdatedAt(),
	}
	if aq := j.AcceptedQuote(); aq != nil {
		id := aq.QuoteID.Bytes()
		amount := aq.Amount
		out.AcceptedQuoteId = &id
		out.AcceptedQuoteAmount = &amount
	}
	return out
}

func presentJobDetails(r *queries.GetJobQueryResponse) servers.JobDetails {
	out := servers.JobDetails{
		Job: servers.Job{
			Id:                  r.ID.Bytes(),
			CustomerId:          r.CustomerID.Bytes(),
			Title:               r.Title,
			Description:         optionalString(r.Description),
			Status:              r.Status,
			Type:                servers.JobType(r.Type),
			Location:            presentLocation(r.Location),
			RequiredSkills:      nonNil(r.RequiredSkills),
			WorkersNeeded:       r.WorkersNeeded,
			ContractorId:        optionalUUID(r.ContractorID),
			AcceptedQuoteId:     optionalUUID(r.AcceptedQuoteID),
			AcceptedQuoteAmount: r.AcceptedQuoteAmount,
			ExpiresAt:           r.ExpiresAt,
			ScheduledStartDate:  r.ScheduledStartDate,
			CancellationReason:  optionalString(r.CancellationReason),
			CancelledBy:         optionalString(r.CancelledBy),
			DisputeReason:       optionalString(r.DisputeReason),
			StartedAt:           r.StartedAt,
			CompletedAt:         r.CompletedAt,
			CreatedAt:           r.CreatedAt,
			UpdatedAt:           r.UpdatedAt,
		},
		ChatChannelOpen: r.ChatChannelOpen,
		Assignments:     make([]servers.Assignment, len(r.Assignments)),
		Quotes:          make([]servers.Quote, len(r.Quotes)),
	}
	for i, a := range r.Assignments {
		out.Assignments[i] = servers.Assignment{
			WorkerId:    a.WorkerID.Bytes(),
			Status:      a.Status,
			StartedAt:   a.StartedAt,
			CompletedAt: a.CompletedAt,
		}
	}
	for i, q := range r.Quotes {
		out.Quotes[i] = servers.Quote{
			Id:               q.ID.Bytes(),
			JobId:            r.ID.Bytes(),
			ContractorId:     q.ContractorID.Bytes(),
			Amount:           q.Amount,
			TotalAmount:      q.TotalAmount,
			AdvanceRequested: q.AdvanceRequested,
			AdvanceAmount:    q.AdvanceAmount,
			Note:             optionalString(q.Note),
			IsAccepted:       q.IsAccepted,
			CreatedAt:        q.CreatedAt,
			UpdatedAt:        q.UpdatedAt,
		}
	}
	return out
}

func presentQuote(q *quote.Quote) servers.Quote {
	terms := q.Terms()
	return servers.Quote{
		Id:               q.ID().Bytes(),
		JobId:            q.JobID().Bytes(),
		ContractorId:     q.ContractorID().Bytes(),
		Amount:           terms.Amount,
		TotalAmount:      terms.TotalAmount,
		AdvanceRequested: terms.AdvanceRequested,
		AdvanceAmount:    terms.AdvanceAmount,
		Note:             optionalString(terms.Note),
		IsAccepted:       q.IsAccepted(),
		CreatedAt:        q.CreatedAt(),
		UpdatedAt:        q.UpdatedAt(),
	}
}

func presentCandidates(candidates []queries.CandidateResponse) []servers.Candidate {
	out := make([]servers.Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = servers.Candidate{
			ContractorId:     c.ContractorID.Bytes(),
			UserId:           c.UserID.Bytes(),
			Name:             c.Name,
			DistanceKm:       c.DistanceKm,
			CoverageRadiusKm: c.CoverageRadiusKm,
		}
	}
	return out
}

func presentNearbyJobs(nearby []queries.NearbyJobResponse) []servers.NearbyJob {
	out := make([]servers.NearbyJob, len(nearby))
	for i, n := range nearby {
		out[i] = servers.NearbyJob{
			JobId:          n.JobID.Bytes(),
			Title:          n.Title,
			Type:           servers.JobType(n.Type),
			Status:         n.Status,
			Location:       presentLocation(n.Location),
			RequiredSkills: nonNil(n.RequiredSkills),
			WorkersNeeded:  n.WorkersNeeded,
			ExpiresAt:      n.ExpiresAt,
			DistanceKm:     n.DistanceKm,
		}
	}
	return out
}

func optionalUUID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	out := id.Bytes()
	return &out
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
