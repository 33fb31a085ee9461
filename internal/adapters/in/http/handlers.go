package http

import (
	"context"

	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/application/usecases/queries"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/quote"
)

// Use case entry points the server calls. The command and query handlers satisfy
// them directly.
type (
	JobCreator interface {
		Handle(ctx context.Context, command commands.CreateJobCommand) (*job.Job, error)
	}

	JobClaimer interface {
		Handle(ctx context.Context, command commands.ClaimJobCommand) (*job.Job, error)
	}

	QuoteSubmitter interface {
		Handle(ctx context.Context, command commands.SubmitQuoteCommand) (*quote.Quote, error)
	}

	QuoteAcceptor interface {
		Handle(ctx context.Context, command commands.AcceptQuoteCommand) (*job.Job, error)
	}

	QuoteCanceller interface {
		Handle(ctx context.Context, command commands.CancelQuoteCommand) error
	}

	OfferConfirmer interface {
		Handle(ctx context.Context, command commands.ConfirmOfferCommand) (*job.Job, error)
	}

	JobExecutor interface {
		Start(ctx context.Context, command commands.StartJobCommand) (*job.Job, error)
		Complete(ctx context.Context, command commands.CompleteJobCommand) (*job.Job, error)
	}

	JobCanceller interface {
		Handle(ctx context.Context, command commands.CancelJobCommand) (*job.Job, error)
	}

	JobDisputer interface {
		Handle(ctx context.Context, command commands.DisputeJobCommand) (*job.Job, error)
	}

	JobReader interface {
		Handle(ctx context.Context, query queries.GetJobQuery) (*queries.GetJobQueryResponse, error)
	}

	Matcher interface {
		FindCandidates(ctx context.Context, query queries.FindCandidatesQuery) ([]queries.CandidateResponse, error)
		FindNearbyJobs(ctx context.Context, query queries.FindNearbyJobsQuery) ([]queries.NearbyJobResponse, error)
	}
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateJob    JobCreator
	ClaimJob     JobClaimer
	SubmitQuote  QuoteSubmitter
	AcceptQuote  QuoteAcceptor
	CancelQuote  QuoteCanceller
	ConfirmOffer OfferConfirmer
	Execution    JobExecutor
	CancelJob    JobCanceller
	DisputeJob   JobDisputer
	GetJob       JobReader
	Match        Matcher
}
