package ports

import (
	"context"
	"time"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/quote"
)

// QuoteRepository persists quotes. There is at most one quote per job and contractor.
type QuoteRepository interface {
	// Upsert inserts q or replaces the terms of the contractor's existing quote for
	// the same job, but only while that quote is not accepted. It returns the number
	// of rows written; 0 means an accepted quote blocked the write.
	Upsert(ctx context.Context, q *quote.Quote) (int64, error)

	// Get retrieves a quote by id. A missing quote yields errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error)

	// GetByJobAndContractor retrieves the contractor's quote for a job.
	GetByJobAndContractor(ctx context.Context, jobID, contractorID kernel.UUID) (*quote.Quote, error)

	// ListByJob returns every quote of a job, oldest first.
	ListByJob(ctx context.Context, jobID kernel.UUID) ([]*quote.Quote, error)

	// SetAccepted flips is_accepted on quote id from !accepted to accepted and
	// returns the number of rows changed.
	SetAccepted(ctx context.Context, id kernel.UUID, accepted bool, at time.Time) (int64, error)

	// DeleteUnaccepted removes the contractor's own quote if it is not accepted and
	// returns the number of rows deleted.
	DeleteUnaccepted(ctx context.Context, id, contractorID kernel.UUID) (int64, error)
}
