package ports

import (
	"context"
	"time"

	"jobmatch/internal/core/domain/model/contractor"
	"jobmatch/internal/core/domain/model/kernel"
)

// ContractorDirectory is the read-only view of contractors, workers and worker
// availability owned by the profile service.
type ContractorDirectory interface {
	// Get retrieves a contractor with its workers. A missing contractor yields
	// errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*contractor.Contractor, error)

	// ListMatchable returns every active and verified contractor with its workers.
	ListMatchable(ctx context.Context) ([]*contractor.Contractor, error)

	// UnavailableWorkers returns the subset of workerIDs marked unavailable on the
	// calendar day of date.
	UnavailableWorkers(ctx context.Context, workerIDs []kernel.UUID, date time.Time) ([]kernel.UUID, error)
}
