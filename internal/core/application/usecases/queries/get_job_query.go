package queries

import (
	"errors"
	"time"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

var (
	ErrGetJobQueryIsNotConstructed = errors.New("GetJobQuery must be created via NewGetJobQuery constructor")
)

// GetJobQuery reads one job with its assignments and quotes.
type GetJobQuery struct {
	jobID kernel.UUID
	guard guard.ConstructorGuard
}

// NewGetJobQuery creates a query for the job identified by jobID.
func NewGetJobQuery(jobID kernel.UUID) (GetJobQuery, error) {
	if err := jobID.Validate(); err != nil {
		return GetJobQuery{}, errs.NewValueIsRequiredErrorWithCause("jobID", err)
	}
	return GetJobQuery{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetJobQuery) Validate() error {
	return q.guard.Validate(ErrGetJobQueryIsNotConstructed)
}

func (q GetJobQuery) JobID() kernel.UUID {
	return q.jobID
}

// GetJobQueryResponse is the read model of a job.
type GetJobQueryResponse struct {
	ID                  kernel.UUID
	CustomerID          kernel.UUID
	Title               string
	Description         string
	Status              string
	Type                string
	Location            kernel.Location
	RequiredSkills      []string
	WorkersNeeded       int
	ContractorID        *kernel.UUID
	AcceptedQuoteID     *kernel.UUID
	AcceptedQuoteAmount *int64
	ExpiresAt           *time.Time
	ScheduledStartDate  *time.Time
	CancellationReason  string
	CancelledBy         string
	DisputeReason       string
	StartedAt           *time.Time
	CompletedAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ChatChannelOpen     bool
	Assignments         []AssignmentView
	Quotes              []QuoteView
}

// AssignmentView is one worker assigned to the job.
type AssignmentView struct {
	WorkerID    kernel.UUID
	Status      string
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// QuoteView is one contractor quote on the job.
type QuoteView struct {
	ID               kernel.UUID
	ContractorID     kernel.UUID
	Amount           int64
	TotalAmount      int64
	AdvanceRequested bool
	AdvanceAmount    int64
	Note             string
	IsAccepted       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
