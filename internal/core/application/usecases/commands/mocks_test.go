package commands_test

import (
	"context"
	"time"

	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/domain/model/contractor"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/quote"
	"jobmatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, j *job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) ConditionalUpdate(ctx context.Context, tr job.Transition) (int64, error) {
	args := m.Called(ctx, tr)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepository) ListAssignments(ctx context.Context, jobID kernel.UUID) ([]job.Assignment, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]job.Assignment), args.Error(1)
}

func (m *MockJobRepository) ReplaceAssignments(ctx context.Context, jobID kernel.UUID, a []job.Assignment) error {
	args := m.Called(ctx, jobID, a)
	return args.Error(0)
}

func (m *MockJobRepository) UpdateAssignments(
	ctx context.Context,
	jobID kernel.UUID,
	status job.AssignmentStatus,
	at time.Time,
) error {
	args := m.Called(ctx, jobID, status, at)
	return args.Error(0)
}

func (m *MockJobRepository) ListOpen(ctx context.Context, now time.Time) ([]*job.Job, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*job.Job, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

type MockQuoteRepository struct{ mock.Mock }

func (m *MockQuoteRepository) Upsert(ctx context.Context, q *quote.Quote) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Quote), args.Error(1)
}

func (m *MockQuoteRepository) GetByJobAndContractor(ctx context.Context, jobID, contractorID kernel.UUID) (*quote.Quote, error) {
	args := m.Called(ctx, jobID, contractorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Quote), args.Error(1)
}

func (m *MockQuoteRepository) ListByJob(ctx context.Context, jobID kernel.UUID) ([]*quote.Quote, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*quote.Quote), args.Error(1)
}

func (m *MockQuoteRepository) SetAccepted(ctx context.Context, id kernel.UUID, accepted bool, at time.Time) (int64, error) {
	args := m.Called(ctx, id, accepted, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteRepository) DeleteUnaccepted(ctx context.Context, id, contractorID kernel.UUID) (int64, error) {
	args := m.Called(ctx, id, contractorID)
	return args.Get(0).(int64), args.Error(1)
}

type MockContractorDirectory struct{ mock.Mock }

func (m *MockContractorDirectory) Get(ctx context.Context, id kernel.UUID) (*contractor.Contractor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contractor.Contractor), args.Error(1)
}

func (m *MockContractorDirectory) ListMatchable(ctx context.Context) ([]*contractor.Contractor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*contractor.Contractor), args.Error(1)
}

func (m *MockContractorDirectory) UnavailableWorkers(
	ctx context.Context,
	workerIDs []kernel.UUID,
	date time.Time,
) ([]kernel.UUID, error) {
	args := m.Called(ctx, workerIDs, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockChatChannels struct{ mock.Mock }

func (m *MockChatChannels) Provision(ctx context.Context, jobID, customerUserID, contractorUserID kernel.UUID) error {
	args := m.Called(ctx, jobID, customerUserID, contractorUserID)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockTaskScheduler struct{ mock.Mock }

func (m *MockTaskScheduler) ScheduleOnce(ctx context.Context, task ports.Task, delay time.Duration) error {
	args := m.Called(ctx, task, delay)
	return args.Error(0)
}

// MockUoW satisfies both commands.UoW and commands.JobUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

func (m *MockUoW) QuoteRepository() ports.QuoteRepository {
	args := m.Called()
	return args.Get(0).(ports.QuoteRepository)
}

func (m *MockUoW) ContractorDirectory() ports.ContractorDirectory {
	args := m.Called()
	return args.Get(0).(ports.ContractorDirectory)
}

func (m *MockUoW) ChatChannels() ports.ChatChannels {
	args := m.Called()
	return args.Get(0).(ports.ChatChannels)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockJobUoWFactory struct{ mock.Mock }

func (m *MockJobUoWFactory) Create() commands.JobUoW {
	args := m.Called()
	return args.Get(0).(commands.JobUoW)
}
