package queries_test

import (
	"context"
	"time"

	"jobmatch/internal/core/domain/model/contractor"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"

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

