package http_test

import (
	"context"

	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/application/usecases/queries"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/quote"

	"github.com/stretchr/testify/mock"
)

type MockJobCommand struct{ mock.Mock }

func (m *MockJobCommand) called(method string, ctx context.Context, command any) (*job.Job, error) {
	args := m.MethodCalled(method, ctx, command)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

type MockJobCreator struct{ MockJobCommand }

func (m *MockJobCreator) Handle(ctx context.Context, command commands.CreateJobCommand) (*job.Job, error) {
	return m.called("Handle", ctx, command)
}

type MockJobClaimer struct{ MockJobCommand }

func (m *MockJobClaimer) Handle(ctx context.Context, command commands.ClaimJobCommand) (*job.Job, error) {
	return m.called("Handle", ctx, command)
}

type MockQuoteAcceptor struct{ MockJobCommand }

func (m *MockQuoteAcceptor) Handle(ctx context.Context, command commands.AcceptQuoteCommand) (*job.Job, error) {
	return m.called("Handle", ctx, command)
}

type MockOfferConfirmer struct{ MockJobCommand }

func (m *MockOfferConfirmer) Handle(ctx context.Context, command commands.ConfirmOfferCommand) (*job.Job, error) {
	return m.called("Handle", ctx, command)
}

type MockJobCanceller struct{ MockJobCommand }

func (m *MockJobCanceller) Handle(ctx context.Context, command commands.CancelJobCommand) (*job.Job, error) {
	return m.called("Handle", ctx, command)
}

type MockJobDisputer struct{ MockJobCommand }

func (m *MockJobDisputer) Handle(ctx context.Context, command commands.DisputeJobCommand) (*job.Job, error) {
	return m.called("Handle", ctx, command)
}

type MockJobExecutor struct{ MockJobCommand }

func (m *MockJobExecutor) Start(ctx context.Context, command commands.StartJobCommand) (*job.Job, error) {
	return m.called("Start", ctx, command)
}

func (m *MockJobExecutor) Complete(ctx context.Context, command commands.CompleteJobCommand) (*job.Job, error) {
	return m.called("Complete", ctx, command)
}

type MockQuoteSubmitter struct{ mock.Mock }

func (m *MockQuoteSubmitter) Handle(ctx context.Context, command commands.SubmitQuoteCommand) (*quote.Quote, error) {
	args := m.Called(ctx, command)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Quote), args.Error(1)
}

type MockQuoteCanceller struct{ mock.Mock }

func (m *MockQuoteCanceller) Handle(ctx context.Context, command commands.CancelQuoteCommand) error {
	args := m.Called(ctx, command)
	return args.Error(0)
}

type MockJobReader struct{ mock.Mock }

func (m *MockJobReader) Handle(ctx context.Context, query queries.GetJobQuery) (*queries.GetJobQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.GetJobQueryResponse), args.Error(1)
}

type MockMatcher struct{ mock.Mock }

func (m *MockMatcher) FindCandidates(
	ctx context.Context,
	query queries.FindCandidatesQuery,
) ([]queries.CandidateResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.CandidateResponse), args.Error(1)
}

func (m *MockMatcher) FindNearbyJobs(
	ctx context.Context,
	query queries.FindNearbyJobsQuery,
) ([]queries.NearbyJobResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.NearbyJobResponse), args.Error(1)
}
