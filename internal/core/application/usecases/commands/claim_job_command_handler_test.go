package commands_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/domain/model/contractor"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClaimJobCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testJob := newTestJob(t, job.Immediate, 1, "plumbing")
	testContractor := newTestContractor(t, 5, 20, []string{"plumbing"})
	cmd, err := commands.NewClaimJobCommand(testJob.ID(), testContractor.ID(), workerIDs(testContractor))
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	dir := new(MockContractorDirectory)
	chat := new(MockChatChannels)
	notifier := new(MockNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		jobRepo.On("Get", ctx, testJob.ID()).Return(testJob, nil).Once(),
		uow.On("ContractorDirectory").Return(dir).Once(),
		dir.On("Get", ctx, testContractor.ID()).Return(testContractor, nil).Once(),
		uow.On("ContractorDirectory").Return(dir).Once(),
		jobRepo.On("ConditionalUpdate", ctx, mock.MatchedBy(func(tr job.Transition) bool {
			return tr.JobID.IsEqual(testJob.ID()) &&
				tr.To == job.Accepted &&
				tr.Condition.ContractorUnset &&
				assert.ElementsMatch(t, job.OpenStatuses(), tr.Condition.Statuses)
		})).Return(int64(1), nil).Once(),
		jobRepo.On("ReplaceAssignments", ctx, testJob.ID(), mock.AnythingOfType("[]job.Assignment")).Return(nil).Once(),
		uow.On("ChatChannels").Return(chat).Once(),
		chat.On("Provision", ctx, testJob.ID(), testJob.CustomerID(), testContractor.UserID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, mock.MatchedBy(func(n ports.Notification) bool {
			return n.Type == ports.EventJobClaimed && n.TargetUserIDs[0].IsEqual(testJob.CustomerID())
		})).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClaimJobCommandHandler(factory, testLifecycle(), notifier, testLogger)

	// Act
	claimed, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, job.Accepted, claimed.Status())
	assert.True(t, claimed.HasContractor(testContractor.ID()))
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	jobRepo.AssertExpectations(t)
	dir.AssertExpectations(t)
	chat.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestClaimJobCommandHandler_Handle_ZeroRowsIsConflict(t *testing.T) {
	ctx := t.Context()

	testJob := newTestJob(t, job.Immediate, 1)
	testContractor := newTestContractor(t, 5, 20, []string{"loading"})
	cmd, err := commands.NewClaimJobCommand(testJob.ID(), testContractor.ID(), workerIDs(testContractor))
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	dir := new(MockContractorDirectory)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("JobRepository").Return(jobRepo)
	uow.On("ContractorDirectory").Return(dir)
	jobRepo.On("Get", ctx, testJob.ID()).Return(testJob, nil).Once()
	dir.On("Get", ctx, testContractor.ID()).Return(testContractor, nil).Once()
	jobRepo.On("ConditionalUpdate", ctx, mock.AnythingOfType("job.Transition")).Return(int64(0), nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	handler := commands.NewClaimJobCommandHandler(factory, testLifecycle(), notifier, testLogger)

	// Act
	_, err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrConflict)
	var conflict *errs.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "already claimed", conflict.Reason)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	jobRepo.AssertNotCalled(t, "ReplaceAssignments", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestClaimJobCommandHandler_Handle_ProvisionFailureRollsBack(t *testing.T) {
	ctx := t.Context()

	testJob := newTestJob(t, job.Immediate, 1)
	testContractor := newTestContractor(t, 5, 20, nil)
	cmd, err := commands.NewClaimJobCommand(testJob.ID(), testContractor.ID(), workerIDs(testContractor))
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	dir := new(MockContractorDirectory)
	chat := new(MockChatChannels)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("JobRepository").Return(jobRepo)
	uow.On("ContractorDirectory").Return(dir)
	uow.On("ChatChannels").Return(chat)
	jobRepo.On("Get", ctx, testJob.ID()).Return(testJob, nil).Once()
	dir.On("Get", ctx, testContractor.ID()).Return(testContractor, nil).Once()
	jobRepo.On("ConditionalUpdate", ctx, mock.AnythingOfType("job.Transition")).Return(int64(1), nil).Once()
	jobRepo.On("ReplaceAssignments", ctx, testJob.ID(), mock.Anything).Return(nil).Once()
	chat.On("Provision", ctx, testJob.ID(), testJob.CustomerID(), testContractor.UserID()).
		Return(errors.New("chat service unavailable")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClaimJobCommandHandler(factory, testLifecycle(), nil, testLogger)

	// Act
	_, err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorContains(t, err, "chat service unavailable")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertCalled(t, "Rollback", ctx)
}

func TestClaimJobCommandHandler_Handle_NotificationFailureIsSwallowed(t *testing.T) {
	store := newMemStore()
	testJob := newTestJob(t, job.Immediate, 1)
	testContractor := newTestContractor(t, 5, 20, nil)
	require.NoError(t, store.Add(t.Context(), testJob))
	store.putContractor(testContractor)

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("push gateway down")).Once()

	handler := commands.NewClaimJobCommandHandler(store, testLifecycle(), notifier, testLogger)
	cmd, err := commands.NewClaimJobCommand(testJob.ID(), testContractor.ID(), workerIDs(testContractor))
	require.NoError(t, err)

	// Act
	claimed, err := handler.Handle(t.Context(), cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, job.Accepted, claimed.Status())
	assert.Equal(t, job.Accepted, store.job(t, testJob.ID()).Status())
	notifier.AssertExpectations(t)
}

func TestClaimJobCommandHandler_Handle_Preconditions(t *testing.T) {
	type fixture struct {
		store      *memStore
		job        *job.Job
		contractor *contractor.Contractor
		workers    []kernel.UUID
	}

	setup := func(t *testing.T, jobType job.Type, workersNeeded int) fixture {
		store := newMemStore()
		j := newTestJob(t, jobType, workersNeeded)
		c := newTestContractor(t, 5, 20, []string{"loading"}, []string{"driving"})
		require.NoError(t, store.Add(t.Context(), j))
		store.putContractor(c)
		return fixture{store: store, job: j, contractor: c, workers: workerIDs(c)}
	}

	tests := []struct {
		name    string
		arrange func(t *testing.T) (fixture, kernel.UUID, kernel.UUID, []kernel.UUID)
		wantErr error
	}{
		{
			name: "unknown job",
			arrange: func(t *testing.T) (fixture, kernel.UUID, kernel.UUID, []kernel.UUID) {
				f := setup(t, job.Immediate, 1)
				return f, kernel.NewUUID(), f.contractor.ID(), f.workers
			},
			wantErr: errs.ErrObjectNotFound,
		},
		{
			name: "unknown contractor",
			arrange: func(t *testing.T) (fixture, kernel.UUID, kernel.UUID, []kernel.UUID) {
				f := setup(t, job.Immediate, 1)
				return f, f.job.ID(), kernel.NewUUID(), f.workers
			},
			wantErr: errs.ErrObjectNotFound,
		},
		{
			name: "inactive contractor",
			arrange: func(t *testing.T) (fixture, kernel.UUID, kernel.UUID, []kernel.UUID) {
				f := setup(t, job.Immediate, 1)
				c := f.contractor
				inactive, err := contractor.RestoreContractor(c.ID(), c.UserID(), c.Name(), c.Location(),
					c.CoverageRadius(), false, c.Verification(), c.Workers())
				require.NoError(t, err)
				f.store.putContractor(inactive)
				return f, f.job.ID(), c.ID(), f.workers
			},
			wantErr: errs.ErrValueIsInvalid,
		},
		{
			name: "bidding job is not claimable",
			arrange: func(t *testing.T) (fixture, kernel.UUID, kernel.UUID, []kernel.UUID) {
				f := setup(t, job.Bidding, 1)
				return f, f.job.ID(), f.contractor.ID(), f.workers
			},
			wantErr: errs.ErrValueIsInvalid,
		},
		{
			name: "duplicate worker",
			arrange: func(t *testing.T) (fixture, kernel.UUID, kernel.UUID, []kernel.UUID) {
				f := setup(t, job.Immediate, 2)
				return f, f.job.ID(), f.contractor.ID(), []kernel.UUID{f.workers[0], f.workers[0]}
			},
			wantErr: errs.ErrValueIsInvalid,
		},
		{
			name: "too few workers",
			arrange: func(t *testing.T) (fixture, kernel.UUID, kernel.UUID, []kernel.UUID) {
				f := setup(t, job.Immediate, 3)
				return f, f.job.ID(), f.contractor.ID(), f.workers
			},
			wantErr: errs.ErrValueIsInvalid,
		},
		{
			name: "foreign worker",
			arrange: func(t *testing.T) (fixture, kernel.UUID, kernel.UUID, []kernel.UUID) {
				f := setup(t, job.Immediate, 2)
				return f, f.job.ID(), f.contractor.ID(), []kernel.UUID{f.workers[0], kernel.NewUUID()}
			},
			wantErr: errs.ErrValueIsInvalid,
		},
		{
			name: "scheduled job with unavailable worker",
			arrange: func(t *testing.T) (fixture, kernel.UUID, kernel.UUID, []kernel.UUID) {
				f := setup(t, job.Scheduled, 1)
				f.store.unavailable[f.workers[1]] = true
				return f, f.job.ID(), f.contractor.ID(), f.workers
			},
			wantErr: errs.ErrValueIsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, jobID, contractorID, workers := tt.arrange(t)
			handler := commands.NewClaimJobCommandHandler(f.store, testLifecycle(), nil, testLogger)
			cmd, err := commands.NewClaimJobCommand(jobID, contractorID, workers)
			require.NoError(t, err)

			// Act
			_, err = handler.Handle(t.Context(), cmd)

			// Assert
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, job.Pending, f.store.job(t, f.job.ID()).Status())
			assert.Zero(t, f.store.commits)
		})
	}
}

func TestClaimJobCommandHandler_Handle_StatusIsCheckedBeforeWorkers(t *testing.T) {
	store := newMemStore()
	testJob := newTestJob(t, job.Immediate, 1)
	first := newTestContractor(t, 5, 20, nil)
	second := newTestContractor(t, 6, 20, nil)
	require.NoError(t, store.Add(t.Context(), testJob))
	store.putContractor(first)
	store.putContractor(second)

	handler := commands.NewClaimJobCommandHandler(store, testLifecycle(), nil, testLogger)

	cmd, err := commands.NewClaimJobCommand(testJob.ID(), first.ID(), workerIDs(first))
	require.NoError(t, err)
	_, err = handler.Handle(t.Context(), cmd)
	require.NoError(t, err)

	// A foreign worker list would fail later; the lost race is reported first.
	cmd, err = commands.NewClaimJobCommand(testJob.ID(), second.ID(), []kernel.UUID{kernel.NewUUID()})
	require.NoError(t, err)
	_, err = handler.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestClaimJobCommandHandler_Handle_ConcurrentClaimsHaveOneWinner(t *testing.T) {
	const contenders = 32

	store := newMemStore()
	testJob := newTestJob(t, job.Immediate, 1)
	require.NoError(t, store.Add(t.Context(), testJob))

	contractors := make([]*contractor.Contractor, contenders)
	for i := range contractors {
		contractors[i] = newTestContractor(t, float64(i%15), 20, nil)
		store.putContractor(contractors[i])
	}

	notifier := &recordingNotifier{}
	handler := commands.NewClaimJobCommandHandler(store, testLifecycle(), notifier, testLogger)

	var (
		wins, conflicts, other atomic.Int32
		winner                 atomic.Value
		start                  = make(chan struct{})
		wg                     sync.WaitGroup
	)
	for _, c := range contractors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewClaimJobCommand(testJob.ID(), c.ID(), workerIDs(c))
			if err != nil {
				return
			}
			<-start
			_, err = handler.Handle(t.Context(), cmd)
			switch {
			case err == nil:
				wins.Add(1)
				winner.Store(c.ID())
			case errors.Is(err, errs.ErrConflict):
				conflicts.Add(1)
			default:
				other.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	// Assert
	require.EqualValues(t, 1, wins.Load())
	assert.EqualValues(t, contenders-1, conflicts.Load())
	assert.Zero(t, other.Load())

	stored := store.job(t, testJob.ID())
	assert.Equal(t, job.Accepted, stored.Status())
	require.NotNil(t, stored.ContractorID())
	assert.True(t, stored.ContractorID().IsEqual(winner.Load().(kernel.UUID)))
	assert.Equal(t, []ports.EventType{ports.EventJobClaimed}, notifier.types())
	assert.Equal(t, 1, store.commits)
}

func TestClaimJob_BangaloreScenario(t *testing.T) {
	ctx := t.Context()
	store := newMemStore()
	scheduler := &recordingScheduler{}
	notifier := &recordingNotifier{}
	lsm := testLifecycle()

	contractorA := newTestContractor(t, 15, 20, []string{"loading"})
	contractorB := newTestContractor(t, 25, 20, []string{"loading"})
	store.putContractor(contractorA)
	store.putContractor(contractorB)

	createJob := func(t *testing.T) *job.Job {
		customer := kernel.NewUUID()
		cmd, err := commands.NewCreateJobCommand(customer, job.Draft{
			Title:          "Unload a truck",
			Type:           job.Immediate,
			Location:       bangalore,
			RequiredSkills: []string{"Loading"},
			WorkersNeeded:  1,
		})
		require.NoError(t, err)
		created, err := commands.NewCreateJobCommandHandler(store, lsm, services.NewScanGeoMatcher(), scheduler, notifier, testLogger, claimTTL).
			Handle(ctx, cmd)
		require.NoError(t, err)
		return created
	}

	t.Run("closest contractor wins and the other gets a conflict", func(t *testing.T) {
		j := createJob(t)
		claim := commands.NewClaimJobCommandHandler(store, lsm, notifier, testLogger)

		cmdA, err := commands.NewClaimJobCommand(j.ID(), contractorA.ID(), workerIDs(contractorA))
		require.NoError(t, err)
		cmdB, err := commands.NewClaimJobCommand(j.ID(), contractorB.ID(), workerIDs(contractorB))
		require.NoError(t, err)

		// B read the job before A committed, so B reaches the conditional write.
		stale, err := store.Get(ctx, j.ID())
		require.NoError(t, err)

		_, err = claim.Handle(ctx, cmdA)
		require.NoError(t, err)

		tr, err := lsm.Claim(stale, contractorB.ID())
		require.NoError(t, err)
		rows, err := store.ConditionalUpdate(ctx, tr)
		require.NoError(t, err)
		assert.Zero(t, rows)

		_, err = claim.Handle(ctx, cmdB)
		require.ErrorIs(t, err, errs.ErrConflict)

		stored := store.job(t, j.ID())
		assert.Equal(t, job.Accepted, stored.Status())
		assert.True(t, stored.HasContractor(contractorA.ID()))
		assert.Len(t, store.assignments[j.ID()], 1)
	})

	t.Run("unclaimed job expires after the claim deadline", func(t *testing.T) {
		j := createJob(t)

		var armed *scheduledTask
		for _, st := range scheduler.all() {
			if st.task.JobID.IsEqual(j.ID()) {
				armed = &st
			}
		}
		require.NotNil(t, armed)
		assert.Equal(t, ports.TaskExpireUnclaimedJob, armed.task.Kind)
		assert.Equal(t, 5*time.Minute, armed.delay)

		expire := commands.NewExpireUnclaimedJobCommandHandler(memJobUoWFactory{store}, lsm, notifier, testLogger)
		cmd, err := commands.NewExpireUnclaimedJobCommand(armed.task.JobID)
		require.NoError(t, err)

		expired, err := expire.Handle(ctx, cmd)
		require.NoError(t, err)
		assert.True(t, expired)
		assert.Equal(t, job.Expired, store.job(t, j.ID()).Status())

		claim := commands.NewClaimJobCommandHandler(store, lsm, notifier, testLogger)
		claimCmd, err := commands.NewClaimJobCommand(j.ID(), contractorA.ID(), workerIDs(contractorA))
		require.NoError(t, err)
		_, err = claim.Handle(ctx, claimCmd)
		require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
	})
}
