package jobs_test

import (
	"context"
	"sync"
	"time"

	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type retried struct {
	task ports.Task
	at   time.Time
}

// fakeQueue hands out a fixed batch once and records how each task was settled.
type fakeQueue struct {
	mu         sync.Mutex
	due        []ports.Task
	dueErr     error
	acked      []ports.Task
	retried    []retried
	deadLetter map[string]error
}

func newFakeQueue(tasks ...ports.Task) *fakeQueue {
	return &fakeQueue{due: tasks, deadLetter: map[string]error{}}
}

func (q *fakeQueue) ScheduleOnce(_ context.Context, task ports.Task, _ time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.due = append(q.due, task)
	return nil
}

func (q *fakeQueue) Due(_ context.Context, _ time.Time, limit int) ([]ports.Task, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.dueErr != nil {
		return nil, q.dueErr
	}
	n := min(limit, len(q.due))
	out := q.due[:n]
	q.due = q.due[n:]
	return out, nil
}

func (q *fakeQueue) Ack(_ context.Context, task ports.Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.acked = append(q.acked, task)
	return nil
}

func (q *fakeQueue) Retry(_ context.Context, task ports.Task, at time.Time) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.retried = append(q.retried, retried{task: task, at: at})
	return nil
}

func (q *fakeQueue) DeadLetter(_ context.Context, task ports.Task, cause error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.deadLetter[task.ID] = cause
	return nil
}

type MockUnclaimedJobExpirer struct{ mock.Mock }

func (m *MockUnclaimedJobExpirer) Handle(ctx context.Context, command commands.ExpireUnclaimedJobCommand) (bool, error) {
	args := m.Called(ctx, command)
	return args.Bool(0), args.Error(1)
}

type MockUnconfirmedOfferExpirer struct{ mock.Mock }

func (m *MockUnconfirmedOfferExpirer) Handle(
	ctx context.Context,
	command commands.ExpireUnconfirmedOfferCommand,
) (bool, error) {
	args := m.Called(ctx, command)
	return args.Bool(0), args.Error(1)
}

type MockExpiredJobLister struct{ mock.Mock }

func (m *MockExpiredJobLister) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*job.Job, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}
