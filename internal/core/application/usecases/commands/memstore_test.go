package commands_test

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/domain/model/contractor"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/quote"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

// memStore is an in-memory store whose ConditionalUpdate is an atomic
// compare-and-set, enough to exercise races between handlers. Writes are visible
// immediately; Rollback does not undo them.
type memStore struct {
	mu          sync.Mutex
	jobs        map[kernel.UUID]job.Snapshot
	assignments map[kernel.UUID][]job.Assignment
	quotes      map[kernel.UUID]quoteRow
	contractors map[kernel.UUID]*contractor.Contractor
	unavailable map[kernel.UUID]bool
	chats       map[kernel.UUID]kernel.UUID
	commits     int
}

type quoteRow struct {
	id, jobID, contractorID kernel.UUID
	terms                   quote.Terms
	accepted                bool
	createdAt, updatedAt    time.Time
}

func newMemStore() *memStore {
	return &memStore{
		jobs:        map[kernel.UUID]job.Snapshot{},
		assignments: map[kernel.UUID][]job.Assignment{},
		quotes:      map[kernel.UUID]quoteRow{},
		contractors: map[kernel.UUID]*contractor.Contractor{},
		unavailable: map[kernel.UUID]bool{},
		chats:       map[kernel.UUID]kernel.UUID{},
	}
}

func (s *memStore) putContractor(c *contractor.Contractor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contractors[c.ID()] = c
}

func (s *memStore) job(t *testing.T, id kernel.UUID) *job.Job {
	t.Helper()
	j, err := s.Get(t.Context(), id)
	require.NoError(t, err)
	return j
}

func (s *memStore) quote(t *testing.T, id kernel.UUID) *quote.Quote {
	t.Helper()
	q, err := memQuotes{s}.Get(t.Context(), id)
	require.NoError(t, err)
	return q
}

// JobRepository

func (s *memStore) Add(_ context.Context, j *job.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.ID()] = j.Snapshot()
	return nil
}

func (s *memStore) Get(_ context.Context, id kernel.UUID) (*job.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.jobs[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("job", id)
	}
	return job.RestoreJob(snap)
}

func (s *memStore) ConditionalUpdate(_ context.Context, tr job.Transition) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.jobs[tr.JobID]
	if !ok {
		return 0, nil
	}
	j, err := job.RestoreJob(snap)
	if err != nil {
		return 0, err
	}
	if !tr.Condition.Matches(j) {
		return 0, nil
	}
	if err = j.Apply(tr.Change); err != nil {
		return 0, err
	}
	s.jobs[tr.JobID] = j.Snapshot()
	return 1, nil
}

func (s *memStore) ListAssignments(_ context.Context, jobID kernel.UUID) ([]job.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.assignments[jobID]), nil
}

func (s *memStore) ReplaceAssignments(_ context.Context, jobID kernel.UUID, a []job.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[jobID] = slices.Clone(a)
	return nil
}

func (s *memStore) UpdateAssignments(_ context.Context, jobID kernel.UUID, status job.AssignmentStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.assignments[jobID] {
		a := &s.assignments[jobID][i]
		a.Status = status
		switch status {
		case job.AssignmentWorking:
			a.StartedAt = &at
		case job.AssignmentDone:
			a.CompletedAt = &at
		case job.AssignmentAssigned:
		}
	}
	return nil
}

func (s *memStore) ListOpen(_ context.Context, now time.Time) ([]*job.Job, error) {
	return s.filter(func(j *job.Job) bool { return j.IsOpenAt(now) })
}

func (s *memStore) ListExpiredPending(_ context.Context, now time.Time, limit int) ([]*job.Job, error) {
	out, err := s.filter(func(j *job.Job) bool {
		return j.Status() == job.Pending && j.ExpiresAt() != nil && !j.ExpiresAt().After(now)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (s *memStore) filter(keep func(*job.Job) bool) ([]*job.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*job.Job
	for _, snap := range s.jobs {
		j, err := job.RestoreJob(snap)
		if err != nil {
			return nil, err
		}
		if keep(j) {
			out = append(out, j)
		}
	}
	return out, nil
}

// memQuotes is the QuoteRepository view of the store. Its methods share names with
// JobRepository so it lives on its own type.
type memQuotes struct{ s *memStore }

func (r quoteRow) restore() (*quote.Quote, error) {
	return quote.RestoreQuote(r.id, r.jobID, r.contractorID, r.terms, r.accepted, r.createdAt, r.updatedAt)
}

func (m memQuotes) Upsert(_ context.Context, q *quote.Quote) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for id, row := range m.s.quotes {
		if row.jobID.IsEqual(q.JobID()) && row.contractorID.IsEqual(q.ContractorID()) {
			if row.accepted {
				return 0, nil
			}
			row.terms = q.Terms()
			row.updatedAt = q.UpdatedAt()
			m.s.quotes[id] = row
			return 1, nil
		}
	}
	m.s.quotes[q.ID()] = quoteRow{
		id: q.ID(), jobID: q.JobID(), contractorID: q.ContractorID(), terms: q.Terms(),
		createdAt: q.CreatedAt(), updatedAt: q.UpdatedAt(),
	}
	return 1, nil
}

func (m memQuotes) Get(_ context.Context, id kernel.UUID) (*quote.Quote, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	row, ok := m.s.quotes[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("quote", id)
	}
	return row.restore()
}

func (m memQuotes) GetByJobAndContractor(_ context.Context, jobID, contractorID kernel.UUID) (*quote.Quote, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, row := range m.s.quotes {
		if row.jobID.IsEqual(jobID) && row.contractorID.IsEqual(contractorID) {
			return row.restore()
		}
	}
	return nil, errs.NewObjectNotFoundError("quote", jobID)
}

func (m memQuotes) ListByJob(_ context.Context, jobID kernel.UUID) ([]*quote.Quote, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*quote.Quote
	for _, row := range m.s.quotes {
		if row.jobID.IsEqual(jobID) {
			q, err := row.restore()
			if err != nil {
				return nil, err
			}
			out = append(out, q)
		}
	}
	return out, nil
}

func (m memQuotes) SetAccepted(_ context.Context, id kernel.UUID, accepted bool, at time.Time) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	row, ok := m.s.quotes[id]
	if !ok || row.accepted == accepted {
		return 0, nil
	}
	row.accepted = accepted
	row.updatedAt = at
	m.s.quotes[id] = row
	return 1, nil
}

func (m memQuotes) DeleteUnaccepted(_ context.Context, id, contractorID kernel.UUID) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	row, ok := m.s.quotes[id]
	if !ok || row.accepted || !row.contractorID.IsEqual(contractorID) {
		return 0, nil
	}
	delete(m.s.quotes, id)
	return 1, nil
}

// memDirectory is the ContractorDirectory view of the store.
type memDirectory struct{ s *memStore }

func (d memDirectory) Get(_ context.Context, id kernel.UUID) (*contractor.Contractor, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	c, ok := d.s.contractors[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("contractor", id)
	}
	return c, nil
}

func (d memDirectory) ListMatchable(_ context.Context) ([]*contractor.Contractor, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	var out []*contractor.Contractor
	for _, c := range d.s.contractors {
		if c.IsMatchable() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (d memDirectory) UnavailableWorkers(_ context.Context, workerIDs []kernel.UUID, _ time.Time) ([]kernel.UUID, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	var out []kernel.UUID
	for _, id := range workerIDs {
		if d.s.unavailable[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *memStore) Provision(_ context.Context, jobID, _, contractorUserID kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[jobID] = contractorUserID
	return nil
}

type memUoW struct{ s *memStore }

func (u memUoW) Begin(context.Context) error    { return nil }
func (u memUoW) Rollback(context.Context) error { return nil }

func (u memUoW) Commit(context.Context) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	u.s.commits++
	return nil
}

func (u memUoW) JobRepository() ports.JobRepository             { return u.s }
func (u memUoW) QuoteRepository() ports.QuoteRepository         { return memQuotes(u) }
func (u memUoW) ContractorDirectory() ports.ContractorDirectory { return memDirectory(u) }
func (u memUoW) ChatChannels() ports.ChatChannels               { return u.s }

func (s *memStore) Create() commands.UoW { return memUoW{s} }

type memJobUoWFactory struct{ s *memStore }

func (f memJobUoWFactory) Create() commands.JobUoW { return memUoW(f) }

type scheduledTask struct {
	task  ports.Task
	delay time.Duration
}

type recordingScheduler struct {
	mu    sync.Mutex
	tasks []scheduledTask
}

func (r *recordingScheduler) ScheduleOnce(_ context.Context, task ports.Task, delay time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, scheduledTask{task: task, delay: delay})
	return nil
}

func (r *recordingScheduler) all() []scheduledTask {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.tasks)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n ports.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingNotifier) types() []ports.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.EventType, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Type)
	}
	return out
}
