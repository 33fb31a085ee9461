package commands_test

import (
	"log/slog"
	"testing"
	"time"

	"jobmatch/internal/core/domain/model/contractor"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/quote"
	"jobmatch/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var (
	testNow      = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	bangalore    = kernel.MustNewLocation(12.9716, 77.5946)
	claimTTL     = 5 * time.Minute
	offerTimeout = 5 * time.Minute
	testLogger   = slog.New(slog.DiscardHandler)
)

func testLifecycle() services.LifecycleStateMachine {
	return services.NewLifecycleStateMachine(func() time.Time { return testNow })
}

func newTestJob(t *testing.T, jobType job.Type, workersNeeded int, skills ...string) *job.Job {
	t.Helper()

	draft := job.Draft{
		Title:          "Move furniture",
		Type:           jobType,
		Location:       bangalore,
		RequiredSkills: skills,
		WorkersNeeded:  workersNeeded,
	}
	if jobType == job.Scheduled {
		start := testNow.Add(72 * time.Hour)
		draft.ScheduledStartDate = &start
	}

	j, err := job.NewJob(kernel.NewUUID(), kernel.NewUUID(), draft, testNow, claimTTL)
	require.NoError(t, err)
	return j
}

// newTestContractor places a verified, active contractor distanceKm due east of
// Bangalore with one worker per skill set.
func newTestContractor(t *testing.T, distanceKm, radiusKm float64, skills ...[]string) *contractor.Contractor {
	t.Helper()

	loc, err := bangalore.Destination(90, distanceKm)
	require.NoError(t, err)

	id := kernel.NewUUID()
	workers := make([]contractor.Worker, 0, len(skills))
	for i, s := range skills {
		workers = append(workers, contractor.Worker{
			ID:           kernel.NewUUID(),
			ContractorID: id,
			Name:         "worker-" + string(rune('a'+i)),
			Skills:       s,
		})
	}

	c, err := contractor.RestoreContractor(id, kernel.NewUUID(), "Crew", loc, radiusKm, true,
		contractor.VerificationVerified, workers)
	require.NoError(t, err)
	return c
}

func workerIDs(c *contractor.Contractor) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.Workers()))
	for _, w := range c.Workers() {
		ids = append(ids, w.ID)
	}
	return ids
}

func newTestQuote(t *testing.T, jobID, contractorID kernel.UUID, amount int64) *quote.Quote {
	t.Helper()
	q, err := quote.NewQuote(kernel.NewUUID(), jobID, contractorID, quote.Terms{Amount: amount, TotalAmount: amount}, testNow)
	require.NoError(t, err)
	return q
}
