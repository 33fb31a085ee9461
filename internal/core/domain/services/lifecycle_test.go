package services_test

import (
	"testing"
	"time"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/quote"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	return func() time.Time { return testNow }
}

func newJobOfType(t *testing.T, typ job.Type) *job.Job {
	t.Helper()
	draft := job.Draft{Title: "Test job", Type: typ, Location: bangalore, WorkersNeeded: 1}
	if typ == job.Scheduled {
		start := testNow.Add(24 * time.Hour)
		draft.ScheduledStartDate = &start
	}
	j, err := job.NewJob(kernel.NewUUID(), kernel.NewUUID(), draft, testNow, 5*time.Minute)
	require.NoError(t, err)
	return j
}

func newQuoteFor(t *testing.T, j *job.Job, contractorID kernel.UUID) *quote.Quote {
	t.Helper()
	q, err := quote.NewQuote(kernel.NewUUID(), j.ID(), contractorID, quote.Terms{Amount: 5000, TotalAmount: 6000}, testNow)
	require.NoError(t, err)
	return q
}

func customerOf(j *job.Job) job.Actor {
	return job.Actor{Role: job.RoleCustomer, ID: j.CustomerID()}
}

func apply(t *testing.T, j *job.Job, tr job.Transition) {
	t.Helper()
	require.True(t, tr.Condition.Matches(j), "condition must match the state it was planned from")
	require.NoError(t, j.Apply(tr.Change))
}

func TestLifecycle_Claim(t *testing.T) {
	lsm := services.NewLifecycleStateMachine(fixedClock())
	j := newJobOfType(t, job.Immediate)
	contractorID := kernel.NewUUID()

	tr, err := lsm.Claim(j, contractorID)
	require.NoError(t, err)

	assert.Equal(t, job.Pending, tr.From)
	assert.Equal(t, job.Accepted, tr.To)
	assert.Equal(t, job.OpenStatuses(), tr.Condition.Statuses)
	assert.True(t, tr.Condition.ContractorUnset)
	assert.Equal(t, testNow, tr.Change.UpdatedAt)

	apply(t, j, tr)
	assert.True(t, j.HasContractor(contractorID))

	t.Run("a claimed job is a conflict for every later claim", func(t *testing.T) {
		_, err := lsm.Claim(j, kernel.NewUUID())
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.NotErrorIs(t, err, errs.ErrTransitionIsInvalid)

		_, err = lsm.Claim(j, contractorID)
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "already taken, status is ACCEPTED")
		assert.NotContains(t, err.Error(), "ACCEPTED -> ACCEPTED")
	})

	t.Run("an expired job cannot be claimed", func(t *testing.T) {
		expired := newJobOfType(t, job.Immediate)
		tr, err := lsm.Expire(expired)
		require.NoError(t, err)
		apply(t, expired, tr)

		_, err = lsm.Claim(expired, contractorID)
		assert.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
		assert.NotErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("bidding jobs cannot be claimed", func(t *testing.T) {
		_, err := lsm.Claim(newJobOfType(t, job.Bidding), contractorID)
		assert.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
	})
}

func TestLifecycle_OfferRoundTrip(t *testing.T) {
	lsm := services.NewLifecycleStateMachine(fixedClock())
	j := newJobOfType(t, job.Scheduled)
	contractorID := kernel.NewUUID()
	q := newQuoteFor(t, j, contractorID)

	quoted, err := lsm.MarkQuoted(j, job.Actor{Role: job.RoleContractor, ID: contractorID})
	require.NoError(t, err)
	apply(t, j, quoted)

	offer, err := lsm.AcceptQuote(j, q, customerOf(j))
	require.NoError(t, err)
	assert.Equal(t, job.Offered, offer.To)
	apply(t, j, offer)
	assert.Equal(t, q.ID(), j.AcceptedQuote().QuoteID)
	assert.Equal(t, int64(5000), j.AcceptedQuote().Amount)

	t.Run("revert pins the accepted quote", func(t *testing.T) {
		_, err := lsm.RevertOffer(j, kernel.NewUUID())
		assert.ErrorIs(t, err, errs.ErrTransitionIsInvalid)

		revert, err := lsm.RevertOffer(j, q.ID())
		require.NoError(t, err)
		assert.Equal(t, q.ID(), *revert.Condition.AcceptedQuoteID)
		assert.True(t, revert.Change.ClearContractor)
		assert.True(t, revert.Change.ClearAcceptedQuote)
	})

	t.Run("only the offered contractor confirms", func(t *testing.T) {
		_, err := lsm.ConfirmOffer(j, kernel.NewUUID())
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	confirm, err := lsm.ConfirmOffer(j, contractorID)
	require.NoError(t, err)
	assert.Equal(t, contractorID, *confirm.Condition.ContractorID)
	apply(t, j, confirm)
	assert.Equal(t, job.Accepted, j.Status())

	_, err = lsm.RevertOffer(j, q.ID())
	assert.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
}

func TestLifecycle_AcceptQuote(t *testing.T) {
	lsm := services.NewLifecycleStateMachine(fixedClock())

	t.Run("bidding goes straight to accepted", func(t *testing.T) {
		j := newJobOfType(t, job.Bidding)
		tr, err := lsm.AcceptQuote(j, newQuoteFor(t, j, kernel.NewUUID()), customerOf(j))
		require.NoError(t, err)
		assert.Equal(t, job.Accepted, tr.To)
	})

	t.Run("foreign quote is a validation error", func(t *testing.T) {
		j := newJobOfType(t, job.Immediate)
		other := newJobOfType(t, job.Immediate)
		_, err := lsm.AcceptQuote(j, newQuoteFor(t, other, kernel.NewUUID()), customerOf(j))
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("a job that already has a contractor is a conflict", func(t *testing.T) {
		j := newJobOfType(t, job.Immediate)
		claim, err := lsm.Claim(j, kernel.NewUUID())
		require.NoError(t, err)
		apply(t, j, claim)

		_, err = lsm.AcceptQuote(j, newQuoteFor(t, j, kernel.NewUUID()), customerOf(j))
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("only the owner accepts", func(t *testing.T) {
		j := newJobOfType(t, job.Immediate)
		_, err := lsm.AcceptQuote(j, newQuoteFor(t, j, kernel.NewUUID()),
			job.Actor{Role: job.RoleCustomer, ID: kernel.NewUUID()})
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestLifecycle_Expire(t *testing.T) {
	lsm := services.NewLifecycleStateMachine(fixedClock())

	j := newJobOfType(t, job.Immediate)
	tr, err := lsm.Expire(j)
	require.NoError(t, err)
	apply(t, j, tr)
	assert.Equal(t, job.Expired, j.Status())

	_, err = lsm.Expire(j)
	assert.ErrorIs(t, err, errs.ErrTransitionIsInvalid)

	_, err = lsm.Expire(newJobOfType(t, job.Scheduled))
	assert.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
}

func TestLifecycle_StartComplete(t *testing.T) {
	lsm := services.NewLifecycleStateMachine(fixedClock())
	j := newJobOfType(t, job.Immediate)
	contractorID := kernel.NewUUID()

	_, err := lsm.Start(j, contractorID)
	assert.ErrorIs(t, err, errs.ErrTransitionIsInvalid)

	claim, err := lsm.Claim(j, contractorID)
	require.NoError(t, err)
	apply(t, j, claim)

	_, err = lsm.Start(j, kernel.NewUUID())
	assert.ErrorIs(t, err, errs.ErrForbidden)

	start, err := lsm.Start(j, contractorID)
	require.NoError(t, err)
	apply(t, j, start)
	assert.Equal(t, testNow, *j.StartedAt())

	done, err := lsm.Complete(j, contractorID)
	require.NoError(t, err)
	apply(t, j, done)
	assert.Equal(t, job.Completed, j.Status())
	assert.Equal(t, testNow, *j.CompletedAt())
}

func TestLifecycle_Cancel(t *testing.T) {
	lsm := services.NewLifecycleStateMachine(fixedClock())

	t.Run("customer cancels own open job", func(t *testing.T) {
		j := newJobOfType(t, job.Immediate)
		tr, err := lsm.Cancel(j, customerOf(j), "  changed my mind  ")
		require.NoError(t, err)
		assert.Equal(t, []job.Status{job.Pending}, tr.Condition.Statuses)
		apply(t, j, tr)
		assert.Equal(t, "changed my mind", j.CancellationReason())
		assert.Equal(t, job.RoleCustomer, j.CancelledBy())
	})

	t.Run("reason shorter than five characters", func(t *testing.T) {
		j := newJobOfType(t, job.Immediate)
		_, err := lsm.Cancel(j, customerOf(j), " no  ")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unrelated contractor cannot cancel an open job", func(t *testing.T) {
		j := newJobOfType(t, job.Immediate)
		_, err := lsm.Cancel(j, job.Actor{Role: job.RoleContractor, ID: kernel.NewUUID()}, "not interested")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("assigned contractor cancels and the condition pins it", func(t *testing.T) {
		j := newJobOfType(t, job.Immediate)
		contractorID := kernel.NewUUID()
		claim, err := lsm.Claim(j, contractorID)
		require.NoError(t, err)
		apply(t, j, claim)

		tr, err := lsm.Cancel(j, job.Actor{Role: job.RoleContractor, ID: contractorID}, "vehicle broke down")
		require.NoError(t, err)
		assert.Equal(t, contractorID, *tr.Condition.ContractorID)
		apply(t, j, tr)
		assert.True(t, j.HasContractor(contractorID), "cancelled jobs keep their contractor")
	})

	t.Run("terminal jobs cannot be cancelled", func(t *testing.T) {
		j := newJobOfType(t, job.Immediate)
		tr, err := lsm.Expire(j)
		require.NoError(t, err)
		apply(t, j, tr)

		_, err = lsm.Cancel(j, customerOf(j), "too late now")
		assert.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
	})
}

func TestLifecycle_Dispute(t *testing.T) {
	lsm := services.NewLifecycleStateMachine(fixedClock())
	admin := job.Actor{Role: job.RoleAdmin, ID: kernel.NewUUID()}

	j := newJobOfType(t, job.Immediate)
	expire, err := lsm.Expire(j)
	require.NoError(t, err)
	apply(t, j, expire)

	_, err = lsm.Dispute(j, customerOf(j), "customer says so")
	assert.ErrorIs(t, err, errs.ErrTransitionIsInvalid)

	_, err = lsm.Dispute(j, admin, "   ")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	tr, err := lsm.Dispute(j, admin, "payment complaint")
	require.NoError(t, err)
	apply(t, j, tr)
	assert.Equal(t, job.Disputed, j.Status())

	_, err = lsm.Dispute(j, admin, "again")
	assert.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
}
