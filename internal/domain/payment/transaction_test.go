//go:build unit

package payment_test

import (
	"fmt"
	"testing"

	"eventpay/internal/domain/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAwaitingTransaction(t *testing.T) *payment.Transaction {
	t.Helper()
	tx := payment.NewTransaction()
	require.NoError(t, tx.BeginSubmit())
	require.NoError(t, tx.ConfirmSubmitted("tx-001", "token-001"))
	return tx
}

func TestSubmissionLifecycle(t *testing.T) {
	t.Run("submit from idle", func(t *testing.T) {
		tx := payment.NewTransaction()

		require.NoError(t, tx.BeginSubmit())
		assert.Equal(t, payment.StateSubmitting, tx.State())

		require.NoError(t, tx.ConfirmSubmitted("tx-001", "token-001"))
		assert.Equal(t, payment.StateAwaitingConfirmation, tx.State())
		assert.Equal(t, "tx-001", tx.ID())
		assert.Equal(t, "token-001", tx.CorrelationToken())
	})

	t.Run("double submit is rejected", func(t *testing.T) {
		tx := newAwaitingTransaction(t)
		assert.ErrorIs(t, tx.BeginSubmit(), payment.ErrNotIdle)
	})

	t.Run("abort returns to idle", func(t *testing.T) {
		tx := payment.NewTransaction()
		require.NoError(t, tx.BeginSubmit())

		require.NoError(t, tx.AbortSubmit())
		assert.Equal(t, payment.StateIdle, tx.State())

		// A fresh submission is allowed after the abort.
		assert.NoError(t, tx.BeginSubmit())
	})

	t.Run("empty transaction id is rejected", func(t *testing.T) {
		tx := payment.NewTransaction()
		require.NoError(t, tx.BeginSubmit())
		assert.Error(t, tx.ConfirmSubmitted("", "token"))
	})

	t.Run("confirm outside submitting is rejected", func(t *testing.T) {
		tx := payment.NewTransaction()
		assert.ErrorIs(t, tx.ConfirmSubmitted("tx-001", "token"), payment.ErrNotSubmitting)
	})
}

func TestApplyOutcome(t *testing.T) {
	success := payment.Outcome{Kind: payment.OutcomeSuccess, ConfirmationCode: "QWE123", Source: payment.SourcePush}
	failure := payment.Outcome{Kind: payment.OutcomeFailure, FailureReason: "INSUFFICIENT_FUNDS", Source: payment.SourcePoll}
	timeout := payment.Outcome{Kind: payment.OutcomeTimeout, Source: payment.SourcePoll}

	t.Run("success populates code and clears reason", func(t *testing.T) {
		tx := newAwaitingTransaction(t)

		assert.True(t, tx.ApplyOutcome(0, success))
		assert.Equal(t, payment.StateSucceeded, tx.State())
		assert.Equal(t, "QWE123", tx.ConfirmationCode())
		assert.Empty(t, tx.FailureReason())
	})

	t.Run("failure populates reason and clears code", func(t *testing.T) {
		tx := newAwaitingTransaction(t)

		assert.True(t, tx.ApplyOutcome(0, failure))
		assert.Equal(t, payment.StateFailed, tx.State())
		assert.Equal(t, "INSUFFICIENT_FUNDS", tx.FailureReason())
		assert.Empty(t, tx.ConfirmationCode())
	})

	t.Run("timeout carries neither code nor reason", func(t *testing.T) {
		tx := newAwaitingTransaction(t)

		assert.True(t, tx.ApplyOutcome(0, timeout))
		assert.Equal(t, payment.StateTimedOut, tx.State())
		assert.Empty(t, tx.ConfirmationCode())
		assert.Empty(t, tx.FailureReason())
	})

	t.Run("stale epoch is ignored", func(t *testing.T) {
		tx := newAwaitingTransaction(t)

		assert.False(t, tx.ApplyOutcome(1, success))
		assert.Equal(t, payment.StateAwaitingConfirmation, tx.State())
	})

	t.Run("outcome before submission is ignored", func(t *testing.T) {
		tx := payment.NewTransaction()
		assert.False(t, tx.ApplyOutcome(0, success))
		assert.Equal(t, payment.StateIdle, tx.State())
	})

	// The channels race and may each deliver their answer more than once.
	// Whatever arrives first decides the terminal state; every later report,
	// duplicate or contradictory, must be a no-op.
	t.Run("first report wins under any arrival order", func(t *testing.T) {
		events := []payment.Outcome{success, failure, timeout}
		finalState := map[payment.OutcomeKind]payment.State{
			payment.OutcomeSuccess: payment.StateSucceeded,
			payment.OutcomeFailure: payment.StateFailed,
			payment.OutcomeTimeout: payment.StateTimedOut,
		}

		for _, order := range permutations(len(events)) {
			for dup := 0; dup <= 2; dup++ {
				arrival := make([]payment.Outcome, 0, len(order)+dup)
				for _, i := range order {
					arrival = append(arrival, events[i])
				}
				for i := 0; i < dup; i++ {
					arrival = append(arrival, arrival[i%len(order)])
				}

				name := fmt.Sprintf("order=%v dup=%d", order, dup)
				t.Run(name, func(t *testing.T) {
					tx := newAwaitingTransaction(t)

					assert.True(t, tx.ApplyOutcome(0, arrival[0]))
					for _, o := range arrival[1:] {
						assert.False(t, tx.ApplyOutcome(0, o))
					}
					assert.Equal(t, finalState[arrival[0].Kind], tx.State())
				})
			}
		}
	})
}

func TestBeginRetry(t *testing.T) {
	failure := payment.Outcome{Kind: payment.OutcomeFailure, FailureReason: "DECLINED", Source: payment.SourcePush}
	success := payment.Outcome{Kind: payment.OutcomeSuccess, ConfirmationCode: "QWE123", Source: payment.SourcePoll}

	t.Run("opens a new epoch and clears the old verdict", func(t *testing.T) {
		tx := newAwaitingTransaction(t)
		require.True(t, tx.ApplyOutcome(0, failure))

		epoch, err := tx.BeginRetry()
		require.NoError(t, err)
		assert.Equal(t, 1, epoch)
		assert.Equal(t, payment.StateSubmitting, tx.State())
		assert.Empty(t, tx.FailureReason())

		require.NoError(t, tx.MarkAwaiting())
		assert.Equal(t, payment.StateAwaitingConfirmation, tx.State())

		// The old epoch can no longer influence the transaction.
		assert.False(t, tx.ApplyOutcome(0, success))
		assert.True(t, tx.ApplyOutcome(1, success))
		assert.Equal(t, payment.StateSucceeded, tx.State())
	})

	t.Run("retry from timed out", func(t *testing.T) {
		tx := newAwaitingTransaction(t)
		require.True(t, tx.ApplyOutcome(0, payment.Outcome{Kind: payment.OutcomeTimeout, Source: payment.SourcePoll}))

		_, err := tx.BeginRetry()
		assert.NoError(t, err)
	})

	t.Run("retry from succeeded is rejected", func(t *testing.T) {
		tx := newAwaitingTransaction(t)
		require.True(t, tx.ApplyOutcome(0, success))

		_, err := tx.BeginRetry()
		assert.ErrorIs(t, err, payment.ErrNotRetryable)
	})

	t.Run("retry while awaiting is rejected", func(t *testing.T) {
		tx := newAwaitingTransaction(t)

		_, err := tx.BeginRetry()
		assert.ErrorIs(t, err, payment.ErrNotRetryable)
	})
}

func TestStatePredicates(t *testing.T) {
	terminal := []payment.State{payment.StateSucceeded, payment.StateFailed, payment.StateTimedOut}
	live := []payment.State{payment.StateIdle, payment.StateSubmitting, payment.StateAwaitingConfirmation}

	for _, s := range terminal {
		assert.True(t, s.Terminal(), s.String())
	}
	for _, s := range live {
		assert.False(t, s.Terminal(), s.String())
	}

	assert.True(t, payment.StateFailed.Retryable())
	assert.True(t, payment.StateTimedOut.Retryable())
	assert.False(t, payment.StateSucceeded.Retryable())
	assert.False(t, payment.StateAwaitingConfirmation.Retryable())
}

// permutations returns every ordering of the indexes 0..n-1.
func permutations(n int) [][]int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	var out [][]int
	var recurse func(k int)
	recurse = func(k int) {
		if k == n {
			perm := make([]int, n)
			copy(perm, idx)
			out = append(out, perm)
			return
		}
		for i := k; i < n; i++ {
			idx[k], idx[i] = idx[i], idx[k]
			recurse(k + 1)
			idx[k], idx[i] = idx[i], idx[k]
		}
	}
	recurse(0)
	return out
}
