package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"eventpay/internal/domain/payment"
	"eventpay/internal/pkg/clock"
	"eventpay/internal/pkg/errs"
)

type ReconcilerConfig struct {
	PollInterval     time.Duration
	PollAttempts     int
	AutoDismissAfter time.Duration
}

// Reconciler owns the state machine for one transaction. It consumes
// terminal reports from the push channel and the polling loop, applies the
// first one per epoch, and tears the loser down. A Reconciler is exclusively
// owned by the flow that created it; concurrent bookings get independent
// instances.
type Reconciler struct {
	logger  *slog.Logger
	gateway PaymentGateway
	push    PushBus
	clock   clock.Clock
	cfg     ReconcilerConfig

	// invoked after an auto-dismiss, outside the reconciler lock
	onDismiss func()

	mu           sync.Mutex
	tx           *payment.Transaction
	poller       *statusPoller
	unsubscribe  func()
	dismissTimer *time.Timer
	startedAt    time.Time
	closed       bool
}

func NewReconciler(
	logger *slog.Logger,
	gateway PaymentGateway,
	push PushBus,
	clk clock.Clock,
	cfg ReconcilerConfig,
	onDismiss func(),
) *Reconciler {
	return &Reconciler{
		logger:    logger,
		gateway:   gateway,
		push:      push,
		clock:     clk,
		cfg:       cfg,
		onDismiss: onDismiss,
		tx:        payment.NewTransaction(),
	}
}

// Submit sends the booking request and, once the backend assigns a
// transaction id, arms both confirmation channels under the current epoch.
// A submission-time transport error aborts straight back to Idle: no id
// exists yet to reconcile against.
func (r *Reconciler) Submit(ctx context.Context, req SubmitBookingRequest) (payment.Snapshot, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return payment.Snapshot{}, errs.ErrFlowNotFound
	}
	if err := r.tx.BeginSubmit(); err != nil {
		snap := r.tx.Snapshot()
		r.mu.Unlock()
		return snap, errs.Mark(err, errs.ErrSubmitNotAllowed)
	}
	r.startedAt = r.clock.Now()
	r.mu.Unlock()

	receipt, err := r.gateway.SubmitBooking(ctx, req)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		_ = r.tx.AbortSubmit()
		r.logger.Warn("booking submission failed", "error", err)
		return r.tx.Snapshot(), errs.Mark(err, errs.ErrTransport)
	}
	if r.closed {
		return r.tx.Snapshot(), errs.ErrFlowNotFound
	}
	if err := r.tx.ConfirmSubmitted(receipt.TransactionID, receipt.CorrelationToken); err != nil {
		return r.tx.Snapshot(), errs.Wrap(err, "confirm submission")
	}

	r.logger.Info("booking submitted",
		"transaction_id", receipt.TransactionID,
		"epoch", r.tx.Epoch())
	r.armLocked()
	return r.tx.Snapshot(), nil
}

// Retry is user-triggered only. It opens a new epoch (discarding anything
// still in flight from the old one), asks the backend to actively query the
// provider, and re-arms both channels in case that query is inconclusive.
// A failing query call is reported as ErrProviderQueryFailed — a different
// error class from a declined payment — and the channels stay armed.
func (r *Reconciler) Retry(ctx context.Context) (payment.Snapshot, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return payment.Snapshot{}, errs.ErrFlowNotFound
	}
	newEpoch, err := r.tx.BeginRetry()
	if err != nil {
		snap := r.tx.Snapshot()
		r.mu.Unlock()
		return snap, errs.Mark(err, errs.ErrRetryNotAllowed)
	}
	r.teardownLocked()
	transactionID := r.tx.ID()
	token := r.tx.CorrelationToken()
	r.mu.Unlock()

	r.logger.Info("retrying payment confirmation",
		"transaction_id", transactionID,
		"epoch", newEpoch)
	report, queryErr := r.gateway.QueryProvider(ctx, transactionID, token)

	r.mu.Lock()
	if r.closed || r.tx.Epoch() != newEpoch {
		snap := r.tx.Snapshot()
		r.mu.Unlock()
		return snap, errs.ErrFlowNotFound
	}

	applied := false
	if queryErr == nil {
		// The provider query is authoritative; a terminal answer
		// short-circuits without waiting for push or polling.
		if o, ok := outcomeFromReport(report, payment.SourceQuery); ok {
			applied = r.finalizeLocked(newEpoch, o)
		}
	}
	if !applied {
		_ = r.tx.MarkAwaiting()
		r.armLocked()
	}
	snap := r.tx.Snapshot()
	r.mu.Unlock()

	if queryErr != nil {
		r.logger.Warn("provider query failed during retry",
			"transaction_id", transactionID,
			"error", queryErr)
		return snap, errs.Mark(queryErr, errs.ErrProviderQueryFailed)
	}
	return snap, nil
}

func (r *Reconciler) Snapshot() payment.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx.Snapshot()
}

// Close tears down both adapters and any pending auto-dismiss timer. Safe to
// call multiple times and from any state.
func (r *Reconciler) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeLocked()
}

// armLocked starts the polling loop and adds the push handler, both scoped
// to the current transaction id and epoch.
func (r *Reconciler) armLocked() {
	epoch := r.tx.Epoch()
	transactionID := r.tx.ID()

	r.poller = newStatusPoller(
		r.logger,
		r.gateway,
		transactionID,
		r.cfg.PollInterval,
		r.cfg.PollAttempts,
		func(o payment.Outcome) { r.handleOutcome(epoch, o) },
	)

	unsubscribe, err := r.push.Subscribe(func(ev PushEvent) {
		if ev.TransactionID != transactionID {
			return
		}
		if o, ok := outcomeFromPush(ev); ok {
			r.handleOutcome(epoch, o)
		}
	})
	if err != nil {
		// Polling alone still resolves the transaction.
		r.logger.Warn("push channel unavailable, relying on polling",
			"transaction_id", transactionID,
			"error", err)
		r.unsubscribe = nil
	} else {
		r.unsubscribe = unsubscribe
	}

	r.poller.start()
}

// handleOutcome runs on an adapter goroutine. A polling timeout triggers one
// provider query before it is surfaced: the provider may have resolved the
// payment without either channel hearing about it.
func (r *Reconciler) handleOutcome(epoch int, o payment.Outcome) {
	if o.Kind == payment.OutcomeTimeout {
		o = r.resolveTimeout(epoch, o)
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	if !r.finalizeLocked(epoch, o) {
		r.mu.Unlock()
		r.logger.Debug("discarded stale or duplicate outcome",
			"source", string(o.Source),
			"epoch", epoch)
		return
	}
	r.mu.Unlock()
}

func (r *Reconciler) resolveTimeout(epoch int, o payment.Outcome) payment.Outcome {
	r.mu.Lock()
	if r.closed || epoch != r.tx.Epoch() || r.tx.State().Terminal() {
		r.mu.Unlock()
		return o
	}
	transactionID := r.tx.ID()
	token := r.tx.CorrelationToken()
	r.mu.Unlock()

	report, err := r.gateway.QueryProvider(context.Background(), transactionID, token)
	if err != nil {
		r.logger.Warn("provider query after poll timeout failed",
			"transaction_id", transactionID,
			"error", err)
		return o
	}
	if resolved, ok := outcomeFromReport(report, payment.SourceQuery); ok {
		return resolved
	}
	return o
}

// finalizeLocked applies a terminal outcome; on first application it tears
// down the losing channel and, on success, arms the one-shot auto-dismiss
// timer. Duplicate or stale outcomes return false and have no side effects.
func (r *Reconciler) finalizeLocked(epoch int, o payment.Outcome) bool {
	if !r.tx.ApplyOutcome(epoch, o) {
		return false
	}
	r.teardownLocked()

	snap := r.tx.Snapshot()
	elapsed := time.Duration(0)
	if !r.startedAt.IsZero() {
		elapsed = r.clock.Now().Sub(r.startedAt)
	}
	r.logger.Info("payment resolved",
		"transaction_id", snap.TransactionID,
		"state", snap.State.String(),
		"source", string(o.Source),
		"epoch", epoch,
		"elapsed", elapsed)

	if snap.State == payment.StateSucceeded && r.cfg.AutoDismissAfter > 0 {
		r.dismissTimer = time.AfterFunc(r.cfg.AutoDismissAfter, func() {
			r.autoDismiss(epoch)
		})
	}
	return true
}

func (r *Reconciler) autoDismiss(epoch int) {
	r.mu.Lock()
	if r.closed || epoch != r.tx.Epoch() {
		r.mu.Unlock()
		return
	}
	r.closeLocked()
	r.mu.Unlock()

	if r.onDismiss != nil {
		r.onDismiss()
	}
}

func (r *Reconciler) closeLocked() {
	if r.closed {
		return
	}
	r.closed = true
	r.teardownLocked()
	if r.dismissTimer != nil {
		r.dismissTimer.Stop()
		r.dismissTimer = nil
	}
}

// teardownLocked stops the poller and removes the push handler. Both are
// idempotent; the push removal is synchronous, so no handler survives to
// touch a transaction that has moved on.
func (r *Reconciler) teardownLocked() {
	if r.poller != nil {
		r.poller.stop()
		r.poller = nil
	}
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

func outcomeFromPush(ev PushEvent) (payment.Outcome, bool) {
	return outcomeFromReport(StatusReport{
		Status:           ev.Status,
		ConfirmationCode: ev.ConfirmationCode,
		FailureReason:    ev.Reason,
	}, payment.SourcePush)
}

func outcomeFromReport(report StatusReport, source payment.Source) (payment.Outcome, bool) {
	switch report.Status {
	case TxStatusSuccess:
		return payment.Outcome{
			Kind:             payment.OutcomeSuccess,
			ConfirmationCode: report.ConfirmationCode,
			Source:           source,
		}, true
	case TxStatusFailed:
		return payment.Outcome{
			Kind:          payment.OutcomeFailure,
			FailureReason: report.FailureReason,
			Source:        source,
		}, true
	default:
		return payment.Outcome{}, false
	}
}
