package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"eventpay/internal/domain/payment"
)

// statusPoller queries transaction status at a fixed interval until a
// terminal answer arrives or the attempt budget runs out. Queries are
// serialized: the next one is only scheduled after the previous response (or
// its error) has been handled, so a slow response can never arrive after a
// newer one.
type statusPoller struct {
	logger        *slog.Logger
	gateway       PaymentGateway
	transactionID string
	interval      time.Duration
	attempts      int
	report        func(payment.Outcome)

	cancel   context.CancelFunc
	stopOnce sync.Once
	done     chan struct{}
}

func newStatusPoller(
	logger *slog.Logger,
	gateway PaymentGateway,
	transactionID string,
	interval time.Duration,
	attempts int,
	report func(payment.Outcome),
) *statusPoller {
	return &statusPoller{
		logger:        logger,
		gateway:       gateway,
		transactionID: transactionID,
		interval:      interval,
		attempts:      attempts,
		report:        report,
		done:          make(chan struct{}),
	}
}

func (p *statusPoller) start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.run(ctx)
}

// stop is safe to call multiple times and from any state. It does not wait
// for an in-flight query; that response is discarded when it returns.
func (p *statusPoller) stop() {
	p.stopOnce.Do(func() {
		if p.cancel != nil {
			p.cancel()
		}
	})
}

func (p *statusPoller) run(ctx context.Context) {
	defer close(p.done)

	for attempt := 1; attempt <= p.attempts; attempt++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.interval):
		}

		report, err := p.gateway.TransactionStatus(ctx, p.transactionID)
		if ctx.Err() != nil {
			// Stopped while the query was in flight; discard the response.
			return
		}
		if err != nil {
			// A single flaky request must not fail the whole transaction;
			// it just consumes one budget unit.
			p.logger.Warn("status poll failed",
				"transaction_id", p.transactionID,
				"attempt", attempt,
				"error", err)
			continue
		}

		switch report.Status {
		case TxStatusPending:
			continue
		case TxStatusSuccess:
			p.report(payment.Outcome{
				Kind:             payment.OutcomeSuccess,
				ConfirmationCode: report.ConfirmationCode,
				Source:           payment.SourcePoll,
			})
			return
		case TxStatusFailed:
			p.report(payment.Outcome{
				Kind:          payment.OutcomeFailure,
				FailureReason: report.FailureReason,
				Source:        payment.SourcePoll,
			})
			return
		default:
			p.logger.Warn("unknown transaction status",
				"transaction_id", p.transactionID,
				"status", string(report.Status))
			continue
		}
	}

	if ctx.Err() != nil {
		return
	}
	// Budget exhausted: timeout is an answer ("no answer within budget"),
	// not an error.
	p.report(payment.Outcome{
		Kind:   payment.OutcomeTimeout,
		Source: payment.SourcePoll,
	})
}
