package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"eventpay/internal/domain/billing"
	"eventpay/internal/domain/payment"
	"eventpay/internal/pkg/clock"
	"eventpay/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=flows.go -destination=../../tests/mock/usecase/flows.go -package=usecasemock

// FlowSnapshot is the UI-facing view of one booking flow.
type FlowSnapshot struct {
	FlowID  uuid.UUID
	Quote   billing.Quote
	Payment payment.Snapshot
}

type StartBookingParams struct {
	ResourceID      uuid.UUID
	Start           time.Time
	End             time.Time
	HourlyRateCents int64
	PhoneNumber     string
	Note            string
}

// BookingFlows is the single entry point every booking type (venue,
// performance, service, ticket) drives; the per-screen wiring of the old
// flows collapses into this one engine.
type BookingFlows interface {
	Quote(start, end time.Time, hourlyRateCents int64) (billing.Quote, error)
	CheckAvailability(ctx context.Context, q AvailabilityQuery) AvailabilityVerdict
	Start(ctx context.Context, params StartBookingParams) (FlowSnapshot, error)
	Get(flowID uuid.UUID) (FlowSnapshot, error)
	Retry(ctx context.Context, flowID uuid.UUID) (FlowSnapshot, error)
	Dismiss(flowID uuid.UUID) error
}

type flowEntry struct {
	reconciler *Reconciler
	quote      billing.Quote
}

type flowServiceImpl struct {
	logger     *slog.Logger
	gateway    PaymentGateway
	push       PushBus
	gate       *AvailabilityGate
	calculator *billing.FeeCalculator
	clock      clock.Clock
	cfg        ReconcilerConfig

	mu    sync.RWMutex
	flows map[uuid.UUID]*flowEntry
}

func NewBookingFlows(
	logger *slog.Logger,
	gateway PaymentGateway,
	push PushBus,
	gate *AvailabilityGate,
	calculator *billing.FeeCalculator,
	clk clock.Clock,
	cfg ReconcilerConfig,
) BookingFlows {
	return &flowServiceImpl{
		logger:     logger,
		gateway:    gateway,
		push:       push,
		gate:       gate,
		calculator: calculator,
		clock:      clk,
		cfg:        cfg,
		flows:      make(map[uuid.UUID]*flowEntry),
	}
}

func (s *flowServiceImpl) Quote(start, end time.Time, hourlyRateCents int64) (billing.Quote, error) {
	quote, err := s.calculator.QuoteHourly(start, end, billing.NewMoney(hourlyRateCents))
	if err != nil {
		return billing.Quote{}, errs.Mark(err, errs.ErrValidation)
	}
	return quote, nil
}

func (s *flowServiceImpl) CheckAvailability(ctx context.Context, q AvailabilityQuery) AvailabilityVerdict {
	return s.gate.Check(ctx, q)
}

// Start runs the pre-submission pipeline (quote, availability) and, if both
// pass, creates a flow whose reconciler submits the booking and follows the
// confirmation to a terminal state.
func (s *flowServiceImpl) Start(ctx context.Context, params StartBookingParams) (FlowSnapshot, error) {
	quote, err := s.Quote(params.Start, params.End, params.HourlyRateCents)
	if err != nil {
		return FlowSnapshot{}, err
	}

	verdict := s.gate.Check(ctx, AvailabilityQuery{
		ResourceID: params.ResourceID,
		Date:       params.Start.Format("2006-01-02"),
		Start:      params.Start.Format("15:04"),
		End:        params.End.Format("15:04"),
	})
	if !verdict.Available {
		// The reason is surfaced verbatim to the user.
		return FlowSnapshot{}, errs.Mark(errs.New(verdict.Reason), errs.ErrAvailabilityConflict)
	}

	flowID := uuid.New()
	reconciler := NewReconciler(
		s.logger.With("flow_id", flowID.String()),
		s.gateway,
		s.push,
		s.clock,
		s.cfg,
		func() { s.remove(flowID) },
	)

	snap, err := reconciler.Submit(ctx, SubmitBookingRequest{
		ResourceID:       params.ResourceID,
		Start:            params.Start,
		End:              params.End,
		PhoneNumber:      params.PhoneNumber,
		TotalCents:       quote.Total.Cents(),
		ReservationCents: quote.Reservation.Cents(),
		Note:             params.Note,
	})
	if err != nil {
		// No transaction id exists; the flow is never registered.
		reconciler.Close()
		return FlowSnapshot{}, err
	}

	s.mu.Lock()
	s.flows[flowID] = &flowEntry{reconciler: reconciler, quote: quote}
	s.mu.Unlock()

	return FlowSnapshot{FlowID: flowID, Quote: quote, Payment: snap}, nil
}

func (s *flowServiceImpl) Get(flowID uuid.UUID) (FlowSnapshot, error) {
	entry, err := s.lookup(flowID)
	if err != nil {
		return FlowSnapshot{}, err
	}
	return FlowSnapshot{FlowID: flowID, Quote: entry.quote, Payment: entry.reconciler.Snapshot()}, nil
}

func (s *flowServiceImpl) Retry(ctx context.Context, flowID uuid.UUID) (FlowSnapshot, error) {
	entry, err := s.lookup(flowID)
	if err != nil {
		return FlowSnapshot{}, err
	}
	snap, err := entry.reconciler.Retry(ctx)
	return FlowSnapshot{FlowID: flowID, Quote: entry.quote, Payment: snap}, err
}

// Dismiss discards the flow the way closing the payment screen does: the
// reconciler is torn down and the transaction forgotten.
func (s *flowServiceImpl) Dismiss(flowID uuid.UUID) error {
	s.mu.Lock()
	entry, ok := s.flows[flowID]
	if ok {
		delete(s.flows, flowID)
	}
	s.mu.Unlock()

	if !ok {
		return errs.ErrFlowNotFound
	}
	entry.reconciler.Close()
	return nil
}

func (s *flowServiceImpl) lookup(flowID uuid.UUID) (*flowEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.flows[flowID]
	if !ok {
		return nil, errs.ErrFlowNotFound
	}
	return entry, nil
}

func (s *flowServiceImpl) remove(flowID uuid.UUID) {
	s.mu.Lock()
	delete(s.flows, flowID)
	s.mu.Unlock()
}
