package usecase

import (
	"context"
	"log/slog"
)

// AvailabilityGate fronts the remote resource-booking calendar. It fails
// closed: a check that cannot complete blocks submission exactly as a
// genuine conflict would.
type AvailabilityGate struct {
	logger  *slog.Logger
	gateway PaymentGateway
}

func NewAvailabilityGate(logger *slog.Logger, gateway PaymentGateway) *AvailabilityGate {
	return &AvailabilityGate{logger: logger, gateway: gateway}
}

func (g *AvailabilityGate) Check(ctx context.Context, q AvailabilityQuery) AvailabilityVerdict {
	verdict, err := g.gateway.CheckAvailability(ctx, q)
	if err != nil {
		g.logger.Warn("availability check failed, blocking submission",
			"resource_id", q.ResourceID.String(),
			"date", q.Date,
			"error", err)
		return AvailabilityVerdict{
			Available: false,
			Reason:    "availability could not be verified",
		}
	}
	return verdict
}
