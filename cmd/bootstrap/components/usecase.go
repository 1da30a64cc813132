package components

import (
	"log/slog"

	"eventpay/internal/domain/billing"
	"eventpay/internal/pkg/clock"
	"eventpay/internal/pkg/config"
	"eventpay/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		func(cfg config.Config) (*billing.FeeCalculator, error) {
			return billing.NewFeeCalculator(cfg.Reconcile.ReservationFraction)
		},
		func(logger *slog.Logger, gw usecase.PaymentGateway) *usecase.AvailabilityGate {
			return usecase.NewAvailabilityGate(logger, gw)
		},
		func(cfg config.Config) usecase.ReconcilerConfig {
			return usecase.ReconcilerConfig{
				PollInterval:     cfg.Reconcile.PollInterval,
				PollAttempts:     cfg.Reconcile.PollAttempts,
				AutoDismissAfter: cfg.Reconcile.AutoDismissAfter,
			}
		},
		usecase.NewBookingFlows,
	),
)
