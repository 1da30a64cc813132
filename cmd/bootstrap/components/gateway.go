package components

import (
	"log/slog"

	"eventpay/internal/infra/gateway"
	"eventpay/internal/infra/push"
	"eventpay/internal/pkg/config"
	"eventpay/internal/usecase"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			func(logger *slog.Logger, cfg config.Config) *gateway.Backend {
				return gateway.NewBackend(logger, cfg.Backend)
			},
			fx.As(new(usecase.PaymentGateway)),
		),
		func(logger *slog.Logger, cfg config.Config, client *redis.Client) *push.Hub {
			return push.NewHub(logger, client, cfg.Redis.PaymentChannel)
		},
		fx.Annotate(
			func(hub *push.Hub) *push.Hub { return hub },
			fx.As(new(usecase.PushBus)),
		),
	),
)
