package components

import (
	"eventpay/internal/handler"
	"eventpay/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
	),
	fx.Invoke(handler.NewRouter),
)
