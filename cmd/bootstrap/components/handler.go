package components

import (
	"restaurant-pos/internal/handler"
	"restaurant-pos/internal/handler/api"
	"restaurant-pos/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewLocationHandler,
		api.NewStaffHandler,
		api.NewMenuHandler,
		api.NewOrderHandler,
		api.NewOfflineHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
