package bootstrap

import (
	"restaurant-pos/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	BackendModule,
	LocalStoreModule,
	components.UseCaseModule,
	components.HandlerModule,
)
