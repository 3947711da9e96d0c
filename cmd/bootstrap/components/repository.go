package components

import (
	"storefront-checkout/internal/infra/readstore"
	"storefront-checkout/internal/infra/sessionstore"
	"storefront-checkout/internal/infra/writerepo"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			sessionstore.NewRedisStore,
			fx.As(new(commands.SessionStore)),
		),
		fx.Annotate(
			writerepo.NewOrderRepository,
			fx.As(new(commands.OrderRepository)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
	),
)
