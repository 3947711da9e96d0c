package components

import (
	"log/slog"

	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewReservationCoordinator,
	NewPaymentCoordinator,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewCheckoutCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
	),
)

func NewReservationCoordinator(fulfillment commands.FulfillmentGateway, cfg config.Config, logger *slog.Logger) *commands.ReservationCoordinator {
	return commands.NewReservationCoordinator(fulfillment, cfg.Checkout.BestEffortTimeout, logger)
}

func NewPaymentCoordinator(payments commands.PaymentGateway, logger *slog.Logger) *commands.PaymentCoordinator {
	return commands.NewPaymentCoordinator(payments, logger)
}

func NewCheckoutCommands(
	carts commands.CartGateway,
	discounts commands.DiscountGateway,
	reservations *commands.ReservationCoordinator,
	payments *commands.PaymentCoordinator,
	sessions commands.SessionStore,
	orders commands.OrderRepository,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) commands.CheckoutCommands {
	return commands.NewCheckoutCommands(carts, discounts, reservations, payments, sessions, orders, clk, cfg.Checkout, logger)
}
