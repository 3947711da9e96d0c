package components

import (
	"log/slog"

	"storefront-checkout/internal/infra/gateway"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewCartGateway,
			fx.As(new(commands.CartGateway)),
		),
		fx.Annotate(
			NewDiscountGateway,
			fx.As(new(commands.DiscountGateway)),
		),
		fx.Annotate(
			NewFulfillmentGateway,
			fx.As(new(commands.FulfillmentGateway)),
		),
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)

func NewCartGateway(cfg config.Config, logger *slog.Logger) *gateway.CartClient {
	return gateway.NewCartClient(cfg.Services, logger)
}

func NewDiscountGateway(cfg config.Config, logger *slog.Logger) *gateway.DiscountClient {
	return gateway.NewDiscountClient(cfg.Services, logger)
}

func NewFulfillmentGateway(cfg config.Config, logger *slog.Logger) *gateway.FulfillmentClient {
	return gateway.NewFulfillmentClient(cfg.Services, logger)
}

func NewPaymentGateway(cfg config.Config, logger *slog.Logger) *gateway.PaymentClient {
	return gateway.NewPaymentClient(cfg.Services, logger)
}
