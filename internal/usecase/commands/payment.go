package commands

import (
	"context"
	"log/slog"

	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/pkg/errs"
)

// PaymentCoordinator submits a single charge and classifies its outcome. It
// never retries; retry policy belongs to the gateway client, not here.
type PaymentCoordinator struct {
	gateway PaymentGateway
	logger  *slog.Logger
}

func NewPaymentCoordinator(gateway PaymentGateway, logger *slog.Logger) *PaymentCoordinator {
	return &PaymentCoordinator{
		gateway: gateway,
		logger:  logger,
	}
}

// Charge returns the gateway's payment reference on success. A gateway-level
// decline maps to ErrPaymentFailed; a transport failure maps to
// ErrPaymentIndeterminate because the charge may have landed downstream.
func (p *PaymentCoordinator) Charge(
	ctx context.Context,
	sess *checkout.Session,
	method string,
	details map[string]string,
) (string, error) {
	result, err := p.gateway.ProcessPayment(ctx, PaymentRequest{
		OrderNumber: sess.OrderNumber,
		Amount:      sess.GrandTotal,
		Method:      method,
		Details:     details,
		CustomerID:  sess.Customer.ID,
		StoreNumber: sess.StoreNumber,
	})
	if err != nil {
		p.logger.Error("payment outcome unknown",
			"order_number", sess.OrderNumber,
			"session_id", sess.SessionID,
			"error", err.Error(),
		)
		return "", errs.Mark(errs.Wrap(err, "payment call failed"), ErrPaymentIndeterminate)
	}

	if !result.Success {
		return "", errs.Mark(&PaymentDeclinedError{Message: result.Message}, ErrPaymentFailed)
	}

	return result.PaymentReference, nil
}
