package gateway

import (
	"context"
	"log/slog"

	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

// PaymentClient uses the longer payment timeout: a processor round trip can
// legitimately take longer than the other collaborators.
type PaymentClient struct {
	*client
}

func NewPaymentClient(cfg config.ServicesConfig, logger *slog.Logger) *PaymentClient {
	return &PaymentClient{
		client: newClient("payment", cfg.PaymentBaseURL, cfg.PaymentTimeout, logger),
	}
}

type paymentRequest struct {
	OrderNumber string            `json:"orderNumber"`
	Amount      decimal.Decimal   `json:"amount"`
	Method      string            `json:"method"`
	Details     map[string]string `json:"details,omitempty"`
	CustomerID  string            `json:"customerId"`
	StoreNumber string            `json:"storeNumber"`
}

type paymentResponse struct {
	Success          bool   `json:"success"`
	PaymentReference string `json:"paymentReference"`
	Message          string `json:"message"`
}

// ProcessPayment returns an error only for transport-level failures; a
// decline comes back as a successful call with Success=false so the caller
// can tell the two apart.
func (c *PaymentClient) ProcessPayment(
	ctx context.Context,
	req commands.PaymentRequest,
) (*commands.PaymentResult, error) {
	var resp paymentResponse
	err := c.postJSON(ctx, "/api/payments", paymentRequest{
		OrderNumber: req.OrderNumber,
		Amount:      req.Amount,
		Method:      req.Method,
		Details:     req.Details,
		CustomerID:  req.CustomerID,
		StoreNumber: req.StoreNumber,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &commands.PaymentResult{
		Success:          resp.Success,
		PaymentReference: resp.PaymentReference,
		Message:          resp.Message,
	}, nil
}
