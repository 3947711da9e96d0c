package gateway

import (
	"context"
	"log/slog"

	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type DiscountClient struct {
	*client
}

func NewDiscountClient(cfg config.ServicesConfig, logger *slog.Logger) *DiscountClient {
	return &DiscountClient{
		client: newClient("discount", cfg.DiscountBaseURL, cfg.RequestTimeout, logger),
	}
}

type discountValidateRequest struct {
	CustomerID   string              `json:"customerId"`
	CustomerTier string              `json:"customerTier"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	Items        []discountLineItem  `json:"items"`
	Codes        []string            `json:"codes"`
}

type discountLineItem struct {
	SKU       string          `json:"sku"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type discountValidateResponse struct {
	Valid        bool               `json:"valid"`
	InvalidCodes []string           `json:"invalidCodes"`
	Applied      []appliedDiscount  `json:"applied"`
}

type appliedDiscount struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

func (c *DiscountClient) ValidateAndCalculate(
	ctx context.Context,
	req commands.DiscountValidationRequest,
) (*commands.DiscountValidationResult, error) {
	items := make([]discountLineItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = discountLineItem{
			SKU:       it.SKU,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
	}

	var resp discountValidateResponse
	err := c.postJSON(ctx, "/api/discounts/validate", discountValidateRequest{
		CustomerID:   req.CustomerID,
		CustomerTier: req.CustomerTier,
		Subtotal:     req.Subtotal,
		Items:        items,
		Codes:        req.Codes,
	}, &resp)
	if err != nil {
		return nil, err
	}

	applied := make([]checkout.AppliedDiscount, len(resp.Applied))
	for i, a := range resp.Applied {
		applied[i] = checkout.AppliedDiscount{Code: a.Code, Amount: a.Amount}
	}

	return &commands.DiscountValidationResult{
		Valid:        resp.Valid,
		InvalidCodes: resp.InvalidCodes,
		Applied:      applied,
	}, nil
}
