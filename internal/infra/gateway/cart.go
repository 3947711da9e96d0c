package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/pkg/config"

	"github.com/shopspring/decimal"
)

type CartClient struct {
	*client
}

func NewCartClient(cfg config.ServicesConfig, logger *slog.Logger) *CartClient {
	return &CartClient{
		client: newClient("cart", cfg.CartBaseURL, cfg.RequestTimeout, logger),
	}
}

type cartResponse struct {
	CartID        string             `json:"cartId"`
	StoreNumber   string             `json:"storeNumber"`
	Customer      cartCustomer       `json:"customer"`
	Items         []cartItem         `json:"items"`
	DiscountCodes []string           `json:"discountCodes"`
	Totals        cartTotalsResponse `json:"totals"`
}

type cartCustomer struct {
	ID    string `json:"id"`
	Tier  string `json:"tier"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type cartItem struct {
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type cartTotalsResponse struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountTotal   decimal.Decimal `json:"discountTotal"`
	TaxTotal        decimal.Decimal `json:"taxTotal"`
	FulfillmentCost decimal.Decimal `json:"fulfillmentCost"`
	GrandTotal      decimal.Decimal `json:"grandTotal"`
}

func (c *CartClient) GetCart(ctx context.Context, cartID, storeNumber string) (*cart.Snapshot, error) {
	var resp cartResponse
	path := fmt.Sprintf("/api/carts/%s?storeNumber=%s", cartID, storeNumber)
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}

	items := make([]cart.Item, len(resp.Items))
	for i, it := range resp.Items {
		items[i] = cart.Item{
			SKU:         it.SKU,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}

	return &cart.Snapshot{
		CartID:      resp.CartID,
		StoreNumber: resp.StoreNumber,
		Customer: cart.Customer{
			ID:    resp.Customer.ID,
			Tier:  resp.Customer.Tier,
			Name:  resp.Customer.Name,
			Email: resp.Customer.Email,
		},
		Items:         items,
		DiscountCodes: resp.DiscountCodes,
		Totals: cart.Totals{
			Subtotal:        resp.Totals.Subtotal,
			DiscountTotal:   resp.Totals.DiscountTotal,
			TaxTotal:        resp.Totals.TaxTotal,
			FulfillmentCost: resp.Totals.FulfillmentCost,
			GrandTotal:      resp.Totals.GrandTotal,
		},
	}, nil
}

type markCompletedRequest struct {
	StoreNumber string `json:"storeNumber"`
	Status      string `json:"status"`
}

func (c *CartClient) MarkCompleted(ctx context.Context, cartID, storeNumber string) error {
	path := fmt.Sprintf("/api/carts/%s/status", cartID)
	return c.postJSON(ctx, path, markCompletedRequest{
		StoreNumber: storeNumber,
		Status:      "COMPLETED",
	}, nil)
}
