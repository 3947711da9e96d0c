//go:build unit || e2e

package builder

import (
	"time"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/domain/checkout"
	reqdto "storefront-checkout/internal/handler/dto/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutBuilder struct {
	CartID          string
	StoreNumber     string
	CustomerID      string
	CustomerTier    string
	CustomerName    string
	CustomerEmail   string
	Items           []cart.Item
	DiscountCodes   []string
	Subtotal        decimal.Decimal
	DiscountTotal   decimal.Decimal
	TaxTotal        decimal.Decimal
	FulfillmentCost decimal.Decimal
	GrandTotal      decimal.Decimal
	FulfillmentType checkout.FulfillmentType
	OrderNumber     string
	ReservationID   string
	Now             time.Time
	SessionLifetime time.Duration
}

// NewCheckoutBuilder produces a two-item PICKUP cart priced at 54.00: a
// subtotal of 50.00 plus 4.00 tax, no discounts.
func NewCheckoutBuilder() *CheckoutBuilder {
	return &CheckoutBuilder{
		CartID:        uuid.NewString(),
		StoreNumber:   "0042",
		CustomerID:    uuid.NewString(),
		CustomerTier:  "STANDARD",
		CustomerName:  "Test Customer",
		CustomerEmail: "customer@example.com",
		Items: []cart.Item{
			{SKU: "SKU-100", Description: "Garden hose", Quantity: 1, UnitPrice: decimal.NewFromInt(30)},
			{SKU: "SKU-200", Description: "Work gloves", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		},
		Subtotal:        decimal.NewFromInt(50),
		DiscountTotal:   decimal.Zero,
		TaxTotal:        decimal.NewFromInt(4),
		FulfillmentCost: decimal.Zero,
		GrandTotal:      decimal.NewFromInt(54),
		FulfillmentType: checkout.FulfillmentPickup,
		OrderNumber:     "ORD-TEST00000001",
		ReservationID:   "RES-" + uuid.NewString(),
		Now:             time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		SessionLifetime: 15 * time.Minute,
	}
}

func (b *CheckoutBuilder) With(mutate func(*CheckoutBuilder)) *CheckoutBuilder {
	mutate(b)
	return b
}

func (b *CheckoutBuilder) BuildSnapshot() *cart.Snapshot {
	return &cart.Snapshot{
		CartID:      b.CartID,
		StoreNumber: b.StoreNumber,
		Customer: cart.Customer{
			ID:    b.CustomerID,
			Tier:  b.CustomerTier,
			Name:  b.CustomerName,
			Email: b.CustomerEmail,
		},
		Items:         b.Items,
		DiscountCodes: b.DiscountCodes,
		Totals: cart.Totals{
			Subtotal:        b.Subtotal,
			DiscountTotal:   b.DiscountTotal,
			TaxTotal:        b.TaxTotal,
			FulfillmentCost: b.FulfillmentCost,
			GrandTotal:      b.GrandTotal,
		},
	}
}

func (b *CheckoutBuilder) BuildSession() *checkout.Session {
	return checkout.NewSession(
		b.BuildSnapshot(),
		b.OrderNumber,
		checkout.FulfillmentDetails{Type: b.FulfillmentType},
		nil,
		b.ReservationID,
		b.Now,
		b.SessionLifetime,
	)
}

func (b *CheckoutBuilder) BuildInitiateRequestDTO() reqdto.InitiateCheckoutRequest {
	return reqdto.InitiateCheckoutRequest{
		CartID:          b.CartID,
		FulfillmentType: string(b.FulfillmentType),
	}
}

func (b *CheckoutBuilder) BuildCompleteRequestDTO(sessionID string) reqdto.CompleteCheckoutRequest {
	return reqdto.CompleteCheckoutRequest{
		SessionID:     sessionID,
		PaymentMethod: "CASH",
	}
}
