//go:build unit

package order_test

import (
	"testing"
	"time"

	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/domain/order"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionFixture() *checkout.Session {
	return &checkout.Session{
		SessionID:   "sess-1",
		CartID:      "cart-1",
		OrderNumber: "ORD-1",
		StoreNumber: "0042",
		Customer:    checkout.CustomerSnapshot{ID: "cust-1", Tier: "STANDARD"},
		LineItems: []checkout.LineItem{
			{SKU: "SKU-1", Description: "Widget", Quantity: 2, UnitPrice: decimal.RequireFromString("10.50")},
		},
		AppliedDiscounts: []checkout.AppliedDiscount{
			{Code: "SPRING10", Amount: decimal.RequireFromString("2.10")},
		},
		Fulfillment:     checkout.FulfillmentDetails{Type: checkout.FulfillmentPickup},
		ReservationID:   "RES-1",
		Subtotal:        decimal.RequireFromString("21.00"),
		DiscountTotal:   decimal.RequireFromString("2.10"),
		TaxTotal:        decimal.RequireFromString("1.51"),
		FulfillmentCost: decimal.Zero,
		GrandTotal:      decimal.RequireFromString("20.41"),
		ExpiresAt:       time.Date(2026, 3, 14, 10, 15, 0, 0, time.UTC),
	}
}

func TestNewFromSession(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 5, 0, 0, time.UTC)

	t.Run("builds a paid order mirroring the session", func(t *testing.T) {
		sess := sessionFixture()
		o, err := order.NewFromSession(sess, "PAY-1", order.PaymentMethodCard, "user-1", "pos-7", now)
		require.NoError(t, err)

		assert.Equal(t, "ORD-1", o.OrderNumber())
		assert.Equal(t, "0042", o.StoreNumber())
		assert.Equal(t, "cust-1", o.CustomerID())
		assert.Equal(t, order.StatusPaid, o.Status())
		assert.Equal(t, order.PaymentStatusCompleted, o.PaymentStatus())
		assert.Equal(t, "PAY-1", o.PaymentReference())
		assert.Equal(t, now, o.CreatedAt())
		assert.Equal(t, "user-1", o.CreatedBy())
		assert.Equal(t, "pos-7", o.UserSessionID())
		assert.NotEqual(t, o.ID().String(), "")

		wantItems := []order.LineItem{
			{SKU: "SKU-1", Description: "Widget", Quantity: 2, UnitPrice: decimal.RequireFromString("10.50")},
		}
		if diff := cmp.Diff(wantItems, o.Items()); diff != "" {
			t.Errorf("items mismatch (-want +got):\n%s", diff)
		}

		wantDiscounts := []order.AppliedDiscount{
			{Code: "SPRING10", Amount: decimal.RequireFromString("2.10")},
		}
		if diff := cmp.Diff(wantDiscounts, o.Discounts()); diff != "" {
			t.Errorf("discounts mismatch (-want +got):\n%s", diff)
		}

		assert.True(t, o.GrandTotal().Equal(sess.GrandTotal))
		assert.True(t, o.Subtotal().Equal(sess.Subtotal))
	})

	t.Run("rejects a nil session", func(t *testing.T) {
		_, err := order.NewFromSession(nil, "PAY-1", order.PaymentMethodCash, "user-1", "", now)
		assert.ErrorIs(t, err, order.ErrNilSession)
	})

	t.Run("rejects an empty payment reference", func(t *testing.T) {
		_, err := order.NewFromSession(sessionFixture(), "", order.PaymentMethodCash, "user-1", "", now)
		assert.ErrorIs(t, err, order.ErrMissingPaymentReference)
	})

	t.Run("rejects an unknown payment method", func(t *testing.T) {
		_, err := order.NewFromSession(sessionFixture(), "PAY-1", order.PaymentMethod("BARTER"), "user-1", "", now)
		assert.ErrorIs(t, err, order.ErrInvalidPaymentMethod)
	})
}
