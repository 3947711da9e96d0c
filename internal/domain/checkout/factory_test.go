//go:build unit

package checkout_test

import (
	"testing"
	"time"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/domain/checkout"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotFixture() *cart.Snapshot {
	return &cart.Snapshot{
		CartID:      "cart-1",
		StoreNumber: "0042",
		Customer:    cart.Customer{ID: "cust-1", Tier: "GOLD", Name: "Jo", Email: "jo@example.com"},
		Items: []cart.Item{
			{SKU: "SKU-1", Description: "Widget", Quantity: 2, UnitPrice: decimal.RequireFromString("10.50")},
		},
		Totals: cart.Totals{
			Subtotal:        decimal.RequireFromString("21.00"),
			DiscountTotal:   decimal.Zero,
			TaxTotal:        decimal.RequireFromString("1.68"),
			FulfillmentCost: decimal.RequireFromString("5.00"),
			GrandTotal:      decimal.RequireFromString("27.68"),
		},
	}
}

func TestNewSession(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	details := checkout.FulfillmentDetails{Type: checkout.FulfillmentDelivery}

	t.Run("copies the snapshot verbatim", func(t *testing.T) {
		sess := checkout.NewSession(snapshotFixture(), "ORD-1", details, nil, "RES-1", now, 15*time.Minute)

		assert.Equal(t, "cart-1", sess.CartID)
		assert.Equal(t, "0042", sess.StoreNumber)
		assert.Equal(t, "GOLD", sess.Customer.Tier)
		require.Len(t, sess.LineItems, 1)
		assert.True(t, sess.LineItems[0].UnitPrice.Equal(decimal.RequireFromString("10.50")))
		assert.True(t, sess.GrandTotal.Equal(decimal.RequireFromString("27.68")))
		assert.Equal(t, now.Add(15*time.Minute), sess.ExpiresAt)
	})

	t.Run("every call yields a distinct session id", func(t *testing.T) {
		a := checkout.NewSession(snapshotFixture(), "ORD-1", details, nil, "RES-1", now, time.Minute)
		b := checkout.NewSession(snapshotFixture(), "ORD-1", details, nil, "RES-1", now, time.Minute)

		assert.NotEmpty(t, a.SessionID)
		assert.NotEqual(t, a.SessionID, b.SessionID)
	})
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	sess := checkout.NewSession(snapshotFixture(), "ORD-1", checkout.FulfillmentDetails{Type: checkout.FulfillmentPickup}, nil, "RES-1", now, 15*time.Minute)

	assert.False(t, sess.Expired(now))
	assert.False(t, sess.Expired(sess.ExpiresAt))
	assert.True(t, sess.Expired(sess.ExpiresAt.Add(time.Nanosecond)))
}

func TestFulfillmentType(t *testing.T) {
	assert.True(t, checkout.FulfillmentTakeNow.IsImmediate())
	assert.False(t, checkout.FulfillmentPickup.IsImmediate())
	assert.False(t, checkout.FulfillmentDelivery.IsImmediate())

	assert.True(t, checkout.FulfillmentType("PICKUP").Valid())
	assert.False(t, checkout.FulfillmentType("SHIP_TO_HOME").Valid())
}
