package checkout

import (
	"time"

	"storefront-checkout/internal/domain/cart"

	"github.com/google/uuid"
)

// NewSession assembles an immutable checkout session from a validated cart
// snapshot. A fresh session id is generated on every call: re-running
// initiation for the same cart produces an independent session.
func NewSession(
	snap *cart.Snapshot,
	orderNumber string,
	fulfillment FulfillmentDetails,
	discounts []AppliedDiscount,
	reservationID string,
	now time.Time,
	lifetime time.Duration,
) *Session {
	items := make([]LineItem, len(snap.Items))
	for i, it := range snap.Items {
		items[i] = LineItem{
			SKU:         it.SKU,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}

	return &Session{
		SessionID:   uuid.NewString(),
		CartID:      snap.CartID,
		OrderNumber: orderNumber,
		StoreNumber: snap.StoreNumber,
		Customer: CustomerSnapshot{
			ID:    snap.Customer.ID,
			Tier:  snap.Customer.Tier,
			Name:  snap.Customer.Name,
			Email: snap.Customer.Email,
		},
		LineItems:        items,
		AppliedDiscounts: discounts,
		Fulfillment:      fulfillment,
		ReservationID:    reservationID,
		Subtotal:         snap.Totals.Subtotal,
		DiscountTotal:    snap.Totals.DiscountTotal,
		TaxTotal:         snap.Totals.TaxTotal,
		FulfillmentCost:  snap.Totals.FulfillmentCost,
		GrandTotal:       snap.Totals.GrandTotal,
		ExpiresAt:        now.Add(lifetime),
	}
}
