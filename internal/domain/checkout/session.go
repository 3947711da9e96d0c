package checkout

import (
	"time"

	"github.com/shopspring/decimal"
)

// Session is the ephemeral snapshot of a priced, reserved cart awaiting
// payment. Once written to the session store it is never mutated: it is read
// once by completion and deleted, or deleted unread after expiry.
type Session struct {
	SessionID   string `json:"sessionId"`
	CartID      string `json:"cartId"`
	OrderNumber string `json:"orderNumber"`
	StoreNumber string `json:"storeNumber"`

	Customer         CustomerSnapshot   `json:"customer"`
	LineItems        []LineItem         `json:"lineItems"`
	AppliedDiscounts []AppliedDiscount  `json:"appliedDiscounts,omitempty"`
	Fulfillment      FulfillmentDetails `json:"fulfillment"`
	ReservationID    string             `json:"reservationId"`

	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountTotal   decimal.Decimal `json:"discountTotal"`
	TaxTotal        decimal.Decimal `json:"taxTotal"`
	FulfillmentCost decimal.Decimal `json:"fulfillmentCost"`
	GrandTotal      decimal.Decimal `json:"grandTotal"`

	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) BelongsToStore(storeNumber string) bool {
	return s.StoreNumber == storeNumber
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
