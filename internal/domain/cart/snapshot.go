package cart

import (
	"github.com/shopspring/decimal"
)

// Snapshot is the point-in-time view of a cart as returned by the cart
// service. The checkout saga never mutates it.
type Snapshot struct {
	CartID        string
	StoreNumber   string
	Customer      Customer
	Items         []Item
	DiscountCodes []string
	Totals        Totals
}

type Customer struct {
	ID    string
	Tier  string
	Name  string
	Email string
}

type Item struct {
	SKU         string
	Description string
	Quantity    int32
	UnitPrice   decimal.Decimal
}

type Totals struct {
	Subtotal        decimal.Decimal
	DiscountTotal   decimal.Decimal
	TaxTotal        decimal.Decimal
	FulfillmentCost decimal.Decimal
	GrandTotal      decimal.Decimal
}

func (s *Snapshot) HasDiscountCodes() bool {
	return len(s.DiscountCodes) > 0
}
