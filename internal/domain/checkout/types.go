package checkout

import (
	"time"

	"github.com/shopspring/decimal"
)

type FulfillmentType string

const (
	// FulfillmentTakeNow means the customer takes possession immediately,
	// so no inventory hold is meaningful.
	FulfillmentTakeNow  FulfillmentType = "TAKE_NOW"
	FulfillmentPickup   FulfillmentType = "PICKUP"
	FulfillmentDelivery FulfillmentType = "DELIVERY"
)

func (t FulfillmentType) IsImmediate() bool {
	return t == FulfillmentTakeNow
}

func (t FulfillmentType) Valid() bool {
	switch t {
	case FulfillmentTakeNow, FulfillmentPickup, FulfillmentDelivery:
		return true
	}
	return false
}

type FulfillmentDetails struct {
	Type            FulfillmentType `json:"type"`
	Date            *time.Time      `json:"date,omitempty"`
	DeliveryAddress *string         `json:"deliveryAddress,omitempty"`
	Instructions    *string         `json:"instructions,omitempty"`
}

type CustomerSnapshot struct {
	ID    string `json:"id"`
	Tier  string `json:"tier"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LineItem struct {
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type AppliedDiscount struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}
