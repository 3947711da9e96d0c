package response

import (
	"time"

	"storefront-checkout/internal/usecase/commands"
)

// Monetary amounts are rendered with exactly two fraction digits so clients
// never see "54" where "54.00" is meant.

type CustomerResponse struct {
	ID    string `json:"id"`
	Tier  string `json:"tier"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LineItemResponse struct {
	SKU         string `json:"sku"`
	Description string `json:"description"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
}

type AppliedDiscountResponse struct {
	Code   string `json:"code"`
	Amount string `json:"amount"`
}

type FulfillmentResponse struct {
	Type            string     `json:"type"`
	Date            *time.Time `json:"date,omitempty"`
	DeliveryAddress *string    `json:"deliveryAddress,omitempty"`
	Instructions    *string    `json:"instructions,omitempty"`
}

type CheckoutSessionResponse struct {
	SessionID        string                    `json:"sessionId"`
	CartID           string                    `json:"cartId"`
	OrderNumber      string                    `json:"orderNumber"`
	StoreNumber      string                    `json:"storeNumber"`
	Customer         CustomerResponse          `json:"customer"`
	LineItems        []LineItemResponse        `json:"lineItems"`
	AppliedDiscounts []AppliedDiscountResponse `json:"appliedDiscounts,omitempty"`
	Fulfillment      FulfillmentResponse       `json:"fulfillment"`
	ReservationID    string                    `json:"reservationId"`
	Subtotal         string                    `json:"subtotal"`
	DiscountTotal    string                    `json:"discountTotal"`
	TaxTotal         string                    `json:"taxTotal"`
	FulfillmentCost  string                    `json:"fulfillmentCost"`
	GrandTotal       string                    `json:"grandTotal"`
	ExpiresAt        time.Time                 `json:"expiresAt"`
}

func FromCheckoutSummary(s *commands.CheckoutSummary) CheckoutSessionResponse {
	items := make([]LineItemResponse, len(s.LineItems))
	for i, it := range s.LineItems {
		items[i] = LineItemResponse{
			SKU:         it.SKU,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
		}
	}

	var discounts []AppliedDiscountResponse
	for _, d := range s.AppliedDiscounts {
		discounts = append(discounts, AppliedDiscountResponse{
			Code:   d.Code,
			Amount: d.Amount.StringFixed(2),
		})
	}

	return CheckoutSessionResponse{
		SessionID:   s.SessionID,
		CartID:      s.CartID,
		OrderNumber: s.OrderNumber,
		StoreNumber: s.StoreNumber,
		Customer: CustomerResponse{
			ID:    s.Customer.ID,
			Tier:  s.Customer.Tier,
			Name:  s.Customer.Name,
			Email: s.Customer.Email,
		},
		LineItems:        items,
		AppliedDiscounts: discounts,
		Fulfillment: FulfillmentResponse{
			Type:            string(s.Fulfillment.Type),
			Date:            s.Fulfillment.Date,
			DeliveryAddress: s.Fulfillment.DeliveryAddress,
			Instructions:    s.Fulfillment.Instructions,
		},
		ReservationID:   s.ReservationID,
		Subtotal:        s.Subtotal.StringFixed(2),
		DiscountTotal:   s.DiscountTotal.StringFixed(2),
		TaxTotal:        s.TaxTotal.StringFixed(2),
		FulfillmentCost: s.FulfillmentCost.StringFixed(2),
		GrandTotal:      s.GrandTotal.StringFixed(2),
		ExpiresAt:       s.ExpiresAt,
	}
}

type OrderCreatedResponse struct {
	OrderID          string `json:"orderId"`
	OrderNumber      string `json:"orderNumber"`
	StoreNumber      string `json:"storeNumber"`
	Status           string `json:"status"`
	PaymentStatus    string `json:"paymentStatus"`
	PaymentMethod    string `json:"paymentMethod"`
	PaymentReference string `json:"paymentReference"`
}

func FromOrderResult(r *commands.OrderResult) OrderCreatedResponse {
	return OrderCreatedResponse{
		OrderID:          r.OrderID.String(),
		OrderNumber:      r.OrderNumber,
		StoreNumber:      r.StoreNumber,
		Status:           r.Status,
		PaymentStatus:    r.PaymentStatus,
		PaymentMethod:    r.PaymentMethod,
		PaymentReference: r.PaymentReference,
	}
}
