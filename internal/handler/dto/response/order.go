package response

import (
	"time"

	"storefront-checkout/internal/usecase/queries"
)

type OrderResponse struct {
	ID               string                    `json:"id"`
	OrderNumber      string                    `json:"orderNumber"`
	StoreNumber      string                    `json:"storeNumber"`
	CustomerID       string                    `json:"customerId"`
	Items            []LineItemResponse        `json:"items"`
	Discounts        []AppliedDiscountResponse `json:"discounts,omitempty"`
	Subtotal         string                    `json:"subtotal"`
	DiscountTotal    string                    `json:"discountTotal"`
	TaxTotal         string                    `json:"taxTotal"`
	FulfillmentCost  string                    `json:"fulfillmentCost"`
	GrandTotal       string                    `json:"grandTotal"`
	FulfillmentType  string                    `json:"fulfillmentType"`
	Status           string                    `json:"status"`
	PaymentStatus    string                    `json:"paymentStatus"`
	PaymentMethod    string                    `json:"paymentMethod"`
	PaymentReference string                    `json:"paymentReference"`
	CreatedAt        time.Time                 `json:"createdAt"`
	UpdatedAt        time.Time                 `json:"updatedAt"`
}

func FromOrderView(v *queries.OrderView) OrderResponse {
	items := make([]LineItemResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = LineItemResponse{
			SKU:         it.SKU,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
		}
	}

	var discounts []AppliedDiscountResponse
	for _, d := range v.Discounts {
		discounts = append(discounts, AppliedDiscountResponse{
			Code:   d.Code,
			Amount: d.Amount.StringFixed(2),
		})
	}

	return OrderResponse{
		ID:               v.ID.String(),
		OrderNumber:      v.OrderNumber,
		StoreNumber:      v.StoreNumber,
		CustomerID:       v.CustomerID,
		Items:            items,
		Discounts:        discounts,
		Subtotal:         v.Subtotal.StringFixed(2),
		DiscountTotal:    v.DiscountTotal.StringFixed(2),
		TaxTotal:         v.TaxTotal.StringFixed(2),
		FulfillmentCost:  v.FulfillmentCost.StringFixed(2),
		GrandTotal:       v.GrandTotal.StringFixed(2),
		FulfillmentType:  v.FulfillmentType,
		Status:           v.Status,
		PaymentStatus:    v.PaymentStatus,
		PaymentMethod:    v.PaymentMethod,
		PaymentReference: v.PaymentReference,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}
