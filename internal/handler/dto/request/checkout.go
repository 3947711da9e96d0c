package request

import "time"

type InitiateCheckoutRequest struct {
	CartID          string     `json:"cartId" binding:"required"`
	FulfillmentType string     `json:"fulfillmentType" binding:"required,oneof=TAKE_NOW PICKUP DELIVERY"`
	FulfillmentDate *time.Time `json:"fulfillmentDate"`
	DeliveryAddress *string    `json:"deliveryAddress"`
	Instructions    *string    `json:"instructions"`
}

type CompleteCheckoutRequest struct {
	SessionID      string            `json:"sessionId" binding:"required"`
	PaymentMethod  string            `json:"paymentMethod" binding:"required,oneof=CASH CARD GIFT_CARD"`
	PaymentDetails map[string]string `json:"paymentDetails"`
}
