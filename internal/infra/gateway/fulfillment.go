package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/usecase/commands"
)

type FulfillmentClient struct {
	*client
}

func NewFulfillmentClient(cfg config.ServicesConfig, logger *slog.Logger) *FulfillmentClient {
	return &FulfillmentClient{
		client: newClient("fulfillment", cfg.FulfillmentBaseURL, cfg.RequestTimeout, logger),
	}
}

type reservationRequest struct {
	OrderNumber     string            `json:"orderNumber"`
	StoreNumber     string            `json:"storeNumber"`
	FulfillmentType string            `json:"fulfillmentType"`
	Date            *time.Time        `json:"date,omitempty"`
	DeliveryAddress *string           `json:"deliveryAddress,omitempty"`
	Instructions    *string           `json:"instructions,omitempty"`
	Items           []reservationItem `json:"items"`
}

type reservationItem struct {
	SKU      string `json:"sku"`
	Quantity int32  `json:"quantity"`
}

type reservationResponse struct {
	ReservationID    string   `json:"reservationId"`
	UnavailableItems []string `json:"unavailableItems"`
}

func (c *FulfillmentClient) CreateReservation(
	ctx context.Context,
	req commands.ReservationRequest,
) (*commands.ReservationResult, error) {
	items := make([]reservationItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = reservationItem{SKU: it.SKU, Quantity: it.Quantity}
	}

	var resp reservationResponse
	err := c.postJSON(ctx, "/api/reservations", reservationRequest{
		OrderNumber:     req.OrderNumber,
		StoreNumber:     req.StoreNumber,
		FulfillmentType: string(req.Details.Type),
		Date:            req.Details.Date,
		DeliveryAddress: req.Details.DeliveryAddress,
		Instructions:    req.Details.Instructions,
		Items:           items,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &commands.ReservationResult{
		ReservationID:    resp.ReservationID,
		UnavailableItems: resp.UnavailableItems,
	}, nil
}

func (c *FulfillmentClient) CancelReservation(ctx context.Context, reservationID string) error {
	return c.deleteJSON(ctx, fmt.Sprintf("/api/reservations/%s", reservationID))
}
