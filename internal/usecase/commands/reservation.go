package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/pkg/errs"

	"github.com/google/uuid"
)

// immediatePrefix marks synthetic reservation ids assigned for take-now
// fulfillment, where no external hold exists to create or cancel.
const immediatePrefix = "IMMEDIATE-"

// ReservationCoordinator wraps the fulfillment service's reservation calls,
// including the no-reservation fast path for immediate fulfillment.
type ReservationCoordinator struct {
	fulfillment FulfillmentGateway
	timeout     time.Duration
	logger      *slog.Logger
}

func NewReservationCoordinator(fulfillment FulfillmentGateway, timeout time.Duration, logger *slog.Logger) *ReservationCoordinator {
	return &ReservationCoordinator{
		fulfillment: fulfillment,
		timeout:     timeout,
		logger:      logger,
	}
}

// Create reserves capacity for every item in the cart. Immediate fulfillment
// returns a generated placeholder without any external call.
func (c *ReservationCoordinator) Create(
	ctx context.Context,
	snap *cart.Snapshot,
	details checkout.FulfillmentDetails,
	orderNumber string,
) (string, error) {
	if details.Type.IsImmediate() {
		return immediatePrefix + uuid.NewString(), nil
	}

	result, err := c.fulfillment.CreateReservation(ctx, ReservationRequest{
		OrderNumber: orderNumber,
		StoreNumber: snap.StoreNumber,
		Items:       snap.Items,
		Details:     details,
	})
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "reservation call failed"), ErrCheckoutInternal)
	}
	if len(result.UnavailableItems) > 0 {
		return "", errs.Mark(&FulfillmentUnavailableError{Items: result.UnavailableItems}, ErrFulfillmentUnavailable)
	}

	return result.ReservationID, nil
}

// Cancel is a compensating action: it runs after a payment failure the
// caller must see regardless, so its own failure is logged, never returned.
// The caller's cancellation does not abort an already-dispatched cancel.
func (c *ReservationCoordinator) Cancel(ctx context.Context, reservationID string) {
	if reservationID == "" || strings.HasPrefix(reservationID, immediatePrefix) {
		return
	}

	detached, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	if err := c.fulfillment.CancelReservation(detached, reservationID); err != nil {
		c.logger.Warn("reservation cancellation failed",
			"reservation_id", reservationID,
			"error", err.Error(),
		)
	}
}
