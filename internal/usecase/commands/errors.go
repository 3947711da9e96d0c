package commands

import (
	"fmt"
	"strings"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/pkg/errs"
)

var (
	ErrCartNotFound           = errs.New("cart not found")
	ErrCartValidationFailed   = errs.New("cart validation failed")
	ErrInvalidDiscount        = errs.New("invalid discount")
	ErrFulfillmentUnavailable = errs.New("fulfillment unavailable")
	ErrSessionNotFound        = errs.New("checkout session not found")
	ErrSessionStoreMismatch   = errs.New("checkout session belongs to another store")
	ErrSessionExpired         = errs.New("checkout session expired")
	ErrPaymentFailed          = errs.New("payment failed")
	// ErrPaymentIndeterminate means the charge was dispatched but its outcome
	// is unknown (timeout, transport failure). The reservation is NOT
	// cancelled and the session is retained for reconciliation.
	ErrPaymentIndeterminate = errs.New("payment outcome indeterminate")
	ErrCheckoutInternal     = errs.New("checkout internal error")
)

// CartValidationError aggregates every eligibility violation found.
type CartValidationError struct {
	Violations []cart.Violation
}

func (e *CartValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return "cart validation failed: " + strings.Join(msgs, "; ")
}

// InvalidDiscountError names the rejected codes.
type InvalidDiscountError struct {
	Codes []string
}

func (e *InvalidDiscountError) Error() string {
	return "invalid discount codes: " + strings.Join(e.Codes, ", ")
}

// FulfillmentUnavailableError names the SKUs that could not be reserved.
type FulfillmentUnavailableError struct {
	Items []string
}

func (e *FulfillmentUnavailableError) Error() string {
	return "fulfillment unavailable for: " + strings.Join(e.Items, ", ")
}

// PaymentDeclinedError carries the gateway's decline message.
type PaymentDeclinedError struct {
	Message string
}

func (e *PaymentDeclinedError) Error() string {
	return fmt.Sprintf("payment declined: %s", e.Message)
}
