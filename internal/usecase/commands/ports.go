package commands

import (
	"context"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/domain/order"

	"github.com/shopspring/decimal"
)

// CartGateway fetches point-in-time cart snapshots and posts the best-effort
// completion notification back to the cart service.
type CartGateway interface {
	GetCart(ctx context.Context, cartID, storeNumber string) (*cart.Snapshot, error)
	MarkCompleted(ctx context.Context, cartID, storeNumber string) error
}

type DiscountValidationRequest struct {
	CustomerID   string
	CustomerTier string
	Subtotal     decimal.Decimal
	Items        []cart.Item
	Codes        []string
}

type DiscountValidationResult struct {
	Valid        bool
	InvalidCodes []string
	Applied      []checkout.AppliedDiscount
}

type DiscountGateway interface {
	ValidateAndCalculate(ctx context.Context, req DiscountValidationRequest) (*DiscountValidationResult, error)
}

type ReservationRequest struct {
	OrderNumber string
	StoreNumber string
	Items       []cart.Item
	Details     checkout.FulfillmentDetails
}

type ReservationResult struct {
	ReservationID    string
	UnavailableItems []string
}

type FulfillmentGateway interface {
	CreateReservation(ctx context.Context, req ReservationRequest) (*ReservationResult, error)
	CancelReservation(ctx context.Context, reservationID string) error
}

type PaymentRequest struct {
	OrderNumber string
	Amount      decimal.Decimal
	Method      string
	Details     map[string]string
	CustomerID  string
	StoreNumber string
}

type PaymentResult struct {
	Success          bool
	PaymentReference string
	Message          string
}

type PaymentGateway interface {
	ProcessPayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error)
}

// SessionStore is the TTL-bound store for ephemeral checkout sessions. The
// store sizes its backing TTL from the session's expiry but does not enforce
// logical expiry; completion does.
type SessionStore interface {
	Save(ctx context.Context, sess *checkout.Session) error
	FindByID(ctx context.Context, sessionID string) (*checkout.Session, error)
	DeleteByID(ctx context.Context, sessionID string) error
	Exists(ctx context.Context, sessionID string) (bool, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
}
