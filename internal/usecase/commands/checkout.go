package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InitiateCheckoutParams struct {
	CartID          string
	FulfillmentType checkout.FulfillmentType
	FulfillmentDate *time.Time
	DeliveryAddress *string
	Instructions    *string
}

type CompleteCheckoutParams struct {
	SessionID      string
	PaymentMethod  string
	PaymentDetails map[string]string
}

// CheckoutSummary mirrors the session's public fields; it is what initiation
// hands back to the caller.
type CheckoutSummary struct {
	SessionID        string
	CartID           string
	OrderNumber      string
	StoreNumber      string
	Customer         checkout.CustomerSnapshot
	LineItems        []checkout.LineItem
	AppliedDiscounts []checkout.AppliedDiscount
	Fulfillment      checkout.FulfillmentDetails
	ReservationID    string
	Subtotal         decimal.Decimal
	DiscountTotal    decimal.Decimal
	TaxTotal         decimal.Decimal
	FulfillmentCost  decimal.Decimal
	GrandTotal       decimal.Decimal
	ExpiresAt        time.Time
}

type OrderResult struct {
	OrderID          uuid.UUID
	OrderNumber      string
	StoreNumber      string
	Status           string
	PaymentStatus    string
	PaymentMethod    string
	PaymentReference string
}

type CheckoutCommands interface {
	InitiateCheckout(ctx context.Context, params InitiateCheckoutParams, meta shared.RequestMeta) (*CheckoutSummary, error)
	CompleteCheckout(ctx context.Context, params CompleteCheckoutParams, meta shared.RequestMeta) (*OrderResult, error)
}

type checkoutUseCaseImpl struct {
	carts        CartGateway
	discounts    DiscountGateway
	reservations *ReservationCoordinator
	payments     *PaymentCoordinator
	sessions     SessionStore
	orders       OrderRepository
	clock        clock.Clock
	cfg          config.CheckoutConfig
	logger       *slog.Logger
}

func NewCheckoutCommands(
	carts CartGateway,
	discounts DiscountGateway,
	reservations *ReservationCoordinator,
	payments *PaymentCoordinator,
	sessions SessionStore,
	orders OrderRepository,
	clk clock.Clock,
	cfg config.CheckoutConfig,
	logger *slog.Logger,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		carts:        carts,
		discounts:    discounts,
		reservations: reservations,
		payments:     payments,
		sessions:     sessions,
		orders:       orders,
		clock:        clk,
		cfg:          cfg,
		logger:       logger,
	}
}

func (u *checkoutUseCaseImpl) InitiateCheckout(
	ctx context.Context,
	params InitiateCheckoutParams,
	meta shared.RequestMeta,
) (*CheckoutSummary, error) {
	snap, err := u.carts.GetCart(ctx, params.CartID, meta.StoreNumber)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrCartNotFound)
		}
		return nil, errs.Mark(err, ErrCheckoutInternal)
	}

	if violations := cart.ValidateForCheckout(snap, meta.StoreNumber); len(violations) > 0 {
		return nil, errs.Mark(&CartValidationError{Violations: violations}, ErrCartValidationFailed)
	}

	applied, err := u.validateDiscounts(ctx, snap)
	if err != nil {
		return nil, err
	}

	details := checkout.FulfillmentDetails{
		Type:            params.FulfillmentType,
		Date:            params.FulfillmentDate,
		DeliveryAddress: params.DeliveryAddress,
		Instructions:    params.Instructions,
	}

	orderNumber := meta.OrderNumber
	if orderNumber == "" {
		orderNumber = generateOrderNumber()
	}

	reservationID, err := u.reservations.Create(ctx, snap, details, orderNumber)
	if err != nil {
		return nil, err
	}

	sess := checkout.NewSession(snap, orderNumber, details, applied, reservationID, u.clock.Now(), u.cfg.SessionLifetime)
	if err := u.sessions.Save(ctx, sess); err != nil {
		// The reservation now has no tracking session; fulfillment-side
		// expiry is the only cleanup. Loud log so operators can reconcile.
		u.logger.Error("session write failed after reservation",
			"reservation_id", reservationID,
			"order_number", orderNumber,
			"cart_id", snap.CartID,
			"error", err.Error(),
		)
		return nil, errs.Mark(err, ErrCheckoutInternal)
	}

	return summaryFromSession(sess), nil
}

func (u *checkoutUseCaseImpl) CompleteCheckout(
	ctx context.Context,
	params CompleteCheckoutParams,
	meta shared.RequestMeta,
) (*OrderResult, error) {
	sess, err := u.sessions.FindByID(ctx, params.SessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrSessionNotFound)
		}
		return nil, errs.Mark(err, ErrCheckoutInternal)
	}

	if !sess.BelongsToStore(meta.StoreNumber) {
		// Session is left untouched; a retry with the right store can still
		// complete it before expiry.
		return nil, errs.Mark(
			errs.Newf("session %s was initiated for store %s", sess.SessionID, sess.StoreNumber),
			ErrSessionStoreMismatch,
		)
	}

	now := u.clock.Now()
	if sess.Expired(now) {
		if derr := u.sessions.DeleteByID(ctx, sess.SessionID); derr != nil {
			u.logger.Warn("failed to sweep expired session", "session_id", sess.SessionID, "error", derr.Error())
		}
		return nil, errs.Mark(
			errs.Newf("session %s expired at %s", sess.SessionID, sess.ExpiresAt.Format(time.RFC3339)),
			ErrSessionExpired,
		)
	}

	paymentRef, err := u.payments.Charge(ctx, sess, params.PaymentMethod, params.PaymentDetails)
	if err != nil {
		if errors.Is(err, ErrPaymentFailed) {
			// Compensate the hold; the decline still surfaces unchanged and
			// the session stays usable for a retry with other details.
			u.reservations.Cancel(ctx, sess.ReservationID)
		}
		return nil, err
	}

	o, err := order.NewFromSession(sess, paymentRef, order.PaymentMethod(params.PaymentMethod), meta.UserID.String(), meta.UserSessionID, now)
	if err != nil {
		return nil, errs.Mark(err, ErrCheckoutInternal)
	}

	if err := u.orders.Create(ctx, o); err != nil {
		// Session is retained: a retry re-attempts payment and the gateway
		// is expected to dedupe by its own reference.
		return nil, errs.Mark(err, ErrCheckoutInternal)
	}

	if err := u.sessions.DeleteByID(ctx, sess.SessionID); err != nil {
		u.logger.Warn("session delete failed after order persist", "session_id", sess.SessionID, "error", err.Error())
	}

	u.bestEffort(ctx, "mark cart completed", func(detached context.Context) error {
		return u.carts.MarkCompleted(detached, sess.CartID, sess.StoreNumber)
	})

	return &OrderResult{
		OrderID:          o.ID(),
		OrderNumber:      o.OrderNumber(),
		StoreNumber:      o.StoreNumber(),
		Status:           string(o.Status()),
		PaymentStatus:    string(o.PaymentStatus()),
		PaymentMethod:    string(o.PaymentMethod()),
		PaymentReference: o.PaymentReference(),
	}, nil
}

func (u *checkoutUseCaseImpl) validateDiscounts(ctx context.Context, snap *cart.Snapshot) ([]checkout.AppliedDiscount, error) {
	if !snap.HasDiscountCodes() {
		return nil, nil
	}

	result, err := u.discounts.ValidateAndCalculate(ctx, DiscountValidationRequest{
		CustomerID:   snap.Customer.ID,
		CustomerTier: snap.Customer.Tier,
		Subtotal:     snap.Totals.Subtotal,
		Items:        snap.Items,
		Codes:        snap.DiscountCodes,
	})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "discount validation call failed"), ErrCheckoutInternal)
	}
	if !result.Valid {
		return nil, errs.Mark(&InvalidDiscountError{Codes: result.InvalidCodes}, ErrInvalidDiscount)
	}

	return result.Applied, nil
}

// bestEffort runs fn detached from the caller's cancellation; its error is
// logged and discarded, never surfaced on the primary path.
func (u *checkoutUseCaseImpl) bestEffort(ctx context.Context, op string, fn func(context.Context) error) {
	detached, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.cfg.BestEffortTimeout)
	defer cancel()

	if err := fn(detached); err != nil {
		u.logger.Warn("best-effort operation failed", "op", op, "error", err.Error())
	}
}

func summaryFromSession(sess *checkout.Session) *CheckoutSummary {
	return &CheckoutSummary{
		SessionID:        sess.SessionID,
		CartID:           sess.CartID,
		OrderNumber:      sess.OrderNumber,
		StoreNumber:      sess.StoreNumber,
		Customer:         sess.Customer,
		LineItems:        sess.LineItems,
		AppliedDiscounts: sess.AppliedDiscounts,
		Fulfillment:      sess.Fulfillment,
		ReservationID:    sess.ReservationID,
		Subtotal:         sess.Subtotal,
		DiscountTotal:    sess.DiscountTotal,
		TaxTotal:         sess.TaxTotal,
		FulfillmentCost:  sess.FulfillmentCost,
		GrandTotal:       sess.GrandTotal,
		ExpiresAt:        sess.ExpiresAt,
	}
}

func generateOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
