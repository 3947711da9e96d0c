package order

import (
	"errors"
	"time"

	"storefront-checkout/internal/domain/checkout"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

var (
	ErrNilSession              = errors.New("order requires a checkout session")
	ErrMissingPaymentReference = errors.New("order requires a payment reference")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
)

// LineItem and AppliedDiscount mirror their checkout counterparts so the
// durable order does not reference the ephemeral session package's types.
type LineItem struct {
	SKU         string
	Description string
	Quantity    int32
	UnitPrice   decimal.Decimal
}

type AppliedDiscount struct {
	Code   string
	Amount decimal.Decimal
}

type Fulfillment struct {
	Type            string
	Date            *time.Time
	DeliveryAddress *string
	Instructions    *string
}

type Order struct {
	id          uuid.UUID
	orderNumber string
	storeNumber string
	customerID  string

	items       []LineItem
	discounts   []AppliedDiscount
	fulfillment Fulfillment

	subtotal        decimal.Decimal
	discountTotal   decimal.Decimal
	taxTotal        decimal.Decimal
	fulfillmentCost decimal.Decimal
	grandTotal      decimal.Decimal

	paymentStatus    PaymentStatus
	paymentMethod    PaymentMethod
	paymentReference string

	status Status

	createdAt     time.Time
	updatedAt     time.Time
	createdBy     string
	userSessionID string
}

// NewFromSession builds the durable order for a successfully paid session.
// Monetary totals and line items are copied verbatim; this is the only place
// an Order is ever created.
func NewFromSession(
	sess *checkout.Session,
	paymentReference string,
	paymentMethod PaymentMethod,
	createdBy string,
	userSessionID string,
	now time.Time,
) (*Order, error) {
	if sess == nil {
		return nil, ErrNilSession
	}
	if paymentReference == "" {
		return nil, ErrMissingPaymentReference
	}
	if !paymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	var items []LineItem
	if err := copier.Copy(&items, sess.LineItems); err != nil {
		return nil, err
	}
	var discounts []AppliedDiscount
	if err := copier.Copy(&discounts, sess.AppliedDiscounts); err != nil {
		return nil, err
	}

	return &Order{
		id:          uuid.New(),
		orderNumber: sess.OrderNumber,
		storeNumber: sess.StoreNumber,
		customerID:  sess.Customer.ID,
		items:       items,
		discounts:   discounts,
		fulfillment: Fulfillment{
			Type:            string(sess.Fulfillment.Type),
			Date:            sess.Fulfillment.Date,
			DeliveryAddress: sess.Fulfillment.DeliveryAddress,
			Instructions:    sess.Fulfillment.Instructions,
		},
		subtotal:         sess.Subtotal,
		discountTotal:    sess.DiscountTotal,
		taxTotal:         sess.TaxTotal,
		fulfillmentCost:  sess.FulfillmentCost,
		grandTotal:       sess.GrandTotal,
		paymentStatus:    PaymentStatusCompleted,
		paymentMethod:    paymentMethod,
		paymentReference: paymentReference,
		status:           StatusPaid,
		createdAt:        now,
		updatedAt:        now,
		createdBy:        createdBy,
		userSessionID:    userSessionID,
	}, nil
}

func (o *Order) ID() uuid.UUID                 { return o.id }
func (o *Order) OrderNumber() string           { return o.orderNumber }
func (o *Order) StoreNumber() string           { return o.storeNumber }
func (o *Order) CustomerID() string            { return o.customerID }
func (o *Order) Items() []LineItem             { return o.items }
func (o *Order) Discounts() []AppliedDiscount  { return o.discounts }
func (o *Order) Fulfillment() Fulfillment      { return o.fulfillment }
func (o *Order) Subtotal() decimal.Decimal     { return o.subtotal }
func (o *Order) DiscountTotal() decimal.Decimal {
	return o.discountTotal
}
func (o *Order) TaxTotal() decimal.Decimal        { return o.taxTotal }
func (o *Order) FulfillmentCost() decimal.Decimal { return o.fulfillmentCost }
func (o *Order) GrandTotal() decimal.Decimal      { return o.grandTotal }
func (o *Order) PaymentStatus() PaymentStatus     { return o.paymentStatus }
func (o *Order) PaymentMethod() PaymentMethod     { return o.paymentMethod }
func (o *Order) PaymentReference() string         { return o.paymentReference }
func (o *Order) Status() Status                   { return o.status }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) UpdatedAt() time.Time             { return o.updatedAt }
func (o *Order) CreatedBy() string                { return o.createdBy }
func (o *Order) UserSessionID() string            { return o.userSessionID }
