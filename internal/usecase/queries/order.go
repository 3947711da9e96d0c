package queries

import (
	"context"
	"time"

	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound   = errs.New("order not found")
	ErrOrderQueryFailed = errs.New("order query failed")
)

type OrderItemView struct {
	SKU         string
	Description string
	Quantity    int32
	UnitPrice   decimal.Decimal
}

type OrderDiscountView struct {
	Code   string
	Amount decimal.Decimal
}

type OrderView struct {
	ID               uuid.UUID
	OrderNumber      string
	StoreNumber      string
	CustomerID       string
	Items            []OrderItemView
	Discounts        []OrderDiscountView
	Subtotal         decimal.Decimal
	DiscountTotal    decimal.Decimal
	TaxTotal         decimal.Decimal
	FulfillmentCost  decimal.Decimal
	GrandTotal       decimal.Decimal
	FulfillmentType  string
	Status           string
	PaymentStatus    string
	PaymentMethod    string
	PaymentReference string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, storeNumber string) (*OrderView, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

// GetByID enforces store isolation on the read path: an order is only
// visible to the store it was placed against.
func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, storeNumber string) (*OrderView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrOrderNotFound)
		}
		return nil, errs.Mark(err, ErrOrderQueryFailed)
	}

	if view.StoreNumber != storeNumber {
		return nil, ErrOrderNotFound
	}

	return view, nil
}
