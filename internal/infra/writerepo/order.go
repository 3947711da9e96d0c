package writerepo

import (
	"context"
	"errors"

	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const insertOrderQuery = `
INSERT INTO orders (
    id, order_number, store_number, customer_id,
    fulfillment_type, fulfillment_date, delivery_address, instructions,
    subtotal, discount_total, tax_total, fulfillment_cost, grand_total,
    status, payment_status, payment_method, payment_reference,
    created_at, updated_at, created_by, user_session_id
) VALUES (
    $1, $2, $3, $4,
    $5, $6, $7, $8,
    $9, $10, $11, $12, $13,
    $14, $15, $16, $17,
    $18, $19, $20, $21
)`

const insertOrderItemQuery = `
INSERT INTO order_items (order_id, position, sku, description, quantity, unit_price)
VALUES ($1, $2, $3, $4, $5, $6)`

const insertOrderDiscountQuery = `
INSERT INTO order_discounts (order_id, code, amount)
VALUES ($1, $2, $3)`

// Create persists the order with its items and discounts in one transaction.
// A duplicate order_number maps to KindDuplicateKey so retried completions
// surface distinctly from plain write failures.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	f := o.Fulfillment()
	_, err = tx.Exec(ctx, insertOrderQuery,
		o.ID(), o.OrderNumber(), o.StoreNumber(), o.CustomerID(),
		f.Type, f.Date, f.DeliveryAddress, f.Instructions,
		o.Subtotal(), o.DiscountTotal(), o.TaxTotal(), o.FulfillmentCost(), o.GrandTotal(),
		string(o.Status()), string(o.PaymentStatus()), string(o.PaymentMethod()), o.PaymentReference(),
		o.CreatedAt(), o.UpdatedAt(), o.CreatedBy(), o.UserSessionID(),
	)
	if err != nil {
		return classifyWriteErr("failed to insert order", err)
	}

	for i, item := range o.Items() {
		_, err = tx.Exec(ctx, insertOrderItemQuery,
			o.ID(), i, item.SKU, item.Description, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			return classifyWriteErr("failed to insert order item", err)
		}
	}

	for _, d := range o.Discounts() {
		_, err = tx.Exec(ctx, insertOrderDiscountQuery, o.ID(), d.Code, d.Amount)
		if err != nil {
			return classifyWriteErr("failed to insert order discount", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit order", err)
	}
	return nil
}

func classifyWriteErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
	}
	return infra.WrapRepoErr(msg, err)
}
