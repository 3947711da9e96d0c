package readstore

import (
	"context"
	"errors"

	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderReadStore struct {
	pool *pgxpool.Pool
}

func NewOrderReadStore(pool *pgxpool.Pool) *OrderReadStore {
	return &OrderReadStore{pool: pool}
}

const selectOrderQuery = `
SELECT id, order_number, store_number, customer_id,
       fulfillment_type,
       subtotal, discount_total, tax_total, fulfillment_cost, grand_total,
       status, payment_status, payment_method, payment_reference,
       created_at, updated_at
FROM orders
WHERE id = $1`

const selectOrderItemsQuery = `
SELECT sku, description, quantity, unit_price
FROM order_items
WHERE order_id = $1
ORDER BY position`

const selectOrderDiscountsQuery = `
SELECT code, amount
FROM order_discounts
WHERE order_id = $1
ORDER BY code`

func (s *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	var view queries.OrderView
	err := s.pool.QueryRow(ctx, selectOrderQuery, id).Scan(
		&view.ID, &view.OrderNumber, &view.StoreNumber, &view.CustomerID,
		&view.FulfillmentType,
		&view.Subtotal, &view.DiscountTotal, &view.TaxTotal, &view.FulfillmentCost, &view.GrandTotal,
		&view.Status, &view.PaymentStatus, &view.PaymentMethod, &view.PaymentReference,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	items, err := s.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Items = items

	discounts, err := s.findDiscounts(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Discounts = discounts

	return &view, nil
}

func (s *OrderReadStore) findItems(ctx context.Context, orderID uuid.UUID) ([]queries.OrderItemView, error) {
	rows, err := s.pool.Query(ctx, selectOrderItemsQuery, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query order items", err)
	}
	defer rows.Close()

	var items []queries.OrderItemView
	for rows.Next() {
		var it queries.OrderItemView
		if err := rows.Scan(&it.SKU, &it.Description, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order items", err)
	}
	return items, nil
}

func (s *OrderReadStore) findDiscounts(ctx context.Context, orderID uuid.UUID) ([]queries.OrderDiscountView, error) {
	rows, err := s.pool.Query(ctx, selectOrderDiscountsQuery, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query order discounts", err)
	}
	defer rows.Close()

	var discounts []queries.OrderDiscountView
	for rows.Next() {
		var d queries.OrderDiscountView
		if err := rows.Scan(&d.Code, &d.Amount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order discount", err)
		}
		discounts = append(discounts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order discounts", err)
	}
	return discounts, nil
}
