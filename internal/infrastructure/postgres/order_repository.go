package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
)

var _ repository.ManufacturerOrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_number, supplier, status, expected_delivery, actual_delivery, inventory_applied_at, created_at, updated_at`

// OrderRepo ManufacturerOrderRepository implementation over PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the adapter.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserts the order header and its items.
func (r *OrderRepo) Create(ctx context.Context, o *entity.ManufacturerOrder) error {
	headerQuery := `
		INSERT INTO manufacturer_orders (id, order_number, supplier, status, expected_delivery, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, headerQuery,
		o.ID, o.OrderNumber, o.Supplier, o.Status, o.ExpectedDelivery, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO manufacturer_order_items (id, order_id, sku, quantity_ordered, unit_cost)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range o.Items {
		_, err := r.q.Exec(ctx, itemQuery, item.ID, item.OrderID, item.SKU, item.QuantityOrdered, item.UnitCost)
		if err != nil {
			return fmt.Errorf("insert order item %s: %w", item.SKU, err)
		}
	}
	return nil
}

// GetByID loads the order with its items. Returns (nil, nil) when absent.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.ManufacturerOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM manufacturer_orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// List returns a page of orders, newest first, without items.
func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.ManufacturerOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM manufacturer_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.ManufacturerOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// MarkInventoryApplied arms the idempotency guard. The IS NULL predicate
// makes the write conditional at the row, so of two concurrent appliers
// exactly one arms the guard and the other sees domain.ErrConflict.
func (r *OrderRepo) MarkInventoryApplied(ctx context.Context, id string, appliedAt time.Time) error {
	query := `
		UPDATE manufacturer_orders
		SET inventory_applied_at = $2, status = $3, actual_delivery = $2, updated_at = $2
		WHERE id = $1 AND inventory_applied_at IS NULL`
	tag, err := r.q.Exec(ctx, query, id, appliedAt, entity.OrderStatusDelivered)
	if err != nil {
		return fmt.Errorf("mark inventory applied: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *OrderRepo) listItems(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	query := `
		SELECT id, order_id, sku, quantity_ordered, unit_cost
		FROM manufacturer_order_items
		WHERE order_id = $1
		ORDER BY sku`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.SKU, &item.QuantityOrdered, &item.UnitCost); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.ManufacturerOrder, error) {
	var o entity.ManufacturerOrder
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.Supplier, &o.Status,
		&o.ExpectedDelivery, &o.ActualDelivery, &o.InventoryAppliedAt,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
