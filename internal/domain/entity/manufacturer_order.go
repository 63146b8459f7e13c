package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Manufacturer order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ManufacturerOrder is a purchase order placed with a manufacturer.
// InventoryAppliedAt is the idempotency guard for the stock ledger applier:
// set exactly once when the order's items are applied to on-hand stock,
// immutable afterwards.
type ManufacturerOrder struct {
	ID                 string
	OrderNumber        string
	Supplier           string
	Status             string
	ExpectedDelivery   *time.Time
	ActualDelivery     *time.Time
	InventoryAppliedAt *time.Time
	Items              []OrderItem
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// OrderItem is one line of a manufacturer order.
type OrderItem struct {
	ID              string
	OrderID         string
	SKU             string
	QuantityOrdered int64 // >= 0
	UnitCost        decimal.Decimal
}
