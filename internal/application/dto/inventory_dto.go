package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppliedItem is one successfully applied order line.
type AppliedItem struct {
	SKU      string `json:"sku"`
	Quantity int64  `json:"quantity"`
}

// ApplyOrderResult is the outcome summary of applying a manufacturer order to
// on-hand stock. Applied=false with a message is the successful idempotent
// no-op for an already-applied order, distinguishable from any failure.
// SkippedSKUs lists lines that could not be applied (unknown SKU or write
// failure); partial application is reported as success since SKUs are
// independent and already-applied lines are never rolled back.
type ApplyOrderResult struct {
	Applied      bool          `json:"applied"`
	AppliedItems []AppliedItem `json:"appliedItems,omitempty"`
	SkippedSKUs  []string      `json:"skippedSkus,omitempty"`
	Message      string        `json:"message,omitempty"`
}

// CreateProductRequest payload for registering a product.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,max=64"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity" validate:"min=0"`
	MinStock    int64           `json:"min_stock" validate:"min=0"`
}

// UpdateProductRequest payload for updating product master data.
// Quantity is deliberately absent: stock moves through the ledger applier or
// the quantity-set endpoint only.
type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	MinStock    int64           `json:"min_stock" validate:"min=0"`
}

// SetQuantityRequest payload for the direct quantity-set operation.
type SetQuantityRequest struct {
	Quantity int64 `json:"quantity" validate:"min=0"`
}

// ProductResponse API shape of a product.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	MinStock    int64           `json:"min_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
