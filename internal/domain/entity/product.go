package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a safety product tracked in inventory, keyed by its SKU
// (unique, human-assigned). Quantity is only mutated through the stock
// ledger applier or the direct quantity-set operation.
type Product struct {
	ID          string
	SKU         string // unique product code
	Name        string
	Description string
	Category    string          // e.g. "gloves", "helmets", "eyewear"
	Price       decimal.Decimal // list price per unit
	Quantity    int64           // units on hand, >= 0
	MinStock    int64           // reorder threshold, >= 0
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
