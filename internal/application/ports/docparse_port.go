package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// ParsedOrderItem is one line extracted from a purchase-order document.
type ParsedOrderItem struct {
	SKU         string
	Description string
	Quantity    int64
	UnitCost    decimal.Decimal
}

// ParsedOrder is the draft a document parser extracts from raw text.
type ParsedOrder struct {
	Supplier    string
	OrderNumber string
	Items       []ParsedOrderItem
	Confidence  float64 // 0.0–1.0 as reported by the model
}

// DocumentParser extracts manufacturer-order line items from free-form
// document text (port; implemented by the Anthropic adapter).
type DocumentParser interface {
	ParsePurchaseOrder(ctx context.Context, text string) (*ParsedOrder, error)
}
