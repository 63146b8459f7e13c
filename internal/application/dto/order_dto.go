package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest one line of a manufacturer order being created.
type OrderItemRequest struct {
	SKU             string          `json:"sku" validate:"required,max=64"`
	QuantityOrdered int64           `json:"quantity_ordered" validate:"min=0"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
}

// CreateOrderRequest payload for submitting a purchase order.
type CreateOrderRequest struct {
	OrderNumber      string             `json:"order_number" validate:"max=64"`
	Supplier         string             `json:"supplier" validate:"required,max=200"`
	ExpectedDelivery *time.Time         `json:"expected_delivery,omitempty"`
	Items            []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemResponse API shape of an order line.
type OrderItemResponse struct {
	SKU             string          `json:"sku"`
	QuantityOrdered int64           `json:"quantity_ordered"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
}

// OrderResponse API shape of a manufacturer order.
type OrderResponse struct {
	ID                 string              `json:"id"`
	OrderNumber        string              `json:"order_number,omitempty"`
	Supplier           string              `json:"supplier"`
	Status             string              `json:"status"`
	ExpectedDelivery   *time.Time          `json:"expected_delivery,omitempty"`
	ActualDelivery     *time.Time          `json:"actual_delivery,omitempty"`
	InventoryAppliedAt *time.Time          `json:"inventory_applied_at,omitempty"`
	Items              []OrderItemResponse `json:"items"`
	CreatedAt          time.Time           `json:"created_at"`
}

// ParseOrderDocumentRequest carries the raw text of a purchase-order document
// (e.g. extracted from an emailed PDF) for AI line-item extraction.
type ParseOrderDocumentRequest struct {
	Text string `json:"text" validate:"required"`
}

// ParsedOrderResponse is the extracted draft the UI pre-fills the order form with.
type ParsedOrderResponse struct {
	Supplier    string              `json:"supplier,omitempty"`
	OrderNumber string              `json:"order_number,omitempty"`
	Items       []OrderItemResponse `json:"items"`
	Confidence  float64             `json:"confidence"`
}
