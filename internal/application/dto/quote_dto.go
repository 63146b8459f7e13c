package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteItemRequest one line of a quote being created.
type QuoteItemRequest struct {
	SKU         string          `json:"sku" validate:"required,max=64"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity" validate:"min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateQuoteRequest payload for creating a quote. The quote number is
// allocated server-side.
type CreateQuoteRequest struct {
	CustomerName  string             `json:"customer_name" validate:"required,max=200"`
	DistributorID string             `json:"distributor_id"`
	ValidUntil    time.Time          `json:"valid_until" validate:"required"`
	Items         []QuoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateQuoteStatusRequest payload for quote status transitions.
type UpdateQuoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT SENT ACCEPTED REJECTED EXPIRED"`
}

// QuoteItemResponse API shape of a quote line.
type QuoteItemResponse struct {
	SKU         string          `json:"sku"`
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// QuoteResponse API shape of a quote.
type QuoteResponse struct {
	ID            string              `json:"id"`
	QuoteNumber   string              `json:"quote_number"`
	Status        string              `json:"status"`
	CustomerName  string              `json:"customer_name"`
	DistributorID string              `json:"distributor_id,omitempty"`
	ValidUntil    time.Time           `json:"valid_until"`
	Total         decimal.Decimal     `json:"total"`
	Items         []QuoteItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}
