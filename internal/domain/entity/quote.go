package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote statuses.
const (
	QuoteStatusDraft    = "DRAFT"
	QuoteStatusSent     = "SENT"
	QuoteStatusAccepted = "ACCEPTED"
	QuoteStatusRejected = "REJECTED"
	QuoteStatusExpired  = "EXPIRED"
)

// Quote is a customer quotation. QuoteNumber is the sequential business
// identifier (two-digit year prefix + zero-padded sequence, e.g. "260001");
// within one year prefix numbers are unique, gaps permitted.
type Quote struct {
	ID            string
	QuoteNumber   string
	Status        string
	CustomerName  string
	DistributorID string
	ValidUntil    time.Time
	Total         decimal.Decimal
	Items         []QuoteItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// QuoteItem is one line of a quote.
type QuoteItem struct {
	ID          string
	QuoteID     string
	SKU         string
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// Subtotal returns quantity * unit price for the line.
func (i QuoteItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}
