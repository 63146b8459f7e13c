package dto

import "time"

// AlertResponse API shape of an alert.
type AlertResponse struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Severity   string     `json:"severity"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	EntityType string     `json:"entity_type,omitempty"`
	EntityID   string     `json:"entity_id,omitempty"`
	Read       bool       `json:"read"`
	Resolved   bool       `json:"resolved"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ReconcileResult summary of a manual alert reconciliation run.
type ReconcileResult struct {
	StockFailures int `json:"stock_failures"`
	QuoteFailures int `json:"quote_failures"`
}
