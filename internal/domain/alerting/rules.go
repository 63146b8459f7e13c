// Package alerting holds the pure decision rules for derived alerts
// (domain services, no I/O). The application layer reconciles the outcomes
// against persisted alerts.
package alerting

import (
	"math"
	"time"

	"github.com/safetrack/safetrack-api/internal/domain/entity"
)

// ExpiryWarningWindow is how far ahead of a quote deadline the deriver
// starts alerting for quotes that are not yet past due.
const ExpiryWarningWindow = 7 * 24 * time.Hour

// StockCondition is the alert a product's current quantity calls for.
type StockCondition struct {
	Type     entity.AlertType
	Severity entity.Severity
}

// EvaluateStock applies the stock decision table:
//
//	quantity == 0            -> out_of_stock / critical
//	0 < quantity <= minStock -> low_stock / warning
//	quantity > minStock      -> no condition (resolves open stock alerts)
func EvaluateStock(quantity, minStock int64) (StockCondition, bool) {
	switch {
	case quantity <= 0:
		return StockCondition{Type: entity.AlertOutOfStock, Severity: entity.SeverityCritical}, true
	case quantity <= minStock:
		return StockCondition{Type: entity.AlertLowStock, Severity: entity.SeverityWarning}, true
	default:
		return StockCondition{}, false
	}
}

// ExpiryCondition is the alert a quote deadline calls for.
type ExpiryCondition struct {
	Severity entity.Severity
	DaysLeft int  // ceiling of remaining days; 0 or negative when overdue
	Overdue  bool // validUntil already passed
}

// EvaluateQuoteExpiry compares a quote deadline against now.
//
// A quote already past validUntil alerts critical unconditionally; that is a
// distinct condition from the approach window below and does not depend on
// it. A quote whose deadline falls within the warning window alerts critical
// when one day or less remains, warning otherwise. Partial days round up:
// 6.1 days left reports 7.
func EvaluateQuoteExpiry(validUntil, now time.Time) (ExpiryCondition, bool) {
	remaining := validUntil.Sub(now)
	days := int(math.Ceil(remaining.Hours() / 24))

	if remaining < 0 {
		return ExpiryCondition{Severity: entity.SeverityCritical, DaysLeft: days, Overdue: true}, true
	}
	if remaining <= ExpiryWarningWindow {
		sev := entity.SeverityWarning
		if days <= 1 {
			sev = entity.SeverityCritical
		}
		return ExpiryCondition{Severity: sev, DaysLeft: days}, true
	}
	return ExpiryCondition{}, false
}
