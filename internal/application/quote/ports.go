package quote

import (
	"context"

	"github.com/safetrack/safetrack-api/internal/domain/entity"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
)

// TxRunner executes a function inside a DB transaction with a quote
// repository bound to that transaction, so the quote header and its items
// commit or roll back together.
type TxRunner interface {
	Run(ctx context.Context, fn func(quoteRepo repository.QuoteRepository) error) error
}

// PDFGenerator renders a quote document (port; implemented by the maroto adapter).
type PDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, q *entity.Quote) ([]byte, error)
}

// ExpiryAlertResolver clears the open expiry alert for a quote whose status
// no longer warrants one. Its failure never fails the status transition; the
// scheduled sweep catches what it misses.
type ExpiryAlertResolver interface {
	ResolveForQuote(ctx context.Context, quoteID string) error
}
