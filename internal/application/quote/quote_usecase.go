package quote

import (
	"context"
	"fmt"

	"github.com/safetrack/safetrack-api/internal/application/dto"
	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
	"github.com/safetrack/safetrack-api/pkg/logger"
)

// QuoteUseCase read and lifecycle operations on quotes.
type QuoteUseCase struct {
	quoteRepo repository.QuoteRepository
	alerts    ExpiryAlertResolver
	log       *logger.Logger
}

// NewQuoteUseCase builds the use case.
func NewQuoteUseCase(quoteRepo repository.QuoteRepository, alerts ExpiryAlertResolver, log *logger.Logger) *QuoteUseCase {
	return &QuoteUseCase{quoteRepo: quoteRepo, alerts: alerts, log: log}
}

// GetByID returns a quote with its items.
func (uc *QuoteUseCase) GetByID(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	q, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return toQuoteResponse(q), nil
}

// List returns a page of quotes.
func (uc *QuoteUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.QuoteResponse, error) {
	page.DefaultPage()
	quotes, err := uc.quoteRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, *toQuoteResponse(q))
	}
	return out, nil
}

// UpdateStatus transitions the quote status.
func (uc *QuoteUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case entity.QuoteStatusDraft, entity.QuoteStatusSent, entity.QuoteStatusAccepted,
		entity.QuoteStatusRejected, entity.QuoteStatusExpired:
	default:
		return domain.ErrInvalidInput
	}
	if err := uc.quoteRepo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	// A quote that is no longer SENT cannot be expiring; drop its open alert
	// now rather than waiting for the next scheduled pass. Best-effort.
	if status != entity.QuoteStatusSent {
		if err := uc.alerts.ResolveForQuote(ctx, id); err != nil {
			uc.log.Warn().Err(err).Str("quote_id", id).Msg("resolve expiry alert after status change failed")
		}
	}
	return nil
}
