package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safetrack/safetrack-api/internal/application/dto"
	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
	domquote "github.com/safetrack/safetrack-api/internal/domain/quote"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
	"github.com/safetrack/safetrack-api/pkg/logger"
)

// allocateAttempts bounds the number-allocation retry loop. The scan-derived
// number is only a hint; the unique constraint on quote_number is the real
// serialization point, and a conflict just means another writer won the
// number; rescan and try the next one.
const allocateAttempts = 3

// CreateQuoteUseCase creates quotes and allocates their sequential business
// numbers collision-free under concurrent creation.
type CreateQuoteUseCase struct {
	txRunner  TxRunner
	quoteRepo repository.QuoteRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewCreateQuoteUseCase builds the use case. quoteRepo is the pool-bound
// repository used for number scans outside the insert transaction.
func NewCreateQuoteUseCase(txRunner TxRunner, quoteRepo repository.QuoteRepository, log *logger.Logger) *CreateQuoteUseCase {
	return &CreateQuoteUseCase{
		txRunner:  txRunner,
		quoteRepo: quoteRepo,
		log:       log,
		now:       time.Now,
	}
}

// CreateQuote allocates the next quote number for the current period and
// persists the quote with its items atomically. On a quote-number collision
// (concurrent allocation) it rescans and retries a bounded number of times.
func (uc *CreateQuoteUseCase) CreateQuote(ctx context.Context, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if len(in.Items) == 0 || in.CustomerName == "" || in.ValidUntil.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.SKU == "" || it.Quantity <= 0 || it.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	var lastErr error
	for attempt := 0; attempt < allocateAttempts; attempt++ {
		now := uc.now()
		number, err := uc.nextNumber(ctx, now)
		if err != nil {
			return nil, err
		}

		q := uc.buildQuote(in, number, now)
		err = uc.txRunner.Run(ctx, func(quoteRepo repository.QuoteRepository) error {
			return quoteRepo.Create(ctx, q)
		})
		if err == nil {
			uc.log.Info().Str("quote_number", q.QuoteNumber).Str("quote_id", q.ID).Msg("quote created")
			return toQuoteResponse(q), nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("create quote: %w", err)
		}
		lastErr = err
		uc.log.Debug().Str("quote_number", number).Int("attempt", attempt+1).Msg("quote number taken by concurrent writer, rescanning")
	}
	return nil, fmt.Errorf("allocate quote number after %d attempts: %w", allocateAttempts, lastErr)
}

// AllocateNumber returns the next quote number for the current period
// without reserving it (a preview for the quote form).
func (uc *CreateQuoteUseCase) AllocateNumber(ctx context.Context) (string, error) {
	return uc.nextNumber(ctx, uc.now())
}

func (uc *CreateQuoteUseCase) nextNumber(ctx context.Context, now time.Time) (string, error) {
	existing, err := uc.quoteRepo.ListNumbersByPrefix(ctx, domquote.Prefix(now))
	if err != nil {
		return "", fmt.Errorf("scan issued quote numbers: %w", err)
	}
	return domquote.Next(now, existing), nil
}

func (uc *CreateQuoteUseCase) buildQuote(in dto.CreateQuoteRequest, number string, now time.Time) *entity.Quote {
	q := &entity.Quote{
		ID:            uuid.New().String(),
		QuoteNumber:   number,
		Status:        entity.QuoteStatusDraft,
		CustomerName:  in.CustomerName,
		DistributorID: in.DistributorID,
		ValidUntil:    in.ValidUntil,
		Total:         decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, it := range in.Items {
		item := entity.QuoteItem{
			ID:          uuid.New().String(),
			QuoteID:     q.ID,
			SKU:         it.SKU,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
		q.Items = append(q.Items, item)
		q.Total = q.Total.Add(item.Subtotal())
	}
	return q
}

func toQuoteResponse(q *entity.Quote) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		ID:            q.ID,
		QuoteNumber:   q.QuoteNumber,
		Status:        q.Status,
		CustomerName:  q.CustomerName,
		DistributorID: q.DistributorID,
		ValidUntil:    q.ValidUntil,
		Total:         q.Total,
		CreatedAt:     q.CreatedAt,
	}
	for _, it := range q.Items {
		resp.Items = append(resp.Items, dto.QuoteItemResponse{
			SKU:         it.SKU,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return resp
}
