package repository

import (
	"context"

	"github.com/safetrack/safetrack-api/internal/domain/entity"
)

// QuoteRepository is the persistence port for quotes.
type QuoteRepository interface {
	// Create persists the quote header and its items. Returns
	// domain.ErrDuplicate when the quote number is already taken, letting the
	// allocator retry against a fresh scan.
	Create(ctx context.Context, quote *entity.Quote) error
	// GetByID loads the quote with its items. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Quote, error)
	ListByStatus(ctx context.Context, status string) ([]*entity.Quote, error)
	// ListNumbersByPrefix returns every issued quote number starting with the
	// given period prefix (input to the number allocator).
	ListNumbersByPrefix(ctx context.Context, prefix string) ([]string, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
