package repository

import (
	"context"
	"time"

	"github.com/safetrack/safetrack-api/internal/domain/entity"
)

// ProductRepository is the persistence port for products and their on-hand
// quantities. Get-style methods return (nil, nil) when the row is absent.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// ListAll returns every product, for bulk alert reconciliation.
	ListAll(ctx context.Context) ([]*entity.Product, error)

	// AddQuantity adds delta to the on-hand quantity as a single atomic
	// statement at the storage layer. Concurrent appliers touching the same
	// SKU must never interleave a read-modify-write, so the increment happens
	// in SQL, not in application code. Returns domain.ErrNotFound when the
	// SKU does not exist.
	AddQuantity(ctx context.Context, sku string, delta int64, now time.Time) error

	// SetQuantity overwrites the on-hand quantity (manual correction path).
	SetQuantity(ctx context.Context, sku string, quantity int64, now time.Time) error
}
