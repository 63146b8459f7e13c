package repository

import (
	"context"
	"time"

	"github.com/safetrack/safetrack-api/internal/domain/entity"
)

// ManufacturerOrderRepository is the persistence port for purchase orders.
type ManufacturerOrderRepository interface {
	Create(ctx context.Context, order *entity.ManufacturerOrder) error
	// GetByID loads the order with its items. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*entity.ManufacturerOrder, error)
	List(ctx context.Context, limit, offset int) ([]*entity.ManufacturerOrder, error)

	// MarkInventoryApplied arms the idempotency guard: sets
	// inventory_applied_at, flips status to delivered and records the actual
	// delivery date in one statement guarded by inventory_applied_at IS NULL.
	// Returns domain.ErrConflict when the guard was already armed.
	MarkInventoryApplied(ctx context.Context, id string, appliedAt time.Time) error
}
