package repository

import (
	"context"

	"github.com/safetrack/safetrack-api/internal/domain/entity"
)

// DistributorRepository is the persistence port for distributors.
type DistributorRepository interface {
	Create(ctx context.Context, d *entity.Distributor) error
	GetByID(ctx context.Context, id string) (*entity.Distributor, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Distributor, error)
	Update(ctx context.Context, d *entity.Distributor) error
	Delete(ctx context.Context, id string) error
}
