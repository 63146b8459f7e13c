package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/safetrack/safetrack-api/internal/application/dto"
	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
)

// DistributorUseCase CRUD for distributors.
type DistributorUseCase struct {
	repo repository.DistributorRepository
}

// NewDistributorUseCase builds the use case.
func NewDistributorUseCase(repo repository.DistributorRepository) *DistributorUseCase {
	return &DistributorUseCase{repo: repo}
}

// Create registers a distributor.
func (uc *DistributorUseCase) Create(ctx context.Context, in dto.DistributorRequest) (*dto.DistributorResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	d := &entity.Distributor{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Region:    in.Region,
		SalesRep:  in.SalesRep,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDistributorResponse(d), nil
}

// GetByID returns a distributor.
func (uc *DistributorUseCase) GetByID(ctx context.Context, id string) (*dto.DistributorResponse, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return toDistributorResponse(d), nil
}

// List returns a page of distributors.
func (uc *DistributorUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.DistributorResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DistributorResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDistributorResponse(d))
	}
	return out, nil
}

// Update modifies a distributor.
func (uc *DistributorUseCase) Update(ctx context.Context, id string, in dto.DistributorRequest) (*dto.DistributorResponse, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	d.Name = in.Name
	d.Email = in.Email
	d.Phone = in.Phone
	d.Region = in.Region
	d.SalesRep = in.SalesRep
	d.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDistributorResponse(d), nil
}

// Delete removes a distributor.
func (uc *DistributorUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toDistributorResponse(d *entity.Distributor) *dto.DistributorResponse {
	return &dto.DistributorResponse{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Region:    d.Region,
		SalesRep:  d.SalesRep,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
