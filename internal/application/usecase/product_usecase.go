package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/safetrack/safetrack-api/internal/application/dto"
	"github.com/safetrack/safetrack-api/internal/application/inventory"
	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
	"github.com/safetrack/safetrack-api/pkg/logger"
)

// ProductUseCase product master data plus the direct quantity-set operation.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	alerts      inventory.StockAlertReconciler
	log         *logger.Logger
}

// NewProductUseCase builds the use case.
func NewProductUseCase(productRepo repository.ProductRepository, alerts inventory.StockAlertReconciler, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, alerts: alerts, log: log}
}

// Create registers a new product.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Quantity < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Quantity:    in.Quantity,
		MinStock:    in.MinStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetBySKU returns a single product.
func (uc *ProductUseCase) GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// List returns a page of products.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update modifies product master data (never the quantity).
func (uc *ProductUseCase) Update(ctx context.Context, sku string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Category = in.Category
	p.Price = in.Price
	p.MinStock = in.MinStock
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	// Threshold changes alter the derived alert state even without a stock move.
	if err := uc.alerts.ReconcileSKU(ctx, p.SKU); err != nil {
		uc.log.Warn().Err(err).Str("sku", p.SKU).Msg("alert reconciliation after product update failed")
	}
	return toProductResponse(p), nil
}

// SetQuantity overwrites the on-hand quantity (manual stock correction) and
// re-derives the SKU's alert state best-effort.
func (uc *ProductUseCase) SetQuantity(ctx context.Context, sku string, quantity int64) (*dto.ProductResponse, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.productRepo.SetQuantity(ctx, sku, quantity, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.alerts.ReconcileSKU(ctx, sku); err != nil {
		uc.log.Warn().Err(err).Str("sku", sku).Msg("alert reconciliation after quantity set failed")
	}
	p, err := uc.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
		MinStock:    p.MinStock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
