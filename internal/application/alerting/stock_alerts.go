package alerting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/safetrack/safetrack-api/internal/domain"
	domalert "github.com/safetrack/safetrack-api/internal/domain/alerting"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
	"github.com/safetrack/safetrack-api/pkg/logger"
)

// stockAlertTypes are the two alert types the stock deriver owns for a SKU.
var stockAlertTypes = []entity.AlertType{entity.AlertLowStock, entity.AlertOutOfStock}

// StockAlertUseCase derives low-stock/out-of-stock alerts from current
// inventory state and reconciles them against existing unresolved alerts:
// create, refresh in place, or resolve.
type StockAlertUseCase struct {
	productRepo repository.ProductRepository
	alertRepo   repository.AlertRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewStockAlertUseCase builds the use case.
func NewStockAlertUseCase(
	productRepo repository.ProductRepository,
	alertRepo repository.AlertRepository,
	log *logger.Logger,
) *StockAlertUseCase {
	return &StockAlertUseCase{
		productRepo: productRepo,
		alertRepo:   alertRepo,
		log:         log,
		now:         time.Now,
	}
}

// ReconcileSKU re-derives the stock alert state for a single SKU. Used as the
// post-apply trigger and by the quantity-set operation.
func (uc *StockAlertUseCase) ReconcileSKU(ctx context.Context, sku string) error {
	product, err := uc.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return fmt.Errorf("load product %s: %w", sku, err)
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.reconcile(ctx, product)
}

// ReconcileAll re-derives stock alerts for every product. A single item's
// failure never halts the pass; the failure count is returned so callers can
// log an aggregate.
func (uc *StockAlertUseCase) ReconcileAll(ctx context.Context) (failed int, err error) {
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}
	for _, p := range products {
		if rerr := uc.reconcile(ctx, p); rerr != nil {
			failed++
			uc.log.Warn().Err(rerr).Str("sku", p.SKU).Msg("stock alert reconciliation failed for item")
		}
	}
	return failed, nil
}

func (uc *StockAlertUseCase) reconcile(ctx context.Context, p *entity.Product) error {
	now := uc.now()
	subject := entity.ProductSubject(p.SKU)

	cond, ok := domalert.EvaluateStock(p.Quantity, p.MinStock)
	if !ok {
		// Condition cleared: end the active lifetime of any open stock alert.
		n, err := uc.alertRepo.ResolveOpen(ctx, stockAlertTypes, subject, now)
		if err != nil {
			return fmt.Errorf("resolve stock alerts for %s: %w", p.SKU, err)
		}
		if n > 0 {
			uc.log.Info().Str("sku", p.SKU).Int64("resolved", n).Msg("stock recovered, alerts resolved")
		}
		return nil
	}

	// Only one of the two stock conditions can hold at a time; the one that
	// no longer holds is resolved before the active one is upserted.
	other := entity.AlertLowStock
	if cond.Type == entity.AlertLowStock {
		other = entity.AlertOutOfStock
	}
	if _, err := uc.alertRepo.ResolveOpen(ctx, []entity.AlertType{other}, subject, now); err != nil {
		return fmt.Errorf("resolve superseded stock alert for %s: %w", p.SKU, err)
	}

	alert := &entity.Alert{
		ID:        uuid.New().String(),
		Type:      cond.Type,
		Severity:  cond.Severity,
		Subject:   subject,
		CreatedAt: now,
	}
	if cond.Type == entity.AlertOutOfStock {
		alert.Title = fmt.Sprintf("Out of stock: %s", p.Name)
		alert.Message = fmt.Sprintf("SKU %s has 0 units on hand.", p.SKU)
	} else {
		alert.Title = fmt.Sprintf("Low stock: %s", p.Name)
		alert.Message = fmt.Sprintf("SKU %s has %d units on hand (reorder threshold %d).", p.SKU, p.Quantity, p.MinStock)
	}

	if err := uc.alertRepo.UpsertOpen(ctx, alert); err != nil {
		return fmt.Errorf("upsert stock alert for %s: %w", p.SKU, err)
	}
	return nil
}
