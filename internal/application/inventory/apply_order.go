package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/safetrack/safetrack-api/internal/application/dto"
	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
	"github.com/safetrack/safetrack-api/pkg/logger"
)

// StockAlertReconciler is the post-apply trigger: re-derive stock alerts for
// a SKU whose quantity just changed. Its failure never fails the apply.
type StockAlertReconciler interface {
	ReconcileSKU(ctx context.Context, sku string) error
}

// ApplyOrderUseCase applies a received manufacturer order's line items to
// on-hand stock exactly once per order. ManufacturerOrder.InventoryAppliedAt
// is the idempotency guard; it is written last, after every item attempt has
// been resolved, so a caller-side timeout and retry is always safe up to
// that point.
//
// Line items are best-effort and independent: an unknown SKU or a failed
// increment is recorded as skipped and never aborts the batch, and applied
// items are never rolled back. Increments go through
// ProductRepository.AddQuantity, which is atomic at the storage layer, so
// two orders delivered simultaneously can touch the same SKU safely.
type ApplyOrderUseCase struct {
	orderRepo   repository.ManufacturerOrderRepository
	productRepo repository.ProductRepository
	alerts      StockAlertReconciler
	log         *logger.Logger
	now         func() time.Time
}

// NewApplyOrderUseCase builds the use case.
func NewApplyOrderUseCase(
	orderRepo repository.ManufacturerOrderRepository,
	productRepo repository.ProductRepository,
	alerts StockAlertReconciler,
	log *logger.Logger,
) *ApplyOrderUseCase {
	return &ApplyOrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		alerts:      alerts,
		log:         log,
		now:         time.Now,
	}
}

// ApplyOrder reconciles the order's items into inventory.
//
// Outcomes:
//   - order missing                 -> domain.ErrNotFound
//   - already applied               -> Applied=false with a message (no-op, not an error)
//   - some SKUs missing/failed      -> Applied=true with SkippedSKUs (operator reconciles those manually)
//   - marker write fails at the end -> domain.ErrApplyMarkerFailed: stock was
//     incremented but the guard is unarmed, so a blind retry would
//     double-apply. Surfaced loudly and distinctly from not-found.
func (uc *ApplyOrderUseCase) ApplyOrder(ctx context.Context, orderID string) (*dto.ApplyOrderResult, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.InventoryAppliedAt != nil {
		return &dto.ApplyOrderResult{
			Applied: false,
			Message: fmt.Sprintf("inventory already applied at %s", order.InventoryAppliedAt.Format(time.RFC3339)),
		}, nil
	}

	now := uc.now()
	result := &dto.ApplyOrderResult{Applied: true}

	for _, item := range order.Items {
		if item.QuantityOrdered <= 0 {
			continue
		}
		product, err := uc.productRepo.GetBySKU(ctx, item.SKU)
		if err != nil {
			uc.log.Warn().Err(err).Str("sku", item.SKU).Str("order_id", order.ID).Msg("sku lookup failed, line skipped")
			result.SkippedSKUs = append(result.SkippedSKUs, item.SKU)
			continue
		}
		if product == nil {
			uc.log.Warn().Str("sku", item.SKU).Str("order_id", order.ID).Msg("unknown sku on order, line skipped")
			result.SkippedSKUs = append(result.SkippedSKUs, item.SKU)
			continue
		}
		if err := uc.productRepo.AddQuantity(ctx, item.SKU, item.QuantityOrdered, now); err != nil {
			uc.log.Warn().Err(err).Str("sku", item.SKU).Str("order_id", order.ID).Msg("stock increment failed, line skipped")
			result.SkippedSKUs = append(result.SkippedSKUs, item.SKU)
			continue
		}
		result.AppliedItems = append(result.AppliedItems, dto.AppliedItem{
			SKU:      item.SKU,
			Quantity: item.QuantityOrdered,
		})
	}

	// Commit point: arm the idempotency guard only after every item attempt
	// has been resolved. From here a retry becomes a safe no-op.
	if err := uc.orderRepo.MarkInventoryApplied(ctx, order.ID, now); err != nil {
		uc.log.Error().
			Err(err).
			Str("order_id", order.ID).
			Interface("applied_items", result.AppliedItems).
			Msg("stock incremented but idempotency marker write failed; verify on-hand quantities before retrying")
		return nil, fmt.Errorf("%w: order %s: %v", domain.ErrApplyMarkerFailed, order.ID, err)
	}

	// Best-effort: re-derive stock alerts for the SKUs that changed. The
	// apply already succeeded; derivation failures are logged and swallowed.
	for _, it := range result.AppliedItems {
		if err := uc.alerts.ReconcileSKU(ctx, it.SKU); err != nil {
			uc.log.Warn().Err(err).Str("sku", it.SKU).Msg("post-apply alert reconciliation failed")
		}
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Int("applied", len(result.AppliedItems)).
		Int("skipped", len(result.SkippedSKUs)).
		Msg("manufacturer order applied to inventory")

	return result, nil
}
