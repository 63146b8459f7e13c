package alerting

import (
	"context"
	"time"

	"github.com/safetrack/safetrack-api/internal/application/dto"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
)

// AlertUseCase is the alert read path used by the UI badge, plus the manual
// reconciliation trigger.
type AlertUseCase struct {
	alertRepo repository.AlertRepository
	stock     *StockAlertUseCase
	quotes    *QuoteAlertUseCase
}

// NewAlertUseCase builds the use case.
func NewAlertUseCase(alertRepo repository.AlertRepository, stock *StockAlertUseCase, quotes *QuoteAlertUseCase) *AlertUseCase {
	return &AlertUseCase{alertRepo: alertRepo, stock: stock, quotes: quotes}
}

// ListUnresolved returns the open alerts, newest first.
func (uc *AlertUseCase) ListUnresolved(ctx context.Context, page dto.PageRequest) ([]dto.AlertResponse, error) {
	page.DefaultPage()
	alerts, err := uc.alertRepo.ListUnresolved(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, toAlertResponse(a))
	}
	return out, nil
}

// MarkRead flags an alert as seen.
func (uc *AlertUseCase) MarkRead(ctx context.Context, id string) error {
	return uc.alertRepo.MarkRead(ctx, id)
}

// Resolve manually closes an alert occurrence.
func (uc *AlertUseCase) Resolve(ctx context.Context, id string) error {
	return uc.alertRepo.Resolve(ctx, id, time.Now())
}

// ReconcileNow runs both deriver passes on demand. Safe to call repeatedly
// and concurrently with the scheduler: every write is an idempotent upsert.
func (uc *AlertUseCase) ReconcileNow(ctx context.Context) (*dto.ReconcileResult, error) {
	stockFailed, err := uc.stock.ReconcileAll(ctx)
	if err != nil {
		return nil, err
	}
	quoteFailed, err := uc.quotes.ReconcileExpirations(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ReconcileResult{StockFailures: stockFailed, QuoteFailures: quoteFailed}, nil
}

func toAlertResponse(a *entity.Alert) dto.AlertResponse {
	entityType, entityID := a.Subject.Columns()
	return dto.AlertResponse{
		ID:         a.ID,
		Type:       string(a.Type),
		Severity:   string(a.Severity),
		Title:      a.Title,
		Message:    a.Message,
		EntityType: entityType,
		EntityID:   entityID,
		Read:       a.Read,
		Resolved:   a.Resolved,
		ResolvedAt: a.ResolvedAt,
		CreatedAt:  a.CreatedAt,
	}
}
