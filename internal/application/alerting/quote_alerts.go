package alerting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domalert "github.com/safetrack/safetrack-api/internal/domain/alerting"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
	"github.com/safetrack/safetrack-api/pkg/logger"
)

// QuoteAlertUseCase derives quote_expired alerts for sent quotes whose
// deadline is approaching or already past. It never transitions the quote's
// own status; marking quotes EXPIRED belongs to the quote lifecycle, not the
// alert deriver.
type QuoteAlertUseCase struct {
	quoteRepo repository.QuoteRepository
	alertRepo repository.AlertRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewQuoteAlertUseCase builds the use case.
func NewQuoteAlertUseCase(
	quoteRepo repository.QuoteRepository,
	alertRepo repository.AlertRepository,
	log *logger.Logger,
) *QuoteAlertUseCase {
	return &QuoteAlertUseCase{
		quoteRepo: quoteRepo,
		alertRepo: alertRepo,
		log:       log,
		now:       time.Now,
	}
}

// alertSweepPage bounds each ListUnresolved fetch during the stale sweep.
const alertSweepPage = 200

// ReconcileExpirations evaluates every SENT quote against now, then resolves
// expiry alerts whose quote is no longer SENT. Per-quote failures are
// isolated and counted, never aborting the pass.
func (uc *QuoteAlertUseCase) ReconcileExpirations(ctx context.Context) (failed int, err error) {
	quotes, err := uc.quoteRepo.ListByStatus(ctx, entity.QuoteStatusSent)
	if err != nil {
		return 0, fmt.Errorf("list sent quotes: %w", err)
	}
	sent := make(map[string]bool, len(quotes))
	for _, q := range quotes {
		sent[q.ID] = true
		if rerr := uc.reconcile(ctx, q); rerr != nil {
			failed++
			uc.log.Warn().Err(rerr).Str("quote_number", q.QuoteNumber).Msg("quote expiry reconciliation failed")
		}
	}
	failed += uc.sweepStale(ctx, sent)
	return failed, nil
}

// sweepStale resolves open expiry alerts whose quote has left the SENT
// status (accepted, rejected, expired or deleted). Those quotes are invisible
// to the SENT pass above, so the alert would otherwise stay open forever.
func (uc *QuoteAlertUseCase) sweepStale(ctx context.Context, sent map[string]bool) (failed int) {
	var stale []string
	for offset := 0; ; offset += alertSweepPage {
		page, err := uc.alertRepo.ListUnresolved(ctx, alertSweepPage, offset)
		if err != nil {
			uc.log.Warn().Err(err).Msg("stale quote alert sweep failed")
			return failed + 1
		}
		for _, a := range page {
			if a.Type == entity.AlertQuoteExpired && a.Subject.Kind() == entity.SubjectQuote && !sent[a.Subject.ID()] {
				stale = append(stale, a.Subject.ID())
			}
		}
		if len(page) < alertSweepPage {
			break
		}
	}
	now := uc.now()
	for _, quoteID := range stale {
		if _, err := uc.alertRepo.ResolveOpen(ctx, []entity.AlertType{entity.AlertQuoteExpired}, entity.QuoteSubject(quoteID), now); err != nil {
			failed++
			uc.log.Warn().Err(err).Str("quote_id", quoteID).Msg("resolve stale quote alert failed")
		}
	}
	return failed
}

// ResolveForQuote clears any open expiry alert for the quote. Called when a
// quote leaves the SENT status so the alert drops immediately instead of
// waiting for the next scheduled sweep.
func (uc *QuoteAlertUseCase) ResolveForQuote(ctx context.Context, quoteID string) error {
	_, err := uc.alertRepo.ResolveOpen(ctx, []entity.AlertType{entity.AlertQuoteExpired}, entity.QuoteSubject(quoteID), uc.now())
	return err
}

func (uc *QuoteAlertUseCase) reconcile(ctx context.Context, q *entity.Quote) error {
	now := uc.now()
	cond, ok := domalert.EvaluateQuoteExpiry(q.ValidUntil, now)
	if !ok {
		// Validity was pushed out of the window; the condition cleared.
		if _, err := uc.alertRepo.ResolveOpen(ctx, []entity.AlertType{entity.AlertQuoteExpired}, entity.QuoteSubject(q.ID), now); err != nil {
			return fmt.Errorf("resolve expiry alert for quote %s: %w", q.QuoteNumber, err)
		}
		return nil
	}

	alert := &entity.Alert{
		ID:        uuid.New().String(),
		Type:      entity.AlertQuoteExpired,
		Severity:  cond.Severity,
		Subject:   entity.QuoteSubject(q.ID),
		CreatedAt: now,
	}
	if cond.Overdue {
		alert.Title = fmt.Sprintf("Quote %s expired", q.QuoteNumber)
		alert.Message = fmt.Sprintf("Quote %s for %s passed its validity date on %s.",
			q.QuoteNumber, q.CustomerName, q.ValidUntil.Format("2006-01-02"))
	} else {
		alert.Title = fmt.Sprintf("Quote %s expires soon", q.QuoteNumber)
		alert.Message = fmt.Sprintf("Quote %s for %s expires in %d day(s).",
			q.QuoteNumber, q.CustomerName, cond.DaysLeft)
	}

	if err := uc.alertRepo.UpsertOpen(ctx, alert); err != nil {
		return fmt.Errorf("upsert expiry alert for quote %s: %w", q.QuoteNumber, err)
	}
	return nil
}
