package alerting

import (
	"context"
	"time"

	"github.com/safetrack/safetrack-api/pkg/logger"
)

// Scheduler periodically re-derives stock and quote-expiry alerts. The two
// passes are independent: each run executes both, each error is logged, and
// neither pass blocks or aborts the other. Every pass is an upsert, so runs
// are safe to repeat and to overlap with request-triggered reconciliations.
type Scheduler struct {
	stock    *StockAlertUseCase
	quotes   *QuoteAlertUseCase
	interval time.Duration
	log      *logger.Logger
}

// NewScheduler builds the scheduler.
func NewScheduler(stock *StockAlertUseCase, quotes *QuoteAlertUseCase, interval time.Duration, log *logger.Logger) *Scheduler {
	return &Scheduler{stock: stock, quotes: quotes, interval: interval, log: log}
}

// Run blocks, reconciling once immediately and then on every tick until ctx
// is cancelled. Intended to run in its own goroutine from main.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("alert reconciliation scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("alert reconciliation scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes one stock pass and one quote-expiry pass.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if failed, err := s.stock.ReconcileAll(ctx); err != nil {
		s.log.Error().Err(err).Msg("stock alert pass failed")
	} else if failed > 0 {
		s.log.Warn().Int("failed_items", failed).Msg("stock alert pass completed with item failures")
	}

	if failed, err := s.quotes.ReconcileExpirations(ctx); err != nil {
		s.log.Error().Err(err).Msg("quote expiry pass failed")
	} else if failed > 0 {
		s.log.Warn().Int("failed_quotes", failed).Msg("quote expiry pass completed with item failures")
	}
}
