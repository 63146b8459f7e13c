package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safetrack/safetrack-api/internal/application/quote"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
)

var _ quote.TxRunner = (*TxRunner)(nil)

// TxRunner runs a function inside a pgx transaction with a quote repository
// bound to that transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, invokes fn with a tx-bound quote repository and
// commits. Any error from fn rolls the transaction back and is returned
// unwrapped so sentinel checks (errors.Is) still work upstream.
func (r *TxRunner) Run(ctx context.Context, fn func(quoteRepo repository.QuoteRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(NewQuoteRepository(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
