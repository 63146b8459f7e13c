package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

const quoteColumns = `id, quote_number, status, customer_name, distributor_id, valid_until, total, created_at, updated_at`

// QuoteRepo QuoteRepository implementation over PostgreSQL. The quotes table
// carries a unique constraint on quote_number; that constraint is what
// serializes concurrent number allocation.
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository builds the adapter. Pass a pool or tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

// Create persists the quote header and its items. A quote_number collision
// surfaces as domain.ErrDuplicate so the allocator can retry.
func (r *QuoteRepo) Create(ctx context.Context, quote *entity.Quote) error {
	headerQuery := `
		INSERT INTO quotes (id, quote_number, status, customer_name, distributor_id, valid_until, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, headerQuery,
		quote.ID, quote.QuoteNumber, quote.Status, quote.CustomerName,
		nullIfEmpty(quote.DistributorID), quote.ValidUntil, quote.Total,
		quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quote: %w", err)
	}

	itemQuery := `
		INSERT INTO quote_items (id, quote_id, sku, description, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range quote.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.QuoteID, item.SKU, item.Description, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert quote item %s: %w", item.SKU, err)
		}
	}
	return nil
}

// GetByID loads the quote with its items. Returns (nil, nil) when absent.
func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`
	q, err := scanQuote(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Items = items
	return q, nil
}

// List returns a page of quotes, newest first, without items.
func (r *QuoteRepo) List(ctx context.Context, limit, offset int) ([]*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	return collectQuotes(rows)
}

// ListByStatus returns every quote in the given status, without items.
func (r *QuoteRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE status = $1 ORDER BY valid_until`
	rows, err := r.q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list quotes by status: %w", err)
	}
	defer rows.Close()
	return collectQuotes(rows)
}

// ListNumbersByPrefix returns the issued quote numbers under a period prefix.
func (r *QuoteRepo) ListNumbersByPrefix(ctx context.Context, prefix string) ([]string, error) {
	query := `SELECT quote_number FROM quotes WHERE quote_number LIKE $1 || '%'`
	rows, err := r.q.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("list quote numbers: %w", err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan quote number: %w", err)
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

// UpdateStatus moves the quote to a new status.
func (r *QuoteRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE quotes SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *QuoteRepo) listItems(ctx context.Context, quoteID string) ([]entity.QuoteItem, error) {
	query := `
		SELECT id, quote_id, sku, description, quantity, unit_price
		FROM quote_items
		WHERE quote_id = $1
		ORDER BY sku`
	rows, err := r.q.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()

	var items []entity.QuoteItem
	for rows.Next() {
		var item entity.QuoteItem
		err := rows.Scan(&item.ID, &item.QuoteID, &item.SKU, &item.Description, &item.Quantity, &item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var (
		q             entity.Quote
		distributorID *string
	)
	err := row.Scan(
		&q.ID, &q.QuoteNumber, &q.Status, &q.CustomerName, &distributorID,
		&q.ValidUntil, &q.Total, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if distributorID != nil {
		q.DistributorID = *distributorID
	}
	return &q, nil
}

func collectQuotes(rows pgx.Rows) ([]*entity.Quote, error) {
	var list []*entity.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}
