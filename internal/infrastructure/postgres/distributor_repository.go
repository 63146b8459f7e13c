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

var _ repository.DistributorRepository = (*DistributorRepo)(nil)

const distributorColumns = `id, name, email, phone, region, sales_rep, created_at, updated_at`

// DistributorRepo DistributorRepository implementation over PostgreSQL.
type DistributorRepo struct {
	q Querier
}

// NewDistributorRepository builds the adapter.
func NewDistributorRepository(q Querier) *DistributorRepo {
	return &DistributorRepo{q: q}
}

func (r *DistributorRepo) Create(ctx context.Context, d *entity.Distributor) error {
	query := `
		INSERT INTO distributors (id, name, email, phone, region, sales_rep, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, d.ID, d.Name, d.Email, d.Phone, d.Region, d.SalesRep, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert distributor: %w", err)
	}
	return nil
}

func (r *DistributorRepo) GetByID(ctx context.Context, id string) (*entity.Distributor, error) {
	query := `SELECT ` + distributorColumns + ` FROM distributors WHERE id = $1`
	d, err := scanDistributor(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get distributor: %w", err)
	}
	return d, nil
}

func (r *DistributorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Distributor, error) {
	query := `SELECT ` + distributorColumns + ` FROM distributors ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list distributors: %w", err)
	}
	defer rows.Close()

	var list []*entity.Distributor
	for rows.Next() {
		d, err := scanDistributor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan distributor: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DistributorRepo) Update(ctx context.Context, d *entity.Distributor) error {
	query := `
		UPDATE distributors
		SET name = $2, email = $3, phone = $4, region = $5, sales_rep = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, d.ID, d.Name, d.Email, d.Phone, d.Region, d.SalesRep, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update distributor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DistributorRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM distributors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete distributor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDistributor(row pgx.Row) (*entity.Distributor, error) {
	var d entity.Distributor
	err := row.Scan(&d.ID, &d.Name, &d.Email, &d.Phone, &d.Region, &d.SalesRep, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
