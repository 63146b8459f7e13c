package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo AlertRepository implementation over PostgreSQL.
//
// UpsertOpen relies on a partial unique index over the natural key of an
// open alert:
//
//	CREATE UNIQUE INDEX alerts_open_natural_key
//	ON alerts (type, entity_type, entity_id) WHERE resolved = false;
type AlertRepo struct {
	q Querier
}

// NewAlertRepository builds the adapter.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// UpsertOpen inserts the alert or refreshes the open row with the same
// (type, subject) key in one conditional write.
func (r *AlertRepo) UpsertOpen(ctx context.Context, a *entity.Alert) error {
	entityType, entityID := a.Subject.Columns()
	query := `
		INSERT INTO alerts (id, type, severity, title, message, entity_type, entity_id, read, resolved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, false, $8)
		ON CONFLICT (type, entity_type, entity_id) WHERE resolved = false
		DO UPDATE SET
			severity   = EXCLUDED.severity,
			title      = EXCLUDED.title,
			message    = EXCLUDED.message,
			read       = false,
			created_at = EXCLUDED.created_at`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Type, a.Severity, a.Title, a.Message, entityType, entityID, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert alert: %w", err)
	}
	return nil
}

// ResolveOpen resolves every unresolved alert matching the types and subject.
func (r *AlertRepo) ResolveOpen(ctx context.Context, types []entity.AlertType, subject entity.AlertSubject, resolvedAt time.Time) (int64, error) {
	typeNames := make([]string, len(types))
	for i, t := range types {
		typeNames[i] = string(t)
	}
	entityType, entityID := subject.Columns()
	query := `
		UPDATE alerts
		SET resolved = true, resolved_at = $4
		WHERE type = ANY($1) AND entity_type = $2 AND entity_id = $3 AND resolved = false`
	tag, err := r.q.Exec(ctx, query, typeNames, entityType, entityID, resolvedAt)
	if err != nil {
		return 0, fmt.Errorf("resolve open alerts: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListUnresolved returns a page of open alerts, newest first.
func (r *AlertRepo) ListUnresolved(ctx context.Context, limit, offset int) ([]*entity.Alert, error) {
	query := `
		SELECT id, type, severity, title, message, entity_type, entity_id, read, resolved, resolved_at, created_at
		FROM alerts
		WHERE resolved = false
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// MarkRead flags the alert as read.
func (r *AlertRepo) MarkRead(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE alerts SET read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Resolve resolves a single alert by id.
func (r *AlertRepo) Resolve(ctx context.Context, id string, resolvedAt time.Time) error {
	query := `UPDATE alerts SET resolved = true, resolved_at = $2 WHERE id = $1 AND resolved = false`
	tag, err := r.q.Exec(ctx, query, id, resolvedAt)
	if err != nil {
		return fmt.Errorf("resolve alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var (
		a          entity.Alert
		entityType string
		entityID   string
	)
	err := row.Scan(
		&a.ID, &a.Type, &a.Severity, &a.Title, &a.Message,
		&entityType, &entityID, &a.Read, &a.Resolved, &a.ResolvedAt, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Subject = entity.SubjectFromColumns(entityType, entityID)
	return &a, nil
}
