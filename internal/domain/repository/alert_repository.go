package repository

import (
	"context"
	"time"

	"github.com/safetrack/safetrack-api/internal/domain/entity"
)

// AlertRepository is the persistence port for derived alerts.
type AlertRepository interface {
	// UpsertOpen inserts the alert, or, when an unresolved alert with the
	// same (type, subject) natural key exists, refreshes that row in place:
	// severity, title and message are replaced, read resets to false and
	// created_at moves to the alert's CreatedAt. Implemented as a single
	// conditional write so two concurrent derivations cannot both insert.
	UpsertOpen(ctx context.Context, alert *entity.Alert) error

	// ResolveOpen marks every unresolved alert matching one of the types and
	// the subject as resolved at resolvedAt. Returns how many rows changed.
	ResolveOpen(ctx context.Context, types []entity.AlertType, subject entity.AlertSubject, resolvedAt time.Time) (int64, error)

	ListUnresolved(ctx context.Context, limit, offset int) ([]*entity.Alert, error)
	MarkRead(ctx context.Context, id string) error
	Resolve(ctx context.Context, id string, resolvedAt time.Time) error
}
