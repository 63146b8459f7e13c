package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")

	// ErrApplyMarkerFailed means stock was already incremented for an order but
	// the inventory_applied_at marker could not be written. The idempotency
	// guard is unarmed: a blind retry would double-apply. An operator must
	// verify on-hand quantities before re-running the apply.
	ErrApplyMarkerFailed = errors.New("inventory applied but idempotency marker write failed")
)
