package alerting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
)

type fakeQuoteRepo struct {
	quotes map[string]*entity.Quote
}

func newFakeQuoteRepo(quotes ...*entity.Quote) *fakeQuoteRepo {
	r := &fakeQuoteRepo{quotes: map[string]*entity.Quote{}}
	for _, q := range quotes {
		r.quotes[q.ID] = q
	}
	return r
}

func (r *fakeQuoteRepo) Create(_ context.Context, q *entity.Quote) error {
	r.quotes[q.ID] = q
	return nil
}

func (r *fakeQuoteRepo) GetByID(_ context.Context, id string) (*entity.Quote, error) {
	return r.quotes[id], nil
}

func (r *fakeQuoteRepo) List(_ context.Context, _, _ int) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range r.quotes {
		out = append(out, q)
	}
	return out, nil
}

func (r *fakeQuoteRepo) ListByStatus(_ context.Context, status string) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range r.quotes {
		if q.Status == status {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuoteRepo) ListNumbersByPrefix(_ context.Context, prefix string) ([]string, error) {
	var out []string
	for _, q := range r.quotes {
		if len(q.QuoteNumber) >= len(prefix) && q.QuoteNumber[:len(prefix)] == prefix {
			out = append(out, q.QuoteNumber)
		}
	}
	return out, nil
}

func (r *fakeQuoteRepo) UpdateStatus(_ context.Context, id, status string) error {
	q, ok := r.quotes[id]
	if !ok {
		return domain.ErrNotFound
	}
	q.Status = status
	return nil
}

func sentQuote(id, number string, validUntil time.Time) *entity.Quote {
	return &entity.Quote{
		ID:           id,
		QuoteNumber:  number,
		Status:       entity.QuoteStatusSent,
		CustomerName: "Northfield Distribution",
		ValidUntil:   validUntil,
	}
}

func TestReconcileExpirations_ExpiringSoonGetsWarning(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	quotes := newFakeQuoteRepo(sentQuote("q1", "260001", now.Add(5*24*time.Hour)))
	alerts := &fakeAlertRepo{}
	uc := NewQuoteAlertUseCase(quotes, alerts, testLogger())
	uc.now = func() time.Time { return now }

	failed, err := uc.ReconcileExpirations(context.Background())
	require.NoError(t, err)
	assert.Zero(t, failed)

	open := alerts.unresolved()
	require.Len(t, open, 1)
	assert.Equal(t, entity.AlertQuoteExpired, open[0].Type)
	assert.Equal(t, entity.SeverityWarning, open[0].Severity)
	assert.Contains(t, open[0].Title, "expires soon")
	assert.Contains(t, open[0].Message, "5 day(s)")
	assert.Equal(t, "q1", open[0].Subject.ID())
}

func TestReconcileExpirations_LastDayIsCritical(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	quotes := newFakeQuoteRepo(sentQuote("q1", "260002", now.Add(20*time.Hour)))
	alerts := &fakeAlertRepo{}
	uc := NewQuoteAlertUseCase(quotes, alerts, testLogger())
	uc.now = func() time.Time { return now }

	_, err := uc.ReconcileExpirations(context.Background())
	require.NoError(t, err)

	open := alerts.unresolved()
	require.Len(t, open, 1)
	assert.Equal(t, entity.SeverityCritical, open[0].Severity)
	assert.Contains(t, open[0].Title, "expires soon")
}

func TestReconcileExpirations_PastDueIsCriticalExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	quotes := newFakeQuoteRepo(sentQuote("q1", "260003", now.Add(-48*time.Hour)))
	alerts := &fakeAlertRepo{}
	uc := NewQuoteAlertUseCase(quotes, alerts, testLogger())
	uc.now = func() time.Time { return now }

	_, err := uc.ReconcileExpirations(context.Background())
	require.NoError(t, err)

	open := alerts.unresolved()
	require.Len(t, open, 1)
	assert.Equal(t, entity.SeverityCritical, open[0].Severity)
	assert.Contains(t, open[0].Title, "expired")
}

// A quote far from its validity date produces nothing, and non-SENT quotes
// are never evaluated.
func TestReconcileExpirations_OnlySentQuotesNearExpiry(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	far := sentQuote("q1", "260004", now.Add(30*24*time.Hour))
	draft := sentQuote("q2", "260005", now.Add(-time.Hour))
	draft.Status = entity.QuoteStatusDraft
	quotes := newFakeQuoteRepo(far, draft)
	alerts := &fakeAlertRepo{}
	uc := NewQuoteAlertUseCase(quotes, alerts, testLogger())
	uc.now = func() time.Time { return now }

	failed, err := uc.ReconcileExpirations(context.Background())
	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Empty(t, alerts.unresolved())
}

// An alert must not outlive its quote's SENT status: once the quote is
// accepted, the next pass resolves the open alert.
func TestReconcileExpirations_StatusChangeResolvesAlert(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	q := sentQuote("q1", "260007", now.Add(2*24*time.Hour))
	quotes := newFakeQuoteRepo(q)
	alerts := &fakeAlertRepo{}
	uc := NewQuoteAlertUseCase(quotes, alerts, testLogger())
	uc.now = func() time.Time { return now }

	_, err := uc.ReconcileExpirations(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts.unresolved(), 1)

	q.Status = entity.QuoteStatusAccepted
	failed, err := uc.ReconcileExpirations(context.Background())
	require.NoError(t, err)
	assert.Zero(t, failed)

	assert.Empty(t, alerts.unresolved(), "accepted quote must not carry an open expiry alert")
	require.Len(t, alerts.alerts, 1)
	assert.True(t, alerts.alerts[0].Resolved)
	require.NotNil(t, alerts.alerts[0].ResolvedAt)
	assert.Equal(t, now, *alerts.alerts[0].ResolvedAt)
}

// Pushing the validity date back out of the warning window clears the
// condition, so the open alert resolves even though the quote stays SENT.
func TestReconcileExpirations_ExtendedValidityResolvesAlert(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	q := sentQuote("q1", "260008", now.Add(3*24*time.Hour))
	quotes := newFakeQuoteRepo(q)
	alerts := &fakeAlertRepo{}
	uc := NewQuoteAlertUseCase(quotes, alerts, testLogger())
	uc.now = func() time.Time { return now }

	_, err := uc.ReconcileExpirations(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts.unresolved(), 1)

	q.ValidUntil = now.Add(60 * 24 * time.Hour)
	_, err = uc.ReconcileExpirations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts.unresolved())
}

// The stale sweep only touches quote alerts; open stock alerts are not its
// business.
func TestReconcileExpirations_SweepLeavesStockAlertsAlone(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	quotes := newFakeQuoteRepo()
	alerts := &fakeAlertRepo{}
	require.NoError(t, alerts.UpsertOpen(context.Background(), &entity.Alert{
		ID:       "a1",
		Type:     entity.AlertLowStock,
		Severity: entity.SeverityWarning,
		Subject:  entity.ProductSubject("HELMET-01"),
	}))
	uc := NewQuoteAlertUseCase(quotes, alerts, testLogger())
	uc.now = func() time.Time { return now }

	_, err := uc.ReconcileExpirations(context.Background())
	require.NoError(t, err)
	assert.Len(t, alerts.unresolved(), 1)
}

// Re-running while the quote stays near expiry refreshes the single open
// alert instead of stacking a new one per pass.
func TestReconcileExpirations_RepeatedPassesDoNotDuplicate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	quotes := newFakeQuoteRepo(sentQuote("q1", "260006", now.Add(3*24*time.Hour)))
	alerts := &fakeAlertRepo{}
	uc := NewQuoteAlertUseCase(quotes, alerts, testLogger())

	uc.now = func() time.Time { return now }
	_, err := uc.ReconcileExpirations(context.Background())
	require.NoError(t, err)

	uc.now = func() time.Time { return now.Add(24 * time.Hour) }
	_, err = uc.ReconcileExpirations(context.Background())
	require.NoError(t, err)

	open := alerts.unresolved()
	require.Len(t, open, 1)
	assert.Contains(t, open[0].Message, "2 day(s)", "refresh carries the updated countdown")
}
