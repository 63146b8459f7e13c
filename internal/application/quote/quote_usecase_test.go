package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
)

// fakeExpiryResolver records which quotes had their expiry alert cleared.
type fakeExpiryResolver struct {
	resolved []string
	err      error
}

func (r *fakeExpiryResolver) ResolveForQuote(_ context.Context, quoteID string) error {
	if r.err != nil {
		return r.err
	}
	r.resolved = append(r.resolved, quoteID)
	return nil
}

func sentQuote(id, number string) *entity.Quote {
	return &entity.Quote{
		ID:           id,
		QuoteNumber:  number,
		Status:       entity.QuoteStatusSent,
		CustomerName: "Northfield Distribution",
		ValidUntil:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	}
}

func TestUpdateStatus_LeavingSentClearsExpiryAlert(t *testing.T) {
	repo := newFakeQuoteRepo()
	q := sentQuote("q1", "260010")
	repo.byID[q.ID] = q
	repo.byNumber[q.QuoteNumber] = q
	resolver := &fakeExpiryResolver{}
	uc := NewQuoteUseCase(repo, resolver, testLogger())

	require.NoError(t, uc.UpdateStatus(context.Background(), "q1", entity.QuoteStatusAccepted))

	assert.Equal(t, entity.QuoteStatusAccepted, q.Status)
	assert.Equal(t, []string{"q1"}, resolver.resolved)
}

func TestUpdateStatus_TransitionToSentKeepsAlertDerivation(t *testing.T) {
	repo := newFakeQuoteRepo()
	q := sentQuote("q1", "260011")
	q.Status = entity.QuoteStatusDraft
	repo.byID[q.ID] = q
	repo.byNumber[q.QuoteNumber] = q
	resolver := &fakeExpiryResolver{}
	uc := NewQuoteUseCase(repo, resolver, testLogger())

	require.NoError(t, uc.UpdateStatus(context.Background(), "q1", entity.QuoteStatusSent))

	assert.Empty(t, resolver.resolved, "a quote entering SENT is the deriver's to evaluate")
}

// A failed alert resolve must not fail the status transition; the scheduled
// sweep picks the alert up later.
func TestUpdateStatus_ResolveFailureDoesNotFailTransition(t *testing.T) {
	repo := newFakeQuoteRepo()
	q := sentQuote("q1", "260012")
	repo.byID[q.ID] = q
	repo.byNumber[q.QuoteNumber] = q
	resolver := &fakeExpiryResolver{err: errors.New("alert store down")}
	uc := NewQuoteUseCase(repo, resolver, testLogger())

	require.NoError(t, uc.UpdateStatus(context.Background(), "q1", entity.QuoteStatusRejected))
	assert.Equal(t, entity.QuoteStatusRejected, q.Status)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	uc := NewQuoteUseCase(newFakeQuoteRepo(), &fakeExpiryResolver{}, testLogger())

	err := uc.UpdateStatus(context.Background(), "q1", "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
