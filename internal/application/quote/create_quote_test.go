package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safetrack/safetrack-api/internal/application/dto"
	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
	"github.com/safetrack/safetrack-api/pkg/logger"
)

// ─── in-memory fakes ─────────────────────────────────────────────────────────

// fakeQuoteRepo enforces quote-number uniqueness like the DB constraint does.
type fakeQuoteRepo struct {
	byID     map[string]*entity.Quote
	byNumber map[string]*entity.Quote
	// rejects the next N creates with ErrDuplicate, simulating a concurrent
	// writer winning the number between scan and insert.
	duplicateNext int
}

func newFakeQuoteRepo(numbers ...string) *fakeQuoteRepo {
	r := &fakeQuoteRepo{byID: map[string]*entity.Quote{}, byNumber: map[string]*entity.Quote{}}
	for i, n := range numbers {
		q := &entity.Quote{ID: string(rune('a' + i)), QuoteNumber: n, Status: entity.QuoteStatusDraft}
		r.byID[q.ID] = q
		r.byNumber[n] = q
	}
	return r
}

func (r *fakeQuoteRepo) Create(_ context.Context, q *entity.Quote) error {
	if r.duplicateNext > 0 {
		r.duplicateNext--
		return domain.ErrDuplicate
	}
	if _, taken := r.byNumber[q.QuoteNumber]; taken {
		return domain.ErrDuplicate
	}
	r.byID[q.ID] = q
	r.byNumber[q.QuoteNumber] = q
	return nil
}

func (r *fakeQuoteRepo) GetByID(_ context.Context, id string) (*entity.Quote, error) {
	return r.byID[id], nil
}

func (r *fakeQuoteRepo) List(_ context.Context, _, _ int) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range r.byID {
		out = append(out, q)
	}
	return out, nil
}

func (r *fakeQuoteRepo) ListByStatus(_ context.Context, status string) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range r.byID {
		if q.Status == status {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuoteRepo) ListNumbersByPrefix(_ context.Context, prefix string) ([]string, error) {
	var out []string
	for n := range r.byNumber {
		if len(n) >= len(prefix) && n[:len(prefix)] == prefix {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeQuoteRepo) UpdateStatus(_ context.Context, id, status string) error {
	q, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	q.Status = status
	return nil
}

// fakeTxRunner hands the same repo to fn; there is no real transaction.
type fakeTxRunner struct {
	repo repository.QuoteRepository
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(quoteRepo repository.QuoteRepository) error) error {
	return fn(r.repo)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func newUseCase(repo *fakeQuoteRepo, now time.Time) *CreateQuoteUseCase {
	uc := NewCreateQuoteUseCase(&fakeTxRunner{repo: repo}, repo, testLogger())
	uc.now = func() time.Time { return now }
	return uc
}

func validRequest() dto.CreateQuoteRequest {
	return dto.CreateQuoteRequest{
		CustomerName: "Northfield Distribution",
		ValidUntil:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		Items: []dto.QuoteItemRequest{
			{SKU: "HELMET-01", Description: "Safety helmet", Quantity: 10, UnitPrice: decimal.NewFromInt(25)},
			{SKU: "GLOVES-02", Description: "Work gloves", Quantity: 4, UnitPrice: decimal.RequireFromString("7.50")},
		},
	}
}

// ─── tests ───────────────────────────────────────────────────────────────────

var march2026 = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestCreateQuote_AllocatesMaxPlusOne(t *testing.T) {
	repo := newFakeQuoteRepo("260001", "260002", "260005", "250009")
	uc := newUseCase(repo, march2026)

	out, err := uc.CreateQuote(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "260006", out.QuoteNumber, "gaps stay gaps, next is max+1 within the year prefix")
	assert.Equal(t, entity.QuoteStatusDraft, out.Status)
}

func TestCreateQuote_FirstOfYearStartsAtOne(t *testing.T) {
	repo := newFakeQuoteRepo("250009")
	uc := newUseCase(repo, march2026)

	out, err := uc.CreateQuote(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "260001", out.QuoteNumber)
}

func TestCreateQuote_TotalIsSumOfLineSubtotals(t *testing.T) {
	repo := newFakeQuoteRepo()
	uc := newUseCase(repo, march2026)

	out, err := uc.CreateQuote(context.Background(), validRequest())
	require.NoError(t, err)

	// 10*25 + 4*7.50 = 280
	assert.True(t, out.Total.Equal(decimal.NewFromInt(280)), "got %s", out.Total)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].Subtotal.Equal(decimal.NewFromInt(250)))
	assert.True(t, out.Items[1].Subtotal.Equal(decimal.NewFromInt(30)))
}

// A number collision with a concurrent writer triggers a rescan-and-retry,
// not a failure.
func TestCreateQuote_RetriesOnNumberCollision(t *testing.T) {
	repo := newFakeQuoteRepo("260001")
	repo.duplicateNext = 1
	uc := newUseCase(repo, march2026)

	out, err := uc.CreateQuote(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "260002", out.QuoteNumber)
}

func TestCreateQuote_GivesUpAfterBoundedRetries(t *testing.T) {
	repo := newFakeQuoteRepo()
	repo.duplicateNext = allocateAttempts
	uc := newUseCase(repo, march2026)

	_, err := uc.CreateQuote(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestCreateQuote_RejectsInvalidInput(t *testing.T) {
	uc := newUseCase(newFakeQuoteRepo(), march2026)

	noItems := validRequest()
	noItems.Items = nil
	_, err := uc.CreateQuote(context.Background(), noItems)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	zeroQty := validRequest()
	zeroQty.Items[0].Quantity = 0
	_, err = uc.CreateQuote(context.Background(), zeroQty)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	noCustomer := validRequest()
	noCustomer.CustomerName = ""
	_, err = uc.CreateQuote(context.Background(), noCustomer)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// The preview endpoint must not reserve the number.
func TestAllocateNumber_PreviewDoesNotReserve(t *testing.T) {
	repo := newFakeQuoteRepo("260003")
	uc := newUseCase(repo, march2026)

	first, err := uc.AllocateNumber(context.Background())
	require.NoError(t, err)
	second, err := uc.AllocateNumber(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "260004", first)
	assert.Equal(t, first, second, "previews are stable until a quote is actually created")
}
