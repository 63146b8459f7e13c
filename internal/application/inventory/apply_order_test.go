package inventory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
	"github.com/safetrack/safetrack-api/pkg/logger"
)

// ─── in-memory fakes ─────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders  map[string]*entity.ManufacturerOrder
	markErr error
}

func newFakeOrderRepo(orders ...*entity.ManufacturerOrder) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[string]*entity.ManufacturerOrder{}}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.ManufacturerOrder) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.ManufacturerOrder, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) List(_ context.Context, _, _ int) ([]*entity.ManufacturerOrder, error) {
	var out []*entity.ManufacturerOrder
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) MarkInventoryApplied(_ context.Context, id string, appliedAt time.Time) error {
	if r.markErr != nil {
		return r.markErr
	}
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	if o.InventoryAppliedAt != nil {
		return domain.ErrConflict
	}
	at := appliedAt
	o.InventoryAppliedAt = &at
	o.Status = entity.OrderStatusDelivered
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
	failSKUs map[string]error
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{
		products: map[string]*entity.Product{},
		failSKUs: map[string]error{},
	}
	for _, p := range products {
		r.products[p.SKU] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.SKU] = p
	return nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	return r.products[sku], nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.products[p.SKU]; !ok {
		return domain.ErrNotFound
	}
	r.products[p.SKU] = p
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	return r.listAll()
}

func (r *fakeProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	return r.listAll()
}

func (r *fakeProductRepo) listAll() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) AddQuantity(_ context.Context, sku string, delta int64, now time.Time) error {
	if err := r.failSKUs[sku]; err != nil {
		return err
	}
	p, ok := r.products[sku]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity += delta
	p.UpdatedAt = now
	return nil
}

func (r *fakeProductRepo) SetQuantity(_ context.Context, sku string, quantity int64, now time.Time) error {
	p, ok := r.products[sku]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	p.UpdatedAt = now
	return nil
}

type fakeReconciler struct {
	skus []string
	err  error
}

func (f *fakeReconciler) ReconcileSKU(_ context.Context, sku string) error {
	f.skus = append(f.skus, sku)
	return f.err
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func product(sku string, qty int64) *entity.Product {
	return &entity.Product{ID: "prod-" + sku, SKU: sku, Name: "Product " + sku, Quantity: qty, MinStock: 2}
}

func orderWith(id string, items ...entity.OrderItem) *entity.ManufacturerOrder {
	return &entity.ManufacturerOrder{
		ID:          id,
		OrderNumber: "PO-" + id,
		Supplier:    "Acme Manufacturing",
		Status:      entity.OrderStatusShipped,
		Items:       items,
	}
}

func line(sku string, qty int64) entity.OrderItem {
	return entity.OrderItem{ID: "item-" + sku, SKU: sku, QuantityOrdered: qty, UnitCost: decimal.NewFromInt(10)}
}

// ─── tests ───────────────────────────────────────────────────────────────────

// Applying the same order twice must change stock exactly once; the second
// call is a successful no-op, distinguishable by Applied=false plus a message.
func TestApplyOrder_SecondApplyIsNoOp(t *testing.T) {
	products := newFakeProductRepo(product("HELMET-01", 10))
	orders := newFakeOrderRepo(orderWith("o1", line("HELMET-01", 5)))
	uc := NewApplyOrderUseCase(orders, products, &fakeReconciler{}, testLogger())

	first, err := uc.ApplyOrder(context.Background(), "o1")
	require.NoError(t, err)
	assert.True(t, first.Applied)
	assert.Equal(t, int64(15), products.products["HELMET-01"].Quantity)

	second, err := uc.ApplyOrder(context.Background(), "o1")
	require.NoError(t, err, "a repeated apply is not an error")
	assert.False(t, second.Applied)
	assert.Contains(t, second.Message, "already applied")
	assert.Empty(t, second.AppliedItems)
	assert.Equal(t, int64(15), products.products["HELMET-01"].Quantity,
		"stock must not change on the second apply")
}

// Unknown SKUs are skipped and reported while the rest of the order still
// applies; nothing is rolled back.
func TestApplyOrder_UnknownSKUSkippedOthersApplied(t *testing.T) {
	products := newFakeProductRepo(product("GLOVES-02", 10))
	orders := newFakeOrderRepo(orderWith("o1",
		line("GLOVES-02", 5),
		line("GHOST-99", 3),
	))
	uc := NewApplyOrderUseCase(orders, products, &fakeReconciler{}, testLogger())

	result, err := uc.ApplyOrder(context.Background(), "o1")
	require.NoError(t, err)

	assert.True(t, result.Applied)
	assert.Equal(t, []string{"GHOST-99"}, result.SkippedSKUs)
	require.Len(t, result.AppliedItems, 1)
	assert.Equal(t, "GLOVES-02", result.AppliedItems[0].SKU)
	assert.Equal(t, int64(5), result.AppliedItems[0].Quantity)
	assert.Equal(t, int64(15), products.products["GLOVES-02"].Quantity)

	// The guard must still be armed: a retry only re-reports the skip, it
	// never re-applies the good line.
	again, err := uc.ApplyOrder(context.Background(), "o1")
	require.NoError(t, err)
	assert.False(t, again.Applied)
	assert.Equal(t, int64(15), products.products["GLOVES-02"].Quantity)
}

// A failed increment on one SKU is isolated to that line.
func TestApplyOrder_FailedIncrementSkipsLine(t *testing.T) {
	products := newFakeProductRepo(product("VEST-03", 0), product("BOOTS-04", 1))
	products.failSKUs["VEST-03"] = fmt.Errorf("connection reset")
	orders := newFakeOrderRepo(orderWith("o1", line("VEST-03", 7), line("BOOTS-04", 2)))
	uc := NewApplyOrderUseCase(orders, products, &fakeReconciler{}, testLogger())

	result, err := uc.ApplyOrder(context.Background(), "o1")
	require.NoError(t, err)

	assert.Equal(t, []string{"VEST-03"}, result.SkippedSKUs)
	assert.Equal(t, int64(0), products.products["VEST-03"].Quantity)
	assert.Equal(t, int64(3), products.products["BOOTS-04"].Quantity)
}

// Zero-quantity lines are ignored silently: neither applied nor skipped.
func TestApplyOrder_ZeroQuantityLineIgnored(t *testing.T) {
	products := newFakeProductRepo(product("MASK-05", 4))
	orders := newFakeOrderRepo(orderWith("o1", line("MASK-05", 0)))
	uc := NewApplyOrderUseCase(orders, products, &fakeReconciler{}, testLogger())

	result, err := uc.ApplyOrder(context.Background(), "o1")
	require.NoError(t, err)

	assert.True(t, result.Applied)
	assert.Empty(t, result.AppliedItems)
	assert.Empty(t, result.SkippedSKUs)
	assert.Equal(t, int64(4), products.products["MASK-05"].Quantity)
}

// When the marker write fails after stock moved, the error must be the
// distinct ErrApplyMarkerFailed so callers know a blind retry double-applies.
func TestApplyOrder_MarkerFailureSurfacesDistinctError(t *testing.T) {
	products := newFakeProductRepo(product("HELMET-01", 10))
	orders := newFakeOrderRepo(orderWith("o1", line("HELMET-01", 5)))
	orders.markErr = fmt.Errorf("disk full")
	uc := NewApplyOrderUseCase(orders, products, &fakeReconciler{}, testLogger())

	_, err := uc.ApplyOrder(context.Background(), "o1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrApplyMarkerFailed))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, int64(15), products.products["HELMET-01"].Quantity,
		"stock increments are not rolled back on marker failure")
}

// Alert reconciliation runs per applied SKU and its failure never fails the apply.
func TestApplyOrder_AlertTriggerBestEffort(t *testing.T) {
	products := newFakeProductRepo(product("GLOVES-02", 0))
	orders := newFakeOrderRepo(orderWith("o1", line("GLOVES-02", 1)))
	rec := &fakeReconciler{err: fmt.Errorf("alert store down")}
	uc := NewApplyOrderUseCase(orders, products, rec, testLogger())

	result, err := uc.ApplyOrder(context.Background(), "o1")
	require.NoError(t, err, "alert derivation failure must not fail the apply")
	assert.True(t, result.Applied)
	assert.Equal(t, []string{"GLOVES-02"}, rec.skus)
}

func TestApplyOrder_MissingOrderReturnsNotFound(t *testing.T) {
	uc := NewApplyOrderUseCase(newFakeOrderRepo(), newFakeProductRepo(), &fakeReconciler{}, testLogger())

	_, err := uc.ApplyOrder(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
