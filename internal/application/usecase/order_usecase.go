package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/safetrack/safetrack-api/internal/application/dto"
	"github.com/safetrack/safetrack-api/internal/application/ports"
	"github.com/safetrack/safetrack-api/internal/domain"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
	"github.com/safetrack/safetrack-api/internal/domain/repository"
)

// OrderUseCase manufacturer order intake and reads. Applying an order to
// inventory lives in the inventory package; this use case never touches
// stock quantities.
type OrderUseCase struct {
	orderRepo repository.ManufacturerOrderRepository
	parser    ports.DocumentParser
}

// NewOrderUseCase builds the use case. parser may be nil when no AI key is
// configured; ParseDocument then reports the feature as unavailable.
func NewOrderUseCase(orderRepo repository.ManufacturerOrderRepository, parser ports.DocumentParser) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, parser: parser}
}

// Create submits a purchase order.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.Supplier == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.SKU == "" || it.QuantityOrdered < 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	order := &entity.ManufacturerOrder{
		ID:               uuid.New().String(),
		OrderNumber:      in.OrderNumber,
		Supplier:         in.Supplier,
		Status:           entity.OrderStatusPending,
		ExpectedDelivery: in.ExpectedDelivery,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, it := range in.Items {
		order.Items = append(order.Items, entity.OrderItem{
			ID:              uuid.New().String(),
			OrderID:         order.ID,
			SKU:             it.SKU,
			QuantityOrdered: it.QuantityOrdered,
			UnitCost:        it.UnitCost,
		})
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return toOrderResponse(order), nil
}

// GetByID returns an order with its items.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// List returns a page of orders.
func (uc *OrderUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.OrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

// ParseDocument extracts an order draft from a purchase-order document.
func (uc *OrderUseCase) ParseDocument(ctx context.Context, in dto.ParseOrderDocumentRequest) (*dto.ParsedOrderResponse, error) {
	if in.Text == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.parser == nil {
		return nil, fmt.Errorf("document parsing is not configured")
	}
	parsed, err := uc.parser.ParsePurchaseOrder(ctx, in.Text)
	if err != nil {
		return nil, fmt.Errorf("parse purchase order document: %w", err)
	}
	resp := &dto.ParsedOrderResponse{
		Supplier:    parsed.Supplier,
		OrderNumber: parsed.OrderNumber,
		Confidence:  parsed.Confidence,
	}
	for _, it := range parsed.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			SKU:             it.SKU,
			QuantityOrdered: it.Quantity,
			UnitCost:        it.UnitCost,
		})
	}
	return resp, nil
}

func toOrderResponse(o *entity.ManufacturerOrder) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		Supplier:           o.Supplier,
		Status:             o.Status,
		ExpectedDelivery:   o.ExpectedDelivery,
		ActualDelivery:     o.ActualDelivery,
		InventoryAppliedAt: o.InventoryAppliedAt,
		CreatedAt:          o.CreatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			SKU:             it.SKU,
			QuantityOrdered: it.QuantityOrdered,
			UnitCost:        it.UnitCost,
		})
	}
	return resp
}
