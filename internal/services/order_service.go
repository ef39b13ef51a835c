package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"streetbazaar/internal/models"
	"streetbazaar/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderNumberPrefix precedes the creation timestamp in an order number.
const OrderNumberPrefix = "ORD"

const orderNumberLayout = "20060102150405"

// Routing keys of published order events.
const (
	RoutingKeyOrderCreated       = "order.created"
	RoutingKeyOrderStatusUpdated = "order.status_updated"
)

// EventPublisher delivers order events to downstream consumers.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderEvent is the message body of every order event.
type OrderEvent struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber,omitempty"`
	VendorID    string    `json:"vendorId,omitempty"`
	SupplierID  string    `json:"supplierId"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"totalAmount,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// OrderService is the order ledger.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher, logger *slog.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    resolveLogger(logger),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source used for order numbers and timestamps.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// OrderNumber derives the human-readable order number for an instant.
func OrderNumber(t time.Time) string {
	return OrderNumberPrefix + t.Format(orderNumberLayout)
}

// TotalAmount sums the caller-supplied line totals. Unit prices and quantities
// are not re-derived.
func TotalAmount(items []models.CartItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.TotalPrice))
	}
	return total.InexactFloat64()
}

// CreateOrder places an order for the calling vendor. The order is attributed to
// the supplier of the first item.
func (s *OrderService) CreateOrder(ctx context.Context, caller models.Caller, items []models.CartItem, deliveryAddress string) (*models.Order, error) {
	if err := Authorize(OpCreateOrder, caller); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	now := s.now()
	newOrder := &models.Order{
		ID:              uuid.New().String(),
		OrderNumber:     OrderNumber(now),
		VendorID:        caller.ID,
		VendorName:      caller.BusinessName,
		SupplierID:      items[0].SupplierID,
		SupplierName:    items[0].SupplierName,
		Items:           append([]models.CartItem(nil), items...),
		TotalAmount:     TotalAmount(items),
		Status:          models.OrderStatusPending,
		DeliveryAddress: deliveryAddress,
		CreatedAt:       now,
	}

	if err := s.orderRepo.Create(ctx, newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.logger.Info("order created",
		"order_id", newOrder.ID,
		"order_number", newOrder.OrderNumber,
		"vendor_id", newOrder.VendorID,
		"supplier_id", newOrder.SupplierID,
	)
	s.publish(RoutingKeyOrderCreated, OrderEvent{
		OrderID:     newOrder.ID,
		OrderNumber: newOrder.OrderNumber,
		VendorID:    newOrder.VendorID,
		SupplierID:  newOrder.SupplierID,
		Status:      newOrder.Status,
		TotalAmount: newOrder.TotalAmount,
		OccurredAt:  now,
	})
	return newOrder, nil
}

// GetOrders returns the caller's own view of the ledger.
func (s *OrderService) GetOrders(ctx context.Context, caller models.Caller) ([]models.Order, error) {
	if err := Authorize(OpListOrders, caller); err != nil {
		return nil, err
	}
	scope, err := OrderScopeFor(caller)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.List(ctx, scope)
}

// UpdateOrderStatus sets a free-text status on an order the calling supplier owns.
// An order owned by someone else is reported exactly like a missing one.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, caller models.Caller, orderID, status string) error {
	if err := Authorize(OpUpdateOrderStatus, caller); err != nil {
		return err
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, caller.ID, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		return fmt.Errorf("failed to update order status for order %s: %w", orderID, err)
	}

	s.logger.Info("order status updated", "order_id", orderID, "supplier_id", caller.ID, "status", status)
	s.publish(RoutingKeyOrderStatusUpdated, OrderEvent{
		OrderID:    orderID,
		SupplierID: caller.ID,
		Status:     status,
		OccurredAt: s.now(),
	})
	return nil
}

// publish is best effort: a broker failure never fails the request.
func (s *OrderService) publish(routingKey string, event OrderEvent) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("failed to marshal order event", "routing_key", routingKey, "error", err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		s.logger.Warn("failed to publish order event",
			"routing_key", routingKey,
			"order_id", event.OrderID,
			"error", err,
		)
	}
}
