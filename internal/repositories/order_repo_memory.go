package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"streetbazaar/internal/models"

	"github.com/google/uuid"
)

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
type MemoryOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order.
func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	stored := *order
	stored.Items = append([]models.CartItem(nil), order.Items...)
	r.orders[order.ID] = stored
	return nil
}

// List returns the orders of one vendor or one supplier, newest first.
func (r *MemoryOrderRepository) List(_ context.Context, query OrderQuery) ([]models.Order, error) {
	if query.VendorID == "" && query.SupplierID == "" {
		return nil, fmt.Errorf("order query needs a vendor or supplier id")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0)
	for _, order := range r.orders {
		if query.VendorID != "" && order.VendorID != query.VendorID {
			continue
		}
		if query.VendorID == "" && order.SupplierID != query.SupplierID {
			continue
		}
		orderList = append(orderList, order)
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].CreatedAt.After(orderList[j].CreatedAt)
	})
	return orderList, nil
}

// UpdateStatus updates the status of an order owned by supplierID.
func (r *MemoryOrderRepository) UpdateStatus(_ context.Context, id, supplierID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok || order.SupplierID != supplierID {
		return fmt.Errorf("order %s for supplier %s: %w", id, supplierID, ErrNotFound)
	}
	order.Status = status
	r.orders[id] = order
	return nil
}
