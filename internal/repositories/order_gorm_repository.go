package repositories

import (
	"context"
	"fmt"

	"streetbazaar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create inserts the order with its items as one row.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// List returns the orders of one vendor or one supplier, newest first.
func (r *GORMOrderRepository) List(ctx context.Context, query OrderQuery) ([]models.Order, error) {
	tx := r.db.WithContext(ctx).Model(&models.Order{})
	switch {
	case query.VendorID != "":
		tx = tx.Where("vendor_id = ?", query.VendorID)
	case query.SupplierID != "":
		tx = tx.Where("supplier_id = ?", query.SupplierID)
	default:
		return nil, fmt.Errorf("order query needs a vendor or supplier id")
	}

	orders := make([]models.Order, 0)
	if err := tx.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus is a single conditional update; ownership is part of the predicate.
func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, id, supplierID, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND supplier_id = ?", id, supplierID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s for supplier %s: %w", id, supplierID, ErrNotFound)
	}
	return nil
}
