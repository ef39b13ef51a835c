package models

import "time"

// Product is a catalog listing owned by the supplier that created it.
// SupplierName is a snapshot of the supplier's business name at creation time.
type Product struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Category     string    `json:"category" gorm:"type:varchar(100);index"`
	Description  string    `json:"description" gorm:"type:text"`
	Price        float64   `json:"price"`
	Unit         string    `json:"unit" gorm:"type:varchar(32)"`
	Stock        int       `json:"stock"`
	MinOrderQty  int       `json:"minOrderQty"`
	MaxOrderQty  int       `json:"maxOrderQty"`
	SupplierID   string    `json:"supplierId" gorm:"type:varchar(36);index"`
	SupplierName string    `json:"supplierName" gorm:"type:varchar(255)"`
	IsAvailable  bool      `json:"isAvailable" gorm:"index"`
	CreatedAt    time.Time `json:"createdAt"`
}
