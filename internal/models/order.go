package models

import "time"

// OrderStatusPending is the status every order starts in. Later values are free text.
const OrderStatusPending = "pending"

// CartItem is a point-in-time snapshot of a product line, as sent by the vendor.
type CartItem struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalPrice   float64 `json:"totalPrice"`
	SupplierID   string  `json:"supplierId"`
	SupplierName string  `json:"supplierName"`
}

// Order is placed once by a vendor. Only Status changes afterwards.
type Order struct {
	ID              string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNumber     string     `json:"orderNumber" gorm:"type:varchar(32);index"`
	VendorID        string     `json:"vendorId" gorm:"type:varchar(36);index"`
	VendorName      string     `json:"vendorName" gorm:"type:varchar(255)"`
	SupplierID      string     `json:"supplierId" gorm:"type:varchar(36);index"`
	SupplierName    string     `json:"supplierName" gorm:"type:varchar(255)"`
	Items           []CartItem `json:"items" gorm:"type:jsonb;serializer:json"`
	TotalAmount     float64    `json:"totalAmount"`
	Status          string     `json:"status" gorm:"type:varchar(64)"`
	DeliveryAddress string     `json:"deliveryAddress" gorm:"type:text"`
	CreatedAt       time.Time  `json:"createdAt" gorm:"index"`
}
