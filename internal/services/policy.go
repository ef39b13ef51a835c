package services

import (
	"fmt"

	"streetbazaar/internal/models"
	"streetbazaar/internal/repositories"
)

// Operation names a state-changing or scoped action subject to access control.
type Operation string

const (
	OpCreateProduct     Operation = "catalog.create"
	OpCreateOrder       Operation = "order.create"
	OpUpdateOrderStatus Operation = "order.update_status"
	OpListOrders        Operation = "order.list"
)

// Authorize checks the role rule for op. Ownership of an order is not checked
// here: it is part of the order lookup itself.
func Authorize(op Operation, caller models.Caller) error {
	switch caller.Role {
	case models.RoleVendor:
		switch op {
		case OpCreateOrder, OpListOrders:
			return nil
		}
	case models.RoleSupplier:
		switch op {
		case OpCreateProduct, OpUpdateOrderStatus, OpListOrders:
			return nil
		}
	}
	return fmt.Errorf("%w: role %q cannot perform %s", ErrForbidden, caller.Role, op)
}

// OrderScopeFor returns the only orders caller may see: their own purchases for a
// vendor, orders addressed to them for a supplier.
func OrderScopeFor(caller models.Caller) (repositories.OrderQuery, error) {
	switch caller.Role {
	case models.RoleVendor:
		return repositories.OrderQuery{VendorID: caller.ID}, nil
	case models.RoleSupplier:
		return repositories.OrderQuery{SupplierID: caller.ID}, nil
	}
	return repositories.OrderQuery{}, fmt.Errorf("%w: role %q has no order view", ErrForbidden, caller.Role)
}
