package models

import "fmt"

// Role is the marketplace side a user acts on. It is fixed at registration.
type Role string

const (
	RoleVendor   Role = "vendor"
	RoleSupplier Role = "supplier"
)

// ParseRole converts the wire value into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleVendor:
		return RoleVendor, nil
	case RoleSupplier:
		return RoleSupplier, nil
	}
	return "", fmt.Errorf("unknown user type %q", s)
}

func (r Role) String() string { return string(r) }
