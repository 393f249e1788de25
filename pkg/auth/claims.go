package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the caller identity for origination calls. Customer tokens
// are scoped to a single customer book entry; operator tokens act on behalf
// of any customer.
type Claims struct {
	jwt.RegisteredClaims
	CustomerID string   `json:"customer_id,omitempty"`
	Roles      []string `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// CanActFor reports whether the caller may read or drive applications that
// belong to customerID.
func (c Claims) CanActFor(customerID string) bool {
	if c.HasRole(RoleOperator) {
		return true
	}
	return c.HasRole(RoleCustomer) && c.CustomerID != "" && c.CustomerID == customerID
}

// Role constants
const (
	RoleOperator = "operator"
	RoleCustomer = "customer"
)
