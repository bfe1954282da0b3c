package models

import "github.com/golang-jwt/jwt/v5"

// Operator roles for the HTTP surface. The registry owner holds the
// "owner" role; depositors only need "depositor".
const (
	RoleOwner     = "owner"
	RoleDepositor = "depositor"
)

// OperatorClaims are the JWT claims carried by API callers. Address is
// the caller identity handed to the registry for owner checks and token
// transfers.
type OperatorClaims struct {
	jwt.RegisteredClaims
	Address string `json:"address"`
	Role    string `json:"role"`
}

// CanMutate reports whether the role may reach owner-only endpoints.
func (c *OperatorClaims) CanMutate() bool {
	return c.Role == RoleOwner
}
