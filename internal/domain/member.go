package domain

import "time"

// Role enumerates member roles within an operator.
type Role string

const (
	RoleOperator Role = "operator"
	RoleDriver   Role = "driver"
	RoleBusiness Role = "business"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleOperator, RoleDriver, RoleBusiness:
		return true
	}
	return false
}

// Member associates a user with exactly one operator at one role.
// A user holds at most one Member row globally.
type Member struct {
	ID         string
	OperatorID string
	UserID     string
	Role       Role
	Email      string
	Name       string
	CreatedAt  time.Time
}

// Caller carries the authenticated caller's identity and membership, resolved
// once per request by the auth middleware and threaded through service calls.
type Caller struct {
	UserID     string
	OperatorID string
	Role       Role
}

// HasMembership reports whether the caller belongs to an operator.
func (c Caller) HasMembership() bool {
	return c.OperatorID != ""
}
