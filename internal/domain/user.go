package domain

import "time"

// User is an authenticated account. Membership in an operator is tracked
// separately; a freshly registered user has no role anywhere yet.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
