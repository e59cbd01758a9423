package domain

import "time"

// Route is a transport line owned by an operator.
type Route struct {
	ID          string
	OperatorID  string
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
