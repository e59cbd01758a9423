package domain

import "time"

// Operator is a tenant organization owning routes, members and passengers.
// Created once at onboarding; every other entity is partitioned by its ID.
type Operator struct {
	ID          string
	Name        string
	Slug        string
	OwnerUserID string
	CreatedAt   time.Time
}
