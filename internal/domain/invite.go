package domain

import "time"

// Invite is a single-use, time-bounded token granting membership at a role.
// Terminal once used or expired.
type Invite struct {
	ID         string
	OperatorID string
	Email      string
	Role       Role
	Token      string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	UsedAt     *time.Time
}

// Expired reports whether the invite's deadline has passed. Expiry wins over
// the used check: an expired invite is rejected regardless of UsedAt.
func (i *Invite) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Used reports whether the invite has already been accepted.
func (i *Invite) Used() bool {
	return i.UsedAt != nil
}
