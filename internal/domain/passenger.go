package domain

import "time"

// Passenger is an end rider holding a QR ticket. Registered by a business
// member; soft-deleted by setting ArchivedAt, which is terminal.
type Passenger struct {
	ID         string
	OperatorID string
	BusinessID string
	Name       string
	Email      string
	QRCode     string
	CreatedAt  time.Time
	ArchivedAt *time.Time
}

// Archived reports whether the passenger has been archived.
func (p *Passenger) Archived() bool {
	return p.ArchivedAt != nil
}
