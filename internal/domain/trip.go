package domain

import (
	"errors"
	"time"
)

// TripStatus enumerates lifecycle states for trip sessions.
type TripStatus string

const (
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
)

// ErrTripNotActive is returned by transitions attempted on a completed trip.
var ErrTripNotActive = errors.New("trip session is not active")

// TripSession is one driver's run of a route, bounded by start and end.
// The only transition is active -> completed; completed is terminal.
type TripSession struct {
	ID         string
	OperatorID string
	RouteID    string
	DriverID   string
	Status     TripStatus
	StartedAt  time.Time
	EndedAt    *time.Time
}

// NewTripSession builds an active session for a driver on a route.
func NewTripSession(operatorID, routeID, driverID string, now time.Time) *TripSession {
	return &TripSession{
		OperatorID: operatorID,
		RouteID:    routeID,
		DriverID:   driverID,
		Status:     TripStatusActive,
		StartedAt:  now,
	}
}

// End transitions the session to completed. Calling End on a completed
// session fails and leaves EndedAt untouched.
func (t *TripSession) End(now time.Time) error {
	if t.Status != TripStatusActive {
		return ErrTripNotActive
	}
	t.Status = TripStatusCompleted
	t.EndedAt = &now
	return nil
}

// AcceptsScans reports whether the session may record new scans.
func (t *TripSession) AcceptsScans() bool {
	return t.Status == TripStatusActive
}

// Scan is a single passenger check-in against a trip session. At most one
// scan exists per (trip session, passenger) pair.
type Scan struct {
	ID            string
	OperatorID    string
	TripSessionID string
	PassengerID   string
	ScannedAt     time.Time
	ScannedBy     string
}

// ScanStatus distinguishes a fresh check-in from a repeat of one already
// recorded. Both are successful outcomes.
type ScanStatus string

const (
	ScanStatusSuccess        ScanStatus = "success"
	ScanStatusAlreadyScanned ScanStatus = "already_scanned"
)

// ScanResult is the outcome of scanning a QR code into a trip.
type ScanResult struct {
	Status    ScanStatus
	Passenger *Passenger
}
