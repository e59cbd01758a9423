package dto

import (
	"time"

	"github.com/savari-hq/savari/internal/domain"
)

// CreatePassengerRequest payload for registering a rider.
type CreatePassengerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PassengerResponse is the public shape of a passenger.
type PassengerResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	QRCode     string     `json:"qr_code"`
	CreatedAt  time.Time  `json:"created_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

// PassengerPageResponse is one listing page.
type PassengerPageResponse struct {
	Passengers []PassengerResponse `json:"passengers"`
	NextCursor string              `json:"next_cursor,omitempty"`
}

// PassengerFromDomain maps a passenger.
func PassengerFromDomain(passenger *domain.Passenger) PassengerResponse {
	return PassengerResponse{
		ID:         passenger.ID,
		Name:       passenger.Name,
		Email:      passenger.Email,
		QRCode:     passenger.QRCode,
		CreatedAt:  passenger.CreatedAt,
		ArchivedAt: passenger.ArchivedAt,
	}
}

// PassengersFromDomain maps a slice of passengers.
func PassengersFromDomain(passengers []domain.Passenger) []PassengerResponse {
	result := make([]PassengerResponse, 0, len(passengers))
	for i := range passengers {
		result = append(result, PassengerFromDomain(&passengers[i]))
	}
	return result
}
