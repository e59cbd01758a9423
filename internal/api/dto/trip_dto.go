package dto

import (
	"time"

	"github.com/savari-hq/savari/internal/domain"
	"github.com/savari-hq/savari/internal/repository"
	"github.com/savari-hq/savari/internal/service"
)

// StartTripRequest payload for opening a trip session.
type StartTripRequest struct {
	RouteID string `json:"route_id"`
}

// ScanRequest payload for checking a passenger in.
type ScanRequest struct {
	QRCode string `json:"qr_code"`
}

// TripSessionResponse is the public shape of a trip session.
type TripSessionResponse struct {
	ID        string     `json:"id"`
	RouteID   string     `json:"route_id"`
	DriverID  string     `json:"driver_id"`
	Status    string     `json:"status"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// ScanResultResponse distinguishes a fresh check-in from a duplicate. Both
// are 200s; the status field is informational.
type ScanResultResponse struct {
	Status    string            `json:"status"`
	Passenger PassengerResponse `json:"passenger"`
}

// ScanEntryResponse is one roster line.
type ScanEntryResponse struct {
	ScannedAt time.Time         `json:"scanned_at"`
	Passenger PassengerResponse `json:"passenger"`
}

// ActiveTripResponse is the driver's live roster view.
type ActiveTripResponse struct {
	Session TripSessionResponse `json:"session"`
	Route   RouteResponse       `json:"route"`
	Scans   []ScanEntryResponse `json:"scans"`
}

// TripSessionFromDomain maps a trip session.
func TripSessionFromDomain(session *domain.TripSession) TripSessionResponse {
	return TripSessionResponse{
		ID:        session.ID,
		RouteID:   session.RouteID,
		DriverID:  session.DriverID,
		Status:    string(session.Status),
		StartedAt: session.StartedAt,
		EndedAt:   session.EndedAt,
	}
}

// ScanResultFromDomain maps a scan outcome.
func ScanResultFromDomain(result *domain.ScanResult) ScanResultResponse {
	return ScanResultResponse{
		Status:    string(result.Status),
		Passenger: PassengerFromDomain(result.Passenger),
	}
}

// ActiveTripFromService maps the roster view.
func ActiveTripFromService(trip *service.ActiveTrip) ActiveTripResponse {
	return ActiveTripResponse{
		Session: TripSessionFromDomain(trip.Session),
		Route:   RouteFromDomain(trip.Route),
		Scans:   scanEntriesFromRepo(trip.Scans),
	}
}

func scanEntriesFromRepo(entries []repository.ScanEntry) []ScanEntryResponse {
	result := make([]ScanEntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, ScanEntryResponse{
			ScannedAt: entries[i].Scan.ScannedAt,
			Passenger: PassengerFromDomain(&entries[i].Passenger),
		})
	}
	return result
}
