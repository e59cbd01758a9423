package dto

import (
	"time"

	"github.com/savari-hq/savari/internal/repository"
)

// RouteActivityResponse is one row of the route activity report.
type RouteActivityResponse struct {
	RouteID        string `json:"route_id"`
	RouteName      string `json:"route_name"`
	TripCount      int64  `json:"trip_count"`
	PassengerCount int64  `json:"passenger_count"`
}

// RecentTripResponse is one row of the recent trips report.
type RecentTripResponse struct {
	TripSessionID string     `json:"trip_session_id"`
	RouteName     string     `json:"route_name"`
	DriverName    string     `json:"driver_name"`
	Status        string     `json:"status"`
	StartedAt     time.Time  `json:"started_at"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	ScanCount     int64      `json:"scan_count"`
}

// PassengerScanCountResponse is one row of the passenger scan count report.
type PassengerScanCountResponse struct {
	PassengerID   string `json:"passenger_id"`
	PassengerName string `json:"passenger_name"`
	ScanCount     int64  `json:"scan_count"`
}

// RouteActivityFromRows maps repository rows to the response shape.
func RouteActivityFromRows(rows []repository.RouteActivityRow) []RouteActivityResponse {
	result := make([]RouteActivityResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, RouteActivityResponse{
			RouteID:        row.RouteID,
			RouteName:      row.RouteName,
			TripCount:      row.TripCount,
			PassengerCount: row.PassengerCount,
		})
	}
	return result
}

// RecentTripsFromRows maps repository rows to the response shape.
func RecentTripsFromRows(rows []repository.RecentTripRow) []RecentTripResponse {
	result := make([]RecentTripResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, RecentTripResponse{
			TripSessionID: row.TripSessionID,
			RouteName:     row.RouteName,
			DriverName:    row.DriverName,
			Status:        row.Status,
			StartedAt:     row.StartedAt,
			EndedAt:       row.EndedAt,
			ScanCount:     row.ScanCount,
		})
	}
	return result
}

// PassengerScanCountsFromRows maps repository rows to the response shape.
func PassengerScanCountsFromRows(rows []repository.PassengerScanCountRow) []PassengerScanCountResponse {
	result := make([]PassengerScanCountResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, PassengerScanCountResponse{
			PassengerID:   row.PassengerID,
			PassengerName: row.PassengerName,
			ScanCount:     row.ScanCount,
		})
	}
	return result
}
