package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RouteActivityRow aggregates trip and passenger counts for one route.
type RouteActivityRow struct {
	RouteID        string
	RouteName      string
	TripCount      int64
	PassengerCount int64
}

// RecentTripRow is a trip session resolved with driver and route names.
type RecentTripRow struct {
	TripSessionID string
	RouteName     string
	DriverName    string
	Status        string
	StartedAt     time.Time
	EndedAt       *time.Time
	ScanCount     int64
}

// PassengerScanCountRow is a passenger's lifetime check-in count.
type PassengerScanCountRow struct {
	PassengerID   string
	PassengerName string
	ScanCount     int64
}

// ReportRepository runs read-only aggregations for dashboards. Everything is
// recomputed at query time; nothing here is cached.
type ReportRepository interface {
	RouteActivity(ctx context.Context, operatorID string, from, to time.Time) ([]RouteActivityRow, error)
	RecentTrips(ctx context.Context, operatorID string, limit int) ([]RecentTripRow, error)
	PassengerScanCounts(ctx context.Context, operatorID string) ([]PassengerScanCountRow, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates the repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) RouteActivity(ctx context.Context, operatorID string, from, to time.Time) ([]RouteActivityRow, error) {
	const query = `
        SELECT rt.id, rt.name,
               COUNT(DISTINCT ts.id) AS trip_count,
               COUNT(DISTINCT sc.passenger_id) AS passenger_count
        FROM routes rt
        LEFT JOIN trip_sessions ts
            ON ts.route_id = rt.id AND ts.started_at >= $2 AND ts.started_at < $3
        LEFT JOIN scans sc ON sc.trip_session_id = ts.id
        WHERE rt.operator_id = $1
        GROUP BY rt.id, rt.name
        ORDER BY rt.name`
	rows, err := r.pool.Query(ctx, query, operatorID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RouteActivityRow
	for rows.Next() {
		var row RouteActivityRow
		if err := rows.Scan(&row.RouteID, &row.RouteName, &row.TripCount, &row.PassengerCount); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *reportRepository) RecentTrips(ctx context.Context, operatorID string, limit int) ([]RecentTripRow, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
        SELECT ts.id, rt.name, m.name, ts.status, ts.started_at, ts.ended_at,
               (SELECT COUNT(*) FROM scans sc WHERE sc.trip_session_id = ts.id)
        FROM trip_sessions ts
        JOIN routes rt ON rt.id = ts.route_id
        JOIN members m ON m.user_id = ts.driver_id
        WHERE ts.operator_id = $1
        ORDER BY ts.started_at DESC
        LIMIT $2`
	rows, err := r.pool.Query(ctx, query, operatorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RecentTripRow
	for rows.Next() {
		var row RecentTripRow
		if err := rows.Scan(&row.TripSessionID, &row.RouteName, &row.DriverName, &row.Status, &row.StartedAt, &row.EndedAt, &row.ScanCount); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *reportRepository) PassengerScanCounts(ctx context.Context, operatorID string) ([]PassengerScanCountRow, error) {
	const query = `
        SELECT p.id, p.name, COUNT(sc.id) AS scan_count
        FROM passengers p
        LEFT JOIN scans sc ON sc.passenger_id = p.id
        WHERE p.operator_id = $1
        GROUP BY p.id, p.name
        ORDER BY scan_count DESC, p.name`
	rows, err := r.pool.Query(ctx, query, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PassengerScanCountRow
	for rows.Next() {
		var row PassengerScanCountRow
		if err := rows.Scan(&row.PassengerID, &row.PassengerName, &row.ScanCount); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
