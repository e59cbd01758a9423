package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savari-hq/savari/internal/domain"
)

// ScanEntry joins a scan with its passenger for roster rendering.
type ScanEntry struct {
	Scan      domain.Scan
	Passenger domain.Passenger
}

// TripRepository encapsulates trip session and scan persistence.
type TripRepository interface {
	// CreateSession inserts an active session. A second active session for
	// the same driver hits the partial unique index and yields
	// ErrActiveTripExists.
	CreateSession(ctx context.Context, session *domain.TripSession) error
	GetSession(ctx context.Context, id string) (*domain.TripSession, error)
	GetActiveSessionByDriver(ctx context.Context, driverID string) (*domain.TripSession, error)
	// CompleteSession flips active -> completed. Returns false when the
	// session was not active, leaving ended_at untouched.
	CompleteSession(ctx context.Context, id string, endedAt time.Time) (bool, error)
	// InsertScan records a check-in. Returns false when a scan for the same
	// (session, passenger) pair already exists; nothing is written then.
	InsertScan(ctx context.Context, scan *domain.Scan) (bool, error)
	ListScans(ctx context.Context, sessionID string) ([]ScanEntry, error)
}

type tripRepository struct {
	pool *pgxpool.Pool
}

// NewTripRepository instantiates the repository.
func NewTripRepository(pool *pgxpool.Pool) TripRepository {
	return &tripRepository{pool: pool}
}

func (r *tripRepository) CreateSession(ctx context.Context, session *domain.TripSession) error {
	const query = `
        INSERT INTO trip_sessions (operator_id, route_id, driver_id, status, started_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		session.OperatorID,
		session.RouteID,
		session.DriverID,
		session.Status,
		session.StartedAt,
	).Scan(&session.ID)
	return translateUnique(err)
}

func (r *tripRepository) GetSession(ctx context.Context, id string) (*domain.TripSession, error) {
	const query = `
        SELECT id, operator_id, route_id, driver_id, status, started_at, ended_at
        FROM trip_sessions WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *tripRepository) GetActiveSessionByDriver(ctx context.Context, driverID string) (*domain.TripSession, error) {
	const query = `
        SELECT id, operator_id, route_id, driver_id, status, started_at, ended_at
        FROM trip_sessions WHERE driver_id=$1 AND status='active'`
	return r.fetchSingle(ctx, query, driverID)
}

func (r *tripRepository) CompleteSession(ctx context.Context, id string, endedAt time.Time) (bool, error) {
	const query = `
        UPDATE trip_sessions SET status=$2, ended_at=$3
        WHERE id=$1 AND status=$4`
	cmd, err := r.pool.Exec(ctx, query, id, domain.TripStatusCompleted, endedAt, domain.TripStatusActive)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *tripRepository) InsertScan(ctx context.Context, scan *domain.Scan) (bool, error) {
	const query = `
        INSERT INTO scans (operator_id, trip_session_id, passenger_id, scanned_at, scanned_by)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT ON CONSTRAINT scans_trip_session_passenger_key DO NOTHING
        RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		scan.OperatorID,
		scan.TripSessionID,
		scan.PassengerID,
		scan.ScannedAt,
		scan.ScannedBy,
	).Scan(&scan.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *tripRepository) ListScans(ctx context.Context, sessionID string) ([]ScanEntry, error) {
	const query = `
        SELECT s.id, s.operator_id, s.trip_session_id, s.passenger_id, s.scanned_at, s.scanned_by,
               p.id, p.operator_id, p.business_id, p.name, p.email, p.qr_code, p.created_at, p.archived_at
        FROM scans s
        JOIN passengers p ON p.id = s.passenger_id
        WHERE s.trip_session_id=$1
        ORDER BY s.scanned_at, s.id`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ScanEntry
	for rows.Next() {
		var entry ScanEntry
		if err := rows.Scan(
			&entry.Scan.ID,
			&entry.Scan.OperatorID,
			&entry.Scan.TripSessionID,
			&entry.Scan.PassengerID,
			&entry.Scan.ScannedAt,
			&entry.Scan.ScannedBy,
			&entry.Passenger.ID,
			&entry.Passenger.OperatorID,
			&entry.Passenger.BusinessID,
			&entry.Passenger.Name,
			&entry.Passenger.Email,
			&entry.Passenger.QRCode,
			&entry.Passenger.CreatedAt,
			&entry.Passenger.ArchivedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *tripRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.TripSession, error) {
	var session domain.TripSession
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&session.ID,
		&session.OperatorID,
		&session.RouteID,
		&session.DriverID,
		&session.Status,
		&session.StartedAt,
		&session.EndedAt,
	); err != nil {
		return nil, translateNoRows(err)
	}
	return &session, nil
}
