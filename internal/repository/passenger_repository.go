package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savari-hq/savari/internal/domain"
)

// PassengerCursor is a keyset pagination position over (created_at, id) desc.
type PassengerCursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

// PassengerFilter captures listing parameters.
type PassengerFilter struct {
	OperatorID      string
	IncludeArchived bool
	Cursor          *PassengerCursor
	Limit           int
}

// PassengerRepository encapsulates passenger persistence.
type PassengerRepository interface {
	Create(ctx context.Context, passenger *domain.Passenger) error
	GetByID(ctx context.Context, id string) (*domain.Passenger, error)
	GetByQRCode(ctx context.Context, qrCode string) (*domain.Passenger, error)
	// Archive sets archived_at if unset. Repeated calls keep the first value.
	Archive(ctx context.Context, id string, at time.Time) (*domain.Passenger, error)
	List(ctx context.Context, filter PassengerFilter) ([]domain.Passenger, error)
}

type passengerRepository struct {
	pool *pgxpool.Pool
}

// NewPassengerRepository instantiates the repository.
func NewPassengerRepository(pool *pgxpool.Pool) PassengerRepository {
	return &passengerRepository{pool: pool}
}

func (r *passengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	const query = `
        INSERT INTO passengers (operator_id, business_id, name, email, qr_code)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		passenger.OperatorID,
		passenger.BusinessID,
		passenger.Name,
		passenger.Email,
		passenger.QRCode,
	).Scan(&passenger.ID, &passenger.CreatedAt)
	return translateUnique(err)
}

func (r *passengerRepository) GetByID(ctx context.Context, id string) (*domain.Passenger, error) {
	const query = `
        SELECT id, operator_id, business_id, name, email, qr_code, created_at, archived_at
        FROM passengers WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *passengerRepository) GetByQRCode(ctx context.Context, qrCode string) (*domain.Passenger, error) {
	const query = `
        SELECT id, operator_id, business_id, name, email, qr_code, created_at, archived_at
        FROM passengers WHERE qr_code=$1`
	return r.fetchSingle(ctx, query, qrCode)
}

func (r *passengerRepository) Archive(ctx context.Context, id string, at time.Time) (*domain.Passenger, error) {
	const query = `
        UPDATE passengers SET archived_at = COALESCE(archived_at, $2)
        WHERE id=$1
        RETURNING id, operator_id, business_id, name, email, qr_code, created_at, archived_at`
	var passenger domain.Passenger
	if err := scanPassenger(r.pool.QueryRow(ctx, query, id, at), &passenger); err != nil {
		return nil, translateNoRows(err)
	}
	return &passenger, nil
}

func (r *passengerRepository) List(ctx context.Context, filter PassengerFilter) ([]domain.Passenger, error) {
	base := `SELECT id, operator_id, business_id, name, email, qr_code, created_at, archived_at
             FROM passengers`
	clauses := []string{"operator_id=$1"}
	args := []any{filter.OperatorID}

	if !filter.IncludeArchived {
		clauses = append(clauses, "archived_at IS NULL")
	}
	if filter.Cursor != nil {
		args = append(args, filter.Cursor.CreatedAt, filter.Cursor.ID)
		clauses = append(clauses, fmt.Sprintf("(created_at, id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC, id DESC LIMIT %d`,
		base, strings.Join(clauses, " AND "), limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Passenger
	for rows.Next() {
		var passenger domain.Passenger
		if err := scanPassenger(rows, &passenger); err != nil {
			return nil, err
		}
		result = append(result, passenger)
	}
	return result, rows.Err()
}

func (r *passengerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Passenger, error) {
	var passenger domain.Passenger
	if err := scanPassenger(r.pool.QueryRow(ctx, query, arg), &passenger); err != nil {
		return nil, translateNoRows(err)
	}
	return &passenger, nil
}

func scanPassenger(row pgx.Row, passenger *domain.Passenger) error {
	return row.Scan(
		&passenger.ID,
		&passenger.OperatorID,
		&passenger.BusinessID,
		&passenger.Name,
		&passenger.Email,
		&passenger.QRCode,
		&passenger.CreatedAt,
		&passenger.ArchivedAt,
	)
}
