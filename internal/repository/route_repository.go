package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savari-hq/savari/internal/domain"
)

// RouteRepository encapsulates route persistence.
type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) error
	Update(ctx context.Context, route *domain.Route) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Route, error)
	ListByOperator(ctx context.Context, operatorID string) ([]domain.Route, error)
}

type routeRepository struct {
	pool *pgxpool.Pool
}

// NewRouteRepository instantiates the repository.
func NewRouteRepository(pool *pgxpool.Pool) RouteRepository {
	return &routeRepository{pool: pool}
}

func (r *routeRepository) Create(ctx context.Context, route *domain.Route) error {
	const query = `
        INSERT INTO routes (operator_id, name, description, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		route.OperatorID,
		route.Name,
		route.Description,
		route.IsActive,
	).Scan(&route.ID, &route.CreatedAt, &route.UpdatedAt)
}

func (r *routeRepository) Update(ctx context.Context, route *domain.Route) error {
	const query = `
        UPDATE routes SET name=$1, description=$2, is_active=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		route.Name,
		route.Description,
		route.IsActive,
		route.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *routeRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM routes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *routeRepository) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	const query = `
        SELECT id, operator_id, name, description, is_active, created_at, updated_at
        FROM routes WHERE id=$1`
	var route domain.Route
	if err := scanRoute(r.pool.QueryRow(ctx, query, id), &route); err != nil {
		return nil, translateNoRows(err)
	}
	return &route, nil
}

func (r *routeRepository) ListByOperator(ctx context.Context, operatorID string) ([]domain.Route, error) {
	const query = `
        SELECT id, operator_id, name, description, is_active, created_at, updated_at
        FROM routes WHERE operator_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Route
	for rows.Next() {
		var route domain.Route
		if err := scanRoute(rows, &route); err != nil {
			return nil, err
		}
		result = append(result, route)
	}
	return result, rows.Err()
}

func scanRoute(row pgx.Row, route *domain.Route) error {
	return row.Scan(
		&route.ID,
		&route.OperatorID,
		&route.Name,
		&route.Description,
		&route.IsActive,
		&route.CreatedAt,
		&route.UpdatedAt,
	)
}
