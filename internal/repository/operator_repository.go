package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savari-hq/savari/internal/domain"
)

// OperatorRepository encapsulates tenant persistence.
type OperatorRepository interface {
	// CreateWithOwner inserts the operator and its founding member as one
	// transaction; there is no state where the operator exists without it.
	CreateWithOwner(ctx context.Context, operator *domain.Operator, founder *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Operator, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Operator, error)
}

type operatorRepository struct {
	pool *pgxpool.Pool
}

// NewOperatorRepository instantiates the repository.
func NewOperatorRepository(pool *pgxpool.Pool) OperatorRepository {
	return &operatorRepository{pool: pool}
}

func (r *operatorRepository) CreateWithOwner(ctx context.Context, operator *domain.Operator, founder *domain.Member) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertOperator = `
        INSERT INTO operators (name, slug, owner_user_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertOperator,
		operator.Name,
		operator.Slug,
		operator.OwnerUserID,
	).Scan(&operator.ID, &operator.CreatedAt); err != nil {
		return translateUnique(err)
	}

	founder.OperatorID = operator.ID
	const insertMember = `
        INSERT INTO members (operator_id, user_id, role, email, name)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertMember,
		founder.OperatorID,
		founder.UserID,
		founder.Role,
		founder.Email,
		founder.Name,
	).Scan(&founder.ID, &founder.CreatedAt); err != nil {
		return translateUnique(err)
	}

	return tx.Commit(ctx)
}

func (r *operatorRepository) GetByID(ctx context.Context, id string) (*domain.Operator, error) {
	const query = `
        SELECT id, name, slug, owner_user_id, created_at
        FROM operators WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *operatorRepository) GetBySlug(ctx context.Context, slug string) (*domain.Operator, error) {
	const query = `
        SELECT id, name, slug, owner_user_id, created_at
        FROM operators WHERE slug=$1`
	return r.fetchSingle(ctx, query, slug)
}

func (r *operatorRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Operator, error) {
	var operator domain.Operator
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&operator.ID,
		&operator.Name,
		&operator.Slug,
		&operator.OwnerUserID,
		&operator.CreatedAt,
	); err != nil {
		return nil, translateNoRows(err)
	}
	return &operator, nil
}
