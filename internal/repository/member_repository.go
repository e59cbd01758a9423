package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savari-hq/savari/internal/domain"
)

// MemberRepository encapsulates membership persistence.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Member, error)
	ListByOperator(ctx context.Context, operatorID string) ([]domain.Member, error)
	Delete(ctx context.Context, id string) error
}

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository instantiates the repository.
func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &memberRepository{pool: pool}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	const query = `
        INSERT INTO members (operator_id, user_id, role, email, name)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		member.OperatorID,
		member.UserID,
		member.Role,
		member.Email,
		member.Name,
	).Scan(&member.ID, &member.CreatedAt)
	return translateUnique(err)
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	const query = `
        SELECT id, operator_id, user_id, role, email, name, created_at
        FROM members WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *memberRepository) GetByUserID(ctx context.Context, userID string) (*domain.Member, error) {
	const query = `
        SELECT id, operator_id, user_id, role, email, name, created_at
        FROM members WHERE user_id=$1`
	return r.fetchSingle(ctx, query, userID)
}

func (r *memberRepository) ListByOperator(ctx context.Context, operatorID string) ([]domain.Member, error) {
	const query = `
        SELECT id, operator_id, user_id, role, email, name, created_at
        FROM members WHERE operator_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Member
	for rows.Next() {
		var member domain.Member
		if err := scanMember(rows, &member); err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}

func (r *memberRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *memberRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Member, error) {
	var member domain.Member
	if err := scanMember(r.pool.QueryRow(ctx, query, arg), &member); err != nil {
		return nil, translateNoRows(err)
	}
	return &member, nil
}

func scanMember(row pgx.Row, member *domain.Member) error {
	return row.Scan(
		&member.ID,
		&member.OperatorID,
		&member.UserID,
		&member.Role,
		&member.Email,
		&member.Name,
		&member.CreatedAt,
	)
}
