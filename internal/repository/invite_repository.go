package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savari-hq/savari/internal/domain"
)

// InviteRepository encapsulates invite persistence.
type InviteRepository interface {
	Create(ctx context.Context, invite *domain.Invite) error
	GetByToken(ctx context.Context, token string) (*domain.Invite, error)
	// Accept marks the invite used and inserts the member as one
	// transaction, so the same token can never admit two members. Returns
	// ErrInviteUsed when used_at was already set, ErrAlreadyMember when the
	// accepting user already holds a membership.
	Accept(ctx context.Context, inviteID string, usedAt time.Time, member *domain.Member) error
}

type inviteRepository struct {
	pool *pgxpool.Pool
}

// NewInviteRepository instantiates the repository.
func NewInviteRepository(pool *pgxpool.Pool) InviteRepository {
	return &inviteRepository{pool: pool}
}

func (r *inviteRepository) Create(ctx context.Context, invite *domain.Invite) error {
	const query = `
        INSERT INTO invites (operator_id, email, role, token, expires_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		invite.OperatorID,
		invite.Email,
		invite.Role,
		invite.Token,
		invite.ExpiresAt,
	).Scan(&invite.ID, &invite.CreatedAt)
	return translateUnique(err)
}

func (r *inviteRepository) GetByToken(ctx context.Context, token string) (*domain.Invite, error) {
	const query = `
        SELECT id, operator_id, email, role, token, created_at, expires_at, used_at
        FROM invites WHERE token=$1`
	var invite domain.Invite
	if err := r.pool.QueryRow(ctx, query, token).Scan(
		&invite.ID,
		&invite.OperatorID,
		&invite.Email,
		&invite.Role,
		&invite.Token,
		&invite.CreatedAt,
		&invite.ExpiresAt,
		&invite.UsedAt,
	); err != nil {
		return nil, translateNoRows(err)
	}
	return &invite, nil
}

func (r *inviteRepository) Accept(ctx context.Context, inviteID string, usedAt time.Time, member *domain.Member) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const markUsed = `
        UPDATE invites SET used_at=$2
        WHERE id=$1 AND used_at IS NULL`
	cmd, err := tx.Exec(ctx, markUsed, inviteID, usedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrInviteUsed
	}

	const insertMember = `
        INSERT INTO members (operator_id, user_id, role, email, name)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertMember,
		member.OperatorID,
		member.UserID,
		member.Role,
		member.Email,
		member.Name,
	).Scan(&member.ID, &member.CreatedAt); err != nil {
		return translateUnique(err)
	}

	return tx.Commit(ctx)
}
