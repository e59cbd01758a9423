package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced by repositories. Uniqueness invariants live in the
// database schema; repositories translate constraint violations into these so
// services never inspect driver errors.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrSlugTaken        = errors.New("slug already taken")
	ErrOwnerHasOperator = errors.New("user already owns an operator")
	ErrAlreadyMember    = errors.New("user already belongs to an operator")
	ErrActiveTripExists = errors.New("driver already has an active trip")
	ErrInviteUsed       = errors.New("invite already used")
	ErrDuplicateQRCode  = errors.New("qr code already issued")
)

const uniqueViolationCode = "23505"

// translateUnique maps a Postgres unique violation to the sentinel matching
// its constraint. Other errors pass through unchanged.
func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_email_key":
		return ErrDuplicateEmail
	case "operators_slug_key":
		return ErrSlugTaken
	case "operators_owner_user_id_key":
		return ErrOwnerHasOperator
	case "members_user_id_key":
		return ErrAlreadyMember
	case "trip_sessions_one_active_per_driver":
		return ErrActiveTripExists
	case "passengers_qr_code_key":
		return ErrDuplicateQRCode
	}
	return err
}

// translateNoRows maps pgx.ErrNoRows to ErrNotFound.
func translateNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
