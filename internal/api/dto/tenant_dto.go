package dto

import (
	"time"

	"github.com/savari-hq/savari/internal/domain"
)

// CreateOperatorRequest payload for tenant onboarding.
type CreateOperatorRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateInviteRequest payload for inviting a driver or business member.
type CreateInviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AcceptInviteRequest payload for redeeming an invite token.
type AcceptInviteRequest struct {
	Token string `json:"token"`
}

// OperatorResponse is the public shape of an operator.
type OperatorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberResponse is the public shape of a membership.
type MemberResponse struct {
	ID         string    `json:"id"`
	OperatorID string    `json:"operator_id"`
	UserID     string    `json:"user_id"`
	Role       string    `json:"role"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// InviteResponse is the public shape of an invite. The token is returned to
// the creating operator so it can be forwarded out-of-band if needed.
type InviteResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// OperatorFromDomain maps an operator.
func OperatorFromDomain(operator *domain.Operator) OperatorResponse {
	return OperatorResponse{
		ID:        operator.ID,
		Name:      operator.Name,
		Slug:      operator.Slug,
		CreatedAt: operator.CreatedAt,
	}
}

// MemberFromDomain maps a member.
func MemberFromDomain(member *domain.Member) MemberResponse {
	return MemberResponse{
		ID:         member.ID,
		OperatorID: member.OperatorID,
		UserID:     member.UserID,
		Role:       string(member.Role),
		Email:      member.Email,
		Name:       member.Name,
		CreatedAt:  member.CreatedAt,
	}
}

// InviteFromDomain maps an invite.
func InviteFromDomain(invite *domain.Invite) InviteResponse {
	return InviteResponse{
		ID:        invite.ID,
		Email:     invite.Email,
		Role:      string(invite.Role),
		Token:     invite.Token,
		ExpiresAt: invite.ExpiresAt,
	}
}
