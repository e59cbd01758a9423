package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/savari-hq/savari/internal/domain"
	"github.com/savari-hq/savari/internal/events"
	"github.com/savari-hq/savari/internal/repository"
	apperrors "github.com/savari-hq/savari/pkg/util"
)

// TenantService coordinates operator onboarding and membership flows.
type TenantService struct {
	operators  repository.OperatorRepository
	members    repository.MemberRepository
	invites    repository.InviteRepository
	dispatcher events.Dispatcher
	inviteTTL  time.Duration
}

// TenantDependencies bundles repositories for the tenant service.
type TenantDependencies struct {
	OperatorRepo repository.OperatorRepository
	MemberRepo   repository.MemberRepository
	InviteRepo   repository.InviteRepository
	Dispatcher   events.Dispatcher
	InviteTTL    time.Duration
}

// Membership pairs a member row with its resolved operator.
type Membership struct {
	Member   *domain.Member
	Operator *domain.Operator
}

// NewTenantService constructs the service.
func NewTenantService(deps TenantDependencies) *TenantService {
	ttl := deps.InviteTTL
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &TenantService{
		operators:  deps.OperatorRepo,
		members:    deps.MemberRepo,
		invites:    deps.InviteRepo,
		dispatcher: deps.Dispatcher,
		inviteTTL:  ttl,
	}
}

// CreateOperator onboards a new tenant. The operator and its founding member
// are inserted atomically; a caller who already owns an operator or belongs
// to one gets a conflict.
func (s *TenantService) CreateOperator(ctx context.Context, caller domain.Caller, owner *domain.User, name, slugInput string) (*domain.Operator, *domain.Member, error) {
	if caller.HasMembership() {
		return nil, nil, apperrors.NewConflict("caller already belongs to an operator", nil)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, apperrors.NewValidationError("operator name required", nil)
	}
	if strings.TrimSpace(slugInput) == "" {
		slugInput = name
	}

	operator := &domain.Operator{
		Name:        name,
		Slug:        slug.Make(slugInput),
		OwnerUserID: owner.ID,
	}
	founder := &domain.Member{
		UserID: owner.ID,
		Role:   domain.RoleOperator,
		Email:  owner.Email,
		Name:   owner.Name,
	}

	if err := s.operators.CreateWithOwner(ctx, operator, founder); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlugTaken):
			return nil, nil, apperrors.NewConflict("slug already taken", map[string]any{"slug": operator.Slug})
		case errors.Is(err, repository.ErrOwnerHasOperator):
			return nil, nil, apperrors.NewConflict("caller already owns an operator", nil)
		case errors.Is(err, repository.ErrAlreadyMember):
			return nil, nil, apperrors.NewConflict("caller already belongs to an operator", nil)
		}
		return nil, nil, err
	}
	return operator, founder, nil
}

// GetMembership resolves a user's single membership, or nil when there is none.
func (s *TenantService) GetMembership(ctx context.Context, userID string) (*Membership, error) {
	member, err := s.members.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	operator, err := s.operators.GetByID(ctx, member.OperatorID)
	if err != nil {
		return nil, err
	}
	return &Membership{Member: member, Operator: operator}, nil
}

// ListMembers returns the caller's operator roster.
func (s *TenantService) ListMembers(ctx context.Context, caller domain.Caller) ([]domain.Member, error) {
	if caller.Role != domain.RoleOperator {
		return nil, apperrors.NewForbidden("operator role required")
	}
	return s.members.ListByOperator(ctx, caller.OperatorID)
}

// RemoveMember deletes a driver or business membership. The operator role
// itself can never be removed.
func (s *TenantService) RemoveMember(ctx context.Context, caller domain.Caller, memberID string) error {
	if caller.Role != domain.RoleOperator {
		return apperrors.NewForbidden("operator role required")
	}

	member, err := s.members.GetByID(ctx, memberID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("member", nil)
	}
	if err != nil {
		return err
	}
	if member.OperatorID != caller.OperatorID {
		return apperrors.NewCrossTenant("member")
	}
	if member.Role == domain.RoleOperator {
		return apperrors.NewForbidden("the operator member cannot be removed")
	}

	return s.members.Delete(ctx, member.ID)
}

// CreateInvite issues a single-use invite token for a driver or business
// member and queues the invite email.
func (s *TenantService) CreateInvite(ctx context.Context, caller domain.Caller, email string, role domain.Role) (*domain.Invite, error) {
	if caller.Role != domain.RoleOperator {
		return nil, apperrors.NewForbidden("operator role required")
	}
	if role != domain.RoleDriver && role != domain.RoleBusiness {
		return nil, apperrors.NewValidationError("role must be driver or business", map[string]any{"role": string(role)})
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.NewValidationError("email required", nil)
	}

	invite := &domain.Invite{
		OperatorID: caller.OperatorID,
		Email:      email,
		Role:       role,
		Token:      uuid.NewString(),
		ExpiresAt:  time.Now().Add(s.inviteTTL),
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		return nil, err
	}

	operator, err := s.operators.GetByID(ctx, caller.OperatorID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:       events.EventInviteCreated,
		OperatorID: invite.OperatorID,
		ActorID:    caller.UserID,
		Payload: events.InviteCreatedPayload{
			Email:        invite.Email,
			OperatorName: operator.Name,
			Role:         string(invite.Role),
			Token:        invite.Token,
		},
	})
	return invite, nil
}

// AcceptInvite redeems a token, creating the caller's membership. A token is
// usable exactly once; expiry wins over the used check.
func (s *TenantService) AcceptInvite(ctx context.Context, caller domain.Caller, user *domain.User, token string) (*Membership, error) {
	if caller.HasMembership() {
		return nil, apperrors.NewConflict("caller already belongs to an operator", nil)
	}

	invite, err := s.invites.GetByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("invite", nil)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if invite.Expired(now) {
		return nil, apperrors.NewInvalidState("invite expired", nil)
	}
	if invite.Used() {
		return nil, apperrors.NewInvalidState("invite already used", nil)
	}

	member := &domain.Member{
		OperatorID: invite.OperatorID,
		UserID:     user.ID,
		Role:       invite.Role,
		Email:      user.Email,
		Name:       user.Name,
	}
	if err := s.invites.Accept(ctx, invite.ID, now, member); err != nil {
		switch {
		case errors.Is(err, repository.ErrInviteUsed):
			return nil, apperrors.NewInvalidState("invite already used", nil)
		case errors.Is(err, repository.ErrAlreadyMember):
			return nil, apperrors.NewConflict("caller already belongs to an operator", nil)
		}
		return nil, err
	}

	operator, err := s.operators.GetByID(ctx, invite.OperatorID)
	if err != nil {
		return nil, err
	}
	return &Membership{Member: member, Operator: operator}, nil
}

func (s *TenantService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
