package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savari-hq/savari/internal/domain"
	"github.com/savari-hq/savari/internal/events"
)

type tenantFixture struct {
	service   *TenantService
	operators *fakeOperatorRepo
	members   *fakeMemberRepo
	invites   *fakeInviteRepo
}

func newTenantFixture(inviteTTL time.Duration) *tenantFixture {
	members := newFakeMemberRepo()
	operators := newFakeOperatorRepo(members)
	invites := newFakeInviteRepo(members)

	return &tenantFixture{
		service: NewTenantService(TenantDependencies{
			OperatorRepo: operators,
			MemberRepo:   members,
			InviteRepo:   invites,
			Dispatcher:   events.NewInMemoryDispatcher(),
			InviteTTL:    inviteTTL,
		}),
		operators: operators,
		members:   members,
		invites:   invites,
	}
}

func (f *tenantFixture) onboard(t *testing.T, owner *domain.User, name string) (*domain.Operator, domain.Caller) {
	t.Helper()
	operator, member, err := f.service.CreateOperator(context.Background(), domain.Caller{UserID: owner.ID}, owner, name, "")
	require.NoError(t, err)
	return operator, domain.Caller{UserID: owner.ID, OperatorID: member.OperatorID, Role: member.Role}
}

func TestCreateOperator(t *testing.T) {
	owner := &domain.User{ID: "user-1", Name: "Mina", Email: "mina@example.com"}

	t.Run("creates tenant with founding operator member", func(t *testing.T) {
		f := newTenantFixture(0)

		operator, member, err := f.service.CreateOperator(context.Background(), domain.Caller{UserID: owner.ID}, owner, "City Lines", "")
		require.NoError(t, err)
		assert.Equal(t, "city-lines", operator.Slug)
		assert.Equal(t, owner.ID, operator.OwnerUserID)
		assert.Equal(t, domain.RoleOperator, member.Role)
		assert.Equal(t, operator.ID, member.OperatorID)
	})

	t.Run("slug collision conflicts", func(t *testing.T) {
		f := newTenantFixture(0)
		f.onboard(t, owner, "City Lines")

		other := &domain.User{ID: "user-2", Name: "Dara", Email: "dara@example.com"}
		_, _, err := f.service.CreateOperator(context.Background(), domain.Caller{UserID: other.ID}, other, "City Lines", "")
		assert.Equal(t, "CONFLICT", domainErrCode(t, err))
	})

	t.Run("a member cannot create a second operator", func(t *testing.T) {
		f := newTenantFixture(0)
		_, caller := f.onboard(t, owner, "City Lines")

		_, _, err := f.service.CreateOperator(context.Background(), caller, owner, "Second Venture", "")
		assert.Equal(t, "CONFLICT", domainErrCode(t, err))
	})

	t.Run("blank name fails validation", func(t *testing.T) {
		f := newTenantFixture(0)

		_, _, err := f.service.CreateOperator(context.Background(), domain.Caller{UserID: owner.ID}, owner, "   ", "")
		assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))
	})
}

func TestCreateInvite(t *testing.T) {
	owner := &domain.User{ID: "user-1", Name: "Mina", Email: "mina@example.com"}

	t.Run("issues a tokenized invite", func(t *testing.T) {
		f := newTenantFixture(time.Hour)
		operator, caller := f.onboard(t, owner, "City Lines")

		invite, err := f.service.CreateInvite(context.Background(), caller, "driver@example.com", domain.RoleDriver)
		require.NoError(t, err)
		assert.NotEmpty(t, invite.Token)
		assert.Equal(t, operator.ID, invite.OperatorID)
		assert.WithinDuration(t, time.Now().Add(time.Hour), invite.ExpiresAt, time.Minute)
	})

	t.Run("only driver and business roles can be invited", func(t *testing.T) {
		f := newTenantFixture(time.Hour)
		_, caller := f.onboard(t, owner, "City Lines")

		_, err := f.service.CreateInvite(context.Background(), caller, "x@example.com", domain.RoleOperator)
		assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))
	})

	t.Run("non-operator is forbidden", func(t *testing.T) {
		f := newTenantFixture(time.Hour)
		f.onboard(t, owner, "City Lines")

		driver := domain.Caller{UserID: "user-9", OperatorID: "op-1", Role: domain.RoleDriver}
		_, err := f.service.CreateInvite(context.Background(), driver, "x@example.com", domain.RoleBusiness)
		assert.Equal(t, "FORBIDDEN", domainErrCode(t, err))
	})
}

func TestAcceptInvite(t *testing.T) {
	owner := &domain.User{ID: "user-1", Name: "Mina", Email: "mina@example.com"}
	joiner := &domain.User{ID: "user-2", Name: "Dara", Email: "dara@example.com"}

	t.Run("redeems the token into a membership", func(t *testing.T) {
		f := newTenantFixture(time.Hour)
		operator, caller := f.onboard(t, owner, "City Lines")
		invite, err := f.service.CreateInvite(context.Background(), caller, joiner.Email, domain.RoleDriver)
		require.NoError(t, err)

		membership, err := f.service.AcceptInvite(context.Background(), domain.Caller{UserID: joiner.ID}, joiner, invite.Token)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleDriver, membership.Member.Role)
		assert.Equal(t, operator.ID, membership.Operator.ID)
	})

	t.Run("a token admits exactly one member", func(t *testing.T) {
		f := newTenantFixture(time.Hour)
		_, caller := f.onboard(t, owner, "City Lines")
		invite, err := f.service.CreateInvite(context.Background(), caller, joiner.Email, domain.RoleDriver)
		require.NoError(t, err)

		_, err = f.service.AcceptInvite(context.Background(), domain.Caller{UserID: joiner.ID}, joiner, invite.Token)
		require.NoError(t, err)

		third := &domain.User{ID: "user-3", Name: "Noor", Email: "noor@example.com"}
		_, err = f.service.AcceptInvite(context.Background(), domain.Caller{UserID: third.ID}, third, invite.Token)
		assert.Equal(t, "INVALID_STATE", domainErrCode(t, err))
	})

	t.Run("expiry wins over the used check", func(t *testing.T) {
		f := newTenantFixture(time.Hour)
		_, caller := f.onboard(t, owner, "City Lines")
		invite, err := f.service.CreateInvite(context.Background(), caller, joiner.Email, domain.RoleDriver)
		require.NoError(t, err)

		// force the stored invite both used and expired
		for _, stored := range f.invites.invites {
			if stored.Token == invite.Token {
				past := time.Now().Add(-time.Hour)
				stored.ExpiresAt = past
				stored.UsedAt = &past
			}
		}

		_, err = f.service.AcceptInvite(context.Background(), domain.Caller{UserID: joiner.ID}, joiner, invite.Token)
		assert.Equal(t, "INVALID_STATE", domainErrCode(t, err))
	})

	t.Run("an existing member cannot accept", func(t *testing.T) {
		f := newTenantFixture(time.Hour)
		_, caller := f.onboard(t, owner, "City Lines")
		invite, err := f.service.CreateInvite(context.Background(), caller, owner.Email, domain.RoleDriver)
		require.NoError(t, err)

		_, err = f.service.AcceptInvite(context.Background(), caller, owner, invite.Token)
		assert.Equal(t, "CONFLICT", domainErrCode(t, err))
	})

	t.Run("unknown token is not found", func(t *testing.T) {
		f := newTenantFixture(time.Hour)

		_, err := f.service.AcceptInvite(context.Background(), domain.Caller{UserID: joiner.ID}, joiner, "bogus")
		assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
	})
}

func TestRemoveMember(t *testing.T) {
	owner := &domain.User{ID: "user-1", Name: "Mina", Email: "mina@example.com"}
	joiner := &domain.User{ID: "user-2", Name: "Dara", Email: "dara@example.com"}

	t.Run("removes a driver membership", func(t *testing.T) {
		f := newTenantFixture(time.Hour)
		_, caller := f.onboard(t, owner, "City Lines")
		invite, err := f.service.CreateInvite(context.Background(), caller, joiner.Email, domain.RoleDriver)
		require.NoError(t, err)
		membership, err := f.service.AcceptInvite(context.Background(), domain.Caller{UserID: joiner.ID}, joiner, invite.Token)
		require.NoError(t, err)

		require.NoError(t, f.service.RemoveMember(context.Background(), caller, membership.Member.ID))

		members, err := f.service.ListMembers(context.Background(), caller)
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})

	t.Run("the operator member is irremovable", func(t *testing.T) {
		f := newTenantFixture(time.Hour)
		_, caller := f.onboard(t, owner, "City Lines")

		founder, err := f.members.GetByUserID(context.Background(), owner.ID)
		require.NoError(t, err)

		err = f.service.RemoveMember(context.Background(), caller, founder.ID)
		assert.Equal(t, "FORBIDDEN", domainErrCode(t, err))
	})

	t.Run("member of another operator is hidden", func(t *testing.T) {
		f := newTenantFixture(time.Hour)
		_, caller := f.onboard(t, owner, "City Lines")

		other := &domain.User{ID: "user-7", Name: "Omid", Email: "omid@example.com"}
		f.onboard(t, other, "Valley Transit")
		founder, err := f.members.GetByUserID(context.Background(), other.ID)
		require.NoError(t, err)

		err = f.service.RemoveMember(context.Background(), caller, founder.ID)
		assert.Equal(t, "CROSS_TENANT", domainErrCode(t, err))
	})
}

func TestGetMembership(t *testing.T) {
	f := newTenantFixture(time.Hour)

	membership, err := f.service.GetMembership(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, membership)
}
