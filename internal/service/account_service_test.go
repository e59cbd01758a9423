package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savari-hq/savari/internal/config"
	"github.com/savari-hq/savari/internal/domain"
	"github.com/savari-hq/savari/internal/repository"
)

type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User), byEmail: make(map[string]string)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	user.ID = uuid.NewString()
	copied := *user
	f.byID[user.ID] = &copied
	f.byEmail[user.Email] = user.ID
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return f.GetByID(context.Background(), id)
}

func newAccountService(users *fakeUserRepo) *AccountService {
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 15
	cfg.Auth.BcryptCost = 4 // min cost keeps tests fast
	return NewAccountService(cfg, users)
}

func TestRegister(t *testing.T) {
	t.Run("creates the account and issues a token", func(t *testing.T) {
		svc := newAccountService(newFakeUserRepo())

		user, token, exp, err := svc.Register(context.Background(), "Mina", "mina@example.com", "hunter22")
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, token)
		assert.False(t, exp.IsZero())
		assert.NotEqual(t, "hunter22", user.PasswordHash)

		claims, err := svc.TokenManager().ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.SubjectID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc := newAccountService(newFakeUserRepo())

		_, _, _, err := svc.Register(context.Background(), "Mina", "mina@example.com", "hunter22")
		require.NoError(t, err)

		_, _, _, err = svc.Register(context.Background(), "Other", "mina@example.com", "hunter23")
		assert.Equal(t, "CONFLICT", domainErrCode(t, err))
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials succeed", func(t *testing.T) {
		svc := newAccountService(newFakeUserRepo())
		registered, _, _, err := svc.Register(context.Background(), "Mina", "mina@example.com", "hunter22")
		require.NoError(t, err)

		user, token, _, err := svc.Login(context.Background(), "mina@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		svc := newAccountService(newFakeUserRepo())
		_, _, _, err := svc.Register(context.Background(), "Mina", "mina@example.com", "hunter22")
		require.NoError(t, err)

		_, _, _, err = svc.Login(context.Background(), "mina@example.com", "wrong")
		assert.Equal(t, "UNAUTHORIZED", domainErrCode(t, err))
	})

	t.Run("unknown email is unauthorized, not not-found", func(t *testing.T) {
		svc := newAccountService(newFakeUserRepo())

		_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "hunter22")
		assert.Equal(t, "UNAUTHORIZED", domainErrCode(t, err))
	})
}
