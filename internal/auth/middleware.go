package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/savari-hq/savari/internal/domain"
	"github.com/savari-hq/savari/internal/repository"
	apperrors "github.com/savari-hq/savari/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller: the account plus its
// membership, resolved once per request and carried through service calls as
// a domain.Caller.
type Principal struct {
	User   *domain.User
	Member *domain.Member
}

// Caller flattens the principal into the context services expect.
func (p *Principal) Caller() domain.Caller {
	caller := domain.Caller{UserID: p.User.ID}
	if p.Member != nil {
		caller.OperatorID = p.Member.OperatorID
		caller.Role = p.Member.Role
	}
	return caller
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens  *TokenManager
	users   repository.UserRepository
	members repository.MemberRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, members repository.MemberRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, members: members}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, err := m.users.GetByID(c.Context(), claims.SubjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}

	principal := &Principal{User: user}
	member, err := m.members.GetByUserID(c.Context(), user.ID)
	switch {
	case err == nil:
		principal.Member = member
	case errors.Is(err, repository.ErrNotFound):
		// no membership yet; fine for operator creation and invite acceptance
	default:
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
