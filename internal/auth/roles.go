package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/savari-hq/savari/internal/domain"
)

// RequireMembership ensures the caller belongs to an operator.
func RequireMembership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if principal.Member == nil {
			return fiber.NewError(http.StatusForbidden, "operator membership required")
		}
		return c.Next()
	}
}

// RequireRole ensures the caller's membership carries one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if principal.Member == nil {
			return fiber.NewError(http.StatusForbidden, "operator membership required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Member.Role]; !exists {
			return fiber.NewError(http.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}
