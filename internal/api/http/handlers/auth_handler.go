package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/savari-hq/savari/internal/api/dto"
	"github.com/savari-hq/savari/internal/auth"
	"github.com/savari-hq/savari/internal/service"
)

// AuthHandler exposes account endpoints.
type AuthHandler struct {
	accounts *service.AccountService
	tenants  *service.TenantService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(accounts *service.AccountService, tenants *service.TenantService) *AuthHandler {
	return &AuthHandler{accounts: accounts, tenants: tenants}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	user, token, exp, err := h.accounts.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.UserFromDomain(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	user, token, exp, err := h.accounts.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.UserFromDomain(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Me handles GET /me, returning the account with its membership when present.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	data := fiber.Map{"user": dto.UserFromDomain(principal.User)}
	if principal.Member != nil {
		membership, err := h.tenants.GetMembership(c.Context(), principal.User.ID)
		if err != nil {
			return err
		}
		if membership != nil {
			data["member"] = dto.MemberFromDomain(membership.Member)
			data["operator"] = dto.OperatorFromDomain(membership.Operator)
		}
	}
	return c.JSON(fiber.Map{"data": data})
}
