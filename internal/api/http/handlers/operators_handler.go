package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/savari-hq/savari/internal/api/dto"
	"github.com/savari-hq/savari/internal/auth"
	"github.com/savari-hq/savari/internal/domain"
	"github.com/savari-hq/savari/internal/service"
)

// OperatorsHandler exposes tenant and membership endpoints.
type OperatorsHandler struct {
	tenants *service.TenantService
}

// NewOperatorsHandler constructs handler.
func NewOperatorsHandler(tenants *service.TenantService) *OperatorsHandler {
	return &OperatorsHandler{tenants: tenants}
}

// Create handles POST /operators.
func (h *OperatorsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.CreateOperatorRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	operator, member, err := h.tenants.CreateOperator(c.Context(), principal.Caller(), principal.User, req.Name, req.Slug)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"operator": dto.OperatorFromDomain(operator),
			"member":   dto.MemberFromDomain(member),
		},
	})
}

// ListMembers handles GET /members.
func (h *OperatorsHandler) ListMembers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	members, err := h.tenants.ListMembers(c.Context(), principal.Caller())
	if err != nil {
		return err
	}

	result := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		result = append(result, dto.MemberFromDomain(&members[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"members": result}})
}

// RemoveMember handles DELETE /members/:id.
func (h *OperatorsHandler) RemoveMember(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	if err := h.tenants.RemoveMember(c.Context(), principal.Caller(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// CreateInvite handles POST /invites.
func (h *OperatorsHandler) CreateInvite(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.CreateInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	invite, err := h.tenants.CreateInvite(c.Context(), principal.Caller(), req.Email, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"invite": dto.InviteFromDomain(invite)},
	})
}

// AcceptInvite handles POST /invites/accept.
func (h *OperatorsHandler) AcceptInvite(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.AcceptInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" {
		return fiber.NewError(http.StatusBadRequest, "token required")
	}

	membership, err := h.tenants.AcceptInvite(c.Context(), principal.Caller(), principal.User, req.Token)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"member":   dto.MemberFromDomain(membership.Member),
			"operator": dto.OperatorFromDomain(membership.Operator),
		},
	})
}
