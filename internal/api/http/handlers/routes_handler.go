package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/savari-hq/savari/internal/api/dto"
	"github.com/savari-hq/savari/internal/auth"
	"github.com/savari-hq/savari/internal/service"
)

// RoutesHandler exposes route CRUD endpoints.
type RoutesHandler struct {
	routes *service.RouteService
}

// NewRoutesHandler constructs handler.
func NewRoutesHandler(routes *service.RouteService) *RoutesHandler {
	return &RoutesHandler{routes: routes}
}

// Create handles POST /routes.
func (h *RoutesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	route, err := h.routes.CreateRoute(c.Context(), principal.Caller(), service.RouteInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"route": dto.RouteFromDomain(route)}})
}

// Update handles PATCH /routes/:id.
func (h *RoutesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	route, err := h.routes.UpdateRoute(c.Context(), principal.Caller(), c.Params("id"), service.RouteInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"route": dto.RouteFromDomain(route)}})
}

// Delete handles DELETE /routes/:id.
func (h *RoutesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	if err := h.routes.DeleteRoute(c.Context(), principal.Caller(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Get handles GET /routes/:id.
func (h *RoutesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	route, err := h.routes.GetRoute(c.Context(), principal.Caller(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"route": dto.RouteFromDomain(route)}})
}

// List handles GET /routes.
func (h *RoutesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	routes, err := h.routes.ListRoutes(c.Context(), principal.Caller())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"routes": dto.RoutesFromDomain(routes)}})
}
