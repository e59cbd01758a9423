package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/savari-hq/savari/internal/api/dto"
	"github.com/savari-hq/savari/internal/auth"
	"github.com/savari-hq/savari/internal/service"
)

// PassengersHandler exposes passenger registry endpoints.
type PassengersHandler struct {
	passengers *service.PassengerService
}

// NewPassengersHandler constructs handler.
func NewPassengersHandler(passengers *service.PassengerService) *PassengersHandler {
	return &PassengersHandler{passengers: passengers}
}

// Create handles POST /passengers.
func (h *PassengersHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.CreatePassengerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	passenger, err := h.passengers.CreatePassenger(c.Context(), principal.Caller(), req.Name, req.Email)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"passenger": dto.PassengerFromDomain(passenger)},
	})
}

// List handles GET /passengers with cursor pagination.
func (h *PassengersHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	includeArchived, _ := strconv.ParseBool(c.Query("include_archived", "false"))

	page, err := h.passengers.ListPassengers(c.Context(), principal.Caller(), service.PassengerListInput{
		Cursor:          c.Query("cursor"),
		Limit:           limit,
		IncludeArchived: includeArchived,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PassengerPageResponse{
		Passengers: dto.PassengersFromDomain(page.Passengers),
		NextCursor: page.NextCursor,
	}})
}

// Get handles GET /passengers/:id.
func (h *PassengersHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	passenger, err := h.passengers.GetPassenger(c.Context(), principal.Caller(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"passenger": dto.PassengerFromDomain(passenger)}})
}

// Archive handles POST /passengers/:id/archive.
func (h *PassengersHandler) Archive(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	passenger, err := h.passengers.ArchivePassenger(c.Context(), principal.Caller(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"passenger": dto.PassengerFromDomain(passenger)}})
}
