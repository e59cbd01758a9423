package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/savari-hq/savari/internal/api/dto"
	"github.com/savari-hq/savari/internal/auth"
	"github.com/savari-hq/savari/internal/service"
)

// TripsHandler exposes the trip lifecycle and check-in endpoints.
type TripsHandler struct {
	trips *service.TripService
}

// NewTripsHandler constructs handler.
func NewTripsHandler(trips *service.TripService) *TripsHandler {
	return &TripsHandler{trips: trips}
}

// Start handles POST /trips.
func (h *TripsHandler) Start(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.StartTripRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RouteID == "" {
		return fiber.NewError(http.StatusBadRequest, "route_id required")
	}

	session, err := h.trips.StartTrip(c.Context(), principal.Caller(), req.RouteID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"trip": dto.TripSessionFromDomain(session)},
	})
}

// End handles POST /trips/:id/end.
func (h *TripsHandler) End(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	session, err := h.trips.EndTrip(c.Context(), principal.Caller(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"trip": dto.TripSessionFromDomain(session)}})
}

// Scan handles POST /trips/:id/scans.
func (h *TripsHandler) Scan(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.QRCode == "" {
		return fiber.NewError(http.StatusBadRequest, "qr_code required")
	}

	result, err := h.trips.ScanPassenger(c.Context(), principal.Caller(), c.Params("id"), req.QRCode)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ScanResultFromDomain(result)})
}

// Active handles GET /trips/active.
func (h *TripsHandler) Active(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	trip, err := h.trips.GetActiveTrip(c.Context(), principal.Caller())
	if err != nil {
		return err
	}
	if trip == nil {
		return c.JSON(fiber.Map{"data": fiber.Map{"trip": nil}})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"trip": dto.ActiveTripFromService(trip)}})
}
