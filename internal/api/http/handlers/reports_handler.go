package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/savari-hq/savari/internal/api/dto"
	"github.com/savari-hq/savari/internal/auth"
	"github.com/savari-hq/savari/internal/service"
)

// ReportsHandler exposes dashboard report endpoints.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// RouteActivity handles GET /reports/route-activity. Accepts optional
// from/to query params in RFC 3339.
func (h *ReportsHandler) RouteActivity(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "from must be RFC 3339")
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "to must be RFC 3339")
		}
		to = parsed
	}

	rows, err := h.reports.RouteActivity(c.Context(), principal.Caller(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"routes": dto.RouteActivityFromRows(rows)}})
}

// RecentTrips handles GET /reports/recent-trips.
func (h *ReportsHandler) RecentTrips(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	rows, err := h.reports.RecentTrips(c.Context(), principal.Caller(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"trips": dto.RecentTripsFromRows(rows)}})
}

// PassengerScanCounts handles GET /reports/passenger-scans.
func (h *ReportsHandler) PassengerScanCounts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	rows, err := h.reports.PassengerScanCounts(c.Context(), principal.Caller())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"passengers": dto.PassengerScanCountsFromRows(rows)}})
}
