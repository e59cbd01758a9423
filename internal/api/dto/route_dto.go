package dto

import (
	"time"

	"github.com/savari-hq/savari/internal/domain"
)

// RouteRequest payload for route create/update.
type RouteRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// RouteResponse is the public shape of a route.
type RouteResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RouteFromDomain maps a route.
func RouteFromDomain(route *domain.Route) RouteResponse {
	return RouteResponse{
		ID:          route.ID,
		Name:        route.Name,
		Description: route.Description,
		IsActive:    route.IsActive,
		CreatedAt:   route.CreatedAt,
		UpdatedAt:   route.UpdatedAt,
	}
}

// RoutesFromDomain maps a slice of routes.
func RoutesFromDomain(routes []domain.Route) []RouteResponse {
	result := make([]RouteResponse, 0, len(routes))
	for i := range routes {
		result = append(result, RouteFromDomain(&routes[i]))
	}
	return result
}
