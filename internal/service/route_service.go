package service

import (
	"context"
	"errors"
	"strings"

	"github.com/savari-hq/savari/internal/domain"
	"github.com/savari-hq/savari/internal/repository"
	apperrors "github.com/savari-hq/savari/pkg/util"
)

// RouteService coordinates route CRUD, gated to the operator role.
type RouteService struct {
	routes repository.RouteRepository
}

// RouteInput describes a create/update payload.
type RouteInput struct {
	Name        string
	Description *string
	IsActive    *bool
}

// NewRouteService constructs the service.
func NewRouteService(routes repository.RouteRepository) *RouteService {
	return &RouteService{routes: routes}
}

// CreateRoute adds a route to the caller's operator.
func (s *RouteService) CreateRoute(ctx context.Context, caller domain.Caller, input RouteInput) (*domain.Route, error) {
	if caller.Role != domain.RoleOperator {
		return nil, apperrors.NewForbidden("operator role required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("route name required", nil)
	}

	route := &domain.Route{
		OperatorID:  caller.OperatorID,
		Name:        name,
		Description: input.Description,
		IsActive:    true,
	}
	if input.IsActive != nil {
		route.IsActive = *input.IsActive
	}
	if err := s.routes.Create(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

// UpdateRoute modifies a route within the caller's operator.
func (s *RouteService) UpdateRoute(ctx context.Context, caller domain.Caller, routeID string, input RouteInput) (*domain.Route, error) {
	if caller.Role != domain.RoleOperator {
		return nil, apperrors.NewForbidden("operator role required")
	}

	route, err := s.getOwned(ctx, caller, routeID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		route.Name = name
	}
	if input.Description != nil {
		route.Description = input.Description
	}
	if input.IsActive != nil {
		route.IsActive = *input.IsActive
	}
	if err := s.routes.Update(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

// DeleteRoute removes a route within the caller's operator.
func (s *RouteService) DeleteRoute(ctx context.Context, caller domain.Caller, routeID string) error {
	if caller.Role != domain.RoleOperator {
		return apperrors.NewForbidden("operator role required")
	}
	if _, err := s.getOwned(ctx, caller, routeID); err != nil {
		return err
	}
	return s.routes.Delete(ctx, routeID)
}

// GetRoute fetches a route visible to any member of the operator.
func (s *RouteService) GetRoute(ctx context.Context, caller domain.Caller, routeID string) (*domain.Route, error) {
	return s.getOwned(ctx, caller, routeID)
}

// ListRoutes returns the operator's routes.
func (s *RouteService) ListRoutes(ctx context.Context, caller domain.Caller) ([]domain.Route, error) {
	return s.routes.ListByOperator(ctx, caller.OperatorID)
}

func (s *RouteService) getOwned(ctx context.Context, caller domain.Caller, routeID string) (*domain.Route, error) {
	route, err := s.routes.GetByID(ctx, routeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("route", nil)
	}
	if err != nil {
		return nil, err
	}
	if route.OperatorID != caller.OperatorID {
		return nil, apperrors.NewCrossTenant("route")
	}
	return route, nil
}
