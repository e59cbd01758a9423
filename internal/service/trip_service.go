package service

import (
	"context"
	"errors"
	"time"

	"github.com/savari-hq/savari/internal/domain"
	"github.com/savari-hq/savari/internal/events"
	"github.com/savari-hq/savari/internal/repository"
	apperrors "github.com/savari-hq/savari/pkg/util"
)

// TripService governs the trip session lifecycle and passenger check-ins.
type TripService struct {
	trips      repository.TripRepository
	routes     repository.RouteRepository
	passengers repository.PassengerRepository
	dispatcher events.Dispatcher
}

// TripDependencies bundles repositories for the trip service.
type TripDependencies struct {
	TripRepo      repository.TripRepository
	RouteRepo     repository.RouteRepository
	PassengerRepo repository.PassengerRepository
	Dispatcher    events.Dispatcher
}

// ActiveTrip is the driver's live roster view: the session, its route and
// every scan joined with its passenger, in insertion order.
type ActiveTrip struct {
	Session *domain.TripSession
	Route   *domain.Route
	Scans   []repository.ScanEntry
}

// NewTripService constructs the service.
func NewTripService(deps TripDependencies) *TripService {
	return &TripService{
		trips:      deps.TripRepo,
		routes:     deps.RouteRepo,
		passengers: deps.PassengerRepo,
		dispatcher: deps.Dispatcher,
	}
}

// StartTrip opens an active session for the calling driver on a route of
// their operator. A driver can hold only one active session; the partial
// unique index turns a second start into a conflict with nothing inserted.
func (s *TripService) StartTrip(ctx context.Context, caller domain.Caller, routeID string) (*domain.TripSession, error) {
	if caller.Role != domain.RoleDriver {
		return nil, apperrors.NewForbidden("driver role required")
	}

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

	session := domain.NewTripSession(caller.OperatorID, route.ID, caller.UserID, time.Now())
	if err := s.trips.CreateSession(ctx, session); err != nil {
		if errors.Is(err, repository.ErrActiveTripExists) {
			return nil, apperrors.NewConflict("driver already has an active trip", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:       events.EventTripStarted,
		OperatorID: session.OperatorID,
		ActorID:    caller.UserID,
		Payload: events.TripStartedPayload{
			TripSessionID: session.ID,
			RouteID:       session.RouteID,
			DriverID:      session.DriverID,
		},
	})
	return session, nil
}

// EndTrip completes the caller's session. Completed is terminal: a second end
// fails and never touches ended_at again.
func (s *TripService) EndTrip(ctx context.Context, caller domain.Caller, tripSessionID string) (*domain.TripSession, error) {
	session, err := s.getOwnedSession(ctx, caller, tripSessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := session.End(now); err != nil {
		return nil, apperrors.NewInvalidState("trip already completed", nil)
	}

	completed, err := s.trips.CompleteSession(ctx, session.ID, now)
	if err != nil {
		return nil, err
	}
	if !completed {
		// lost a race with another end of the same session
		return nil, apperrors.NewInvalidState("trip already completed", nil)
	}

	s.publish(ctx, events.Event{
		Type:       events.EventTripEnded,
		OperatorID: session.OperatorID,
		ActorID:    caller.UserID,
		Payload:    events.TripEndedPayload{TripSessionID: session.ID},
	})
	return session, nil
}

// ScanPassenger records a check-in against an active session. A repeat of a
// passenger already on the trip is not an error: it returns the
// already_scanned status with the passenger and writes nothing.
func (s *TripService) ScanPassenger(ctx context.Context, caller domain.Caller, tripSessionID, qrCode string) (*domain.ScanResult, error) {
	session, err := s.getOwnedSession(ctx, caller, tripSessionID)
	if err != nil {
		return nil, err
	}
	if !session.AcceptsScans() {
		return nil, apperrors.NewInvalidState("trip already completed", nil)
	}

	passenger, err := s.passengers.GetByQRCode(ctx, qrCode)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("passenger", nil)
	}
	if err != nil {
		return nil, err
	}
	if passenger.OperatorID != session.OperatorID {
		return nil, apperrors.NewCrossTenant("passenger")
	}
	if passenger.Archived() {
		return nil, apperrors.NewInvalidState("passenger archived", nil)
	}

	scan := &domain.Scan{
		OperatorID:    session.OperatorID,
		TripSessionID: session.ID,
		PassengerID:   passenger.ID,
		ScannedAt:     time.Now(),
		ScannedBy:     caller.UserID,
	}
	inserted, err := s.trips.InsertScan(ctx, scan)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return &domain.ScanResult{Status: domain.ScanStatusAlreadyScanned, Passenger: passenger}, nil
	}
	return &domain.ScanResult{Status: domain.ScanStatusSuccess, Passenger: passenger}, nil
}

// GetActiveTrip returns the caller's sole active session with its roster, or
// nil when the driver has no trip running.
func (s *TripService) GetActiveTrip(ctx context.Context, caller domain.Caller) (*ActiveTrip, error) {
	if caller.Role != domain.RoleDriver {
		return nil, apperrors.NewForbidden("driver role required")
	}

	session, err := s.trips.GetActiveSessionByDriver(ctx, caller.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	route, err := s.routes.GetByID(ctx, session.RouteID)
	if err != nil {
		return nil, err
	}
	scans, err := s.trips.ListScans(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	return &ActiveTrip{Session: session, Route: route, Scans: scans}, nil
}

func (s *TripService) getOwnedSession(ctx context.Context, caller domain.Caller, tripSessionID string) (*domain.TripSession, error) {
	session, err := s.trips.GetSession(ctx, tripSessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("trip session", nil)
	}
	if err != nil {
		return nil, err
	}
	if session.OperatorID != caller.OperatorID {
		return nil, apperrors.NewCrossTenant("trip session")
	}
	if session.DriverID != caller.UserID {
		return nil, apperrors.NewForbidden("not the owning driver")
	}
	return session, nil
}

func (s *TripService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
