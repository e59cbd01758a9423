package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savari-hq/savari/internal/domain"
	"github.com/savari-hq/savari/internal/events"
	apperrors "github.com/savari-hq/savari/pkg/util"
)

type tripFixture struct {
	service    *TripService
	trips      *fakeTripRepo
	routes     *fakeRouteRepo
	passengers *fakePassengerRepo
	route      *domain.Route
	driver     domain.Caller
}

func newTripFixture(t *testing.T) *tripFixture {
	t.Helper()

	passengers := newFakePassengerRepo()
	trips := newFakeTripRepo(passengers)
	routes := newFakeRouteRepo()

	route := &domain.Route{OperatorID: "op-1", Name: "Downtown Loop", IsActive: true}
	require.NoError(t, routes.Create(context.Background(), route))

	return &tripFixture{
		service: NewTripService(TripDependencies{
			TripRepo:      trips,
			RouteRepo:     routes,
			PassengerRepo: passengers,
			Dispatcher:    events.NewInMemoryDispatcher(),
		}),
		trips:      trips,
		routes:     routes,
		passengers: passengers,
		route:      route,
		driver:     domain.Caller{UserID: "driver-1", OperatorID: "op-1", Role: domain.RoleDriver},
	}
}

func (f *tripFixture) registerPassenger(t *testing.T, qrCode string) *domain.Passenger {
	t.Helper()
	passenger := &domain.Passenger{
		OperatorID: "op-1",
		BusinessID: "biz-1",
		Name:       "Asha",
		Email:      "asha@example.com",
		QRCode:     qrCode,
	}
	require.NoError(t, f.passengers.Create(context.Background(), passenger))
	return passenger
}

func domainErrCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
	return domainErr.Code
}

func TestStartTrip(t *testing.T) {
	t.Run("opens an active session", func(t *testing.T) {
		f := newTripFixture(t)

		session, err := f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TripStatusActive, session.Status)
		assert.Equal(t, f.route.ID, session.RouteID)
		assert.Equal(t, "driver-1", session.DriverID)
		assert.Nil(t, session.EndedAt)
	})

	t.Run("second active trip for the same driver conflicts", func(t *testing.T) {
		f := newTripFixture(t)

		_, err := f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		require.NoError(t, err)

		_, err = f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		assert.Equal(t, "CONFLICT", domainErrCode(t, err))
	})

	t.Run("driver may start again after ending", func(t *testing.T) {
		f := newTripFixture(t)

		first, err := f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		require.NoError(t, err)
		_, err = f.service.EndTrip(context.Background(), f.driver, first.ID)
		require.NoError(t, err)

		_, err = f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		assert.NoError(t, err)
	})

	t.Run("route of another operator is rejected", func(t *testing.T) {
		f := newTripFixture(t)

		foreign := &domain.Route{OperatorID: "op-2", Name: "Elsewhere"}
		require.NoError(t, f.routes.Create(context.Background(), foreign))

		_, err := f.service.StartTrip(context.Background(), f.driver, foreign.ID)
		assert.Equal(t, "CROSS_TENANT", domainErrCode(t, err))
	})

	t.Run("unknown route is not found", func(t *testing.T) {
		f := newTripFixture(t)

		_, err := f.service.StartTrip(context.Background(), f.driver, "nope")
		assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
	})

	t.Run("non-driver is forbidden", func(t *testing.T) {
		f := newTripFixture(t)

		business := domain.Caller{UserID: "biz-1", OperatorID: "op-1", Role: domain.RoleBusiness}
		_, err := f.service.StartTrip(context.Background(), business, f.route.ID)
		assert.Equal(t, "FORBIDDEN", domainErrCode(t, err))
	})
}

func TestEndTrip(t *testing.T) {
	t.Run("completes the session once", func(t *testing.T) {
		f := newTripFixture(t)

		session, err := f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		require.NoError(t, err)

		ended, err := f.service.EndTrip(context.Background(), f.driver, session.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TripStatusCompleted, ended.Status)
		require.NotNil(t, ended.EndedAt)

		firstEndedAt := *ended.EndedAt
		_, err = f.service.EndTrip(context.Background(), f.driver, session.ID)
		assert.Equal(t, "INVALID_STATE", domainErrCode(t, err))

		stored, err := f.trips.GetSession(context.Background(), session.ID)
		require.NoError(t, err)
		assert.Equal(t, firstEndedAt, *stored.EndedAt, "ended_at must not move on a repeated end")
	})

	t.Run("another driver cannot end the session", func(t *testing.T) {
		f := newTripFixture(t)

		session, err := f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		require.NoError(t, err)

		other := domain.Caller{UserID: "driver-2", OperatorID: "op-1", Role: domain.RoleDriver}
		_, err = f.service.EndTrip(context.Background(), other, session.ID)
		assert.Equal(t, "FORBIDDEN", domainErrCode(t, err))
	})

	t.Run("session of another operator is hidden", func(t *testing.T) {
		f := newTripFixture(t)

		session, err := f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		require.NoError(t, err)

		foreign := domain.Caller{UserID: "driver-1", OperatorID: "op-2", Role: domain.RoleDriver}
		_, err = f.service.EndTrip(context.Background(), foreign, session.ID)
		assert.Equal(t, "CROSS_TENANT", domainErrCode(t, err))
	})
}

func TestScanPassenger(t *testing.T) {
	t.Run("records a fresh check-in", func(t *testing.T) {
		f := newTripFixture(t)
		passenger := f.registerPassenger(t, "SAVARI-AAAABBBBCCCC")

		session, err := f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		require.NoError(t, err)

		result, err := f.service.ScanPassenger(context.Background(), f.driver, session.ID, passenger.QRCode)
		require.NoError(t, err)
		assert.Equal(t, domain.ScanStatusSuccess, result.Status)
		assert.Equal(t, passenger.ID, result.Passenger.ID)
		assert.Equal(t, 1, f.trips.scanCount(session.ID))
	})

	t.Run("repeat scan reports already_scanned and writes nothing", func(t *testing.T) {
		f := newTripFixture(t)
		passenger := f.registerPassenger(t, "SAVARI-AAAABBBBCCCC")

		session, err := f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		require.NoError(t, err)

		_, err = f.service.ScanPassenger(context.Background(), f.driver, session.ID, passenger.QRCode)
		require.NoError(t, err)

		result, err := f.service.ScanPassenger(context.Background(), f.driver, session.ID, passenger.QRCode)
		require.NoError(t, err)
		assert.Equal(t, domain.ScanStatusAlreadyScanned, result.Status)
		assert.Equal(t, passenger.ID, result.Passenger.ID)
		assert.Equal(t, 1, f.trips.scanCount(session.ID), "duplicate scan must not add a row")
	})

	t.Run("same passenger may board a later trip", func(t *testing.T) {
		f := newTripFixture(t)
		passenger := f.registerPassenger(t, "SAVARI-AAAABBBBCCCC")

		first, err := f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		require.NoError(t, err)
		_, err = f.service.ScanPassenger(context.Background(), f.driver, first.ID, passenger.QRCode)
		require.NoError(t, err)
		_, err = f.service.EndTrip(context.Background(), f.driver, first.ID)
		require.NoError(t, err)

		second, err := f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		require.NoError(t, err)
		result, err := f.service.ScanPassenger(context.Background(), f.driver, second.ID, passenger.QRCode)
		require.NoError(t, err)
		assert.Equal(t, domain.ScanStatusSuccess, result.Status)
	})

	t.Run("completed trip rejects scans", func(t *testing.T) {
		f := newTripFixture(t)
		passenger := f.registerPassenger(t, "SAVARI-AAAABBBBCCCC")

		session, err := f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		require.NoError(t, err)
		_, err = f.service.EndTrip(context.Background(), f.driver, session.ID)
		require.NoError(t, err)

		_, err = f.service.ScanPassenger(context.Background(), f.driver, session.ID, passenger.QRCode)
		assert.Equal(t, "INVALID_STATE", domainErrCode(t, err))
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		f := newTripFixture(t)

		session, err := f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		require.NoError(t, err)

		_, err = f.service.ScanPassenger(context.Background(), f.driver, session.ID, "SAVARI-ZZZZZZZZZZZZ")
		assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
	})

	t.Run("passenger of another operator is rejected", func(t *testing.T) {
		f := newTripFixture(t)

		foreign := &domain.Passenger{
			OperatorID: "op-2",
			BusinessID: "biz-9",
			Name:       "Ravi",
			Email:      "ravi@example.com",
			QRCode:     "SAVARI-DDDDEEEEFFFF",
		}
		require.NoError(t, f.passengers.Create(context.Background(), foreign))

		session, err := f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		require.NoError(t, err)

		_, err = f.service.ScanPassenger(context.Background(), f.driver, session.ID, foreign.QRCode)
		assert.Equal(t, "CROSS_TENANT", domainErrCode(t, err))
	})

	t.Run("archived passenger is rejected", func(t *testing.T) {
		f := newTripFixture(t)
		passenger := f.registerPassenger(t, "SAVARI-AAAABBBBCCCC")
		_, err := f.passengers.Archive(context.Background(), passenger.ID, time.Now())
		require.NoError(t, err)

		session, err := f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		require.NoError(t, err)

		_, err = f.service.ScanPassenger(context.Background(), f.driver, session.ID, passenger.QRCode)
		assert.Equal(t, "INVALID_STATE", domainErrCode(t, err))
	})
}

func TestGetActiveTrip(t *testing.T) {
	t.Run("nil when the driver has no running trip", func(t *testing.T) {
		f := newTripFixture(t)

		trip, err := f.service.GetActiveTrip(context.Background(), f.driver)
		require.NoError(t, err)
		assert.Nil(t, trip)
	})

	t.Run("returns session, route and roster", func(t *testing.T) {
		f := newTripFixture(t)
		passenger := f.registerPassenger(t, "SAVARI-AAAABBBBCCCC")

		session, err := f.service.StartTrip(context.Background(), f.driver, f.route.ID)
		require.NoError(t, err)
		_, err = f.service.ScanPassenger(context.Background(), f.driver, session.ID, passenger.QRCode)
		require.NoError(t, err)

		trip, err := f.service.GetActiveTrip(context.Background(), f.driver)
		require.NoError(t, err)
		require.NotNil(t, trip)
		assert.Equal(t, session.ID, trip.Session.ID)
		assert.Equal(t, f.route.ID, trip.Route.ID)
		require.Len(t, trip.Scans, 1)
		assert.Equal(t, passenger.ID, trip.Scans[0].Passenger.ID)
	})
}
