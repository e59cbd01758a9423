package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/savari-hq/savari/internal/domain"
	"github.com/savari-hq/savari/internal/events"
	"github.com/savari-hq/savari/internal/repository"
	apperrors "github.com/savari-hq/savari/pkg/util"
)

const (
	qrCodePrefix = "SAVARI-"
	qrCodeLength = 12
	// no 0/O/1/I; codes get read aloud and typed at support desks
	qrCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// PassengerService coordinates passenger registration and ticketing.
type PassengerService struct {
	passengers repository.PassengerRepository
	operators  repository.OperatorRepository
	dispatcher events.Dispatcher
}

// PassengerListInput describes listing parameters from the transport layer.
type PassengerListInput struct {
	Cursor          string
	Limit           int
	IncludeArchived bool
}

// PassengerPage is one page of passengers plus the cursor for the next.
type PassengerPage struct {
	Passengers []domain.Passenger
	NextCursor string
}

// NewPassengerService constructs the service.
func NewPassengerService(passengers repository.PassengerRepository, operators repository.OperatorRepository, dispatcher events.Dispatcher) *PassengerService {
	return &PassengerService{passengers: passengers, operators: operators, dispatcher: dispatcher}
}

// CreatePassenger registers a rider, issues the QR token and queues the
// ticket email.
func (s *PassengerService) CreatePassenger(ctx context.Context, caller domain.Caller, name, email string) (*domain.Passenger, error) {
	if caller.Role != domain.RoleBusiness {
		return nil, apperrors.NewForbidden("business role required")
	}
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, apperrors.NewValidationError("name and email required", nil)
	}

	qrCode, err := generateQRCode()
	if err != nil {
		return nil, err
	}

	passenger := &domain.Passenger{
		OperatorID: caller.OperatorID,
		BusinessID: caller.UserID,
		Name:       name,
		Email:      email,
		QRCode:     qrCode,
	}
	if err := s.passengers.Create(ctx, passenger); err != nil {
		return nil, err
	}

	operator, err := s.operators.GetByID(ctx, caller.OperatorID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:       events.EventPassengerRegistered,
		OperatorID: passenger.OperatorID,
		ActorID:    caller.UserID,
		Payload: events.PassengerRegisteredPayload{
			PassengerID:   passenger.ID,
			PassengerName: passenger.Name,
			Email:         passenger.Email,
			OperatorName:  operator.Name,
			QRCode:        passenger.QRCode,
		},
	})
	return passenger, nil
}

// ArchivePassenger soft-deletes a passenger. Idempotent: repeats succeed and
// keep the first archived_at.
func (s *PassengerService) ArchivePassenger(ctx context.Context, caller domain.Caller, passengerID string) (*domain.Passenger, error) {
	if caller.Role != domain.RoleBusiness && caller.Role != domain.RoleOperator {
		return nil, apperrors.NewForbidden("business or operator role required")
	}
	if _, err := s.getOwned(ctx, caller, passengerID); err != nil {
		return nil, err
	}
	return s.passengers.Archive(ctx, passengerID, time.Now())
}

// GetPassenger fetches one passenger within the caller's operator.
func (s *PassengerService) GetPassenger(ctx context.Context, caller domain.Caller, passengerID string) (*domain.Passenger, error) {
	return s.getOwned(ctx, caller, passengerID)
}

// ListPassengers pages through the operator's passengers, newest first.
// Archived rows are excluded unless explicitly included.
func (s *PassengerService) ListPassengers(ctx context.Context, caller domain.Caller, input PassengerListInput) (*PassengerPage, error) {
	filter := repository.PassengerFilter{
		OperatorID:      caller.OperatorID,
		IncludeArchived: input.IncludeArchived,
		Limit:           input.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if input.Cursor != "" {
		cursor, err := decodeCursor(input.Cursor)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid cursor", nil)
		}
		filter.Cursor = cursor
	}

	passengers, err := s.passengers.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := &PassengerPage{Passengers: passengers}
	if len(passengers) == filter.Limit {
		last := passengers[len(passengers)-1]
		page.NextCursor = encodeCursor(repository.PassengerCursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page, nil
}

func (s *PassengerService) getOwned(ctx context.Context, caller domain.Caller, passengerID string) (*domain.Passenger, error) {
	passenger, err := s.passengers.GetByID(ctx, passengerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("passenger", nil)
	}
	if err != nil {
		return nil, err
	}
	if passenger.OperatorID != caller.OperatorID {
		return nil, apperrors.NewCrossTenant("passenger")
	}
	return passenger, nil
}

func (s *PassengerService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func generateQRCode() (string, error) {
	buf := make([]byte, qrCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = qrCodeAlphabet[int(b)%len(qrCodeAlphabet)]
	}
	return qrCodePrefix + string(buf), nil
}

func encodeCursor(cursor repository.PassengerCursor) string {
	payload, _ := json.Marshal(cursor)
	return base64.RawURLEncoding.EncodeToString(payload)
}

func decodeCursor(raw string) (*repository.PassengerCursor, error) {
	payload, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	var cursor repository.PassengerCursor
	if err := json.Unmarshal(payload, &cursor); err != nil {
		return nil, err
	}
	return &cursor, nil
}
