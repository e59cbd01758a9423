package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventInviteCreated       EventType = "invite_created"
	EventPassengerRegistered EventType = "passenger_registered"
	EventTripStarted         EventType = "trip_started"
	EventTripEnded           EventType = "trip_ended"
)

// Event represents a domain event emitted by services after a successful write.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	OperatorID string      `json:"operator_id"`
	ActorID    string      `json:"actor_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// InviteCreatedPayload payload.
type InviteCreatedPayload struct {
	Email        string `json:"email"`
	OperatorName string `json:"operator_name"`
	Role         string `json:"role"`
	Token        string `json:"token"`
}

// PassengerRegisteredPayload payload.
type PassengerRegisteredPayload struct {
	PassengerID   string `json:"passenger_id"`
	PassengerName string `json:"passenger_name"`
	Email         string `json:"email"`
	OperatorName  string `json:"operator_name"`
	QRCode        string `json:"qr_code"`
}

// TripStartedPayload payload.
type TripStartedPayload struct {
	TripSessionID string `json:"trip_session_id"`
	RouteID       string `json:"route_id"`
	DriverID      string `json:"driver_id"`
}

// TripEndedPayload payload.
type TripEndedPayload struct {
	TripSessionID string `json:"trip_session_id"`
}
