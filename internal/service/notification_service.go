package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/savari-hq/savari/internal/events"
	"github.com/savari-hq/savari/internal/notify"
)

// NotificationService bridges domain events onto the durable mail queue.
// Enqueue happens after the triggering write has committed; failures are
// logged and never surfaced to the original caller.
type NotificationService struct {
	dispatcher events.Dispatcher
	queue      *notify.Queue
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, queue *notify.Queue, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		queue:      queue,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to the events that produce email.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventInviteCreated, n.handleInviteCreated)
	n.dispatcher.Subscribe(events.EventPassengerRegistered, n.handlePassengerRegistered)
}

func (n *NotificationService) handleInviteCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.InviteCreatedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for invite_created", zap.Any("payload", event.Payload))
		return nil
	}
	job := notify.Job{
		Type: notify.JobInviteEmail,
		Invite: &notify.InviteJob{
			Email:        payload.Email,
			OperatorName: payload.OperatorName,
			Role:         payload.Role,
			Token:        payload.Token,
		},
	}
	if err := n.queue.Enqueue(ctx, job); err != nil {
		n.logger.Error("enqueue invite email", zap.Error(err), zap.String("email", payload.Email))
	}
	return nil
}

func (n *NotificationService) handlePassengerRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PassengerRegisteredPayload)
	if !ok {
		n.logger.Warn("unexpected payload for passenger_registered", zap.Any("payload", event.Payload))
		return nil
	}
	job := notify.Job{
		Type: notify.JobTicketEmail,
		Ticket: &notify.TicketJob{
			Email:         payload.Email,
			PassengerName: payload.PassengerName,
			OperatorName:  payload.OperatorName,
			QRCodeValue:   payload.QRCode,
		},
	}
	if err := n.queue.Enqueue(ctx, job); err != nil {
		n.logger.Error("enqueue ticket email", zap.Error(err), zap.String("email", payload.Email))
	}
	return nil
}
