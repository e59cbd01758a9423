package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/savari-hq/savari/internal/notify"
)

const dequeueWait = 5 * time.Second

// NotificationWorker drains the mail queue and delivers email. Delivery is
// at-least-once and best-effort; a failed job is logged and dropped rather
// than blocking the queue.
type NotificationWorker struct {
	queue  *notify.Queue
	mailer notify.Mailer
	logger *zap.Logger
}

// NewNotificationWorker constructs the worker.
func NewNotificationWorker(queue *notify.Queue, mailer notify.Mailer, logger *zap.Logger) *NotificationWorker {
	return &NotificationWorker{queue: queue, mailer: mailer, logger: logger}
}

// Run consumes jobs until the context is cancelled.
func (w *NotificationWorker) Run(ctx context.Context) {
	w.logger.Info("notification worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("notification worker stopped")
			return
		default:
		}

		job, err := w.queue.Dequeue(ctx, dequeueWait)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.logger.Error("dequeue notification job", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}
		w.process(ctx, *job)
	}
}

func (w *NotificationWorker) process(ctx context.Context, job notify.Job) {
	switch job.Type {
	case notify.JobInviteEmail:
		if job.Invite == nil {
			w.logger.Warn("invite job missing payload")
			return
		}
		if err := w.sendInviteEmail(ctx, *job.Invite); err != nil {
			w.logger.Error("send invite email", zap.Error(err), zap.String("email", job.Invite.Email))
		}
	case notify.JobTicketEmail:
		if job.Ticket == nil {
			w.logger.Warn("ticket job missing payload")
			return
		}
		if err := w.sendTicketEmail(ctx, *job.Ticket); err != nil {
			w.logger.Error("send ticket email", zap.Error(err), zap.String("email", job.Ticket.Email))
		}
	default:
		w.logger.Warn("unknown notification job type", zap.String("type", string(job.Type)))
	}
}

func (w *NotificationWorker) sendInviteEmail(ctx context.Context, job notify.InviteJob) error {
	msg := notify.Message{
		To:      job.Email,
		Subject: fmt.Sprintf("You're invited to join %s on Savari", job.OperatorName),
		Body: fmt.Sprintf(
			"Hello,\n\nYou have been invited to join %s as a %s.\n\nYour invite token: %s\n\nThe invite expires; accept it soon.\n",
			job.OperatorName, job.Role, job.Token),
	}
	return w.mailer.Send(ctx, msg)
}

func (w *NotificationWorker) sendTicketEmail(ctx context.Context, job notify.TicketJob) error {
	pdf, err := notify.RenderTicketPDF(job)
	if err != nil {
		return fmt.Errorf("render ticket pdf: %w", err)
	}
	msg := notify.Message{
		To:      job.Email,
		Subject: fmt.Sprintf("Your %s ticket", job.OperatorName),
		Body: fmt.Sprintf(
			"Hello %s,\n\nYour ticket for %s is attached. Show the QR code to the driver when boarding.\n\nTicket code: %s\n",
			job.PassengerName, job.OperatorName, job.QRCodeValue),
		Attachment: &notify.Attachment{
			Filename:    "ticket.pdf",
			ContentType: "application/pdf",
			Data:        pdf,
		},
	}
	return w.mailer.Send(ctx, msg)
}
