package notify

// JobType enumerates notification job kinds.
type JobType string

const (
	JobInviteEmail JobType = "invite_email"
	JobTicketEmail JobType = "ticket_email"
)

// Job is one unit of work on the notification queue. Delivery is best-effort
// and at-least-once; the triggering mutation has already committed by the
// time a job is enqueued.
type Job struct {
	Type   JobType    `json:"type"`
	Invite *InviteJob `json:"invite,omitempty"`
	Ticket *TicketJob `json:"ticket,omitempty"`
}

// InviteJob carries everything needed to send an invite email.
type InviteJob struct {
	Email        string `json:"email"`
	OperatorName string `json:"operator_name"`
	Role         string `json:"role"`
	Token        string `json:"token"`
}

// TicketJob carries everything needed to send a ticket email with its PDF.
type TicketJob struct {
	Email         string `json:"email"`
	PassengerName string `json:"passenger_name"`
	OperatorName  string `json:"operator_name"`
	QRCodeValue   string `json:"qr_code_value"`
}
