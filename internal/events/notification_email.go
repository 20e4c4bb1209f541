package events

import "time"

const (
	NotificationEmailTopic  = "hr.notification.email.v1"
	EventTypeEmailRequested = "notification.email_requested"
)

// EmailRequestedEvent carries one outbound e-mail from the dispatcher to the
// mail consumer.
type EmailRequestedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	CompanyID      string    `json:"company_id"`
	NotificationID string    `json:"notification_id,omitempty"`
	To             string    `json:"to"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	OccurredAt     time.Time `json:"occurred_at"`
}
