package notification

import (
	"context"
	"database/sql"
	"time"

	"go-ess/internal/events"
	"go-ess/internal/messaging/kafka"

	"go.uber.org/zap"
)

type Email struct {
	CompanyID      string
	NotificationID string
	To             string
	Subject        string
	Body           string
}

type EmailSender interface {
	SendEmail(ctx context.Context, email Email) error
}

// OutboxEmailSender queues e-mails in the transactional outbox. The relay
// worker publishes them and the mail consumer delivers them.
type OutboxEmailSender struct {
	db     *sql.DB
	outbox kafka.OutboxRepository
}

func NewOutboxEmailSender(db *sql.DB, outbox kafka.OutboxRepository) *OutboxEmailSender {
	return &OutboxEmailSender{db: db, outbox: outbox}
}

func (s *OutboxEmailSender) SendEmail(ctx context.Context, email Email) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	aggregateID := email.NotificationID
	if aggregateID == "" {
		aggregateID = email.CompanyID
	}
	if _, err := kafka.Enqueue(ctx, s.outbox.WithTx(tx), kafka.Message{
		AggregateType: "notification",
		AggregateID:   aggregateID,
		EventType:     events.EventTypeEmailRequested,
		Topic:         events.NotificationEmailTopic,
		Payload: events.EmailRequestedEvent{
			EventType:      events.EventTypeEmailRequested,
			CompanyID:      email.CompanyID,
			NotificationID: email.NotificationID,
			To:             email.To,
			Subject:        email.Subject,
			Body:           email.Body,
			OccurredAt:     time.Now().UTC(),
		},
	}); err != nil {
		return err
	}
	return tx.Commit()
}

// Mailer performs the final delivery of an e-mail.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// LogMailer writes e-mails to the log instead of an SMTP relay.
type LogMailer struct {
	from   string
	logger *zap.Logger
}

func NewLogMailer(from string, logger ...*zap.Logger) *LogMailer {
	l := zap.L().Named("notification.mailer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.mailer")
	}
	return &LogMailer{from: from, logger: l}
}

func (m *LogMailer) Send(_ context.Context, email Email) error {
	m.logger.Info("email delivered",
		zap.String("from", m.from),
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
		zap.String("notification_id", email.NotificationID),
		zap.Int("body_bytes", len(email.Body)),
	)
	return nil
}
