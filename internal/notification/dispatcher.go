package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Message is one notification addressed to an employee.
type Message struct {
	CompanyID     string
	RecipientID   string
	Title         string
	Body          string
	Type          string
	ReferenceType string
	ReferenceID   string
	// SkipEmail keeps the message in-app only.
	SkipEmail bool
}

// AddressBook resolves an employee's e-mail address, "" when unknown.
type AddressBook interface {
	EmailOf(ctx context.Context, companyID, employeeID string) (string, error)
}

// Dispatcher delivers notifications on a best-effort basis. Failures are
// logged and never returned, so a lost notification cannot undo the
// business change that triggered it.
type Dispatcher struct {
	repo   Repository
	emails AddressBook
	sender EmailSender
	logger *zap.Logger
}

func NewDispatcher(repo Repository, emails AddressBook, sender EmailSender, logger ...*zap.Logger) *Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &Dispatcher{repo: repo, emails: emails, sender: sender, logger: l}
}

func (d *Dispatcher) Notify(ctx context.Context, msg Message) {
	log := d.logger.With(
		zap.String("company_id", msg.CompanyID),
		zap.String("recipient_id", msg.RecipientID),
		zap.String("reference_type", msg.ReferenceType),
		zap.String("reference_id", msg.ReferenceID),
	)
	if msg.RecipientID == "" {
		log.Debug("notification skipped, recipient unresolved")
		return
	}

	n, err := newNotification(msg)
	if err != nil {
		log.Warn("notification skipped, invalid ids", zap.Error(err))
		return
	}
	if err := d.repo.Create(ctx, n); err != nil {
		log.Error("create in-app notification failed", zap.Error(err))
	}

	if msg.SkipEmail || d.sender == nil || d.emails == nil {
		return
	}
	to, err := d.emails.EmailOf(ctx, msg.CompanyID, msg.RecipientID)
	if err != nil {
		log.Error("lookup notification email failed", zap.Error(err))
		return
	}
	if to == "" {
		log.Debug("notification email skipped, no address")
		return
	}
	if err := d.sender.SendEmail(ctx, Email{
		CompanyID:      msg.CompanyID,
		NotificationID: n.ID.String(),
		To:             to,
		Subject:        msg.Title,
		Body:           msg.Body,
	}); err != nil {
		log.Error("send notification email failed", zap.Error(err))
		return
	}
	log.Info("notification dispatched", zap.String("notification_id", n.ID.String()))
}

// NotifyAll sends each message in order; one failure does not stop the rest.
func (d *Dispatcher) NotifyAll(ctx context.Context, msgs []Message) {
	for _, msg := range msgs {
		d.Notify(ctx, msg)
	}
}

func newNotification(msg Message) (*Notification, error) {
	companyID, err := uuid.Parse(msg.CompanyID)
	if err != nil {
		return nil, err
	}
	recipientID, err := uuid.Parse(msg.RecipientID)
	if err != nil {
		return nil, err
	}
	kind := msg.Type
	if kind == "" {
		kind = TypeInfo
	}
	n := &Notification{
		ID:            uuid.New(),
		CompanyID:     companyID,
		RecipientID:   recipientID,
		Title:         msg.Title,
		Message:       msg.Body,
		Type:          kind,
		ReferenceType: msg.ReferenceType,
		CreatedAt:     time.Now().UTC(),
	}
	if ref, err := uuid.Parse(msg.ReferenceID); err == nil {
		n.ReferenceID = &ref
	}
	return n, nil
}
