package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-ess/internal/employeesalary"
	"go-ess/internal/events"
	"go-ess/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// SalaryCreator opens the first salary revision for a new employee.
type SalaryCreator interface {
	Create(ctx context.Context, companyID string, req employeesalary.CreateEmployeeSalaryRequest) (employeesalary.EmployeeSalaryResponse, error)
}

// handleFunc processes one message. Returning false leaves the message
// uncommitted so the group redelivers it.
type handleFunc func(ctx context.Context, msg kafkago.Message) bool

func consume(ctx context.Context, reader MessageReader, log *zap.Logger, handle handleFunc) {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		if !handle(ctx, msg) {
			continue
		}
		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Error(err), zap.Int64("offset", msg.Offset))
		}
	}
}

func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	salaries SalaryCreator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	consume(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) bool {
		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee lifecycle event failed", zap.Error(err))
			return true
		}
		if event.EventType != "" && event.EventType != events.EventTypeEmployeeCreated {
			log.Debug("skip employee lifecycle event", zap.String("event_type", event.EventType))
			return true
		}

		effectiveDate := event.HireDate
		if effectiveDate == "" {
			effectiveDate = time.Now().UTC().Format("2006-01-02")
		}
		_, err := salaries.Create(ctx, event.CompanyID, employeesalary.CreateEmployeeSalaryRequest{
			EmployeeID:    event.EmployeeID,
			BasicSalary:   "0",
			EffectiveDate: effectiveDate,
		})
		if err != nil {
			if employeesalary.IsDuplicateRevision(err) {
				log.Warn("employee salary already exists for event, skipping",
					zap.String("employee_id", event.EmployeeID),
					zap.String("company_id", event.CompanyID),
				)
				return true
			}
			log.Error("create default employee salary failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			return false
		}

		log.Info("employee salary created from employee_created event",
			zap.String("employee_id", event.EmployeeID),
			zap.String("company_id", event.CompanyID),
		)
		return true
	})
}

// ConsumeEmailRequests delivers queued notification e-mails. Delivery
// failures are logged and the message is still committed.
func ConsumeEmailRequests(
	ctx context.Context,
	reader MessageReader,
	mailer notification.Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification_email")
	log.Info("notification email consumer started")

	consume(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) bool {
		var event events.EmailRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode email event failed", zap.Error(err))
			return true
		}
		if event.To == "" {
			log.Warn("email event without recipient, skipping",
				zap.String("notification_id", event.NotificationID),
			)
			return true
		}

		if err := mailer.Send(ctx, notification.Email{
			CompanyID:      event.CompanyID,
			NotificationID: event.NotificationID,
			To:             event.To,
			Subject:        event.Subject,
			Body:           event.Body,
		}); err != nil {
			log.Error("deliver email failed",
				zap.String("notification_id", event.NotificationID),
				zap.Error(err),
			)
		}
		return true
	})
}
