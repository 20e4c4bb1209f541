package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"go-ess/internal/employeesalary"
	employeesalaryerrors "go-ess/internal/employeesalary/errors"
	"go-ess/internal/events"
	"go-ess/internal/messaging/kafka/consumer"
	"go-ess/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeReader serves queued messages then cancels the consumer context.
type fakeReader struct {
	mu        sync.Mutex
	messages  []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func encode(t *testing.T, v any) kafkago.Message {
	t.Helper()
	b, err := json.Marshal(v)
	assert.NoError(t, err)
	return kafkago.Message{Value: b}
}

type fakeSalaries struct {
	requests []employeesalary.CreateEmployeeSalaryRequest
	err      error
}

func (f *fakeSalaries) Create(_ context.Context, _ string, req employeesalary.CreateEmployeeSalaryRequest) (employeesalary.EmployeeSalaryResponse, error) {
	f.requests = append(f.requests, req)
	return employeesalary.EmployeeSalaryResponse{}, f.err
}

type fakeMailer struct {
	sent []notification.Email
	err  error
}

func (f *fakeMailer) Send(_ context.Context, email notification.Email) error {
	f.sent = append(f.sent, email)
	return f.err
}

func TestConsumeEmployeeLifecycle(t *testing.T) {
	t.Run("success creates default salary from hire date", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{cancel: cancel, messages: []kafkago.Message{
			encode(t, events.EmployeeCreatedEvent{
				EventType:  events.EventTypeEmployeeCreated,
				EmployeeID: "emp-1",
				CompanyID:  "company-1",
				HireDate:   "2026-01-15",
			}),
		}}
		salaries := &fakeSalaries{}

		consumer.ConsumeEmployeeLifecycle(ctx, reader, salaries, zap.NewNop())

		assert.Len(t, salaries.requests, 1)
		assert.Equal(t, "2026-01-15", salaries.requests[0].EffectiveDate)
		assert.Equal(t, "0", salaries.requests[0].BasicSalary)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("success duplicate is committed", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{cancel: cancel, messages: []kafkago.Message{
			encode(t, events.EmployeeCreatedEvent{EmployeeID: "emp-1", CompanyID: "company-1"}),
		}}
		salaries := &fakeSalaries{err: employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists}

		consumer.ConsumeEmployeeLifecycle(ctx, reader, salaries, zap.NewNop())

		assert.Len(t, reader.committed, 1)
	})

	t.Run("negative failure leaves message uncommitted", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{cancel: cancel, messages: []kafkago.Message{
			encode(t, events.EmployeeCreatedEvent{EmployeeID: "emp-1", CompanyID: "company-1"}),
		}}
		salaries := &fakeSalaries{err: errors.New("db down")}

		consumer.ConsumeEmployeeLifecycle(ctx, reader, salaries, zap.NewNop())

		assert.Empty(t, reader.committed)
	})

	t.Run("negative malformed payload is committed", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{cancel: cancel, messages: []kafkago.Message{{Value: []byte("{")}}}
		salaries := &fakeSalaries{}

		consumer.ConsumeEmployeeLifecycle(ctx, reader, salaries, zap.NewNop())

		assert.Empty(t, salaries.requests)
		assert.Len(t, reader.committed, 1)
	})
}

func TestConsumeEmailRequests(t *testing.T) {
	t.Run("success delivers email", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{cancel: cancel, messages: []kafkago.Message{
			encode(t, events.EmailRequestedEvent{
				EventType:      events.EventTypeEmailRequested,
				NotificationID: "n-1",
				To:             "sara@example.com",
				Subject:        "Leave approved",
				Body:           "Your leave was approved",
			}),
		}}
		mailer := &fakeMailer{}

		consumer.ConsumeEmailRequests(ctx, reader, mailer, zap.NewNop())

		assert.Len(t, mailer.sent, 1)
		assert.Equal(t, "sara@example.com", mailer.sent[0].To)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("negative delivery failure still commits", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{cancel: cancel, messages: []kafkago.Message{
			encode(t, events.EmailRequestedEvent{To: "sara@example.com"}),
		}}
		mailer := &fakeMailer{err: errors.New("smtp down")}

		consumer.ConsumeEmailRequests(ctx, reader, mailer, zap.NewNop())

		assert.Len(t, reader.committed, 1)
	})

	t.Run("negative missing recipient skipped", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{cancel: cancel, messages: []kafkago.Message{
			encode(t, events.EmailRequestedEvent{Subject: "x"}),
		}}
		mailer := &fakeMailer{}

		consumer.ConsumeEmailRequests(ctx, reader, mailer, zap.NewNop())

		assert.Empty(t, mailer.sent)
		assert.Len(t, reader.committed, 1)
	})
}
