package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go-ess/internal/config"
	"go-ess/internal/employeesalary"
	"go-ess/internal/events"
	"go-ess/internal/messaging/kafka/consumer"
	"go-ess/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer runs the employee lifecycle and e-mail consumers until
// SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return errors.New("kafka.broker is required")
	}

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	employeeSalaryRepo := employeesalary.NewRepository(gormDB)
	employeeSalaryService := employeesalary.NewService(sqlDB, employeeSalaryRepo, logger)
	mailer := notification.NewLogMailer(
		fmt.Sprintf("%s <%s>", cfg.Kafka.MailFromName, cfg.Kafka.MailFromEmail),
		logger,
	)

	lifecycleReader := newReader(cfg.Kafka, events.EmployeeLifecycleTopic, "employee-salary")
	defer lifecycleReader.Close()
	emailReader := newReader(cfg.Kafka, events.NotificationEmailTopic, "notification-email")
	defer emailReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, employeeSalaryService, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeEmailRequests(ctx, emailReader, mailer, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	wg.Wait()

	return nil
}

func newReader(cfg config.KafkaConfig, topic, suffix string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Broker},
		Topic:          topic,
		GroupID:        cfg.GroupID + "-" + suffix,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}
