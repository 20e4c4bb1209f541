package notification

import (
	"context"
	"errors"
	"time"

	notificationerrors "go-ess/internal/notification/errors"
	"go-ess/internal/shared/query"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	ListMine(ctx context.Context, companyID, employeeID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, companyID, employeeID, id string) error
	MarkAllRead(ctx context.Context, companyID, employeeID string) (int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) ListMine(ctx context.Context, companyID, employeeID string, unreadOnly bool) ([]NotificationResponse, error) {
	if employeeID == "" {
		return nil, notificationerrors.ErrRecipientRequired
	}
	spec := query.Spec{Filter: map[string]any{}}
	if unreadOnly {
		spec.Filter["is_read"] = false
	}

	items, err := s.repo.FindByRecipient(ctx, companyID, employeeID, spec)
	if err != nil {
		s.logger.Error("list notifications failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return nil, err
	}

	resp := make([]NotificationResponse, len(items))
	for i, n := range items {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, companyID, employeeID, id string) error {
	if employeeID == "" {
		return notificationerrors.ErrRecipientRequired
	}
	if err := s.repo.MarkRead(ctx, companyID, employeeID, id, time.Now().UTC()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notificationerrors.ErrNotificationNotFound
		}
		s.logger.Error("mark notification read failed",
			zap.String("notification_id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, companyID, employeeID string) (int64, error) {
	if employeeID == "" {
		return 0, notificationerrors.ErrRecipientRequired
	}
	n, err := s.repo.MarkAllRead(ctx, companyID, employeeID, time.Now().UTC())
	if err != nil {
		s.logger.Error("mark all notifications read failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return 0, err
	}
	s.logger.Info("notifications marked read",
		zap.String("employee_id", employeeID),
		zap.Int64("count", n),
	)
	return n, nil
}
