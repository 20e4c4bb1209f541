package notification

import (
	"context"
	"time"

	"go-ess/internal/shared/query"
	"go-ess/internal/tenant"

	"gorm.io/gorm"
)

var listColumns = []string{"is_read", "type", "reference_type", "created_at"}

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByRecipient(ctx context.Context, companyID, recipientID string, spec query.Spec) ([]Notification, error)
	MarkRead(ctx context.Context, companyID, recipientID, id string, at time.Time) error
	MarkAllRead(ctx context.Context, companyID, recipientID string, at time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindByRecipient(ctx context.Context, companyID, recipientID string, spec query.Spec) ([]Notification, error) {
	if err := spec.Validate(listColumns...); err != nil {
		return nil, err
	}
	var items []Notification
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), spec.Scope("created_at DESC")).
		Where("recipient_id = ?", recipientID).
		Find(&items).Error
	return items, err
}

func (r *repository) MarkRead(ctx context.Context, companyID, recipientID, id string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Updates(map[string]any{"is_read": true, "read_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) MarkAllRead(ctx context.Context, companyID, recipientID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Scopes(tenant.Scope(companyID)).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Updates(map[string]any{"is_read": true, "read_at": at})
	return res.RowsAffected, res.Error
}
