package accrual

import (
	"context"
	"time"

	"go-ess/internal/shared/query"
	"go-ess/internal/tenant"

	"gorm.io/gorm"
)

var listColumns = []string{"employee_id", "leave_type_id", "year", "month", "created_at"}

const bulkBatchSize = 200

//go:generate mockgen -source=accrual_repo.go -destination=mock/accrual_repo_mock.go -package=mock
type Repository interface {
	FindPosted(ctx context.Context, companyID string, year, month int) ([]Accrual, error)
	BulkCreate(ctx context.Context, accruals []Accrual) error
	SetCredited(ctx context.Context, id string, at *time.Time) error
	FindAll(ctx context.Context, companyID string, spec query.Spec) ([]Accrual, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindPosted(ctx context.Context, companyID string, year, month int) ([]Accrual, error) {
	var accruals []Accrual
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("year = ? AND month = ?", year, month).
		Find(&accruals).Error
	return accruals, err
}

func (r *repository) BulkCreate(ctx context.Context, accruals []Accrual) error {
	return r.db.WithContext(ctx).CreateInBatches(accruals, bulkBatchSize).Error
}

func (r *repository) SetCredited(ctx context.Context, id string, at *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Accrual{}).
		Where("id = ?", id).
		Update("credited_at", at).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, spec query.Spec) ([]Accrual, error) {
	if err := spec.Validate(listColumns...); err != nil {
		return nil, err
	}
	var accruals []Accrual
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), spec.Scope("year DESC, month DESC")).
		Find(&accruals).Error
	return accruals, err
}
