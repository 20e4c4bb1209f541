package payroll

import (
	"context"
	"database/sql"

	"go-ess/internal/shared/query"
	"go-ess/internal/tenant"

	"gorm.io/gorm"
)

var listColumns = []string{"employee_id", "status", "year", "month", "net_salary", "created_at"}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, payroll *Payroll) error
	FindAll(ctx context.Context, companyID string, spec query.Spec) ([]Payroll, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payroll, error)
	FindByEmployeePeriod(ctx context.Context, companyID, employeeID string, year, month int) (*Payroll, error)
	Update(ctx context.Context, payroll *Payroll) error
	ReplaceComponents(ctx context.Context, payroll *Payroll, components []Component) error
	Delete(ctx context.Context, companyID string, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// Create inserts the payroll together with its Components.
func (r *repository) Create(ctx context.Context, payroll *Payroll) error {
	return r.db.WithContext(ctx).Create(payroll).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, spec query.Spec) ([]Payroll, error) {
	if err := spec.Validate(listColumns...); err != nil {
		return nil, err
	}
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID), spec.Scope("year DESC, month DESC, created_at DESC")).
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payroll, error) {
	var payroll Payroll
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Scopes(tenant.Scope(companyID)).
		First(&payroll, "id = ?", id).Error
	return &payroll, err
}

func (r *repository) FindByEmployeePeriod(ctx context.Context, companyID, employeeID string, year, month int) (*Payroll, error) {
	var payroll Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Employee(companyID, employeeID)).
		Where("year = ? AND month = ?", year, month).
		First(&payroll).Error
	return &payroll, err
}

func (r *repository) Update(ctx context.Context, payroll *Payroll) error {
	return r.db.WithContext(ctx).Omit("Components", "Employee").Save(payroll).Error
}

func (r *repository) ReplaceComponents(ctx context.Context, payroll *Payroll, components []Component) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payroll_id = ?", payroll.ID).Delete(&Component{}).Error; err != nil {
			return err
		}
		if len(components) == 0 {
			return nil
		}
		return tx.Create(&components).Error
	})
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Payroll{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
