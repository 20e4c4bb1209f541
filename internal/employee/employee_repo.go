package employee

import (
	"context"
	"database/sql"
	"go-ess/internal/shared/query"
	"go-ess/internal/tenant"
	"strings"

	"gorm.io/gorm"
)

var listColumns = []string{
	"employee_number", "full_name", "email", "manager_id", "department_id",
	"job_title", "nationality", "hire_date", "employment_status", "created_at",
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, companyID string, spec query.Spec) ([]Employee, error)
	FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindActiveByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	FindFirstByTitle(ctx context.Context, companyID, keyword, departmentID string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, spec query.Spec) ([]Employee, error) {
	if err := spec.Validate(listColumns...); err != nil {
		return nil, err
	}
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), spec.Scope("full_name ASC")).
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Select("id", "company_id", "employee_number", "full_name", "email", "employment_status").
		Scopes(tenant.Scope(companyID)).
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindActiveByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employment_status = ?", StatusActive).
		Order("employee_number ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

// FindFirstByTitle returns the first active employee, by employee number,
// whose job title contains keyword case-insensitively. departmentID narrows
// the search when not empty.
func (r *repository) FindFirstByTitle(ctx context.Context, companyID, keyword, departmentID string) (*Employee, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employment_status = ?", StatusActive).
		Where("LOWER(job_title) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}

	var empl Employee
	err := q.Order("employee_number ASC").First(&empl).Error
	return &empl, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
