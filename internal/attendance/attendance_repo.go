package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-ess/internal/shared/query"
	"go-ess/internal/tenant"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var listColumns = []string{"employee_id", "attendance_date", "status", "source", "created_at"}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	FindByEmployeeAndMonth(ctx context.Context, companyID, employeeID string, year, month int) ([]Attendance, error)
	FindAll(ctx context.Context, companyID string, spec query.Spec) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Employee(companyID, employeeID)).
		Where("attendance_date = ?", date.Format(dateLayout)).
		First(&a).Error
	return &a, err
}

func (r *repository) FindByEmployeeAndMonth(ctx context.Context, companyID, employeeID string, year, month int) ([]Attendance, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	var rows []Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Employee(companyID, employeeID)).
		Where("attendance_date BETWEEN ? AND ?", start.Format(dateLayout), end.Format(dateLayout)).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context, companyID string, spec query.Spec) ([]Attendance, error) {
	if err := spec.Validate(listColumns...); err != nil {
		return nil, err
	}
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID), spec.Scope("attendance_date DESC, clock_in DESC")).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}
