package leave

import (
	"context"
	"database/sql"
	"time"

	"go-ess/internal/shared/query"
	"go-ess/internal/tenant"
	"go-ess/internal/workflow"

	"gorm.io/gorm"
)

var (
	leaveColumns   = []string{"employee_id", "leave_type_id", "status", "start_date", "end_date", "created_at"}
	typeColumns    = []string{"code", "name", "accrual_method", "is_active"}
	balanceColumns = []string{"employee_id", "leave_type_id", "year"}
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context, companyID string, spec query.Spec) ([]Leave, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error)
	Update(ctx context.Context, l *Leave) error
	Delete(ctx context.Context, companyID, id string) error
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
	HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)

	CreateType(ctx context.Context, t *LeaveType) error
	FindTypes(ctx context.Context, companyID string, spec query.Spec) ([]LeaveType, error)
	FindTypeByID(ctx context.Context, companyID, id string) (*LeaveType, error)
	UpdateType(ctx context.Context, t *LeaveType) error
	DeleteType(ctx context.Context, companyID, id string) error

	FindBalance(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*Balance, error)
	FindBalances(ctx context.Context, companyID string, spec query.Spec) ([]Balance, error)
	CreateBalance(ctx context.Context, b *Balance) error
	UpdateBalance(ctx context.Context, b *Balance) error
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, spec query.Spec) ([]Leave, error) {
	if err := spec.Validate(leaveColumns...); err != nil {
		return nil, err
	}
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), spec.Scope("start_date DESC")).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Leave{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

// HasOverlappingPeriod ignores rejected and cancelled requests.
func (r *repository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(tenant.Employee(companyID, employeeID)).
		Where("status NOT IN ?", []string{workflow.StatusRejected, workflow.StatusCancelled}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateType(ctx context.Context, t *LeaveType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindTypes(ctx context.Context, companyID string, spec query.Spec) ([]LeaveType, error) {
	if err := spec.Validate(typeColumns...); err != nil {
		return nil, err
	}
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), spec.Scope("code ASC")).
		Find(&types).Error
	return types, err
}

func (r *repository) FindTypeByID(ctx context.Context, companyID, id string) (*LeaveType, error) {
	var t LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) UpdateType(ctx context.Context, t *LeaveType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) DeleteType(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&LeaveType{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindBalance(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*Balance, error) {
	var b Balance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Employee(companyID, employeeID)).
		Where("leave_type_id = ? AND year = ?", leaveTypeID, year).
		First(&b).Error
	return &b, err
}

func (r *repository) FindBalances(ctx context.Context, companyID string, spec query.Spec) ([]Balance, error) {
	if err := spec.Validate(balanceColumns...); err != nil {
		return nil, err
	}
	var balances []Balance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), spec.Scope("year DESC")).
		Find(&balances).Error
	return balances, err
}

func (r *repository) CreateBalance(ctx context.Context, b *Balance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) UpdateBalance(ctx context.Context, b *Balance) error {
	return r.db.WithContext(ctx).Save(b).Error
}
