package loan

import (
	"context"
	"database/sql"

	"go-ess/internal/shared/query"
	"go-ess/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	loanColumns    = []string{"employee_id", "product_id", "status", "principal", "created_at"}
	productColumns = []string{"code", "name", "interest_method", "is_active"}
)

//go:generate mockgen -source=loan_repo.go -destination=mock/loan_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateProduct(ctx context.Context, p *Product) error
	FindProducts(ctx context.Context, companyID string, spec query.Spec) ([]Product, error)
	FindProductByID(ctx context.Context, companyID, id string) (*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, companyID, id string) error

	Create(ctx context.Context, a *Account) error
	FindAll(ctx context.Context, companyID string, spec query.Spec) ([]Account, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Account, error)
	FindByIDForUpdate(ctx context.Context, companyID, id string) (*Account, error)
	Update(ctx context.Context, a *Account) error
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)

	CreateRepayment(ctx context.Context, r *Repayment) error
	FindRepayments(ctx context.Context, companyID, loanID string) ([]Repayment, error)
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

func (r *repository) CreateProduct(ctx context.Context, p *Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindProducts(ctx context.Context, companyID string, spec query.Spec) ([]Product, error) {
	if err := spec.Validate(productColumns...); err != nil {
		return nil, err
	}
	var products []Product
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), spec.Scope("code ASC")).
		Find(&products).Error
	return products, err
}

func (r *repository) FindProductByID(ctx context.Context, companyID, id string) (*Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) UpdateProduct(ctx context.Context, p *Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) DeleteProduct(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Create(ctx context.Context, a *Account) error {
	return r.db.WithContext(ctx).Omit("Product", "Employee").Create(a).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, spec query.Spec) ([]Account, error) {
	if err := spec.Validate(loanColumns...); err != nil {
		return nil, err
	}
	var loans []Account
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Employee").
		Scopes(tenant.Scope(companyID), spec.Scope("created_at DESC")).
		Find(&loans).Error
	return loans, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Account, error) {
	var a Account
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Employee").
		Scopes(tenant.Scope(companyID)).
		First(&a, "id = ?", id).Error
	return &a, err
}

// FindByIDForUpdate locks the row so concurrent repayments serialize.
func (r *repository) FindByIDForUpdate(ctx context.Context, companyID, id string) (*Account, error) {
	var a Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) Update(ctx context.Context, a *Account) error {
	return r.db.WithContext(ctx).Omit("Product", "Employee").Save(a).Error
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Scopes(tenant.Scope(companyID)).
		Where("id = ? AND deleted_at IS NULL", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateRepayment(ctx context.Context, rp *Repayment) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *repository) FindRepayments(ctx context.Context, companyID, loanID string) ([]Repayment, error) {
	var repayments []Repayment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("loan_id = ?", loanID).
		Order("paid_at ASC, created_at ASC").
		Find(&repayments).Error
	return repayments, err
}
