package workflow

import (
	"context"
	"database/sql"
	"go-ess/internal/shared/query"
	"go-ess/internal/tenant"

	"gorm.io/gorm"
)

var definitionColumns = []string{"name", "module", "is_default", "is_active", "created_at"}

//go:generate mockgen -source=workflow_repo.go -destination=mock/workflow_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateDefinition(ctx context.Context, def *Definition) error
	FindDefinitions(ctx context.Context, companyID string, spec query.Spec) ([]Definition, error)
	FindDefinitionByID(ctx context.Context, companyID, id string) (*Definition, error)
	FindDefaultDefinition(ctx context.Context, companyID, module string) (*Definition, error)
	UpdateDefinition(ctx context.Context, def *Definition) error
	DeleteDefinition(ctx context.Context, companyID, id string) error
	ClearDefault(ctx context.Context, companyID, module, exceptID string) error

	CreateInstance(ctx context.Context, inst *Instance) error
	FindInstanceByRequest(ctx context.Context, companyID, module, requestID string) (*Instance, error)
	UpdateInstance(ctx context.Context, inst *Instance) error

	CreateAction(ctx context.Context, action *ApprovalAction) error
	ListActions(ctx context.Context, companyID, requestID string) ([]ApprovalAction, error)
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

func (r *repository) CreateDefinition(ctx context.Context, def *Definition) error {
	return r.db.WithContext(ctx).Create(def).Error
}

func (r *repository) FindDefinitions(ctx context.Context, companyID string, spec query.Spec) ([]Definition, error) {
	if err := spec.Validate(definitionColumns...); err != nil {
		return nil, err
	}
	var defs []Definition
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), spec.Scope("name ASC")).
		Find(&defs).Error
	return defs, err
}

func (r *repository) FindDefinitionByID(ctx context.Context, companyID, id string) (*Definition, error) {
	var def Definition
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&def, "id = ?", id).Error
	return &def, err
}

func (r *repository) FindDefaultDefinition(ctx context.Context, companyID, module string) (*Definition, error) {
	var def Definition
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("module = ? AND is_default = ? AND is_active = ?", module, true, true).
		Order("updated_at DESC").
		First(&def).Error
	return &def, err
}

func (r *repository) UpdateDefinition(ctx context.Context, def *Definition) error {
	return r.db.WithContext(ctx).Save(def).Error
}

func (r *repository) DeleteDefinition(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Definition{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ClearDefault(ctx context.Context, companyID, module, exceptID string) error {
	return r.db.WithContext(ctx).
		Model(&Definition{}).
		Scopes(tenant.Scope(companyID)).
		Where("module = ? AND id <> ?", module, exceptID).
		Update("is_default", false).Error
}

func (r *repository) CreateInstance(ctx context.Context, inst *Instance) error {
	return r.db.WithContext(ctx).Create(inst).Error
}

func (r *repository) FindInstanceByRequest(ctx context.Context, companyID, module, requestID string) (*Instance, error) {
	var inst Instance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("module = ? AND request_id = ?", module, requestID).
		First(&inst).Error
	return &inst, err
}

func (r *repository) UpdateInstance(ctx context.Context, inst *Instance) error {
	return r.db.WithContext(ctx).Save(inst).Error
}

func (r *repository) CreateAction(ctx context.Context, action *ApprovalAction) error {
	return r.db.WithContext(ctx).Create(action).Error
}

func (r *repository) ListActions(ctx context.Context, companyID, requestID string) ([]ApprovalAction, error) {
	var actions []ApprovalAction
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("request_id = ?", requestID).
		Order("acted_at ASC").
		Find(&actions).Error
	return actions, err
}
