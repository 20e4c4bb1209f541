package employeesalary

import (
	"context"
	"database/sql"
	"errors"
	"time"

	employeesalaryerrors "go-ess/internal/employeesalary/errors"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/money"
	"go-ess/internal/shared/query"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_salary_service.go -destination=mock/employee_salary_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeSalaryRequest) (EmployeeSalaryResponse, error)
	GetAll(ctx context.Context, companyID string, filter ListFilter) ([]EmployeeSalaryResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeSalaryResponse, error)
	GetEffective(ctx context.Context, companyID, employeeID, asOf string) (EmployeeSalaryResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeSalaryRequest) (EmployeeSalaryResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employeesalary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeesalary.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEmployeeSalaryRequest,
) (EmployeeSalaryResponse, error) {
	s.logger.Debug("create salary request", zap.String("employee_id", req.EmployeeID))

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeSalaryResponse{}, apperror.ErrInvalidCompanyID
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEmployeeID
	}
	effectiveDate, err := time.Parse(dateLayout, req.EffectiveDate)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEffectiveDate
	}
	parts, err := parseComponents(req.BasicSalary, req.HousingAllowance, req.TransportationAllowance, req.OtherDeductions)
	if err != nil {
		s.logger.Warn("create salary invalid amounts", zap.Error(err))
		return EmployeeSalaryResponse{}, err
	}

	salary := &EmployeeSalary{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeID,
		EffectiveDate: effectiveDate,
	}
	parts.apply(salary)

	return s.insert(ctx, companyID, salary)
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter ListFilter,
) ([]EmployeeSalaryResponse, error) {
	spec := query.Spec{Filter: map[string]any{}, Sort: filter.Sort}
	if filter.EmployeeID != "" {
		spec.Filter["employee_id"] = filter.EmployeeID
	}

	salaries, err := s.repo.FindAll(ctx, companyID, spec)
	if err != nil {
		s.logger.Error("list salaries failed", zap.Error(err))
		return nil, err
	}

	res := make([]EmployeeSalaryResponse, len(salaries))
	for i, salary := range salaries {
		res[i] = mapToResponse(salary)
	}
	return res, nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (EmployeeSalaryResponse, error) {
	salary, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*salary), nil
}

// GetEffective returns the revision in force on asOf, or today when asOf is
// empty.
func (s *service) GetEffective(
	ctx context.Context,
	companyID, employeeID, asOf string,
) (EmployeeSalaryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEmployeeID
	}
	date := s.now()
	if asOf != "" {
		parsed, err := time.Parse(dateLayout, asOf)
		if err != nil {
			return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEffectiveDate
		}
		date = parsed
	}

	salary, err := s.repo.FindEffective(ctx, companyID, employeeID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeSalaryResponse{}, employeesalaryerrors.ErrNoEffectiveSalary
		}
		s.logger.Error("find effective salary failed", zap.Error(err))
		return EmployeeSalaryResponse{}, err
	}
	return mapToResponse(*salary), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateEmployeeSalaryRequest,
) (EmployeeSalaryResponse, error) {
	current, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	effectiveDate, err := time.Parse(dateLayout, req.EffectiveDate)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEffectiveDate
	}
	parts, err := parseComponents(req.BasicSalary, req.HousingAllowance, req.TransportationAllowance, req.OtherDeductions)
	if err != nil {
		s.logger.Warn("update salary invalid amounts", zap.Error(err))
		return EmployeeSalaryResponse{}, err
	}

	revision := &EmployeeSalary{
		ID:            uuid.New(),
		CompanyID:     current.CompanyID,
		EmployeeID:    current.EmployeeID,
		EffectiveDate: effectiveDate,
	}
	parts.apply(revision)

	return s.insert(ctx, companyID, revision)
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete salary begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete salary commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("salary deleted", zap.String("salary_id", id))
	return nil
}

func (s *service) insert(ctx context.Context, companyID string, salary *EmployeeSalary) (EmployeeSalaryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("salary begin tx failed", zap.Error(err))
		return EmployeeSalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, salary); err != nil {
		if !IsDuplicateRevision(err) {
			s.logger.Error("salary persist failed", zap.Error(err))
		}
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	created, err := qtx.FindByIDAndCompany(ctx, companyID, salary.ID.String())
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("salary commit failed", zap.Error(err))
		return EmployeeSalaryResponse{}, err
	}

	s.logger.Info("salary revision created",
		zap.String("employee_id", salary.EmployeeID.String()),
		zap.String("effective_date", salary.EffectiveDate.Format(dateLayout)),
	)
	return mapToResponse(*created), nil
}

func parseComponents(basic, housing, transport, deductions string) (components, error) {
	var c components
	for _, f := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{basic, &c.basic},
		{housing, &c.housing},
		{transport, &c.transport},
		{deductions, &c.deductions},
	} {
		v, err := money.ParseOptional(f.raw)
		if err != nil || v.IsNegative() {
			return components{}, employeesalaryerrors.ErrInvalidAmount
		}
		*f.dst = money.Round2(v)
	}
	return c, nil
}

func (c components) apply(s *EmployeeSalary) {
	s.BasicSalary = c.basic
	s.HousingAllowance = c.housing
	s.TransportationAllowance = c.transport
	s.OtherDeductions = c.deductions
}
