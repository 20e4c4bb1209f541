package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-ess/internal/attendance"
	"go-ess/internal/employee"
	"go-ess/internal/employeesalary"
	"go-ess/internal/notification"
	payrollerrors "go-ess/internal/payroll/errors"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Employees is the employee lookup payroll needs.
type Employees interface {
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*employee.Employee, error)
	FindActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error)
}

// Salaries resolves the salary revision in force on a date.
type Salaries interface {
	FindEffective(ctx context.Context, companyID, employeeID string, asOf time.Time) (*employeesalary.EmployeeSalary, error)
}

// TimeLogs returns an employee's attendance rows for one month.
type TimeLogs interface {
	FindByEmployeeAndMonth(ctx context.Context, companyID, employeeID string, year, month int) ([]attendance.Attendance, error)
}

type Notifier interface {
	Notify(ctx context.Context, msg notification.Message)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, companyID, actorID string, req GenerateRequest) (PayrollResponse, error)
	GenerateBatch(ctx context.Context, companyID, actorID string, req BatchRequest) (BatchSummary, error)
	GetAll(ctx context.Context, companyID string, filter ListFilter) ([]PayrollResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error)
	GetBreakdown(ctx context.Context, companyID, id string) (BreakdownResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error)
	MarkAsPaid(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error)
	Regenerate(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	DownloadPayslip(ctx context.Context, companyID, id string) ([]byte, string, error)
	Export(ctx context.Context, companyID string, filter ListFilter) ([]byte, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees Employees
	salaries  Salaries
	timeLogs  TimeLogs
	notifier  Notifier
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees Employees,
	salaries Salaries,
	timeLogs TimeLogs,
	notifier Notifier,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		salaries:  salaries,
		timeLogs:  timeLogs,
		notifier:  notifier,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    l,
	}
}

func (s *service) Generate(ctx context.Context, companyID, actorID string, req GenerateRequest) (PayrollResponse, error) {
	s.logger.Debug("generate payroll request",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
	)

	actor, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}
	if err := validatePeriod(req.Year, req.Month); err != nil {
		return PayrollResponse{}, err
	}

	p, err := s.generate(ctx, companyID, actor, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

// GenerateBatch runs every active employee in turn. An employee whose period
// already exists is skipped; any other failure is logged and counted.
func (s *service) GenerateBatch(ctx context.Context, companyID, actorID string, req BatchRequest) (BatchSummary, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return BatchSummary{}, payrollerrors.ErrInvalidActorID
	}
	if err := validatePeriod(req.Year, req.Month); err != nil {
		return BatchSummary{}, err
	}

	employees, err := s.employees.FindActiveByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("batch payroll list employees failed", zap.Error(err))
		return BatchSummary{}, err
	}

	summary := BatchSummary{Year: req.Year, Month: req.Month}
	totalNet := decimal.Zero
	for _, e := range employees {
		p, err := s.generate(ctx, companyID, actor, e.ID.String(), req.Year, req.Month)
		switch {
		case err == nil:
			summary.Created++
			totalNet = totalNet.Add(p.NetSalary)
		case errors.Is(err, payrollerrors.ErrPayrollExists):
			summary.Skipped++
		default:
			summary.Failed++
			summary.Errors = append(summary.Errors, BatchError{EmployeeID: e.ID.String(), Message: err.Error()})
			s.logger.Warn("batch payroll employee failed",
				zap.String("employee_id", e.ID.String()),
				zap.Error(err),
			)
		}
	}
	summary.TotalNet = totalNet.StringFixed(2)

	s.logger.Info("batch payroll finished",
		zap.String("company_id", companyID),
		zap.Int("created", summary.Created),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (s *service) generate(ctx context.Context, companyID string, actor uuid.UUID, employeeID string, year, month int) (*Payroll, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, apperror.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}

	if _, err := s.repo.FindByEmployeePeriod(ctx, companyID, employeeID, year, month); err == nil {
		return nil, payrollerrors.ErrPayrollExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check existing payroll failed", zap.Error(err))
		return nil, err
	}

	start, end := periodBounds(year, month)
	result, err := s.compute(ctx, companyID, employeeID, year, month)
	if err != nil {
		return nil, err
	}

	p := &Payroll{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		Year:        year,
		Month:       month,
		PeriodStart: start,
		PeriodEnd:   end,
		Status:      StatusDraft,
		CreatedBy:   actor,
	}
	result.apply(p)
	p.Components = stampComponents(p, result.Components())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate payroll begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		if isUniqueViolation(err) {
			return nil, payrollerrors.ErrPayrollExists
		}
		s.logger.Error("persist payroll failed", zap.Error(err))
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("generate payroll commit failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("payroll generated",
		zap.String("payroll_id", p.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("net_salary", p.NetSalary.StringFixed(2)),
	)
	return p, nil
}

// compute gathers the inputs for one employee-month and runs the calculator.
func (s *service) compute(ctx context.Context, companyID, employeeID string, year, month int) (Result, error) {
	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Result{}, payrollerrors.ErrEmployeeNotInCompany
		}
		s.logger.Error("payroll employee lookup failed", zap.Error(err))
		return Result{}, err
	}

	_, end := periodBounds(year, month)
	salary, err := s.salaries.FindEffective(ctx, companyID, employeeID, end)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Result{}, payrollerrors.ErrSalaryNotConfigured
		}
		s.logger.Error("payroll salary lookup failed", zap.Error(err))
		return Result{}, err
	}

	rows, err := s.timeLogs.FindByEmployeeAndMonth(ctx, companyID, employeeID, year, month)
	if err != nil {
		s.logger.Error("payroll attendance lookup failed", zap.Error(err))
		return Result{}, err
	}
	logs := make([]TimeLog, len(rows))
	for i, r := range rows {
		logs[i] = TimeLog{Status: r.Status, OvertimeHours: r.OvertimeHours}
	}

	return Calculate(Input{
		BasicSalary:             salary.BasicSalary,
		HousingAllowance:        salary.HousingAllowance,
		TransportationAllowance: salary.TransportationAllowance,
		OtherDeductions:         salary.OtherDeductions,
		Nationality:             emp.Nationality,
		TimeLogs:                logs,
	}), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter ListFilter) ([]PayrollResponse, error) {
	payrolls, err := s.list(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	res := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) list(ctx context.Context, companyID string, filter ListFilter) ([]Payroll, error) {
	spec := query.Spec{Filter: map[string]any{}, Sort: filter.Sort}
	if filter.Status != "" {
		switch filter.Status {
		case StatusDraft, StatusApproved, StatusPaid:
			spec.Filter["status"] = filter.Status
		default:
			return nil, payrollerrors.ErrInvalidStatusFilter
		}
	}
	if filter.EmployeeID != "" {
		spec.Filter["employee_id"] = filter.EmployeeID
	}
	if filter.Year > 0 {
		spec.Filter["year"] = filter.Year
	}
	if filter.Month > 0 {
		spec.Filter["month"] = filter.Month
	}

	payrolls, err := s.repo.FindAll(ctx, companyID, spec)
	if err != nil {
		s.logger.Error("list payrolls failed", zap.Error(err))
		return nil, err
	}
	return payrolls, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error) {
	p, err := s.find(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) GetBreakdown(ctx context.Context, companyID, id string) (BreakdownResponse, error) {
	p, err := s.find(ctx, companyID, id)
	if err != nil {
		return BreakdownResponse{}, err
	}
	return mapToBreakdown(*p), nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	p, err := s.transition(ctx, companyID, id, StatusDraft, func(p *Payroll, now time.Time) {
		p.Status = StatusApproved
		p.ApprovedBy = &actor
		p.ApprovedAt = &now
	})
	if err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll approved", zap.String("payroll_id", id), zap.String("actor_id", actorID))
	return mapToResponse(*p), nil
}

func (s *service) MarkAsPaid(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	p, err := s.transition(ctx, companyID, id, StatusApproved, func(p *Payroll, now time.Time) {
		p.Status = StatusPaid
		p.PaidBy = &actor
		p.PaidAt = &now
	})
	if err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll paid", zap.String("payroll_id", id), zap.String("actor_id", actorID))
	if s.notifier != nil {
		s.notifier.Notify(ctx, notification.Message{
			CompanyID:     companyID,
			RecipientID:   p.EmployeeID.String(),
			Title:         "Salary paid",
			Body:          fmt.Sprintf("Your salary for %04d-%02d has been paid. Net amount: %s.", p.Year, p.Month, p.NetSalary.StringFixed(2)),
			Type:          "payroll",
			ReferenceType: "payroll",
			ReferenceID:   p.ID.String(),
		})
	}
	return mapToResponse(*p), nil
}

func (s *service) transition(ctx context.Context, companyID, id, from string, apply func(p *Payroll, now time.Time)) (*Payroll, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("payroll transition begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := s.findWith(ctx, qtx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p.Status != from {
		s.logger.Warn("payroll transition rejected",
			zap.String("payroll_id", id),
			zap.String("status", p.Status),
			zap.String("expected", from),
		)
		return nil, payrollerrors.ErrInvalidStatusTransition
	}

	apply(p, s.now())
	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("payroll transition persist failed", zap.Error(err))
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("payroll transition commit failed", zap.Error(err))
		return nil, err
	}
	return p, nil
}

// Regenerate recomputes a draft from the current salary and attendance.
func (s *service) Regenerate(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	p, err := s.find(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	if p.Status != StatusDraft {
		return PayrollResponse{}, payrollerrors.ErrRegenerateOnlyDraft
	}

	result, err := s.compute(ctx, companyID, p.EmployeeID.String(), p.Year, p.Month)
	if err != nil {
		return PayrollResponse{}, err
	}
	result.apply(p)
	components := stampComponents(p, result.Components())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("regenerate payroll begin tx failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("regenerate payroll persist failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	if err := qtx.ReplaceComponents(ctx, p, components); err != nil {
		s.logger.Error("regenerate payroll components failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("regenerate payroll commit failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	p.Components = components

	s.logger.Info("payroll regenerated",
		zap.String("payroll_id", id),
		zap.String("net_salary", p.NetSalary.StringFixed(2)),
	)
	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete payroll begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := s.findWith(ctx, qtx, companyID, id)
	if err != nil {
		return err
	}
	if p.Status != StatusDraft {
		return payrollerrors.ErrDeleteOnlyDraft
	}
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollerrors.ErrPayrollNotFound
		}
		s.logger.Error("delete payroll failed", zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete payroll commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("payroll deleted", zap.String("payroll_id", id))
	return nil
}

// DownloadPayslip renders the payslip PDF and its file name.
func (s *service) DownloadPayslip(ctx context.Context, companyID, id string) ([]byte, string, error) {
	p, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, "", err
	}
	if p.Status == StatusDraft {
		return nil, "", payrollerrors.ErrPayslipNotAvailable
	}

	pdf, err := buildSimplePayslipPDF(payslipLines(*p))
	if err != nil {
		s.logger.Error("render payslip failed", zap.String("payroll_id", id), zap.Error(err))
		return nil, "", err
	}
	return pdf, fmt.Sprintf("payslip-%04d-%02d-%s.pdf", p.Year, p.Month, p.EmployeeID.String()[:8]), nil
}

func (s *service) Export(ctx context.Context, companyID string, filter ListFilter) ([]byte, error) {
	payrolls, err := s.list(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	out, err := exportWorkbook(payrolls)
	if err != nil {
		s.logger.Error("export payrolls failed", zap.Error(err))
		return nil, err
	}
	s.logger.Info("payrolls exported", zap.Int("rows", len(payrolls)))
	return out, nil
}

func (s *service) find(ctx context.Context, companyID, id string) (*Payroll, error) {
	return s.findWith(ctx, s.repo, companyID, id)
}

func (s *service) findWith(ctx context.Context, repo Repository, companyID, id string) (*Payroll, error) {
	p, err := repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayrollNotFound
		}
		s.logger.Error("find payroll failed", zap.String("payroll_id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func stampComponents(p *Payroll, components []Component) []Component {
	for i := range components {
		components[i].ID = uuid.New()
		components[i].PayrollID = p.ID
		components[i].CompanyID = p.CompanyID
	}
	return components
}

func validatePeriod(year, month int) error {
	if month < 1 || month > 12 || year < 2000 {
		return payrollerrors.ErrInvalidPeriod
	}
	return nil
}

func periodBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
