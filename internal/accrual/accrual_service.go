package accrual

import (
	"context"
	"errors"
	"time"

	accrualerrors "go-ess/internal/accrual/errors"
	"go-ess/internal/employee"
	"go-ess/internal/leave"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Employees interface {
	FindActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error)
}

type Service interface {
	ProcessMonthlyAccruals(ctx context.Context, companyID string, year, month int) (Summary, error)
	GetAll(ctx context.Context, companyID string, filter ListFilter) ([]AccrualResponse, error)
}

type service struct {
	repo      Repository
	employees Employees
	leaves    leave.Repository
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, employees Employees, leaves leave.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("accrual.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("accrual.service")
	}
	return &service{repo: repo, employees: employees, leaves: leaves, now: time.Now, logger: l}
}

// ProcessMonthlyAccruals posts one month of earned days for every active
// employee and accruing leave type. Combinations already posted for the
// month are skipped, so a re-run only fills gaps. Balance updates run one by
// one after the postings are stored; a failed update is counted and the run
// moves on. Postings whose balance update failed in an earlier run are
// credited again on the next run for the same month.
func (s *service) ProcessMonthlyAccruals(ctx context.Context, companyID string, year, month int) (Summary, error) {
	summary := Summary{Year: year, Month: month, TotalDays: decimal.Zero.StringFixed(2)}
	s.logger.Debug("accrual run requested",
		zap.String("company_id", companyID),
		zap.Int("year", year),
		zap.Int("month", month),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return summary, apperror.ErrInvalidCompanyID
	}
	if month < 1 || month > 12 || year < 1900 {
		return summary, accrualerrors.ErrInvalidPeriod
	}

	employees, err := s.employees.FindActiveByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("accrual load employees failed", zap.Error(err))
		return summary, err
	}
	types, err := s.leaves.FindTypes(ctx, companyID, query.Spec{Filter: map[string]any{"is_active": true}})
	if err != nil {
		s.logger.Error("accrual load leave types failed", zap.Error(err))
		return summary, err
	}
	posted, err := s.repo.FindPosted(ctx, companyID, year, month)
	if err != nil {
		s.logger.Error("accrual load posted failed", zap.Error(err))
		return summary, err
	}

	byType := make(map[uuid.UUID]leave.LeaveType, len(types))
	for _, lt := range types {
		byType[lt.ID] = lt
	}

	done := make(map[[2]uuid.UUID]bool, len(posted))
	var uncredited []Accrual
	for _, a := range posted {
		done[[2]uuid.UUID{a.EmployeeID, a.LeaveTypeID}] = true
		if a.CreditedAt != nil {
			continue
		}
		if _, ok := byType[a.LeaveTypeID]; !ok {
			s.logger.Warn("accrual posting left uncredited for inactive leave type",
				zap.String("accrual_id", a.ID.String()),
				zap.String("leave_type_id", a.LeaveTypeID.String()),
			)
			continue
		}
		uncredited = append(uncredited, a)
	}

	asOf := MonthEnd(year, month)
	var pending []Accrual
	for _, lt := range types {
		if lt.AccrualMethod == leave.AccrualNone {
			summary.Skipped += len(employees)
			continue
		}
		for _, emp := range employees {
			days := MonthlyAccrual(emp.HireDate, lt, asOf)
			if !days.IsPositive() || done[[2]uuid.UUID{emp.ID, lt.ID}] {
				summary.Skipped++
				continue
			}
			pending = append(pending, Accrual{
				ID:          uuid.New(),
				CompanyID:   companyUUID,
				EmployeeID:  emp.ID,
				LeaveTypeID: lt.ID,
				Year:        year,
				Month:       month,
				Days:        days,
			})
		}
	}

	if len(pending) == 0 && len(uncredited) == 0 {
		s.logger.Info("accrual run nothing to post",
			zap.String("company_id", companyID),
			zap.Int("skipped", summary.Skipped),
		)
		return summary, nil
	}

	if len(pending) > 0 {
		if err := s.repo.BulkCreate(ctx, pending); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				s.logger.Warn("accrual run collided with another run", zap.String("company_id", companyID))
				return summary, accrualerrors.ErrRunInProgress
			}
			s.logger.Error("accrual bulk create failed", zap.Error(err))
			return summary, err
		}
	}

	total := decimal.Zero
	for _, a := range uncredited {
		if !s.apply(ctx, byType[a.LeaveTypeID], a) {
			summary.Failed++
			continue
		}
		summary.Retried++
		total = total.Add(a.Days)
	}
	for _, a := range pending {
		if !s.apply(ctx, byType[a.LeaveTypeID], a) {
			summary.Failed++
			continue
		}
		summary.Created++
		total = total.Add(a.Days)
	}
	summary.TotalDays = total.StringFixed(2)

	s.logger.Info("accrual run finished",
		zap.String("company_id", companyID),
		zap.Int("created", summary.Created),
		zap.Int("retried", summary.Retried),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// apply marks the posting credited, then adds its days to the balance. The
// mark is cleared again when the balance write fails so the next run picks
// the posting up.
func (s *service) apply(ctx context.Context, lt leave.LeaveType, a Accrual) bool {
	at := s.now()
	if err := s.repo.SetCredited(ctx, a.ID.String(), &at); err != nil {
		s.logger.Error("accrual mark credited failed",
			zap.String("accrual_id", a.ID.String()),
			zap.Error(err),
		)
		return false
	}
	if err := s.credit(ctx, lt, a); err != nil {
		s.logger.Error("accrual balance update failed",
			zap.String("employee_id", a.EmployeeID.String()),
			zap.String("leave_type_id", a.LeaveTypeID.String()),
			zap.Error(err),
		)
		if err := s.repo.SetCredited(ctx, a.ID.String(), nil); err != nil {
			s.logger.Error("accrual posting left marked without balance credit",
				zap.String("accrual_id", a.ID.String()),
				zap.Error(err),
			)
		}
		return false
	}
	return true
}

func (s *service) credit(ctx context.Context, lt leave.LeaveType, a Accrual) error {
	b, err := s.leaves.FindBalance(ctx, a.CompanyID.String(), a.EmployeeID.String(), a.LeaveTypeID.String(), a.Year)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		b = leave.NewBalance(lt, a.EmployeeID, a.Year)
		b.Accrue(a.Days)
		return s.leaves.CreateBalance(ctx, b)
	}
	b.Accrue(a.Days)
	return s.leaves.UpdateBalance(ctx, b)
}

func (s *service) GetAll(ctx context.Context, companyID string, filter ListFilter) ([]AccrualResponse, error) {
	spec := query.Spec{Filter: map[string]any{}}
	if filter.EmployeeID != "" {
		spec.Filter["employee_id"] = filter.EmployeeID
	}
	if filter.LeaveTypeID != "" {
		spec.Filter["leave_type_id"] = filter.LeaveTypeID
	}
	if filter.Year > 0 {
		spec.Filter["year"] = filter.Year
	}
	if filter.Month > 0 {
		spec.Filter["month"] = filter.Month
	}

	accruals, err := s.repo.FindAll(ctx, companyID, spec)
	if err != nil {
		s.logger.Error("list accruals failed", zap.Error(err))
		return nil, err
	}
	resp := make([]AccrualResponse, len(accruals))
	for i, a := range accruals {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}
