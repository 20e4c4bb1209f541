package leave

import (
	"context"

	leaveerrors "go-ess/internal/leave/errors"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/money"
	"go-ess/internal/shared/query"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TypeService interface {
	Create(ctx context.Context, companyID string, req LeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context, companyID string, activeOnly bool) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, companyID, id string, req LeaveTypeRequest) (LeaveTypeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type typeService struct {
	repo   Repository
	logger *zap.Logger
}

func NewTypeService(repo Repository, logger ...*zap.Logger) TypeService {
	l := zap.L().Named("leave.type_service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.type_service")
	}
	return &typeService{repo: repo, logger: l}
}

func (s *typeService) Create(ctx context.Context, companyID string, req LeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("create leave type requested",
		zap.String("company_id", companyID),
		zap.String("code", req.Code),
	)
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveTypeResponse{}, apperror.ErrInvalidCompanyID
	}

	lt := &LeaveType{ID: uuid.New(), CompanyID: companyUUID, IsActive: true}
	if err := applyTypeRequest(lt, req); err != nil {
		s.logger.Warn("create leave type validation failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	if err := s.repo.CreateType(ctx, lt); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}

	s.logger.Info("create leave type success", zap.String("leave_type_id", lt.ID.String()))
	return mapTypeResponse(*lt), nil
}

func (s *typeService) GetAll(ctx context.Context, companyID string, activeOnly bool) ([]LeaveTypeResponse, error) {
	spec := query.Spec{Filter: map[string]any{}}
	if activeOnly {
		spec.Filter["is_active"] = true
	}
	types, err := s.repo.FindTypes(ctx, companyID, spec)
	if err != nil {
		s.logger.Error("list leave types failed", zap.Error(err))
		return nil, err
	}

	resp := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		resp[i] = mapTypeResponse(t)
	}
	return resp, nil
}

func (s *typeService) GetByID(ctx context.Context, companyID, id string) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindTypeByID(ctx, companyID, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}
	return mapTypeResponse(*lt), nil
}

func (s *typeService) Update(ctx context.Context, companyID, id string, req LeaveTypeRequest) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindTypeByID(ctx, companyID, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}
	if err := applyTypeRequest(lt, req); err != nil {
		s.logger.Warn("update leave type validation failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	if err := s.repo.UpdateType(ctx, lt); err != nil {
		s.logger.Error("update leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}

	s.logger.Info("update leave type success", zap.String("leave_type_id", id))
	return mapTypeResponse(*lt), nil
}

func (s *typeService) Delete(ctx context.Context, companyID, id string) error {
	if err := s.repo.DeleteType(ctx, companyID, id); err != nil {
		return mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}
	s.logger.Info("delete leave type success", zap.String("leave_type_id", id))
	return nil
}

func applyTypeRequest(lt *LeaveType, req LeaveTypeRequest) error {
	maxDays, err := money.ParseOptional(req.MaxDaysPerYear)
	if err != nil || maxDays.IsNegative() {
		return leaveerrors.ErrInvalidDays
	}
	rate, err := money.ParseOptional(req.AccrualRate)
	if err != nil || rate.IsNegative() {
		return leaveerrors.ErrInvalidDays
	}

	method := req.AccrualMethod
	if method == "" {
		method = AccrualNone
	}

	lt.Code = req.Code
	lt.Name = req.Name
	lt.MaxDaysPerYear = maxDays
	lt.AccrualMethod = method
	lt.AccrualRate = rate
	lt.MinServiceMonths = req.MinServiceMonths
	lt.WorkflowID = nil
	if req.WorkflowID != "" {
		wf, err := uuid.Parse(req.WorkflowID)
		if err != nil {
			return apperror.InvalidField("workflow_id")
		}
		lt.WorkflowID = &wf
	}
	if req.IsActive != nil {
		lt.IsActive = *req.IsActive
	}
	return nil
}
