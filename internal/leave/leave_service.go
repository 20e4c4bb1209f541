package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	leaveerrors "go-ess/internal/leave/errors"
	"go-ess/internal/notification"
	"go-ess/internal/shared/query"
	"go-ess/internal/workflow"
	workflowerrors "go-ess/internal/workflow/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout    = "2006-01-02"
	referenceType = "leave"
)

// ApproverResolver maps a workflow step to the employee expected to act on it.
type ApproverResolver interface {
	Resolve(ctx context.Context, companyID, requesterID string, step workflow.Step) (string, error)
}

type Notifier interface {
	Notify(ctx context.Context, msg notification.Message)
}

type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, companyID string, filter ListFilter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error)
	Submit(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string, req ApproveLeaveRequest) (LeaveResponse, error)
	Reject(ctx context.Context, companyID, actorID, id string, req RejectLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	GetActions(ctx context.Context, companyID, id string) ([]workflow.ActionResponse, error)
	GetBalances(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	workflows workflow.Repository
	resolver  ApproverResolver
	notifier  Notifier
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	workflows workflow.Repository,
	resolver ApproverResolver,
	notifier Notifier,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		workflows: workflows,
		resolver:  resolver,
		notifier:  notifier,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	if req.EmployeeID == "" {
		req.EmployeeID = actorID
	}
	s.logger.Debug("create leave requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	companyUUID, employeeUUID, createdByUUID, startDate, endDate, err := validateCreateRequest(companyID, actorID, req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := qtx.FindTypeByID(ctx, companyID, req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}
	if !lt.IsActive {
		return LeaveResponse{}, leaveerrors.ErrLeaveTypeInactive
	}

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("create leave employee company check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !belongs {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotInCompany
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, req.EmployeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &Leave{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		LeaveTypeID: lt.ID,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   CountDays(startDate, endDate),
		Reason:      req.Reason,
		CreatedBy:   createdByUUID,
		State:       workflow.State{Status: workflow.StatusDraft},
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter ListFilter) ([]LeaveResponse, error) {
	spec := query.Spec{Filter: map[string]any{}, Sort: filter.Sort}
	if filter.EmployeeID != "" {
		spec.Filter["employee_id"] = filter.EmployeeID
	}
	if filter.LeaveTypeID != "" {
		spec.Filter["leave_type_id"] = filter.LeaveTypeID
	}
	if filter.Status != "" {
		spec.Filter["status"] = filter.Status
	}

	leaves, err := s.repo.FindAll(ctx, companyID, spec)
	if err != nil {
		s.logger.Error("list leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	return mapToResponse(*l), nil
}

// Submit starts approval: it picks the leave type's workflow (or the
// company default, or the legacy chain), reserves the days and notifies the
// first approver.
func (s *service) Submit(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	wtx := s.workflows.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if !l.OwnedBy(actorID) {
		s.logger.Warn("submit leave by non owner", zap.String("leave_id", id), zap.String("actor_id", actorID))
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}
	lt, err := qtx.FindTypeByID(ctx, companyID, l.LeaveTypeID.String())
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}

	def, err := s.definitionFor(ctx, wtx, companyID, lt)
	if err != nil {
		s.logger.Error("submit leave workflow lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	now := s.now()
	inst, err := workflow.Submit(&l.State, def, now)
	if err != nil {
		s.logger.Warn("submit leave rejected",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if lt.TracksBalance() {
		if err := s.reserve(ctx, qtx, lt, l); err != nil {
			return LeaveResponse{}, err
		}
	}

	if inst != nil {
		inst.RequestID = l.ID
		if err := wtx.CreateInstance(ctx, inst); err != nil {
			s.logger.Error("submit leave create instance failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
		zap.Bool("legacy", inst == nil),
	)

	step := workflow.Step{ApproverType: l.CurrentApproverRole, SendNotification: true}
	if steps := def.StepList(); len(steps) > 0 {
		step = steps[0]
	}
	s.notifyApprover(ctx, l, step)

	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string, req ApproveLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("approve leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	wtx := s.workflows.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if l.EmployeeID == actorUUID {
		s.logger.Warn("leave self approval blocked", zap.String("leave_id", id), zap.String("actor_id", actorID))
		return LeaveResponse{}, leaveerrors.ErrSelfApproval
	}
	def, inst, err := s.loadWorkflow(ctx, wtx, companyID, l)
	if err != nil {
		return LeaveResponse{}, err
	}

	actor, err := s.actor(ctx, companyID, l, workflow.StepsFor(inst, def), actorUUID, req.ActingAs)
	if err != nil {
		return LeaveResponse{}, err
	}

	tr, err := workflow.Approve(&l.State, inst, def, actor, req.Comments, s.now())
	if err != nil {
		s.logger.Warn("approve leave rejected",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
			zap.String("acting_as", actor.ApproverType),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := s.persistTransition(ctx, wtx, inst, tr); err != nil {
		return LeaveResponse{}, err
	}
	if tr.Completed {
		if err := s.adjustBalance(ctx, qtx, l, (*Balance).Consume); err != nil {
			return LeaveResponse{}, err
		}
	}
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("approve leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("approve leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
		zap.Int("approval_level", l.ApprovalLevel),
	)

	switch {
	case tr.Completed:
		s.notifyEmployee(ctx, l, "Leave request approved",
			fmt.Sprintf("Your leave from %s to %s has been approved.", l.StartDate.Format(dateLayout), l.EndDate.Format(dateLayout)))
	case tr.Next != nil:
		s.notifyApprover(ctx, l, *tr.Next)
	case tr.NextRole != "":
		s.notifyApprover(ctx, l, workflow.Step{ApproverType: tr.NextRole, SendNotification: true})
	}

	return mapToResponse(*l), nil
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id string, req RejectLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("reject leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	wtx := s.workflows.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if l.EmployeeID == actorUUID {
		s.logger.Warn("leave self approval blocked", zap.String("leave_id", id), zap.String("actor_id", actorID))
		return LeaveResponse{}, leaveerrors.ErrSelfApproval
	}
	def, inst, err := s.loadWorkflow(ctx, wtx, companyID, l)
	if err != nil {
		return LeaveResponse{}, err
	}

	actor, err := s.actor(ctx, companyID, l, workflow.StepsFor(inst, def), actorUUID, req.ActingAs)
	if err != nil {
		return LeaveResponse{}, err
	}

	tr, err := workflow.Reject(&l.State, inst, def, actor, req.Reason, s.now())
	if err != nil {
		s.logger.Warn("reject leave rejected",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := s.persistTransition(ctx, wtx, inst, tr); err != nil {
		return LeaveResponse{}, err
	}
	if err := s.adjustBalance(ctx, qtx, l, (*Balance).Release); err != nil {
		return LeaveResponse{}, err
	}
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("reject leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("reject leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("reject leave success",
		zap.String("leave_id", id),
		zap.String("rejected_at_stage", l.RejectedAtStage),
	)

	s.notifyEmployee(ctx, l, "Leave request rejected",
		fmt.Sprintf("Your leave was rejected at the %s stage: %s", l.RejectedAtStage, l.RejectionReason))

	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	s.logger.Debug("cancel leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	wtx := s.workflows.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if !l.OwnedBy(actorID) {
		s.logger.Warn("cancel leave by non owner", zap.String("leave_id", id), zap.String("actor_id", actorID))
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}
	wasPending := l.IsAwaitingApproval()

	var inst *workflow.Instance
	if wasPending && l.WorkflowID != nil {
		if _, inst, err = s.loadWorkflow(ctx, wtx, companyID, l); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := workflow.Cancel(&l.State, inst, s.now()); err != nil {
		s.logger.Warn("cancel leave rejected",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return LeaveResponse{}, err
	}

	if inst != nil {
		if err := wtx.UpdateInstance(ctx, inst); err != nil {
			s.logger.Error("cancel leave instance update failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}
	if wasPending {
		if err := s.adjustBalance(ctx, qtx, l, (*Balance).Release); err != nil {
			return LeaveResponse{}, err
		}
	}
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("cancel leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("cancel leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if !l.IsDraft() && l.Status != workflow.StatusCancelled {
		return leaveerrors.ErrLeaveNotDeletable
	}
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

func (s *service) GetActions(ctx context.Context, companyID, id string) ([]workflow.ActionResponse, error) {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return nil, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	actions, err := s.workflows.ListActions(ctx, companyID, id)
	if err != nil {
		s.logger.Error("list leave actions failed", zap.Error(err))
		return nil, err
	}
	return mapActionResponses(actions), nil
}

func (s *service) GetBalances(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error) {
	spec := query.Spec{Filter: map[string]any{}}
	if employeeID != "" {
		spec.Filter["employee_id"] = employeeID
	}
	if year > 0 {
		spec.Filter["year"] = year
	}

	balances, err := s.repo.FindBalances(ctx, companyID, spec)
	if err != nil {
		s.logger.Error("list leave balances failed", zap.Error(err))
		return nil, err
	}
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapBalanceResponse(b)
	}
	return resp, nil
}

// definitionFor returns the leave type's active workflow, else the company
// default, else nil for the legacy chain.
func (s *service) definitionFor(ctx context.Context, wtx workflow.Repository, companyID string, lt *LeaveType) (*workflow.Definition, error) {
	if lt.WorkflowID != nil {
		def, err := wtx.FindDefinitionByID(ctx, companyID, lt.WorkflowID.String())
		switch {
		case err == nil && def.IsActive:
			return def, nil
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	def, err := wtx.FindDefaultDefinition(ctx, companyID, workflow.ModuleLeave)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return def, nil
}

// loadWorkflow fetches the instance driving a workflow-based request, and
// the definition only when the instance carries no step copy. Legacy
// requests return nil for both.
func (s *service) loadWorkflow(ctx context.Context, wtx workflow.Repository, companyID string, l *Leave) (*workflow.Definition, *workflow.Instance, error) {
	if l.WorkflowID == nil {
		return nil, nil, nil
	}
	inst, err := wtx.FindInstanceByRequest(ctx, companyID, workflow.ModuleLeave, l.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, workflowerrors.ErrWorkflowUnavailable
		}
		return nil, nil, err
	}
	if len(inst.Steps.Data()) > 0 {
		return nil, inst, nil
	}

	def, err := wtx.FindDefinitionByID(ctx, companyID, l.WorkflowID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, workflowerrors.ErrWorkflowUnavailable
		}
		return nil, nil, err
	}
	return def, inst, nil
}

// actor works out which approver role the caller acts in. An explicit
// actingAs wins; otherwise the caller holds the current role when they are
// its resolved approver, or when nobody resolves for it.
func (s *service) actor(ctx context.Context, companyID string, l *Leave, steps []workflow.Step, actorID uuid.UUID, actingAs string) (workflow.Actor, error) {
	actor := workflow.Actor{ID: actorID, ApproverType: actingAs}
	if actingAs != "" || !l.IsAwaitingApproval() {
		return actor, nil
	}

	step := s.currentStep(l, steps)
	expected, err := s.resolver.Resolve(ctx, companyID, l.EmployeeID.String(), step)
	if err != nil {
		s.logger.Error("resolve current approver failed", zap.Error(err))
		return actor, err
	}
	if expected == "" || expected == actorID.String() {
		actor.ApproverType = l.CurrentApproverRole
	}
	return actor, nil
}

func (s *service) currentStep(l *Leave, steps []workflow.Step) workflow.Step {
	if l.WorkflowID != nil && l.ApprovalLevel >= 1 && l.ApprovalLevel <= len(steps) {
		return steps[l.ApprovalLevel-1]
	}
	return workflow.Step{ApproverType: l.CurrentApproverRole}
}

func (s *service) persistTransition(ctx context.Context, wtx workflow.Repository, inst *workflow.Instance, tr workflow.Transition) error {
	if tr.Action != nil {
		if err := wtx.CreateAction(ctx, tr.Action); err != nil {
			s.logger.Error("record approval action failed", zap.Error(err))
			return err
		}
	}
	if inst != nil {
		if err := wtx.UpdateInstance(ctx, inst); err != nil {
			s.logger.Error("update workflow instance failed", zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *service) reserve(ctx context.Context, qtx Repository, lt *LeaveType, l *Leave) error {
	year := l.StartDate.Year()
	b, err := qtx.FindBalance(ctx, l.CompanyID.String(), l.EmployeeID.String(), lt.ID.String(), year)
	created := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("load leave balance failed", zap.Error(err))
			return err
		}
		b = NewBalance(*lt, l.EmployeeID, year)
		created = true
	}

	if b.CurrentBalance.LessThan(l.TotalDays) {
		s.logger.Warn("submit leave insufficient balance",
			zap.String("leave_id", l.ID.String()),
			zap.String("available", b.CurrentBalance.String()),
			zap.String("requested", l.TotalDays.String()),
		)
		return leaveerrors.ErrInsufficientBalance
	}
	b.Reserve(l.TotalDays)

	if created {
		err = qtx.CreateBalance(ctx, b)
	} else {
		err = qtx.UpdateBalance(ctx, b)
	}
	if err != nil {
		s.logger.Error("persist leave balance failed", zap.Error(err))
	}
	return err
}

// adjustBalance applies op to the request's balance row. Requests whose type
// does not track a balance have no row and are left alone.
func (s *service) adjustBalance(ctx context.Context, qtx Repository, l *Leave, op func(*Balance, decimal.Decimal)) error {
	b, err := qtx.FindBalance(ctx, l.CompanyID.String(), l.EmployeeID.String(), l.LeaveTypeID.String(), l.StartDate.Year())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("load leave balance failed", zap.Error(err))
		return err
	}
	op(b, l.TotalDays)
	if err := qtx.UpdateBalance(ctx, b); err != nil {
		s.logger.Error("persist leave balance failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) notifyApprover(ctx context.Context, l *Leave, step workflow.Step) {
	if !step.SendNotification || s.notifier == nil {
		return
	}
	companyID := l.CompanyID.String()
	approverID, err := s.resolver.Resolve(ctx, companyID, l.EmployeeID.String(), step)
	if err != nil {
		s.logger.Warn("resolve approver for notification failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("approver_type", step.ApproverType),
			zap.Error(err),
		)
		return
	}
	s.notifier.Notify(ctx, notification.Message{
		CompanyID:     companyID,
		RecipientID:   approverID,
		Title:         "Leave request awaiting your approval",
		Body:          fmt.Sprintf("A %s day leave request from %s to %s needs your approval as %s.", l.TotalDays.String(), l.StartDate.Format(dateLayout), l.EndDate.Format(dateLayout), step.ApproverType),
		Type:          notification.TypeApprovalRequest,
		ReferenceType: referenceType,
		ReferenceID:   l.ID.String(),
	})
}

func (s *service) notifyEmployee(ctx context.Context, l *Leave, title, body string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, notification.Message{
		CompanyID:     l.CompanyID.String(),
		RecipientID:   l.EmployeeID.String(),
		Title:         title,
		Body:          body,
		Type:          notification.TypeStatusUpdate,
		ReferenceType: referenceType,
		ReferenceID:   l.ID.String(),
	})
}

// CountDays counts calendar days in [start, end], inclusive.
func CountDays(start, end time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(end.Sub(start).Hours()/24) + 1)
}

func validateCreateRequest(companyID, actorID string, req CreateLeaveRequest) (uuid.UUID, uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidEmployeeID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return companyUUID, employeeUUID, createdByUUID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
