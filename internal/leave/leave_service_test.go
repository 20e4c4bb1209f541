package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-ess/internal/leave"
	leaveerrors "go-ess/internal/leave/errors"
	"go-ess/internal/notification"
	"go-ess/internal/workflow"
	workflowerrors "go-ess/internal/workflow/errors"

	leaveMock "go-ess/internal/leave/mock"
	workflowMock "go-ess/internal/workflow/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeResolver struct {
	approvers map[string]string
	err       error
	calls     []workflow.Step
}

func (f *fakeResolver) Resolve(_ context.Context, _, _ string, step workflow.Step) (string, error) {
	f.calls = append(f.calls, step)
	return f.approvers[step.ApproverType], f.err
}

type fakeNotifier struct {
	sent []notification.Message
}

func (f *fakeNotifier) Notify(_ context.Context, msg notification.Message) {
	f.sent = append(f.sent, msg)
}

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	repo      *leaveMock.MockRepository
	workflows *workflowMock.MockRepository
	resolver  *fakeResolver
	notifier  *fakeNotifier
	service   leave.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := leaveMock.NewMockRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo).AnyTimes()
	workflows := workflowMock.NewMockRepository(ctrl)
	workflows.EXPECT().WithTx(gomock.Any()).Return(workflows).AnyTimes()

	resolver := &fakeResolver{approvers: map[string]string{}}
	notifier := &fakeNotifier{}

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      repo,
		workflows: workflows,
		resolver:  resolver,
		notifier:  notifier,
		service:   leave.NewService(db, repo, workflows, resolver, notifier),
	}
}

func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func twoStepDefinition(companyID uuid.UUID) *workflow.Definition {
	def := &workflow.Definition{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      "Standard",
		Module:    workflow.ModuleLeave,
		IsActive:  true,
		IsDefault: true,
	}
	def.SetSteps([]workflow.Step{
		{StepNumber: 1, ApproverType: workflow.ApproverDirectManager, SLAHours: 24, SendNotification: true},
		{StepNumber: 2, ApproverType: workflow.ApproverHR, SLAHours: 48, SendNotification: true},
	})
	return def
}

func draftLeave(companyID, leaveTypeID uuid.UUID) *leave.Leave {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	return &leave.Leave{
		ID:          uuid.New(),
		CompanyID:   companyID,
		EmployeeID:  uuid.New(),
		LeaveTypeID: leaveTypeID,
		StartDate:   start,
		EndDate:     end,
		TotalDays:   leave.CountDays(start, end),
		CreatedBy:   uuid.New(),
		State:       workflow.State{Status: workflow.StatusDraft},
	}
}

func annualType(companyID uuid.UUID) *leave.LeaveType {
	return &leave.LeaveType{
		ID:             uuid.New(),
		CompanyID:      companyID,
		Code:           "ANNUAL",
		Name:           "Annual Leave",
		MaxDaysPerYear: decimal.NewFromInt(21),
		AccrualMethod:  leave.AccrualNone,
		IsActive:       true,
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	lt := annualType(companyID)
	employeeID := uuid.New().String()
	req := leave.CreateLeaveRequest{
		LeaveTypeID: lt.ID.String(),
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-06",
		Reason:      "family trip",
	}

	t.Run("success defaults employee to actor", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().FindTypeByID(ctx, companyID.String(), lt.ID.String()).Return(lt, nil)
		deps.repo.EXPECT().EmployeeBelongsToCompany(ctx, companyID.String(), employeeID).Return(true, nil)
		deps.repo.EXPECT().
			HasOverlappingPeriod(ctx, companyID.String(), employeeID, gomock.Any(), gomock.Any(), nil).
			Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, companyID.String(), employeeID, req)

		assert.NoError(t, err)
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.Equal(t, workflow.StatusDraft, resp.Status)
		assert.Equal(t, "5.00", resp.TotalDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		bad := req
		bad.StartDate, bad.EndDate = "2026-03-06", "2026-03-02"

		_, err := deps.service.Create(ctx, companyID.String(), employeeID, bad)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative bad date format", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		bad := req
		bad.StartDate = "02/03/2026"

		_, err := deps.service.Create(ctx, companyID.String(), employeeID, bad)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("negative inactive type", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		inactive := *lt
		inactive.IsActive = false
		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().FindTypeByID(ctx, companyID.String(), lt.ID.String()).Return(&inactive, nil)

		_, err := deps.service.Create(ctx, companyID.String(), employeeID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveTypeInactive)
	})

	t.Run("negative overlapping period", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().FindTypeByID(ctx, companyID.String(), lt.ID.String()).Return(lt, nil)
		deps.repo.EXPECT().EmployeeBelongsToCompany(ctx, companyID.String(), employeeID).Return(true, nil)
		deps.repo.EXPECT().
			HasOverlappingPeriod(ctx, companyID.String(), employeeID, gomock.Any(), gomock.Any(), nil).
			Return(true, nil)

		_, err := deps.service.Create(ctx, companyID.String(), employeeID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Submit(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("success starts default workflow and reserves days", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		lt := annualType(companyID)
		l := draftLeave(companyID, lt.ID)
		def := twoStepDefinition(companyID)
		deps.resolver.approvers[workflow.ApproverDirectManager] = "manager-1"

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)
		deps.repo.EXPECT().FindTypeByID(ctx, companyID.String(), lt.ID.String()).Return(lt, nil)
		deps.workflows.EXPECT().FindDefaultDefinition(ctx, companyID.String(), workflow.ModuleLeave).Return(def, nil)
		deps.repo.EXPECT().
			FindBalance(ctx, companyID.String(), l.EmployeeID.String(), lt.ID.String(), 2026).
			Return(nil, gorm.ErrRecordNotFound)
		var balance *leave.Balance
		deps.repo.EXPECT().CreateBalance(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, b *leave.Balance) error {
				balance = b
				return nil
			})
		var inst *workflow.Instance
		deps.workflows.EXPECT().CreateInstance(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, i *workflow.Instance) error {
				inst = i
				return nil
			})
		deps.repo.EXPECT().Update(ctx, l).Return(nil)

		resp, err := deps.service.Submit(ctx, companyID.String(), l.EmployeeID.String(), l.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, workflow.StatusPending, resp.Status)
		assert.Equal(t, 1, resp.ApprovalLevel)
		assert.Equal(t, workflow.ApproverDirectManager, resp.CurrentApproverRole)
		assert.Equal(t, def.ID.String(), *resp.WorkflowID)

		assert.Equal(t, l.ID, inst.RequestID)
		assert.Equal(t, 1, inst.CurrentStep)
		assert.Equal(t, workflow.InstanceInProgress, inst.Status)

		assert.True(t, balance.Pending.Equal(decimal.NewFromInt(3)))
		assert.True(t, balance.CurrentBalance.Equal(decimal.NewFromInt(18)))
		assert.True(t, balance.Expected().Equal(balance.CurrentBalance))

		assert.Len(t, deps.notifier.sent, 1)
		assert.Equal(t, "manager-1", deps.notifier.sent[0].RecipientID)
		assert.Equal(t, notification.TypeApprovalRequest, deps.notifier.sent[0].Type)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success legacy chain without workflow", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		unpaid := &leave.LeaveType{ID: uuid.New(), CompanyID: companyID, Code: "UNPAID", AccrualMethod: leave.AccrualNone, IsActive: true}
		l := draftLeave(companyID, unpaid.ID)

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)
		deps.repo.EXPECT().FindTypeByID(ctx, companyID.String(), unpaid.ID.String()).Return(unpaid, nil)
		deps.workflows.EXPECT().
			FindDefaultDefinition(ctx, companyID.String(), workflow.ModuleLeave).
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Update(ctx, l).Return(nil)

		resp, err := deps.service.Submit(ctx, companyID.String(), l.EmployeeID.String(), l.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, workflow.StatusPendingManager, resp.Status)
		assert.Equal(t, workflow.ApproverDirectManager, resp.CurrentApproverRole)
		assert.Nil(t, resp.WorkflowID)
		assert.Len(t, deps.resolver.calls, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative insufficient balance", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		lt := annualType(companyID)
		l := draftLeave(companyID, lt.ID)
		low := leave.NewBalance(*lt, l.EmployeeID, 2026)
		low.CurrentBalance = decimal.NewFromInt(1)

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)
		deps.repo.EXPECT().FindTypeByID(ctx, companyID.String(), lt.ID.String()).Return(lt, nil)
		deps.workflows.EXPECT().
			FindDefaultDefinition(ctx, companyID.String(), workflow.ModuleLeave).
			Return(twoStepDefinition(companyID), nil)
		deps.repo.EXPECT().
			FindBalance(ctx, companyID.String(), l.EmployeeID.String(), lt.ID.String(), 2026).
			Return(low, nil)

		_, err := deps.service.Submit(ctx, companyID.String(), l.EmployeeID.String(), l.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
		assert.Empty(t, deps.notifier.sent)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already submitted", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		lt := annualType(companyID)
		l := draftLeave(companyID, lt.ID)
		l.Status = workflow.StatusPendingManager

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)
		deps.repo.EXPECT().FindTypeByID(ctx, companyID.String(), lt.ID.String()).Return(lt, nil)
		deps.workflows.EXPECT().
			FindDefaultDefinition(ctx, companyID.String(), workflow.ModuleLeave).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Submit(ctx, companyID.String(), l.EmployeeID.String(), l.ID.String())

		assert.ErrorIs(t, err, workflowerrors.ErrAlreadySubmitted)
	})

	t.Run("success creator submits on behalf of employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		unpaid := &leave.LeaveType{ID: uuid.New(), CompanyID: companyID, Code: "UNPAID", AccrualMethod: leave.AccrualNone, IsActive: true}
		l := draftLeave(companyID, unpaid.ID)

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)
		deps.repo.EXPECT().FindTypeByID(ctx, companyID.String(), unpaid.ID.String()).Return(unpaid, nil)
		deps.workflows.EXPECT().
			FindDefaultDefinition(ctx, companyID.String(), workflow.ModuleLeave).
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Update(ctx, l).Return(nil)

		resp, err := deps.service.Submit(ctx, companyID.String(), l.CreatedBy.String(), l.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, workflow.StatusPendingManager, resp.Status)
	})

	t.Run("negative another employee submits", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l := draftLeave(companyID, uuid.New())

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)

		_, err := deps.service.Submit(ctx, companyID.String(), uuid.NewString(), l.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrNotOwner)
		assert.Equal(t, workflow.StatusDraft, l.Status)
		assert.Empty(t, deps.notifier.sent)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative leave not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Submit(ctx, companyID.String(), uuid.NewString(), "missing")

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

// pendingAtHR returns a workflow leave awaiting the second (HR) step.
func pendingAtHR(t *testing.T, companyID uuid.UUID) (*leave.Leave, *workflow.Definition, *workflow.Instance) {
	t.Helper()
	def := twoStepDefinition(companyID)
	l := draftLeave(companyID, uuid.New())
	inst, err := workflow.Submit(&l.State, def, time.Now())
	assert.NoError(t, err)
	inst.RequestID = l.ID
	_, err = workflow.Approve(&l.State, inst, def, workflow.Actor{ID: uuid.New(), ApproverType: workflow.ApproverDirectManager}, "", time.Now())
	assert.NoError(t, err)
	return l, def, inst
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	hrID := uuid.New()

	t.Run("success final step consumes reserved days", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l, _, inst := pendingAtHR(t, companyID)
		deps.resolver.approvers[workflow.ApproverHR] = hrID.String()
		balance := &leave.Balance{
			OpeningBalance: decimal.NewFromInt(21),
			Pending:        decimal.NewFromInt(3),
			CurrentBalance: decimal.NewFromInt(18),
		}

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)
		deps.workflows.EXPECT().
			FindInstanceByRequest(ctx, companyID.String(), workflow.ModuleLeave, l.ID.String()).
			Return(inst, nil)
		var action *workflow.ApprovalAction
		deps.workflows.EXPECT().CreateAction(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, a *workflow.ApprovalAction) error {
				action = a
				return nil
			})
		deps.workflows.EXPECT().UpdateInstance(ctx, inst).Return(nil)
		deps.repo.EXPECT().
			FindBalance(ctx, companyID.String(), l.EmployeeID.String(), l.LeaveTypeID.String(), 2026).
			Return(balance, nil)
		deps.repo.EXPECT().UpdateBalance(ctx, balance).Return(nil)
		deps.repo.EXPECT().Update(ctx, l).Return(nil)

		resp, err := deps.service.Approve(ctx, companyID.String(), hrID.String(), l.ID.String(),
			leave.ApproveLeaveRequest{Comments: "enjoy"})

		assert.NoError(t, err)
		assert.Equal(t, workflow.StatusApproved, resp.Status)
		assert.Equal(t, hrID.String(), *resp.FinalApprovedBy)
		assert.Equal(t, workflow.InstanceApproved, inst.Status)
		assert.Equal(t, workflow.ApproverHR, action.ApproverType)
		assert.Equal(t, "enjoy", action.Comments)
		assert.True(t, balance.Used.Equal(decimal.NewFromInt(3)))
		assert.True(t, balance.Pending.IsZero())
		assert.True(t, balance.CurrentBalance.Equal(decimal.NewFromInt(18)))

		assert.Len(t, deps.notifier.sent, 1)
		assert.Equal(t, l.EmployeeID.String(), deps.notifier.sent[0].RecipientID)
		assert.Equal(t, notification.TypeStatusUpdate, deps.notifier.sent[0].Type)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success legacy manager step moves to HR", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l := draftLeave(companyID, uuid.New())
		_, err := workflow.Submit(&l.State, nil, time.Now())
		assert.NoError(t, err)
		managerID := uuid.New()
		deps.resolver.approvers[workflow.ApproverHR] = hrID.String()

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)
		deps.repo.EXPECT().Update(ctx, l).Return(nil)

		resp, err := deps.service.Approve(ctx, companyID.String(), managerID.String(), l.ID.String(),
			leave.ApproveLeaveRequest{ActingAs: workflow.ApproverDirectManager})

		assert.NoError(t, err)
		assert.Equal(t, workflow.StatusPendingHR, resp.Status)
		assert.Equal(t, workflow.ApproverHR, resp.CurrentApproverRole)
		assert.Equal(t, managerID.String(), *resp.ManagerApprovedBy)
		assert.Len(t, deps.notifier.sent, 1)
		assert.Equal(t, hrID.String(), deps.notifier.sent[0].RecipientID)
	})

	t.Run("negative caller is not the current approver", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l, _, inst := pendingAtHR(t, companyID)
		deps.resolver.approvers[workflow.ApproverHR] = hrID.String()

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)
		deps.workflows.EXPECT().
			FindInstanceByRequest(ctx, companyID.String(), workflow.ModuleLeave, l.ID.String()).
			Return(inst, nil)

		_, err := deps.service.Approve(ctx, companyID.String(), uuid.NewString(), l.ID.String(), leave.ApproveLeaveRequest{})

		assert.ErrorIs(t, err, workflowerrors.ErrApproverMismatch)
		assert.Equal(t, workflow.StatusPending, l.Status)
		assert.Empty(t, deps.notifier.sent)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success definition edited after submit keeps submitted steps", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l, def, inst := pendingAtHR(t, companyID)
		assert.NoError(t, def.RemoveStep(2))
		deps.resolver.approvers[workflow.ApproverHR] = hrID.String()
		balance := &leave.Balance{Pending: decimal.NewFromInt(3), CurrentBalance: decimal.NewFromInt(18)}

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)
		deps.workflows.EXPECT().
			FindInstanceByRequest(ctx, companyID.String(), workflow.ModuleLeave, l.ID.String()).
			Return(inst, nil)
		deps.workflows.EXPECT().CreateAction(ctx, gomock.Any()).Return(nil)
		deps.workflows.EXPECT().UpdateInstance(ctx, inst).Return(nil)
		deps.repo.EXPECT().
			FindBalance(ctx, companyID.String(), l.EmployeeID.String(), l.LeaveTypeID.String(), 2026).
			Return(balance, nil)
		deps.repo.EXPECT().UpdateBalance(ctx, balance).Return(nil)
		deps.repo.EXPECT().Update(ctx, l).Return(nil)

		resp, err := deps.service.Approve(ctx, companyID.String(), hrID.String(), l.ID.String(), leave.ApproveLeaveRequest{})

		assert.NoError(t, err)
		assert.Equal(t, workflow.StatusApproved, resp.Status)
		assert.Equal(t, 3, resp.ApprovalLevel)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success instance without step copy falls back to definition", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l, def, inst := pendingAtHR(t, companyID)
		inst.Steps = datatypes.JSONType[[]workflow.Step]{}
		deps.resolver.approvers[workflow.ApproverHR] = hrID.String()
		balance := &leave.Balance{Pending: decimal.NewFromInt(3), CurrentBalance: decimal.NewFromInt(18)}

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)
		deps.workflows.EXPECT().
			FindInstanceByRequest(ctx, companyID.String(), workflow.ModuleLeave, l.ID.String()).
			Return(inst, nil)
		deps.workflows.EXPECT().FindDefinitionByID(ctx, companyID.String(), def.ID.String()).Return(def, nil)
		deps.workflows.EXPECT().CreateAction(ctx, gomock.Any()).Return(nil)
		deps.workflows.EXPECT().UpdateInstance(ctx, inst).Return(nil)
		deps.repo.EXPECT().
			FindBalance(ctx, companyID.String(), l.EmployeeID.String(), l.LeaveTypeID.String(), 2026).
			Return(balance, nil)
		deps.repo.EXPECT().UpdateBalance(ctx, balance).Return(nil)
		deps.repo.EXPECT().Update(ctx, l).Return(nil)

		resp, err := deps.service.Approve(ctx, companyID.String(), hrID.String(), l.ID.String(), leave.ApproveLeaveRequest{})

		assert.NoError(t, err)
		assert.Equal(t, workflow.StatusApproved, resp.Status)
	})

	t.Run("negative workflow instance gone", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l, _, _ := pendingAtHR(t, companyID)

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)
		deps.workflows.EXPECT().
			FindInstanceByRequest(ctx, companyID.String(), workflow.ModuleLeave, l.ID.String()).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Approve(ctx, companyID.String(), hrID.String(), l.ID.String(), leave.ApproveLeaveRequest{})

		assert.ErrorIs(t, err, workflowerrors.ErrWorkflowUnavailable)
	})

	t.Run("negative requester approves own leave", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l := draftLeave(companyID, uuid.New())
		_, err := workflow.Submit(&l.State, nil, time.Now())
		assert.NoError(t, err)

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)

		_, err = deps.service.Approve(ctx, companyID.String(), l.EmployeeID.String(), l.ID.String(),
			leave.ApproveLeaveRequest{ActingAs: workflow.ApproverDirectManager})

		assert.ErrorIs(t, err, leaveerrors.ErrSelfApproval)
		assert.Equal(t, workflow.StatusPendingManager, l.Status)
		assert.Empty(t, deps.notifier.sent)
	})

	t.Run("negative invalid actor id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Approve(ctx, companyID.String(), "not-a-uuid", uuid.NewString(), leave.ApproveLeaveRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidActorID)
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("success releases reserved days", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l, _, inst := pendingAtHR(t, companyID)
		hrID := uuid.New()
		balance := &leave.Balance{
			OpeningBalance: decimal.NewFromInt(21),
			Pending:        decimal.NewFromInt(3),
			CurrentBalance: decimal.NewFromInt(18),
		}

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)
		deps.workflows.EXPECT().
			FindInstanceByRequest(ctx, companyID.String(), workflow.ModuleLeave, l.ID.String()).
			Return(inst, nil)
		deps.workflows.EXPECT().CreateAction(ctx, gomock.Any()).Return(nil)
		deps.workflows.EXPECT().UpdateInstance(ctx, inst).Return(nil)
		deps.repo.EXPECT().
			FindBalance(ctx, companyID.String(), l.EmployeeID.String(), l.LeaveTypeID.String(), 2026).
			Return(balance, nil)
		deps.repo.EXPECT().UpdateBalance(ctx, balance).Return(nil)
		deps.repo.EXPECT().Update(ctx, l).Return(nil)

		resp, err := deps.service.Reject(ctx, companyID.String(), hrID.String(), l.ID.String(),
			leave.RejectLeaveRequest{Reason: "peak season", ActingAs: workflow.ApproverHR})

		assert.NoError(t, err)
		assert.Equal(t, workflow.StatusRejected, resp.Status)
		assert.Equal(t, workflow.ApproverHR, resp.RejectedAtStage)
		assert.Equal(t, "peak season", resp.RejectionReason)
		assert.Equal(t, workflow.InstanceRejected, inst.Status)
		assert.True(t, balance.Pending.IsZero())
		assert.True(t, balance.CurrentBalance.Equal(decimal.NewFromInt(21)))
		assert.Len(t, deps.notifier.sent, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative blank reason", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l := draftLeave(companyID, uuid.New())
		_, _ = workflow.Submit(&l.State, nil, time.Now())

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)

		_, err := deps.service.Reject(ctx, companyID.String(), uuid.NewString(), l.ID.String(),
			leave.RejectLeaveRequest{Reason: "   ", ActingAs: workflow.ApproverDirectManager})

		assert.ErrorIs(t, err, workflowerrors.ErrRejectionReasonRequired)
	})

	t.Run("negative requester rejects own leave", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l, _, _ := pendingAtHR(t, companyID)

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)

		_, err := deps.service.Reject(ctx, companyID.String(), l.EmployeeID.String(), l.ID.String(),
			leave.RejectLeaveRequest{Reason: "changed my mind", ActingAs: workflow.ApproverHR})

		assert.ErrorIs(t, err, leaveerrors.ErrSelfApproval)
		assert.Equal(t, workflow.StatusPending, l.Status)
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("success draft", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l := draftLeave(companyID, uuid.New())
		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)
		deps.repo.EXPECT().Update(ctx, l).Return(nil)

		resp, err := deps.service.Cancel(ctx, companyID.String(), l.EmployeeID.String(), l.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, workflow.StatusCancelled, resp.Status)
	})

	t.Run("success pending legacy releases balance", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l := draftLeave(companyID, uuid.New())
		_, _ = workflow.Submit(&l.State, nil, time.Now())
		balance := &leave.Balance{Pending: decimal.NewFromInt(3), CurrentBalance: decimal.NewFromInt(7)}

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)
		deps.repo.EXPECT().
			FindBalance(ctx, companyID.String(), l.EmployeeID.String(), l.LeaveTypeID.String(), 2026).
			Return(balance, nil)
		deps.repo.EXPECT().UpdateBalance(ctx, balance).Return(nil)
		deps.repo.EXPECT().Update(ctx, l).Return(nil)

		_, err := deps.service.Cancel(ctx, companyID.String(), l.EmployeeID.String(), l.ID.String())

		assert.NoError(t, err)
		assert.True(t, balance.CurrentBalance.Equal(decimal.NewFromInt(10)))
	})

	t.Run("negative already approved", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l := draftLeave(companyID, uuid.New())
		l.Status = workflow.StatusApproved

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)

		_, err := deps.service.Cancel(ctx, companyID.String(), l.EmployeeID.String(), l.ID.String())

		assert.ErrorIs(t, err, workflowerrors.ErrTerminalState)
	})

	t.Run("negative another employee cancels", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l := draftLeave(companyID, uuid.New())
		_, _ = workflow.Submit(&l.State, nil, time.Now())

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)

		_, err := deps.service.Cancel(ctx, companyID.String(), uuid.NewString(), l.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrNotOwner)
		assert.Equal(t, workflow.StatusPendingManager, l.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("success draft", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l := draftLeave(companyID, uuid.New())
		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)
		deps.repo.EXPECT().Delete(ctx, companyID.String(), l.ID.String()).Return(nil)

		assert.NoError(t, deps.service.Delete(ctx, companyID.String(), l.ID.String()))
	})

	t.Run("negative pending leave", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l := draftLeave(companyID, uuid.New())
		l.Status = workflow.StatusPendingHR
		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), l.ID.String()).Return(l, nil)

		err := deps.service.Delete(ctx, companyID.String(), l.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotDeletable)
	})
}

func TestLeaveService_GetActions(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		l := draftLeave(uuid.New(), uuid.New())
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, l.ID.String()).Return(l, nil)
		deps.workflows.EXPECT().ListActions(ctx, companyID, l.ID.String()).Return([]workflow.ApprovalAction{
			{ID: uuid.New(), StepNumber: 1, ApproverType: workflow.ApproverDirectManager, Action: workflow.ActionApproved},
		}, nil)

		resp, err := deps.service.GetActions(ctx, companyID, l.ID.String())

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("negative leave not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetActions(ctx, companyID, "missing")

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}
