package leave_test

import (
	"context"
	"testing"

	"go-ess/internal/leave"
	leaveerrors "go-ess/internal/leave/errors"

	leaveMock "go-ess/internal/leave/mock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestLeaveTypeService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	req := leave.LeaveTypeRequest{
		Code:           "ANNUAL",
		Name:           "Annual Leave",
		MaxDaysPerYear: "21",
		AccrualMethod:  leave.AccrualMonthly,
		AccrualRate:    "1.75",
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := leaveMock.NewMockRepository(ctrl)
		var created *leave.LeaveType
		repo.EXPECT().CreateType(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, lt *leave.LeaveType) error {
				created = lt
				return nil
			})

		resp, err := leave.NewTypeService(repo).Create(ctx, companyID, req)

		assert.NoError(t, err)
		assert.Equal(t, "ANNUAL", resp.Code)
		assert.True(t, created.IsActive)
		assert.True(t, created.AccrualRate.Equal(decimal.RequireFromString("1.75")))
	})

	t.Run("success accrual method defaults to none", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := leaveMock.NewMockRepository(ctrl)
		repo.EXPECT().CreateType(ctx, gomock.Any()).Return(nil)

		plain := req
		plain.AccrualMethod = ""
		resp, err := leave.NewTypeService(repo).Create(ctx, companyID, plain)

		assert.NoError(t, err)
		assert.Equal(t, leave.AccrualNone, resp.AccrualMethod)
	})

	t.Run("negative negative allowance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := leaveMock.NewMockRepository(ctrl)

		bad := req
		bad.MaxDaysPerYear = "-1"
		_, err := leave.NewTypeService(repo).Create(ctx, companyID, bad)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDays)
	})

	t.Run("negative duplicate code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := leaveMock.NewMockRepository(ctrl)
		repo.EXPECT().CreateType(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_leave_type_code"})

		_, err := leave.NewTypeService(repo).Create(ctx, companyID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveTypeAlreadyExists)
	})
}

func TestLeaveTypeService_GetAll(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	ctrl := gomock.NewController(t)
	repo := leaveMock.NewMockRepository(ctrl)
	repo.EXPECT().FindTypes(ctx, companyID, gomock.Any()).Return([]leave.LeaveType{
		{ID: uuid.New(), Code: "SICK", IsActive: true},
	}, nil)

	resp, err := leave.NewTypeService(repo).GetAll(ctx, companyID, true)

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "SICK", resp[0].Code)
}

func TestLeaveTypeService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	id := uuid.New()

	t.Run("success keeps active flag unless given", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := leaveMock.NewMockRepository(ctrl)
		existing := &leave.LeaveType{ID: id, Code: "SICK", IsActive: true}
		repo.EXPECT().FindTypeByID(ctx, companyID, id.String()).Return(existing, nil)
		repo.EXPECT().UpdateType(ctx, existing).Return(nil)

		resp, err := leave.NewTypeService(repo).Update(ctx, companyID, id.String(),
			leave.LeaveTypeRequest{Code: "SICK", Name: "Sick Leave", MaxDaysPerYear: "14"})

		assert.NoError(t, err)
		assert.True(t, resp.IsActive)
		assert.Equal(t, "14.00", resp.MaxDaysPerYear)
	})

	t.Run("negative not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := leaveMock.NewMockRepository(ctrl)
		repo.EXPECT().FindTypeByID(ctx, companyID, id.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := leave.NewTypeService(repo).Update(ctx, companyID, id.String(), leave.LeaveTypeRequest{Code: "X", Name: "X"})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveTypeNotFound)
	})
}

func TestLeaveTypeService_Delete(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := leaveMock.NewMockRepository(ctrl)
	repo.EXPECT().DeleteType(ctx, "c1", "missing").Return(gorm.ErrRecordNotFound)

	err := leave.NewTypeService(repo).Delete(ctx, "c1", "missing")

	assert.ErrorIs(t, err, leaveerrors.ErrLeaveTypeNotFound)
}
