package attendance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-ess/internal/attendance"
	attendanceerrors "go-ess/internal/attendance/errors"
	attendanceMock "go-ess/internal/attendance/mock"
	"go-ess/internal/shared/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	repo    *attendanceMock.MockRepository
	service attendance.Service
}

func setupServiceTest(t *testing.T, now time.Time) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()
	repo := attendanceMock.NewMockRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo).AnyTimes()

	svc := attendance.NewService(db, repo)
	attendance.SetClock(svc, func() time.Time { return now })
	return &serviceDeps{sqlMock: sqlMock, repo: repo, service: svc}
}

func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestService_ClockIn(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success on time", func(t *testing.T) {
		now := time.Date(2026, 3, 2, 8, 55, 0, 0, time.UTC)
		deps := setupServiceTest(t, now)
		expectTx(deps.sqlMock, true)

		deps.repo.EXPECT().
			FindByEmployeeAndDate(gomock.Any(), companyID, employeeID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)).
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *attendance.Attendance) error {
				assert.Equal(t, attendance.StatusPresent, a.Status)
				assert.Equal(t, attendance.SourceManual, a.Source)
				return nil
			})

		resp, err := deps.service.ClockIn(context.Background(), companyID, employeeID, attendance.ClockInRequest{})
		assert.NoError(t, err)
		assert.Equal(t, "2026-03-02", resp.AttendanceDate)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
		assert.NotNil(t, resp.ClockIn)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success late", func(t *testing.T) {
		now := time.Date(2026, 3, 2, 9, 40, 0, 0, time.UTC)
		deps := setupServiceTest(t, now)
		expectTx(deps.sqlMock, true)

		deps.repo.EXPECT().FindByEmployeeAndDate(gomock.Any(), companyID, employeeID, gomock.Any()).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.ClockIn(context.Background(), companyID, employeeID, attendance.ClockInRequest{})
		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusLate, resp.Status)
	})

	t.Run("negative already clocked in", func(t *testing.T) {
		now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		deps := setupServiceTest(t, now)
		expectTx(deps.sqlMock, false)

		in := now.Add(-time.Hour)
		deps.repo.EXPECT().FindByEmployeeAndDate(gomock.Any(), companyID, employeeID, gomock.Any()).
			Return(&attendance.Attendance{ClockIn: &in}, nil)

		_, err := deps.service.ClockIn(context.Background(), companyID, employeeID, attendance.ClockInRequest{})
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedIn)
	})

	t.Run("negative unique violation", func(t *testing.T) {
		now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
		deps := setupServiceTest(t, now)
		expectTx(deps.sqlMock, false)

		deps.repo.EXPECT().FindByEmployeeAndDate(gomock.Any(), companyID, employeeID, gomock.Any()).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&pgconn.PgError{Code: "23505"})

		_, err := deps.service.ClockIn(context.Background(), companyID, employeeID, attendance.ClockInRequest{})
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedIn)
	})

	t.Run("negative invalid employee id", func(t *testing.T) {
		deps := setupServiceTest(t, time.Now())

		_, err := deps.service.ClockIn(context.Background(), companyID, "bad", attendance.ClockInRequest{})
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidEmployeeID)
	})
}

func TestService_ClockOut(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	now := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)
	in := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	t.Run("success with overtime", func(t *testing.T) {
		deps := setupServiceTest(t, now)
		expectTx(deps.sqlMock, true)

		row := &attendance.Attendance{ID: uuid.New(), ClockIn: &in, Status: attendance.StatusPresent}
		deps.repo.EXPECT().FindByEmployeeAndDate(gomock.Any(), companyID, employeeID, gomock.Any()).Return(row, nil)
		deps.repo.EXPECT().Update(gomock.Any(), row).Return(nil)

		resp, err := deps.service.ClockOut(context.Background(), companyID, employeeID, attendance.ClockOutRequest{})
		assert.NoError(t, err)
		assert.Equal(t, "10.50", resp.WorkedHours)
		assert.Equal(t, "2.50", resp.OvertimeHours)
		assert.NotNil(t, resp.ClockOut)
	})

	t.Run("negative no clock in", func(t *testing.T) {
		deps := setupServiceTest(t, now)
		expectTx(deps.sqlMock, false)

		deps.repo.EXPECT().FindByEmployeeAndDate(gomock.Any(), companyID, employeeID, gomock.Any()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.ClockOut(context.Background(), companyID, employeeID, attendance.ClockOutRequest{})
		assert.ErrorIs(t, err, attendanceerrors.ErrClockInNotFound)
	})

	t.Run("negative absent row has no clock in", func(t *testing.T) {
		deps := setupServiceTest(t, now)
		expectTx(deps.sqlMock, false)

		deps.repo.EXPECT().FindByEmployeeAndDate(gomock.Any(), companyID, employeeID, gomock.Any()).
			Return(&attendance.Attendance{Status: attendance.StatusAbsent}, nil)

		_, err := deps.service.ClockOut(context.Background(), companyID, employeeID, attendance.ClockOutRequest{})
		assert.ErrorIs(t, err, attendanceerrors.ErrClockInNotFound)
	})

	t.Run("negative already clocked out", func(t *testing.T) {
		deps := setupServiceTest(t, now)
		expectTx(deps.sqlMock, false)

		out := in.Add(8 * time.Hour)
		deps.repo.EXPECT().FindByEmployeeAndDate(gomock.Any(), companyID, employeeID, gomock.Any()).
			Return(&attendance.Attendance{ClockIn: &in, ClockOut: &out}, nil)

		_, err := deps.service.ClockOut(context.Background(), companyID, employeeID, attendance.ClockOutRequest{})
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedOut)
	})
}

func TestService_MarkAbsent(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t, now)
		expectTx(deps.sqlMock, true)

		deps.repo.EXPECT().
			FindByEmployeeAndDate(gomock.Any(), companyID, employeeID, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)).
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *attendance.Attendance) error {
				assert.Nil(t, a.ClockIn)
				assert.Equal(t, attendance.SourceHR, a.Source)
				return nil
			})

		resp, err := deps.service.MarkAbsent(context.Background(), companyID, attendance.MarkAbsentRequest{
			EmployeeID: employeeID,
			Date:       "2026-03-05",
		})
		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusAbsent, resp.Status)
		assert.Equal(t, "0.00", resp.WorkedHours)
	})

	t.Run("negative existing record", func(t *testing.T) {
		deps := setupServiceTest(t, now)
		expectTx(deps.sqlMock, false)

		deps.repo.EXPECT().FindByEmployeeAndDate(gomock.Any(), companyID, employeeID, gomock.Any()).
			Return(&attendance.Attendance{}, nil)

		_, err := deps.service.MarkAbsent(context.Background(), companyID, attendance.MarkAbsentRequest{
			EmployeeID: employeeID,
			Date:       "2026-03-05",
		})
		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceExists)
	})

	t.Run("negative invalid date", func(t *testing.T) {
		deps := setupServiceTest(t, now)

		_, err := deps.service.MarkAbsent(context.Background(), companyID, attendance.MarkAbsentRequest{
			EmployeeID: employeeID,
			Date:       "05/03/2026",
		})
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateFormat)
	})
}

func TestService_GetAll(t *testing.T) {
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	otherID := uuid.New().String()

	t.Run("success own rows only", func(t *testing.T) {
		deps := setupServiceTest(t, time.Now())

		deps.repo.EXPECT().FindAll(gomock.Any(), companyID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, spec query.Spec) ([]attendance.Attendance, error) {
				assert.Equal(t, actorID, spec.Filter["employee_id"])
				return []attendance.Attendance{{ID: uuid.New()}}, nil
			})

		resp, err := deps.service.GetAll(context.Background(), companyID, actorID, false, attendance.ListFilter{EmployeeID: otherID})
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("success privileged filter", func(t *testing.T) {
		deps := setupServiceTest(t, time.Now())

		deps.repo.EXPECT().FindAll(gomock.Any(), companyID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, spec query.Spec) ([]attendance.Attendance, error) {
				assert.Equal(t, otherID, spec.Filter["employee_id"])
				assert.Equal(t, attendance.StatusLate, spec.Filter["status"])
				return nil, nil
			})

		resp, err := deps.service.GetAll(context.Background(), companyID, actorID, true, attendance.ListFilter{
			EmployeeID: otherID,
			Status:     attendance.StatusLate,
		})
		assert.NoError(t, err)
		assert.Empty(t, resp)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupServiceTest(t, time.Now())

		deps.repo.EXPECT().FindAll(gomock.Any(), companyID, gomock.Any()).Return(nil, errors.New("db down"))

		_, err := deps.service.GetAll(context.Background(), companyID, actorID, true, attendance.ListFilter{})
		assert.Error(t, err)
	})
}

func TestStatusFor(t *testing.T) {
	day := func(h, m int) time.Time { return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC) }

	assert.Equal(t, attendance.StatusPresent, attendance.StatusFor(day(9, 15)))
	assert.Equal(t, attendance.StatusLate, attendance.StatusFor(day(9, 16)))
	assert.Equal(t, attendance.StatusLate, attendance.StatusFor(day(13, 0)))
	assert.Equal(t, attendance.StatusPresent, attendance.StatusFor(day(7, 30)))
}

func TestHours(t *testing.T) {
	in := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	worked, overtime := attendance.Hours(in, in.Add(7*time.Hour+45*time.Minute))
	assert.Equal(t, "7.75", worked.StringFixed(2))
	assert.True(t, overtime.IsZero())

	worked, overtime = attendance.Hours(in, in.Add(9*time.Hour))
	assert.Equal(t, "9.00", worked.StringFixed(2))
	assert.Equal(t, "1.00", overtime.StringFixed(2))

	worked, overtime = attendance.Hours(in, in.Add(-time.Hour))
	assert.True(t, worked.IsZero())
	assert.True(t, overtime.IsZero())
}
