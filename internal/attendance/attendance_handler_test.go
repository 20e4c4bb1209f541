package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ess/internal/attendance"
	attendanceerrors "go-ess/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	clockInFn    func(ctx context.Context, companyID, employeeID string, req attendance.ClockInRequest) (attendance.AttendanceResponse, error)
	clockOutFn   func(ctx context.Context, companyID, employeeID string, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error)
	markAbsentFn func(ctx context.Context, companyID string, req attendance.MarkAbsentRequest) (attendance.AttendanceResponse, error)
	getAllFn     func(ctx context.Context, companyID, actorID string, canReadAll bool, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error)
}

func (f *fakeService) ClockIn(ctx context.Context, companyID, employeeID string, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	return f.clockInFn(ctx, companyID, employeeID, req)
}
func (f *fakeService) ClockOut(ctx context.Context, companyID, employeeID string, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	return f.clockOutFn(ctx, companyID, employeeID, req)
}
func (f *fakeService) MarkAbsent(ctx context.Context, companyID string, req attendance.MarkAbsentRequest) (attendance.AttendanceResponse, error) {
	return f.markAbsentFn(ctx, companyID, req)
}
func (f *fakeService) GetAll(ctx context.Context, companyID, actorID string, canReadAll bool, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx, companyID, actorID, canReadAll, filter)
}

func newTestContext(method, target, body, role string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	c.Set("company_id", "company-1")
	c.Set("employee_id", "emp-1")
	c.Set("role", role)
	return c, w
}

func TestHandler_ClockIn(t *testing.T) {
	t.Run("success without body", func(t *testing.T) {
		svc := &fakeService{
			clockInFn: func(_ context.Context, companyID, employeeID string, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
				assert.Equal(t, "company-1", companyID)
				assert.Equal(t, "emp-1", employeeID)
				return attendance.AttendanceResponse{ID: "att-1", Status: attendance.StatusPresent}, nil
			},
		}
		c, w := newTestContext(http.MethodPost, "/attendances/clock-in", "", "EMPLOYEE")

		attendance.NewHandler(svc).ClockIn(c)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "att-1")
	})

	t.Run("negative already clocked in", func(t *testing.T) {
		svc := &fakeService{
			clockInFn: func(context.Context, string, string, attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
			},
		}
		c, w := newTestContext(http.MethodPost, "/attendances/clock-in", `{"latitude":1.5}`, "EMPLOYEE")

		attendance.NewHandler(svc).ClockIn(c)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandler_ClockOut(t *testing.T) {
	svc := &fakeService{
		clockOutFn: func(context.Context, string, string, attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrClockInNotFound
		},
	}
	c, w := newTestContext(http.MethodPost, "/attendances/clock-out", "", "EMPLOYEE")

	attendance.NewHandler(svc).ClockOut(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_MarkAbsent(t *testing.T) {
	t.Run("negative missing employee", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/attendances/mark-absent", `{"date":"2026-03-05"}`, "HR")

		attendance.NewHandler(&fakeService{}).MarkAbsent(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeService{
			markAbsentFn: func(_ context.Context, companyID string, req attendance.MarkAbsentRequest) (attendance.AttendanceResponse, error) {
				assert.Equal(t, "2026-03-05", req.Date)
				return attendance.AttendanceResponse{Status: attendance.StatusAbsent}, nil
			},
		}
		body := `{"employee_id":"7b0c3c1e-2a4d-4c55-9a57-0c9f1f1d2b11","date":"2026-03-05"}`
		c, w := newTestContext(http.MethodPost, "/attendances/mark-absent", body, "HR")

		attendance.NewHandler(svc).MarkAbsent(c)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestHandler_GetAll(t *testing.T) {
	cases := []struct {
		name       string
		role       string
		canReadAll bool
	}{
		{name: "success hr reads all", role: "hr", canReadAll: true},
		{name: "success employee reads own", role: "EMPLOYEE", canReadAll: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeService{
				getAllFn: func(_ context.Context, _ string, actorID string, canReadAll bool, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
					assert.Equal(t, "emp-1", actorID)
					assert.Equal(t, tc.canReadAll, canReadAll)
					assert.Equal(t, "Late", filter.Status)
					return []attendance.AttendanceResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
				},
			}
			c, w := newTestContext(http.MethodGet, "/attendances?status=Late&page=1&page_size=2", "", tc.role)

			attendance.NewHandler(svc).GetAll(c)
			assert.Equal(t, http.StatusOK, w.Code)

			var body struct {
				Data []attendance.AttendanceResponse `json:"data"`
			}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Len(t, body.Data, 2)
		})
	}
}
