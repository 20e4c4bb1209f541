package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ess/internal/payroll"
	payrollerrors "go-ess/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeService struct {
	payroll.Service

	generateFn      func(ctx context.Context, companyID, actorID string, req payroll.GenerateRequest) (payroll.PayrollResponse, error)
	generateBatchFn func(ctx context.Context, companyID, actorID string, req payroll.BatchRequest) (payroll.BatchSummary, error)
	getAllFn        func(ctx context.Context, companyID string, filter payroll.ListFilter) ([]payroll.PayrollResponse, error)
	approveFn       func(ctx context.Context, companyID, actorID, id string) (payroll.PayrollResponse, error)
	payslipFn       func(ctx context.Context, companyID, id string) ([]byte, string, error)
	exportFn        func(ctx context.Context, companyID string, filter payroll.ListFilter) ([]byte, error)
	deleteFn        func(ctx context.Context, companyID, id string) error
}

func (f *fakeService) Generate(ctx context.Context, companyID, actorID string, req payroll.GenerateRequest) (payroll.PayrollResponse, error) {
	return f.generateFn(ctx, companyID, actorID, req)
}

func (f *fakeService) GenerateBatch(ctx context.Context, companyID, actorID string, req payroll.BatchRequest) (payroll.BatchSummary, error) {
	return f.generateBatchFn(ctx, companyID, actorID, req)
}

func (f *fakeService) GetAll(ctx context.Context, companyID string, filter payroll.ListFilter) ([]payroll.PayrollResponse, error) {
	return f.getAllFn(ctx, companyID, filter)
}

func (f *fakeService) Approve(ctx context.Context, companyID, actorID, id string) (payroll.PayrollResponse, error) {
	return f.approveFn(ctx, companyID, actorID, id)
}

func (f *fakeService) DownloadPayslip(ctx context.Context, companyID, id string) ([]byte, string, error) {
	return f.payslipFn(ctx, companyID, id)
}

func (f *fakeService) Export(ctx context.Context, companyID string, filter payroll.ListFilter) ([]byte, error) {
	return f.exportFn(ctx, companyID, filter)
}

func (f *fakeService) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
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
	c.Set("employee_id", "actor-1")
	return c, w
}

func TestHandler_Generate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeService{
			generateFn: func(_ context.Context, companyID, actorID string, req payroll.GenerateRequest) (payroll.PayrollResponse, error) {
				assert.Equal(t, "company-1", companyID)
				assert.Equal(t, "actor-1", actorID)
				assert.Equal(t, 2026, req.Year)
				assert.Equal(t, 3, req.Month)
				return payroll.PayrollResponse{ID: "pay-1", Status: payroll.StatusDraft, NetSalary: "11910.42"}, nil
			},
		}
		body := `{"employee_id":"7f1d7c2e-8d3a-4a55-9d21-3c8a9b1e0f11","year":2026,"month":3}`
		c, w := newTestContext(http.MethodPost, "/payrolls", body)

		payroll.NewHandler(svc).Generate(c)
		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), "11910.42")
	})

	t.Run("negative validation", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/payrolls", `{"employee_id":"not-a-uuid","year":2026}`)

		payroll.NewHandler(&fakeService{}).Generate(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("negative duplicate period", func(t *testing.T) {
		svc := &fakeService{
			generateFn: func(context.Context, string, string, payroll.GenerateRequest) (payroll.PayrollResponse, error) {
				return payroll.PayrollResponse{}, payrollerrors.ErrPayrollExists
			},
		}
		body := `{"employee_id":"7f1d7c2e-8d3a-4a55-9d21-3c8a9b1e0f11","year":2026,"month":3}`
		c, w := newTestContext(http.MethodPost, "/payrolls", body)

		payroll.NewHandler(svc).Generate(c)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.False(t, decodeEnvelope(t, w.Body.Bytes()).Ok)
	})
}

func TestHandler_GenerateBatch(t *testing.T) {
	svc := &fakeService{
		generateBatchFn: func(_ context.Context, _, _ string, req payroll.BatchRequest) (payroll.BatchSummary, error) {
			return payroll.BatchSummary{Year: req.Year, Month: req.Month, Created: 4, Skipped: 1, TotalNet: "40000.00"}, nil
		},
	}
	c, w := newTestContext(http.MethodPost, "/payrolls/generate-batch", `{"year":2026,"month":3}`)

	payroll.NewHandler(svc).GenerateBatch(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var summary payroll.BatchSummary
	assert.NoError(t, json.Unmarshal(decodeEnvelope(t, w.Body.Bytes()).Data, &summary))
	assert.Equal(t, 4, summary.Created)
	assert.Equal(t, 1, summary.Skipped)
}

func TestHandler_GetAll(t *testing.T) {
	t.Run("success passes filter", func(t *testing.T) {
		svc := &fakeService{
			getAllFn: func(_ context.Context, _ string, filter payroll.ListFilter) ([]payroll.PayrollResponse, error) {
				assert.Equal(t, payroll.StatusApproved, filter.Status)
				assert.Equal(t, 2026, filter.Year)
				assert.Equal(t, 3, filter.Month)
				return []payroll.PayrollResponse{{ID: "pay-1"}, {ID: "pay-2"}}, nil
			},
		}
		c, w := newTestContext(http.MethodGet, "/payrolls?status=Approved&year=2026&month=3", "")

		payroll.NewHandler(svc).GetAll(c)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pay-2")
	})

	t.Run("negative bad status", func(t *testing.T) {
		svc := &fakeService{
			getAllFn: func(context.Context, string, payroll.ListFilter) ([]payroll.PayrollResponse, error) {
				return nil, payrollerrors.ErrInvalidStatusFilter
			},
		}
		c, w := newTestContext(http.MethodGet, "/payrolls?status=Archived", "")

		payroll.NewHandler(svc).GetAll(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Approve(t *testing.T) {
	svc := &fakeService{
		approveFn: func(_ context.Context, _, actorID, id string) (payroll.PayrollResponse, error) {
			assert.Equal(t, "actor-1", actorID)
			assert.Equal(t, "pay-1", id)
			return payroll.PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
		},
	}
	c, w := newTestContext(http.MethodPost, "/payrolls/pay-1/approve", "")
	c.Params = gin.Params{{Key: "id", Value: "pay-1"}}

	payroll.NewHandler(svc).Approve(c)
	assert.Equal(t, payrollerrors.ErrInvalidStatusTransition.HTTPStatus, w.Code)
}

func TestHandler_Downloads(t *testing.T) {
	t.Run("success payslip", func(t *testing.T) {
		svc := &fakeService{
			payslipFn: func(context.Context, string, string) ([]byte, string, error) {
				return []byte("%PDF-1.4"), "payslip-2026-03-abcd1234.pdf", nil
			},
		}
		c, w := newTestContext(http.MethodGet, "/payrolls/pay-1/payslip", "")
		c.Params = gin.Params{{Key: "id", Value: "pay-1"}}

		payroll.NewHandler(svc).DownloadPayslip(c)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "payslip-2026-03-abcd1234.pdf")
	})

	t.Run("negative payslip on draft", func(t *testing.T) {
		svc := &fakeService{
			payslipFn: func(context.Context, string, string) ([]byte, string, error) {
				return nil, "", payrollerrors.ErrPayslipNotAvailable
			},
		}
		c, w := newTestContext(http.MethodGet, "/payrolls/pay-1/payslip", "")

		payroll.NewHandler(svc).DownloadPayslip(c)
		assert.Equal(t, payrollerrors.ErrPayslipNotAvailable.HTTPStatus, w.Code)
		assert.False(t, decodeEnvelope(t, w.Body.Bytes()).Ok)
	})

	t.Run("success export", func(t *testing.T) {
		svc := &fakeService{
			exportFn: func(_ context.Context, _ string, filter payroll.ListFilter) ([]byte, error) {
				assert.Equal(t, 2026, filter.Year)
				return []byte("PK"), nil
			},
		}
		c, w := newTestContext(http.MethodGet, "/payrolls/export?year=2026", "")

		payroll.NewHandler(svc).Export(c)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	})
}

func TestHandler_Delete(t *testing.T) {
	svc := &fakeService{
		deleteFn: func(_ context.Context, _, id string) error {
			assert.Equal(t, "pay-1", id)
			return nil
		},
	}
	c, w := newTestContext(http.MethodDelete, "/payrolls/pay-1", "")
	c.Params = gin.Params{{Key: "id", Value: "pay-1"}}

	payroll.NewHandler(svc).Delete(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
