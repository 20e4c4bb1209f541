package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	got EnforceRequest
}

func (f *fakeService) LoadCompanyPolicy(companyID string) error {
	return nil
}

func (f *fakeService) Enforce(req EnforceRequest) (bool, error) {
	f.got = req
	return req.Resource == "employee" && req.Action == "read", nil
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := &fakeService{}
	handler := NewHandler(service)

	router := gin.New()
	router.POST("/rbac/enforce", func(c *gin.Context) {
		c.Set("company_id", "company-1")
		c.Next()
	}, handler.Enforce)

	t.Run("success company comes from token", func(t *testing.T) {
		jsonBody, _ := json.Marshal(EnforceRequest{
			EmployeeID: "emp-1",
			CompanyID:  "other-company",
			Resource:   "employee",
			Action:     "read",
		})
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Ok   bool            `json:"ok"`
			Data EnforceResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Data.Allowed)
		assert.Equal(t, "company-1", service.got.CompanyID)
	})

	t.Run("negative missing fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"employee_id":"emp-1"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
