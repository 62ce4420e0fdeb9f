package employee_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrms-lite/internal/employee"
	employeeerrors "hrms-lite/internal/employee/errors"
	"hrms-lite/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	CreateFn          func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn          func(ctx context.Context) (employee.EmployeeListResponse, error)
	GetByEmployeeIDFn func(ctx context.Context, employeeID string) (employee.EmployeeResponse, error)
	DeleteFn          func(ctx context.Context, employeeID string) (employee.DeleteEmployeeResponse, error)
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) (employee.EmployeeListResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeEmployeeService) GetByEmployeeID(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	return f.GetByEmployeeIDFn(ctx, employeeID)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, employeeID string) (employee.DeleteEmployeeResponse, error) {
	return f.DeleteFn(ctx, employeeID)
}

func init() {
	gin.SetMode(gin.TestMode)
	apperror.Init()
}

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "E1", req.EmployeeID)
				assert.Equal(t, "Alice Smith", req.FullName)
				return employee.EmployeeResponse{
					ID:         1,
					EmployeeID: req.EmployeeID,
					FullName:   req.FullName,
					Email:      req.Email,
					Department: req.Department,
					CreatedAt:  "2024-06-01T09:00:00Z",
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"E1","full_name":"Alice Smith","email":"alice@x.com","department":"Eng"}`
		c.Request = newJSONRequest(http.MethodPost, "/api/employees", body)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"employee_id":"E1"`)
		assert.Contains(t, w.Body.String(), `"created_at"`)
	})

	t.Run("validation error names the field", func(t *testing.T) {
		// Service must not be called when validation fails.
		svc := &fakeEmployeeService{}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"E1","full_name":"Alice Smith","department":"Eng"}`
		c.Request = newJSONRequest(http.MethodPost, "/api/employees", body)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Email")
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		svc := &fakeEmployeeService{}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"E1","full_name":"Alice","email":"not-an-email","department":"Eng"}`
		c.Request = newJSONRequest(http.MethodPost, "/api/employees", body)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Email")
	})

	t.Run("conflict from service", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.DuplicateEmployeeID(req.EmployeeID)
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"E1","full_name":"Alice","email":"alice@x.com","department":"Eng"}`
		c.Request = newJSONRequest(http.MethodPost, "/api/employees", body)

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
		assert.Contains(t, w.Body.String(), "E1")
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context) (employee.EmployeeListResponse, error) {
			return employee.EmployeeListResponse{
				Employees: []employee.EmployeeResponse{
					{ID: 1, EmployeeID: "E1", FullName: "Alice"},
				},
				Total: 1,
			}, nil
		},
	}
	h := employee.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/employees", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"employees"`)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestEmployeeHandler_GetByEmployeeID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByEmployeeIDFn: func(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.NotFound(employeeID)
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/employees/ghost", nil)
		c.Params = gin.Params{{Key: "employee_id", Value: "ghost"}}

		h.GetByEmployeeID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "ghost")
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	svc := &fakeEmployeeService{
		DeleteFn: func(ctx context.Context, employeeID string) (employee.DeleteEmployeeResponse, error) {
			return employee.DeleteEmployeeResponse{
				Message: "Employee '" + employeeID + "' deleted successfully.",
			}, nil
		},
	}
	h := employee.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/employees/E1", nil)
	c.Params = gin.Params{{Key: "employee_id", Value: "E1"}}

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deleted successfully")
}
