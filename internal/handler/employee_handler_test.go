package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/locvowork/hrrecords/internal/domain"
	"github.com/locvowork/hrrecords/internal/export"
	"github.com/locvowork/hrrecords/internal/repository/memory"
	"github.com/locvowork/hrrecords/internal/service"
	"github.com/locvowork/hrrecords/internal/validation"
)

func seeded() *memory.Store {
	return memory.NewStore(
		domain.Employee{
			ID: "e0001", Login: "hpotter", Name: "Harry Potter",
			Salary:    decimal.RequireFromString("1234.00"),
			StartDate: domain.NewDate(2001, time.November, 16),
		},
		domain.Employee{
			ID: "e0002", Login: "ronwl", Name: "Ron Weasley",
			Salary:    decimal.RequireFromString("19234.50"),
			StartDate: domain.NewDate(2001, time.November, 16),
		},
	)
}

func newEmployeeHandler(t *testing.T, store *memory.Store) *EmployeeHandler {
	t.Helper()
	exporter, err := export.NewExporter("")
	require.NoError(t, err)
	svc := service.NewEmployeeService(store, service.NewQueryPlanner(), validation.NewEmployeeValidator())
	return NewEmployeeHandler(svc, exporter)
}

func request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestListHandler(t *testing.T) {
	testCases := map[string]struct {
		query   string
		status  int
		ids     []string
		message string
	}{
		"defaults exclude salaries from 4000": {
			query:  "",
			status: http.StatusOK,
			ids:    []string{"e0001"},
		},
		"salary range": {
			query:  "?minSalary=1000&maxSalary=4000",
			status: http.StatusOK,
			ids:    []string{"e0001"},
		},
		"wide range sorted by salary descending": {
			query:  "?maxSalary=100000&sort=salary&order=DESC",
			status: http.StatusOK,
			ids:    []string{"e0002", "e0001"},
		},
		"offset and limit": {
			query:  "?maxSalary=100000&offset=1&limit=10",
			status: http.StatusOK,
			ids:    []string{"e0002"},
		},
		"limit zero": {
			query:  "?maxSalary=100000&limit=0",
			status: http.StatusOK,
			ids:    []string{},
		},
		"name substring": {
			query:  "?maxSalary=100000&name=Weas",
			status: http.StatusOK,
			ids:    []string{"e0002"},
		},
		"min above default max": {
			query:   "?minSalary=5000",
			status:  http.StatusBadRequest,
			message: "Max salary cannot be less than min salary",
		},
		"bad number": {
			query:   "?minSalary=abc",
			status:  http.StatusBadRequest,
			message: "Unable to parse number abc",
		},
		"bad offset": {
			query:   "?offset=two",
			status:  http.StatusBadRequest,
			message: "Invalid value for offset",
		},
		"bad sort": {
			query:   "?sort=salaryy",
			status:  http.StatusBadRequest,
			message: "Invalid sorting",
		},
	}

	h := newEmployeeHandler(t, seeded())
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			c, rec := request(http.MethodGet, "/employees"+tc.query, "")
			require.NoError(t, h.ListHandler(c))
			assert.Equal(t, tc.status, rec.Code)

			if tc.message != "" {
				assert.Equal(t, tc.message, message(t, rec))
				return
			}
			var body domain.EmployeeResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			ids := make([]string, 0, len(body.Result))
			for _, e := range body.Result {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tc.ids, ids)
		})
	}
}

func TestGetHandler(t *testing.T) {
	h := newEmployeeHandler(t, seeded())

	c, rec := request(http.MethodGet, "/employees/e0001", "")
	c.SetParamNames("id")
	c.SetParamValues("e0001")
	require.NoError(t, h.GetHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"e0001","login":"hpotter","name":"Harry Potter","salary":1234,"startDate":"2001-11-16"}`, rec.Body.String())

	c, rec = request(http.MethodGet, "/employees/e0404", "")
	c.SetParamNames("id")
	c.SetParamValues("e0404")
	require.NoError(t, h.GetHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCreateHandler(t *testing.T) {
	h := newEmployeeHandler(t, memory.NewStore())
	body := `{"id":"emp0001","login":"hpotter","name":"Harry Potter","salary":1234.00,"startDate":"2001-11-16"}`

	c, rec := request(http.MethodPost, "/employees", body)
	require.NoError(t, h.CreateHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Successfully created", message(t, rec))

	c, rec = request(http.MethodPost, "/employees", body)
	require.NoError(t, h.CreateHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Employee ID already exists", message(t, rec))

	c, rec = request(http.MethodPost, "/employees", `{"id":`)
	require.NoError(t, h.CreateHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", message(t, rec))

	c, rec = request(http.MethodPost, "/employees", `{"id":"emp0002","login":"x","name":"X","salary":1,"startDate":"soon"}`)
	require.NoError(t, h.CreateHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid date soon", message(t, rec))
}

func TestUpdateHandler(t *testing.T) {
	store := seeded()
	h := newEmployeeHandler(t, store)

	c, rec := request(http.MethodPut, "/employees", `{"id":"e0001","login":"hpotter","name":"Harry","salary":"10.5","startDate":"2001-11-16"}`)
	require.NoError(t, h.UpdateHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Successfully updated", message(t, rec))

	got, err := store.FindByID(c.Request().Context(), "e0001")
	require.NoError(t, err)
	assert.Equal(t, "Harry", got.Name)

	c, rec = request(http.MethodPut, "/employees", `{"id":"e0001","login":"ronwl","name":"Harry","salary":10,"startDate":"2001-11-16"}`)
	require.NoError(t, h.UpdateHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Employee login not unique", message(t, rec))
}

func TestDeleteHandler(t *testing.T) {
	h := newEmployeeHandler(t, seeded())

	c, rec := request(http.MethodDelete, "/employees/e0002", "")
	c.SetParamNames("id")
	c.SetParamValues("e0002")
	require.NoError(t, h.DeleteHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Successfully deleted", message(t, rec))

	c, rec = request(http.MethodDelete, "/employees/e0002", "")
	c.SetParamNames("id")
	c.SetParamValues("e0002")
	require.NoError(t, h.DeleteHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No such employee", message(t, rec))
}

func TestExportHandler(t *testing.T) {
	h := newEmployeeHandler(t, seeded())

	c, rec := request(http.MethodGet, "/employees/export?maxSalary=100000", "")
	require.NoError(t, h.ExportHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get(echo.HeaderContentType))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Employees")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
