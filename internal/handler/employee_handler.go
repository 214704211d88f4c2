package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hrrecords/internal/domain"
	"github.com/locvowork/hrrecords/internal/export"
	"github.com/locvowork/hrrecords/internal/service"
	"github.com/locvowork/hrrecords/internal/service/serviceutils"
)

// SpreadsheetWriter renders employees into a workbook.
type SpreadsheetWriter interface {
	Write(w io.Writer, employees []domain.Employee) error
}

type EmployeeHandler struct {
	svc      service.EmployeeService
	exporter SpreadsheetWriter
}

func NewEmployeeHandler(svc service.EmployeeService, exporter SpreadsheetWriter) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, exporter: exporter}
}

func (h *EmployeeHandler) ListHandler(c echo.Context) error {
	employees, err := h.query(c)
	if err != nil {
		return respondFailure(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", domain.EmployeeResponse{Result: employees})
}

func (h *EmployeeHandler) ExportHandler(c echo.Context) error {
	employees, err := h.query(c)
	if err != nil {
		return respondFailure(c, err)
	}

	var buf bytes.Buffer
	if err := h.exporter.Write(&buf, employees); err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to generate Excel file", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="employees.xlsx"`)
	return c.Blob(http.StatusOK, export.ContentType, buf.Bytes())
}

// GetHandler answers 200 with an empty body when the employee does not exist.
func (h *EmployeeHandler) GetHandler(c echo.Context) error {
	emp, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondFailure(c, err)
	}
	if emp == nil {
		return c.NoContent(http.StatusOK)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", emp)
}

func (h *EmployeeHandler) CreateHandler(c echo.Context) error {
	return h.mutate(c, h.svc.Create, http.StatusCreated, "Successfully created")
}

func (h *EmployeeHandler) UpdateHandler(c echo.Context) error {
	return h.mutate(c, h.svc.Update, http.StatusOK, "Successfully updated")
}

func (h *EmployeeHandler) DeleteHandler(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondFailure(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Successfully deleted", nil)
}

type mutation func(ctx context.Context, dto *domain.EmployeeDTO) (*domain.Employee, error)

func (h *EmployeeHandler) mutate(c echo.Context, fn mutation, status int, message string) error {
	var req domain.EmployeeDTO
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if _, err := fn(c.Request().Context(), &req); err != nil {
		return respondFailure(c, err)
	}
	return serviceutils.ResponseSuccess(c, status, message, nil)
}

func (h *EmployeeHandler) query(c echo.Context) ([]domain.Employee, error) {
	spec, err := parseQuerySpec(c)
	if err != nil {
		return nil, err
	}
	return h.svc.List(c.Request().Context(), spec)
}

// statusFor maps an error kind onto the response status of single-record endpoints.
func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalidField, domain.KindUnreadableFile, domain.KindDuplicateRow:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondFailure(c echo.Context, err error) error {
	status := statusFor(err)
	message := err.Error()
	if domain.KindOf(err) == "" {
		message = http.StatusText(status)
	}
	return serviceutils.ResponseError(c, status, message, err)
}
