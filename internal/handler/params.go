package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/locvowork/hrrecords/internal/domain"
)

// parseQuerySpec reads list parameters on top of the defaults. Range and
// enum checks are left to the planner; only malformed values fail here.
func parseQuerySpec(c echo.Context) (domain.QuerySpec, error) {
	spec := domain.NewQuerySpec()

	err := echo.QueryParamsBinder(c).
		Int("offset", &spec.Offset).
		String("sort", &spec.Sort).
		String("order", &spec.Order).
		BindError()
	if err != nil {
		var be *echo.BindingError
		if errors.As(err, &be) {
			return spec, domain.InvalidFieldf("Invalid value for %s", be.Field)
		}
		return spec, domain.InvalidFieldf("Invalid query parameters")
	}

	if spec.MinSalary, err = decimalParam(c, "minSalary", spec.MinSalary); err != nil {
		return spec, err
	}
	if spec.MaxSalary, err = decimalParam(c, "maxSalary", spec.MaxSalary); err != nil {
		return spec, err
	}
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return spec, domain.InvalidFieldf("Invalid value for limit")
		}
		spec.Limit = &limit
	}

	spec.ID = optionalParam(c, "id")
	spec.Login = optionalParam(c, "login")
	spec.Name = optionalParam(c, "name")
	return spec, nil
}

func decimalParam(c echo.Context, name string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback, domain.InvalidFieldf("Unable to parse number %s", raw)
	}
	return d, nil
}

func optionalParam(c echo.Context, name string) *string {
	v := c.QueryParam(name)
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}
