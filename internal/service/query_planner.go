package service

import (
	"slices"
	"strings"

	"github.com/locvowork/hrrecords/internal/domain"
)

// QueryPlanner checks list parameters and turns them into a persistence query.
type QueryPlanner struct {
	sortable []string
}

func NewQueryPlanner() *QueryPlanner {
	return &QueryPlanner{sortable: domain.SortableFields}
}

// Plan validates spec in a fixed order and reports the first failure as InvalidField.
func (p *QueryPlanner) Plan(spec domain.QuerySpec) (domain.EmployeeQuery, error) {
	if spec.MinSalary.IsNegative() {
		return domain.EmployeeQuery{}, domain.InvalidFieldf("Min salary must be greater than 0")
	}
	if spec.MaxSalary.IsNegative() {
		return domain.EmployeeQuery{}, domain.InvalidFieldf("Max salary must be greater than 0")
	}
	if spec.MaxSalary.LessThan(spec.MinSalary) {
		return domain.EmployeeQuery{}, domain.InvalidFieldf("Max salary cannot be less than min salary")
	}
	if spec.Offset < 0 {
		return domain.EmployeeQuery{}, domain.InvalidFieldf("Offset must be greater than 0")
	}
	if spec.Limit != nil && *spec.Limit < 0 {
		return domain.EmployeeQuery{}, domain.InvalidFieldf("Limit must be greater than 0")
	}
	if !slices.Contains(p.sortable, spec.Sort) {
		return domain.EmployeeQuery{}, domain.InvalidFieldf("Invalid sorting")
	}
	dir, ok := parseDirection(spec.Order)
	if !ok {
		return domain.EmployeeQuery{}, domain.InvalidFieldf("Invalid order")
	}

	return domain.EmployeeQuery{
		MinSalary: spec.MinSalary,
		MaxSalary: spec.MaxSalary,
		ID:        nonBlank(spec.ID),
		Login:     nonBlank(spec.Login),
		Name:      nonBlank(spec.Name),
		Page:      domain.NewPagination(spec.Offset, spec.Limit, spec.Sort, dir),
	}, nil
}

func parseDirection(order string) (domain.SortDirection, bool) {
	switch strings.ToUpper(strings.TrimSpace(order)) {
	case string(domain.SortAsc):
		return domain.SortAsc, true
	case string(domain.SortDesc):
		return domain.SortDesc, true
	}
	return "", false
}

func nonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
