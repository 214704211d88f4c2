package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SortDirection orders query results.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// Query defaults applied when a request omits the parameter.
var (
	DefaultMinSalary = decimal.Zero
	DefaultMaxSalary = decimal.RequireFromString("4000.00")
)

const (
	DefaultSortField = "id"
	DefaultOrder     = "ASC"
)

// SortableFields lists the fields a query may be ordered by.
var SortableFields = []string{"id", "name", "login", "salary"}

// QuerySpec holds raw list parameters for one request.
type QuerySpec struct {
	MinSalary decimal.Decimal
	MaxSalary decimal.Decimal
	ID        *string
	Login     *string
	Name      *string
	Offset    int
	Limit     *int
	Sort      string
	Order     string
}

// NewQuerySpec returns a spec with every default applied.
func NewQuerySpec() QuerySpec {
	return QuerySpec{
		MinSalary: DefaultMinSalary,
		MaxSalary: DefaultMaxSalary,
		Sort:      DefaultSortField,
		Order:     DefaultOrder,
	}
}

// Pagination is an offset/limit page description with a sort order.
// It is comparable, so two equal paginations are equal map keys.
type Pagination struct {
	Offset    int
	Limit     int
	Unbounded bool
	SortField string
	Direction SortDirection
}

// NewPagination builds a page. A nil limit means no upper bound.
func NewPagination(offset int, limit *int, field string, dir SortDirection) Pagination {
	p := Pagination{Offset: offset, SortField: field, Direction: dir, Unbounded: limit == nil}
	if limit != nil {
		p.Limit = *limit
	}
	return p
}

func (p Pagination) Equal(o Pagination) bool { return p == o }

func (p Pagination) String() string {
	limit := "unbounded"
	if !p.Unbounded {
		limit = fmt.Sprint(p.Limit)
	}
	return fmt.Sprintf("Pagination(offset=%d, limit=%s, sort=%s %s)", p.Offset, limit, p.SortField, p.Direction)
}

// Window applies the page to an already filtered and sorted slice length.
func (p Pagination) Window(total int) (from, to int) {
	from = min(p.Offset, total)
	to = total
	if !p.Unbounded && p.Limit < total-from {
		to = from + p.Limit
	}
	return from, to
}

// EmployeeQuery is the validated filter and page handed to persistence.
// Salary range is half-open: MinSalary <= salary < MaxSalary.
type EmployeeQuery struct {
	MinSalary decimal.Decimal
	MaxSalary decimal.Decimal
	ID        *string
	Login     *string
	Name      *string
	Page      Pagination
}

// Matches evaluates the filter part of the query against one employee.
func (q EmployeeQuery) Matches(e Employee) bool {
	if e.Salary.LessThan(q.MinSalary) || !e.Salary.LessThan(q.MaxSalary) {
		return false
	}
	if q.ID != nil && e.ID != *q.ID {
		return false
	}
	if q.Login != nil && e.Login != *q.Login {
		return false
	}
	if q.Name != nil && !strings.Contains(e.Name, *q.Name) {
		return false
	}
	return true
}
