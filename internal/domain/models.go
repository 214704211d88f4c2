package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Salaries travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Employee represents the employee table
type Employee struct {
	ID        string          `json:"id" db:"id"`
	Login     string          `json:"login" db:"login"`
	Name      string          `json:"name" db:"name"`
	Salary    decimal.Decimal `json:"salary" db:"salary"`
	StartDate Date            `json:"startDate" db:"start_date"`
}

func (e Employee) String() string {
	return fmt.Sprintf("Employee(id=%s, login=%s, name=%s, salary=%s, startDate=%s)",
		e.ID, e.Login, e.Name, e.Salary.String(), e.StartDate)
}

// CandidateRecord is an employee under construction. Nil fields were absent
// in the source row or request body.
type CandidateRecord struct {
	ID        *string
	Login     *string
	Name      *string
	Salary    *decimal.Decimal
	StartDate *Date
}

// IsComment reports whether the row is a comment row (id starting with '#').
func (c *CandidateRecord) IsComment() bool {
	return c.ID != nil && len(*c.ID) > 0 && (*c.ID)[0] == '#'
}

// Employee converts a validated candidate. Callers must validate first.
func (c *CandidateRecord) Employee() Employee {
	return Employee{
		ID:        *c.ID,
		Login:     *c.Login,
		Name:      *c.Name,
		Salary:    *c.Salary,
		StartDate: *c.StartDate,
	}
}

// Candidate lifts a stored-shape employee into a candidate so the same
// validation rules apply to both paths.
func (e Employee) Candidate() *CandidateRecord {
	id, login, name := e.ID, e.Login, e.Name
	salary, start := e.Salary, e.StartDate
	c := &CandidateRecord{ID: &id, Login: &login, Name: &name, Salary: &salary}
	if !start.IsZero() {
		c.StartDate = &start
	}
	return c
}

// EmployeeDTO is the request body for single-record create and update.
type EmployeeDTO struct {
	ID        *string          `json:"id"`
	Login     *string          `json:"login"`
	Name      *string          `json:"name"`
	Salary    *decimal.Decimal `json:"salary"`
	StartDate *string          `json:"startDate"`
}

// EmployeeResponse wraps list results.
type EmployeeResponse struct {
	Result []Employee `json:"result"`
}
