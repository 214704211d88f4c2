package domain

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPagination_Window(t *testing.T) {
	ten := 10
	zero := 0
	huge := math.MaxInt

	testCases := []struct {
		page     Pagination
		total    int
		from, to int
	}{
		{NewPagination(0, nil, "id", SortAsc), 5, 0, 5},
		{NewPagination(2, &ten, "id", SortAsc), 20, 2, 12},
		{NewPagination(2, &ten, "id", SortAsc), 7, 2, 7},
		{NewPagination(9, &ten, "id", SortAsc), 7, 7, 7},
		{NewPagination(0, &zero, "id", SortAsc), 7, 0, 0},
		{NewPagination(1, &huge, "id", SortAsc), 5, 1, 5},
		{NewPagination(9, &huge, "id", SortAsc), 5, 5, 5},
	}

	for _, tc := range testCases {
		t.Run(tc.page.String(), func(t *testing.T) {
			from, to := tc.page.Window(tc.total)
			assert.Equal(t, tc.from, from)
			assert.Equal(t, tc.to, to)
		})
	}
}

func TestPagination_EqualityAndMapKey(t *testing.T) {
	ten, other := 10, 10
	a := NewPagination(2, &ten, "salary", SortDesc)
	b := NewPagination(2, &other, "salary", SortDesc)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewPagination(2, nil, "salary", SortDesc)))

	seen := map[Pagination]int{a: 1}
	assert.Equal(t, 1, seen[b])

	assert.Equal(t, "Pagination(offset=2, limit=10, sort=salary DESC)", a.String())
	assert.Equal(t, "Pagination(offset=0, limit=unbounded, sort=id ASC)", NewPagination(0, nil, "id", SortAsc).String())
}

func TestEmployeeQuery_Matches(t *testing.T) {
	q := EmployeeQuery{
		MinSalary: decimal.NewFromInt(1000),
		MaxSalary: decimal.NewFromInt(4000),
	}
	at := func(s string) Employee {
		return Employee{ID: "e1", Login: "hpotter", Name: "Harry Potter", Salary: decimal.RequireFromString(s)}
	}

	assert.True(t, q.Matches(at("1000")), "lower bound is inclusive")
	assert.True(t, q.Matches(at("3999.99")))
	assert.False(t, q.Matches(at("4000.00")), "upper bound is exclusive")
	assert.False(t, q.Matches(at("999.99")))

	name := "Pot"
	q.Name = &name
	assert.True(t, q.Matches(at("1000")))
	name = "pot"
	assert.False(t, q.Matches(at("1000")))

	q.Name = nil
	login := "ronwl"
	q.Login = &login
	assert.False(t, q.Matches(at("1000")))
}

func TestError_Kinds(t *testing.T) {
	err := InvalidFieldf("Employee ID already exists")
	assert.True(t, errors.Is(err, ErrInvalidField))
	assert.False(t, errors.Is(err, ErrDuplicateRow))
	assert.Equal(t, KindInvalidField, KindOf(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))

	cause := fmt.Errorf("employee_pkey: %w", ErrConflict)
	persist := UnableToPersist(Employee{ID: "e1", Login: "l", Name: "N", Salary: decimal.NewFromInt(5)}, cause)
	assert.True(t, errors.Is(persist, ErrUnableToPersist))
	assert.True(t, errors.Is(persist, ErrConflict))
	assert.Equal(t, "Unable to save employee Employee(id=e1, login=l, name=N, salary=5, startDate=)", persist.Error())
}

func TestCandidateRecord(t *testing.T) {
	id := "#e0001"
	assert.True(t, (&CandidateRecord{ID: &id}).IsComment())
	assert.False(t, (&CandidateRecord{}).IsComment())

	e := Employee{ID: "e1", Login: "l", Name: "N", Salary: decimal.NewFromInt(5)}
	c := e.Candidate()
	assert.Nil(t, c.StartDate)
	assert.Equal(t, "e1", *c.ID)
}
