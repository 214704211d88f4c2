// Package validation holds the ordered field rules every employee record must
// pass before it is stored.
package validation

import (
	"strings"

	"github.com/locvowork/hrrecords/internal/domain"
)

// Rule is one predicate with the message reported when it fails.
type Rule struct {
	Field   string
	Valid   func(c *domain.CandidateRecord) bool
	Message string
}

// Validator evaluates its rules in order; the first failing rule wins.
type Validator struct {
	rules []Rule
}

// NewEmployeeValidator returns the validator for complete employee records.
func NewEmployeeValidator() *Validator {
	return &Validator{rules: []Rule{
		{
			Field:   "id",
			Valid:   func(c *domain.CandidateRecord) bool { return notBlank(c.ID) },
			Message: "Employee id must not be blank",
		},
		{
			Field:   "login",
			Valid:   func(c *domain.CandidateRecord) bool { return notBlank(c.Login) },
			Message: "Employee login must not be blank",
		},
		{
			Field:   "name",
			Valid:   func(c *domain.CandidateRecord) bool { return notBlank(c.Name) },
			Message: "Employee name must not be blank",
		},
		{
			Field:   "salary",
			Valid:   func(c *domain.CandidateRecord) bool { return c.Salary != nil },
			Message: "Employee salary must not be null",
		},
		{
			Field:   "salary",
			Valid:   func(c *domain.CandidateRecord) bool { return c.Salary == nil || !c.Salary.IsNegative() },
			Message: "Employee salary must be greater than or equal to 0",
		},
		{
			Field:   "startDate",
			Valid:   func(c *domain.CandidateRecord) bool { return c.StartDate != nil && !c.StartDate.IsZero() },
			Message: "Employee startDate must not be null",
		},
	}}
}

// Validate returns an InvalidField error for the first violated rule, or nil.
func (v *Validator) Validate(c *domain.CandidateRecord) error {
	if c == nil {
		return domain.InvalidFieldf("Employee cannot be null")
	}
	for _, r := range v.rules {
		if !r.Valid(c) {
			return domain.InvalidFieldf("%s", r.Message)
		}
	}
	return nil
}

func notBlank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
