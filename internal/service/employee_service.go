package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/locvowork/hrrecords/internal/domain"
	"github.com/locvowork/hrrecords/internal/logger"
	"github.com/locvowork/hrrecords/internal/validation"
)

// EmployeeService handles single-record reads and mutations.
type EmployeeService interface {
	// Get returns nil without error when no employee has the id.
	Get(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context, spec domain.QuerySpec) ([]domain.Employee, error)
	Create(ctx context.Context, dto *domain.EmployeeDTO) (*domain.Employee, error)
	Update(ctx context.Context, dto *domain.EmployeeDTO) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}

type employeeService struct {
	tx        domain.TxManager
	planner   *QueryPlanner
	validator *validation.Validator
}

func NewEmployeeService(tx domain.TxManager, planner *QueryPlanner, validator *validation.Validator) EmployeeService {
	return &employeeService{tx: tx, planner: planner, validator: validator}
}

func (s *employeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.InvalidFieldf("ID cannot be null")
	}

	var found *domain.Employee
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repo domain.EmployeeRepository) error {
		var err error
		found, err = repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return found, nil
}

func (s *employeeService) List(ctx context.Context, spec domain.QuerySpec) ([]domain.Employee, error) {
	q, err := s.planner.Plan(spec)
	if err != nil {
		return nil, err
	}
	logger.DebugLog(ctx, "Listing employees salary [%s, %s) %s", q.MinSalary, q.MaxSalary, q.Page)

	var out []domain.Employee
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repo domain.EmployeeRepository) error {
		out, err = repo.Query(ctx, q)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return out, nil
}

func (s *employeeService) Create(ctx context.Context, dto *domain.EmployeeDTO) (*domain.Employee, error) {
	e, err := s.employeeFrom(dto)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repo domain.EmployeeRepository) error {
		existing, err := repo.FindByID(ctx, e.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.InvalidFieldf("Employee ID already exists")
		}
		existing, err = repo.FindByLogin(ctx, e.Login)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.InvalidFieldf("Employee login not unique")
		}
		if err := repo.Create(ctx, &e); err != nil {
			return domain.UnableToPersist(e, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.classify(ctx, "create", err)
	}
	logger.InfoLog(ctx, "Created employee %s", e.ID)
	return &e, nil
}

func (s *employeeService) Update(ctx context.Context, dto *domain.EmployeeDTO) (*domain.Employee, error) {
	e, err := s.employeeFrom(dto)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repo domain.EmployeeRepository) error {
		existing, err := repo.FindByID(ctx, e.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.InvalidFieldf("No such employee")
		}
		holder, err := repo.FindByLogin(ctx, e.Login)
		if err != nil {
			return err
		}
		if holder != nil && holder.ID != e.ID {
			return domain.InvalidFieldf("Employee login not unique")
		}
		if err := repo.Update(ctx, &e); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.InvalidFieldf("No such employee")
			}
			return domain.UnableToPersist(e, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.classify(ctx, "update", err)
	}
	logger.InfoLog(ctx, "Updated employee %s", e.ID)
	return &e, nil
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.InvalidFieldf("ID cannot be null")
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repo domain.EmployeeRepository) error {
		existing, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.InvalidFieldf("No such employee")
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return s.classify(ctx, "delete", err)
	}
	logger.InfoLog(ctx, "Deleted employee %s", id)
	return nil
}

// employeeFrom parses and validates a request body. A bad date here is a
// field error, not a file error.
func (s *employeeService) employeeFrom(dto *domain.EmployeeDTO) (domain.Employee, error) {
	if dto == nil {
		return domain.Employee{}, domain.InvalidFieldf("Employee cannot be null")
	}
	c := &domain.CandidateRecord{
		ID:     dto.ID,
		Login:  dto.Login,
		Name:   dto.Name,
		Salary: dto.Salary,
	}
	if dto.StartDate != nil && strings.TrimSpace(*dto.StartDate) != "" {
		date, err := domain.ParseDate(*dto.StartDate)
		if err != nil {
			return domain.Employee{}, domain.InvalidFieldf("Invalid date %s", *dto.StartDate)
		}
		c.StartDate = &date
	}
	if err := s.validator.Validate(c); err != nil {
		return domain.Employee{}, err
	}
	return c.Employee(), nil
}

// classify passes domain errors through and wraps everything else.
func (s *employeeService) classify(ctx context.Context, op string, err error) error {
	if domain.KindOf(err) == domain.KindInvalidField {
		return err
	}
	logger.ErrorLog(ctx, err, "Failed to %s employee", op)
	if domain.KindOf(err) != "" {
		return err
	}
	return fmt.Errorf("failed to %s employee: %w", op, err)
}
