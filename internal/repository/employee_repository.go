package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/locvowork/hrrecords/internal/domain"
	"github.com/locvowork/hrrecords/internal/repository/builder"
)

const employeeTable = "employee"

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

var employeeColumns = []string{"id", "login", "name", "salary", "start_date"}

var sortColumns = map[string]string{
	"id":     "id",
	"name":   "name",
	"login":  "login",
	"salary": "salary",
}

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type employeeRepository struct {
	db DBTX
}

// NewEmployeeRepository creates a new instance of EmployeeRepository
func NewEmployeeRepository(db DBTX) domain.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	query, args := builder.NewSQLBuilder().
		Select(employeeColumns...).
		From(employeeTable).
		Where("id = ?", id).
		Build()

	return r.findOne(ctx, query, args)
}

func (r *employeeRepository) FindByLogin(ctx context.Context, login string) (*domain.Employee, error) {
	query, args := builder.NewSQLBuilder().
		Select(employeeColumns...).
		From(employeeTable).
		Where("login = ?", login).
		Build()

	return r.findOne(ctx, query, args)
}

func (r *employeeRepository) findOne(ctx context.Context, query string, args []interface{}) (*domain.Employee, error) {
	var e domain.Employee
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.Login, &e.Name, &e.Salary, &e.StartDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan employee: %w", err)
	}
	return &e, nil
}

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	query, args := builder.NewSQLBuilder().
		Insert(employeeTable, employeeColumns...).
		Values(e.ID, e.Login, e.Name, e.Salary, e.StartDate).
		Build()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return translate(err, "failed to insert employee")
	}
	return nil
}

func (r *employeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	query, args := builder.NewSQLBuilder().
		Update(employeeTable).
		Set("login", e.Login).
		Set("name", e.Name).
		Set("salary", e.Salary).
		Set("start_date", e.StartDate).
		Where("id = ?", e.ID).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translate(err, "failed to update employee")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to update employee %s: %w", e.ID, sql.ErrNoRows)
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	query, args := builder.NewSQLBuilder().
		Delete(employeeTable).
		Where("id = ?", id).
		Build()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

func (r *employeeRepository) FindAll(ctx context.Context) ([]domain.Employee, error) {
	query, args := builder.NewSQLBuilder().
		Select(employeeColumns...).
		From(employeeTable).
		OrderBy("id ASC").
		Build()

	return r.list(ctx, query, args)
}

func (r *employeeRepository) Query(ctx context.Context, q domain.EmployeeQuery) ([]domain.Employee, error) {
	b := builder.NewSQLBuilder().
		Select(employeeColumns...).
		From(employeeTable).
		Where("salary >= ?", q.MinSalary).
		Where("salary < ?", q.MaxSalary).
		WhereIf(q.ID != nil, "id = ?", deref(q.ID)).
		WhereIf(q.Login != nil, "login = ?", deref(q.Login)).
		WhereIf(q.Name != nil, `name LIKE ? ESCAPE '\'`, "%"+builder.EscapeLike(deref(q.Name))+"%")

	col, ok := sortColumns[q.Page.SortField]
	if !ok {
		col = "id"
	}
	dir := domain.SortAsc
	if q.Page.Direction == domain.SortDesc {
		dir = domain.SortDesc
	}
	b.OrderBy(fmt.Sprintf("%s %s", col, dir))
	if col != "id" {
		b.OrderBy("id ASC")
	}

	if !q.Page.Unbounded {
		b.Limit(q.Page.Limit)
	}
	b.Offset(q.Page.Offset)

	query, args := b.Build()
	return r.list(ctx, query, args)
}

func (r *employeeRepository) list(ctx context.Context, query string, args []interface{}) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Login, &e.Name, &e.Salary, &e.StartDate); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return employees, nil
}

// translate maps a unique violation to domain.ErrConflict and wraps everything else.
func translate(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %s: %w", msg, pqErr.Constraint, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
