package domain

import "context"

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByLogin(ctx context.Context, login string) (*Employee, error)
	// Create inserts a new row and never overwrites an existing one.
	Create(ctx context.Context, e *Employee) error
	// Update replaces every field of the row with the same id.
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]Employee, error)
	Query(ctx context.Context, q EmployeeQuery) ([]Employee, error)
}

// TxManager runs fn inside one all-or-nothing transaction. The repository
// passed to fn is bound to that transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo EmployeeRepository) error) error
}

// RowReader yields raw rows of an uploaded file with the header removed.
// Blank cells are reported as nil.
type RowReader interface {
	ReadRows(ctx context.Context) ([][]*string, error)
}
