// Package memory is an in-process employee store with the same uniqueness
// and transaction semantics as the PostgreSQL repository. It backs dry-run
// imports and service tests.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/locvowork/hrrecords/internal/domain"
)

type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	rows map[string]domain.Employee

	// FailCreate, when set, is consulted before every insert.
	FailCreate func(e domain.Employee) error
}

func NewStore(seed ...domain.Employee) *Store {
	s := &Store{rows: make(map[string]domain.Employee)}
	for _, e := range seed {
		s.rows[e.ID] = e
	}
	return s
}

// WithinTx serialises transactions and restores the previous state when fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repo domain.EmployeeRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := make(map[string]domain.Employee, len(s.rows))
	for k, v := range s.rows {
		snapshot[k] = v
	}
	s.mu.RUnlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.rows = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.rows[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (s *Store) FindByLogin(_ context.Context, login string) (*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.rows {
		if e.Login == login {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (s *Store) Create(_ context.Context, e *domain.Employee) error {
	if s.FailCreate != nil {
		if err := s.FailCreate(*e); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[e.ID]; ok {
		return fmt.Errorf("failed to insert employee: employee_pkey: %w", domain.ErrConflict)
	}
	if s.loginTakenLocked(e.Login, "") {
		return fmt.Errorf("failed to insert employee: employee_login_key: %w", domain.ErrConflict)
	}
	s.rows[e.ID] = *e
	return nil
}

func (s *Store) Update(_ context.Context, e *domain.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[e.ID]; !ok {
		return fmt.Errorf("failed to update employee %s: %w", e.ID, sql.ErrNoRows)
	}
	if s.loginTakenLocked(e.Login, e.ID) {
		return fmt.Errorf("failed to update employee: employee_login_key: %w", domain.ErrConflict)
	}
	s.rows[e.ID] = *e
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

func (s *Store) FindAll(_ context.Context) ([]domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Employee, 0, len(s.rows))
	for _, e := range s.rows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) Query(ctx context.Context, q domain.EmployeeQuery) ([]domain.Employee, error) {
	all, _ := s.FindAll(ctx)

	matched := make([]domain.Employee, 0, len(all))
	for _, e := range all {
		if q.Matches(e) {
			matched = append(matched, e)
		}
	}

	desc := q.Page.Direction == domain.SortDesc
	sort.SliceStable(matched, func(i, j int) bool {
		c := compare(matched[i], matched[j], q.Page.SortField)
		if c == 0 {
			return matched[i].ID < matched[j].ID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})

	from, to := q.Page.Window(len(matched))
	return matched[from:to], nil
}

func (s *Store) loginTakenLocked(login, exceptID string) bool {
	for id, e := range s.rows {
		if e.Login == login && id != exceptID {
			return true
		}
	}
	return false
}

func compare(a, b domain.Employee, field string) int {
	switch field {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "login":
		return strings.Compare(a.Login, b.Login)
	case "salary":
		return a.Salary.Cmp(b.Salary)
	default:
		return strings.Compare(a.ID, b.ID)
	}
}
