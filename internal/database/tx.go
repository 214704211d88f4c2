package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/hrrecords/internal/domain"
	"github.com/locvowork/hrrecords/internal/logger"
	"github.com/locvowork/hrrecords/internal/repository"
)

// TxManager opens one *sql.Tx per call and binds a repository to it.
type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repo domain.EmployeeRepository) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(ctx, repository.NewEmployeeRepository(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorLog(ctx, rbErr, "Rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
