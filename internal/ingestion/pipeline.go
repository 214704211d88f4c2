// Package ingestion loads bulk employee files. A run either stores every
// row of the file or none of them.
package ingestion

import (
	"context"

	"github.com/google/uuid"

	"github.com/locvowork/hrrecords/internal/domain"
	"github.com/locvowork/hrrecords/internal/logger"
	"github.com/locvowork/hrrecords/internal/validation"
)

// Result summarises a committed run.
type Result struct {
	RunID     string
	Rows      int
	Persisted int
	Skipped   int
}

type Pipeline struct {
	tx        domain.TxManager
	parser    *RowParser
	validator *validation.Validator
}

func NewPipeline(tx domain.TxManager, validator *validation.Validator) *Pipeline {
	return &Pipeline{
		tx:        tx,
		parser:    NewRowParser(),
		validator: validator,
	}
}

// Run reads every row from src and stores the accepted ones in a single
// transaction. Parse, validation and duplicate failures abort before anything
// is written. Any failure of the transaction itself, commit included, is
// returned as UnableToPersist.
func (p *Pipeline) Run(ctx context.Context, src domain.RowReader) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	ctx = logger.WithLogger(ctx, map[string]interface{}{"ingestion_run": res.RunID})

	rows, err := src.ReadRows(ctx)
	if err != nil {
		logger.WarnLog(ctx, "Unable to read upload: %v", err)
		return res, err
	}
	res.Rows = len(rows)

	employees, err := p.prepare(ctx, rows)
	if err != nil {
		return res, err
	}
	res.Skipped = res.Rows - len(employees)

	err = p.tx.WithinTx(ctx, func(ctx context.Context, repo domain.EmployeeRepository) error {
		for i := range employees {
			if err := repo.Create(ctx, &employees[i]); err != nil {
				return domain.UnableToPersist(employees[i], err)
			}
		}
		return nil
	})
	if err != nil {
		logger.ErrorLog(ctx, err, "Ingestion of %d rows rolled back", res.Rows)
		if domain.KindOf(err) == "" {
			err = domain.UnableToPersistf(err, "Unable to save %d employees", len(employees))
		}
		return res, err
	}

	res.Persisted = len(employees)
	logger.InfoLog(ctx, "Ingested %d employees (%d rows, %d skipped)", res.Persisted, res.Rows, res.Skipped)
	return res, nil
}

// prepare runs every row through parse, validate and duplicate checks and
// returns the employees to store, in file order.
func (p *Pipeline) prepare(ctx context.Context, rows [][]*string) ([]domain.Employee, error) {
	tracker := NewDuplicateTracker()
	employees := make([]domain.Employee, 0, len(rows))

	for i, row := range rows {
		c, err := p.parser.Parse(row)
		if err != nil {
			logger.WarnLog(ctx, "Row %d rejected: %v", i+1, err)
			return nil, err
		}
		if err := p.validator.Validate(c); err != nil {
			logger.WarnLog(ctx, "Row %d rejected: %v", i+1, err)
			return nil, err
		}
		keep, err := tracker.Track(c)
		if err != nil {
			logger.WarnLog(ctx, "Row %d rejected: %v", i+1, err)
			return nil, err
		}
		if !keep {
			logger.DebugLog(ctx, "Row %d skipped as comment", i+1)
			continue
		}
		employees = append(employees, c.Employee())
	}
	return employees, nil
}
