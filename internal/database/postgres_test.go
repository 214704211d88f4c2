package database

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(schema)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Salaries keep the precision they were submitted with.
func TestSchema_SalaryColumnIsUnscaled(t *testing.T) {
	salary := regexp.MustCompile(`(?m)^\s*salary\s+NUMERIC\s+NOT NULL`)
	assert.Regexp(t, salary, schema)
	assert.NotContains(t, schema, "NUMERIC(")
}
