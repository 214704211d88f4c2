package ingestion

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/locvowork/hrrecords/internal/domain"
)

// RowParser turns a raw row into a typed candidate. It checks formats only;
// required fields are the validator's job.
type RowParser struct{}

func NewRowParser() *RowParser {
	return &RowParser{}
}

func (p *RowParser) Parse(row []*string) (*domain.CandidateRecord, error) {
	if len(row) != ColumnCount {
		return nil, domain.UnreadableFilef("Row has %d columns, expected %d", len(row), ColumnCount)
	}

	c := &domain.CandidateRecord{
		ID:    row[0],
		Login: row[1],
		Name:  row[2],
	}

	if row[3] != nil {
		salary, err := decimal.NewFromString(strings.TrimSpace(*row[3]))
		if err != nil {
			return nil, domain.UnreadableFilef("Unable to parse number %s", *row[3])
		}
		c.Salary = &salary
	}

	if row[4] != nil {
		date, err := domain.ParseDate(*row[4])
		if err != nil {
			return nil, err
		}
		c.StartDate = &date
	}

	return c, nil
}
