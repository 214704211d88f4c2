package ingestion

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/locvowork/hrrecords/internal/domain"
)

// ColumnCount is the fixed width of an employee row: id, login, name, salary, startDate.
const ColumnCount = 5

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReaderFor picks a row reader by file extension. Anything that is not a
// spreadsheet is read as CSV.
func ReaderFor(filename string, r io.Reader) domain.RowReader {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return NewXLSXReader(r)
	default:
		return NewCSVReader(r)
	}
}

// CSVReader reads comma separated rows. The first record is the header.
type CSVReader struct {
	r io.Reader
}

func NewCSVReader(r io.Reader) *CSVReader {
	return &CSVReader{r: r}
}

func (c *CSVReader) ReadRows(ctx context.Context) ([][]*string, error) {
	data, err := io.ReadAll(c.r)
	if err != nil {
		return nil, domain.UnreadableFilef("Unable to read file: %v", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	var rows [][]*string
	header := true
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.UnreadableFilef("Unable to read file: %v", err)
		}
		if header {
			header = false
			continue
		}
		if len(record) != ColumnCount {
			line, _ := cr.FieldPos(0)
			return nil, domain.UnreadableFilef("Line %d has %d columns, expected %d", line, len(record), ColumnCount)
		}
		rows = append(rows, normalize(record))
	}
	return rows, nil
}

// XLSXReader reads the first sheet of a workbook. The first row is the header.
type XLSXReader struct {
	r io.Reader
}

func NewXLSXReader(r io.Reader) *XLSXReader {
	return &XLSXReader{r: r}
}

func (x *XLSXReader) ReadRows(ctx context.Context) ([][]*string, error) {
	f, err := excelize.OpenReader(x.r)
	if err != nil {
		return nil, domain.UnreadableFilef("Unable to read file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, domain.UnreadableFilef("Unable to read sheet %s: %v", sheets[0], err)
	}

	var rows [][]*string
	for i, record := range all {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i == 0 || isEmpty(record) {
			continue
		}
		// excelize drops trailing empty cells, so short rows are padded.
		if len(record) > ColumnCount {
			return nil, domain.UnreadableFilef("Line %d has %d columns, expected %d", i+1, len(record), ColumnCount)
		}
		for len(record) < ColumnCount {
			record = append(record, "")
		}
		rows = append(rows, normalize(record))
	}
	return rows, nil
}

func normalize(record []string) []*string {
	cells := make([]*string, len(record))
	for i, v := range record {
		if strings.TrimSpace(v) == "" {
			continue
		}
		v := v
		cells[i] = &v
	}
	return cells
}

func isEmpty(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
