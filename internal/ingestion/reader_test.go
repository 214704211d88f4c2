package ingestion

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/locvowork/hrrecords/internal/domain"
)

func cells(rows [][]*string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, c := range row {
			if c == nil {
				out[i][j] = "<nil>"
				continue
			}
			out[i][j] = *c
		}
	}
	return out
}

func TestCSVReader(t *testing.T) {
	testCases := map[string]struct {
		input   string
		want    [][]string
		wantErr bool
	}{
		"header only": {
			input: "id,login,name,salary,startDate\n",
			want:  [][]string{},
		},
		"empty file": {
			input: "",
			want:  [][]string{},
		},
		"two rows": {
			input: "id,login,name,salary,startDate\n" +
				"e0001,hpotter,Harry Potter,1234.00,2001-11-16\n" +
				"e0002,ronwl,Ron Weasley,19234.50,16-Nov-01\n",
			want: [][]string{
				{"e0001", "hpotter", "Harry Potter", "1234.00", "2001-11-16"},
				{"e0002", "ronwl", "Ron Weasley", "19234.50", "16-Nov-01"},
			},
		},
		"byte order mark and blank cells": {
			input: "\uFEFFid,login,name,salary,startDate\n" +
				"e0001,  ,\"Potter, Harry\",,2001-11-16\n",
			want: [][]string{
				{"e0001", "<nil>", "Potter, Harry", "<nil>", "2001-11-16"},
			},
		},
		"too few columns": {
			input:   "id,login,name,salary,startDate\ne0001,hpotter,Harry Potter,1234.00\n",
			wantErr: true,
		},
		"too many columns": {
			input:   "id,login,name,salary,startDate\ne0001,hpotter,Harry,1234.00,2001-11-16,x\n",
			wantErr: true,
		},
		"broken quoting": {
			input:   "id,login,name,salary,startDate\ne0001,hpotter,\"Harry,1234.00,2001-11-16\n",
			wantErr: true,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			rows, err := NewCSVReader(strings.NewReader(tc.input)).ReadRows(context.Background())
			if tc.wantErr {
				assert.True(t, errors.Is(err, domain.ErrUnreadableFile), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, cells(rows))
		})
	}
}

func TestXLSXReader(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"id", "login", "name", "salary", "startDate"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"e0001", "hpotter", "Harry Potter", "1234.00", "2001-11-16"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"e0002", "ronwl", "Ron Weasley"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ReaderFor("employees.XLSX", bytes.NewReader(buf.Bytes())).ReadRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"e0001", "hpotter", "Harry Potter", "1234.00", "2001-11-16"},
		{"e0002", "ronwl", "Ron Weasley", "<nil>", "<nil>"},
	}, cells(rows))
}

func TestXLSXReader_NotAWorkbook(t *testing.T) {
	_, err := NewXLSXReader(strings.NewReader("id,login\n")).ReadRows(context.Background())
	assert.True(t, errors.Is(err, domain.ErrUnreadableFile))
}

func TestReaderFor(t *testing.T) {
	assert.IsType(t, &CSVReader{}, ReaderFor("employees.csv", strings.NewReader("")))
	assert.IsType(t, &CSVReader{}, ReaderFor("upload", strings.NewReader("")))
	assert.IsType(t, &XLSXReader{}, ReaderFor("employees.xlsx", strings.NewReader("")))
}
