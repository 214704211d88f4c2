// Package export renders employee lists as xlsx workbooks. Sheet name,
// column order, headers and widths come from a YAML layout.
package export

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"

	"github.com/locvowork/hrrecords/internal/domain"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

//go:embed default_layout.yaml
var defaultLayout []byte

// Layout is the YAML structure of an export.
type Layout struct {
	Sheet        string         `yaml:"sheet"`
	HeaderStyle  *StyleTemplate `yaml:"header_style"`
	FreezeHeader bool           `yaml:"freeze_header"`
	Columns      []ColumnConfig `yaml:"columns"`
}

// ColumnConfig defines one column. FieldName is the JSON name of an employee field.
type ColumnConfig struct {
	FieldName    string  `yaml:"field_name"`
	Header       string  `yaml:"header"`
	Width        float64 `yaml:"width"`
	NumberFormat string  `yaml:"number_format"`
}

type StyleTemplate struct {
	Font *FontTemplate `yaml:"font"`
	Fill *FillTemplate `yaml:"fill"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"` // Hex color
}

type FillTemplate struct {
	Color string `yaml:"color"` // Hex color
}

var fields = map[string]func(e domain.Employee) interface{}{
	"id":    func(e domain.Employee) interface{} { return e.ID },
	"login": func(e domain.Employee) interface{} { return e.Login },
	"name":  func(e domain.Employee) interface{} { return e.Name },
	"salary": func(e domain.Employee) interface{} {
		f, _ := e.Salary.Float64()
		return f
	},
	"startDate": func(e domain.Employee) interface{} { return e.StartDate.String() },
}

type Exporter struct {
	layout Layout
}

// NewExporter loads the layout at path, or the built-in layout when path is empty.
func NewExporter(path string) (*Exporter, error) {
	data := defaultLayout
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read export layout: %w", err)
		}
	}
	return NewExporterFromYAML(data)
}

func NewExporterFromYAML(data []byte) (*Exporter, error) {
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("decode export layout: %w", err)
	}
	if layout.Sheet == "" {
		layout.Sheet = "Employees"
	}
	if len(layout.Columns) == 0 {
		return nil, fmt.Errorf("export layout has no columns")
	}
	for _, col := range layout.Columns {
		if _, ok := fields[col.FieldName]; !ok {
			return nil, fmt.Errorf("export layout: unknown field %q", col.FieldName)
		}
	}
	return &Exporter{layout: layout}, nil
}

// Write streams one sheet with a header row and one row per employee to w.
func (x *Exporter) Write(w io.Writer, employees []domain.Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := x.layout.Sheet
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := createStyle(f, x.layout.HeaderStyle)
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	colStyles, err := x.columnStyles(f)
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	for i, col := range x.layout.Columns {
		if col.Width > 0 {
			if err := sw.SetColWidth(i+1, i+1, col.Width); err != nil {
				return fmt.Errorf("set column width: %w", err)
			}
		}
	}
	if x.layout.FreezeHeader {
		if err := sw.SetPanes(&excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("freeze header: %w", err)
		}
	}

	header := make([]interface{}, len(x.layout.Columns))
	for i, col := range x.layout.Columns {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: col.Header}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	for r, e := range employees {
		row := make([]interface{}, len(x.layout.Columns))
		for i, col := range x.layout.Columns {
			row[i] = excelize.Cell{StyleID: colStyles[i], Value: fields[col.FieldName](e)}
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("error writing row %d: %w", r+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush stream: %w", err)
	}
	_, err = f.WriteTo(w)
	return err
}

func (x *Exporter) columnStyles(f *excelize.File) ([]int, error) {
	styles := make([]int, len(x.layout.Columns))
	for i, col := range x.layout.Columns {
		if col.NumberFormat == "" {
			continue
		}
		format := col.NumberFormat
		id, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
		if err != nil {
			return nil, fmt.Errorf("create style for %s: %w", col.FieldName, err)
		}
		styles[i] = id
	}
	return styles, nil
}

func createStyle(f *excelize.File, tmpl *StyleTemplate) (int, error) {
	if tmpl == nil {
		return 0, nil
	}
	style := &excelize.Style{}
	if tmpl.Font != nil {
		style.Font = &excelize.Font{
			Bold:  tmpl.Font.Bold,
			Color: strings.TrimPrefix(tmpl.Font.Color, "#"),
		}
	}
	if tmpl.Fill != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.Fill.Color, "#")},
			Pattern: 1,
		}
	}
	return f.NewStyle(style)
}
