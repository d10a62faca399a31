package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// ExcelWriter renders an assembled table as a single-sheet workbook with a
// bold header row and bold Publish_Date cells.
type ExcelWriter struct {
	table *Table
}

func NewExcelWriter(table *Table) *ExcelWriter {
	return &ExcelWriter{table: table}
}

func (w *ExcelWriter) build() (*excelize.File, error) {
	f := excelize.NewFile()

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create bold style: %w", err)
	}

	for col, name := range w.table.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return nil, fmt.Errorf("write header %q: %w", name, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, boldStyle); err != nil {
			return nil, fmt.Errorf("style header %q: %w", name, err)
		}
	}

	publishCol := -1
	for col, name := range w.table.Header {
		if name == publishDateColumn {
			publishCol = col
			break
		}
	}

	for r, row := range w.table.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
			if c == publishCol {
				if err := f.SetCellStyle(sheetName, cell, cell, boldStyle); err != nil {
					return nil, fmt.Errorf("style cell %s: %w", cell, err)
				}
			}
		}
	}
	return f, nil
}

// SaveAs writes the workbook to path.
func (w *ExcelWriter) SaveAs(path string) error {
	f, err := w.build()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// Write streams the workbook to an io.Writer.
func (w *ExcelWriter) Write(out io.Writer) error {
	f, err := w.build()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
