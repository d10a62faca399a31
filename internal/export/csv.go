package export

import (
	"encoding/csv"
	"io"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes an assembled table as BOM-prefixed CSV.
type CSVWriter struct {
	csv *csv.Writer
	out io.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w), out: w}
}

// WriteTable writes the BOM, the header row and every data row.
func (w *CSVWriter) WriteTable(table *Table) error {
	if _, err := w.out.Write(BOM); err != nil {
		return err
	}
	if err := w.csv.Write(table.Header); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}
