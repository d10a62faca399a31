package export

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"reportforge/internal/domain"
	"reportforge/internal/port"
)

// Exporter assembles the export table from batch results and writes it in
// the configured spreadsheet formats.
type Exporter struct {
	outputDir string
	basename  string
	format    string
	statics   Statics
	now       func() time.Time
}

var _ port.RecordWriter = (*Exporter)(nil)

// NewExporter creates an Exporter. Format is "xlsx", "csv" or "both".
func NewExporter(outputDir, basename, format string, statics Statics) *Exporter {
	return &Exporter{
		outputDir: outputDir,
		basename:  basename,
		format:    format,
		statics:   statics,
		now:       time.Now,
	}
}

// WriteResults builds the table once and writes every configured format
// from it, so xlsx and csv outputs carry identical rows.
func (e *Exporter) WriteResults(results []domain.FileResult) error {
	table := BuildTable(results, e.statics, e.now())

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", e.outputDir, err)
	}

	if e.format == "xlsx" || e.format == "both" {
		path := filepath.Join(e.outputDir, e.basename+".xlsx")
		if err := NewExcelWriter(table).SaveAs(path); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Printf("export.Exporter: wrote %s", path)
	}

	if e.format == "csv" || e.format == "both" {
		path := filepath.Join(e.outputDir, e.basename+".csv")
		if err := writeCSVFile(table, path); err != nil {
			return err
		}
		log.Printf("export.Exporter: wrote %s", path)
	}
	return nil
}

func writeCSVFile(table *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := NewCSVWriter(f)
	if err := w.WriteTable(table); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
