package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"reportforge/internal/domain"
	"reportforge/internal/port"
)

func TestExporterWritesBothFormats(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, "Word_Files", "both", testStatics)
	e.now = func() time.Time { return testNow }

	var writer port.RecordWriter = e
	require.NoError(t, writer.WriteResults([]domain.FileResult{sampleResult()}))

	f, err := excelize.OpenFile(filepath.Join(dir, "Word_Files.xlsx"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	g2, err := f.GetCellValue(sheetName, "G2")
	require.NoError(t, err)
	assert.Equal(t, "AUG-2026", g2)

	raw, err := os.ReadFile(filepath.Join(dir, "Word_Files.csv"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, BOM))
	assert.Contains(t, string(raw), "AUG-2026")
}

func TestExporterCSVOnly(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, "Word_Files", "csv", testStatics)
	e.now = func() time.Time { return testNow }

	require.NoError(t, e.WriteResults([]domain.FileResult{sampleResult()}))

	_, err := os.Stat(filepath.Join(dir, "Word_Files.xlsx"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "Word_Files.csv"))
	assert.NoError(t, err)
}

func TestExporterCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	e := NewExporter(dir, "Word_Files", "csv", testStatics)
	e.now = func() time.Time { return testNow }

	require.NoError(t, e.WriteResults([]domain.FileResult{sampleResult()}))

	_, err := os.Stat(filepath.Join(dir, "Word_Files.csv"))
	assert.NoError(t, err)
}
