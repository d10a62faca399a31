package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportforge/internal/domain"
)

func TestSplitCells(t *testing.T) {
	assert.Equal(t, []string{""}, SplitCells(""))
	assert.Equal(t, []string{"short"}, SplitCells("short"))

	exact := strings.Repeat("a", domain.ExcelCellLimit)
	assert.Equal(t, []string{exact}, SplitCells(exact))

	over := exact + "b"
	cells := SplitCells(over)
	require.Len(t, cells, 2)
	assert.Equal(t, exact, cells[0])
	assert.Equal(t, "b", cells[1])
	assert.Equal(t, over, strings.Join(cells, ""))
}

func TestSplitCellsNeverSplitsRunes(t *testing.T) {
	// the two-byte rune straddles the limit and must move to the next cell
	s := strings.Repeat("a", domain.ExcelCellLimit-1) + "é" + strings.Repeat("b", 10)
	cells := SplitCells(s)
	require.Len(t, cells, 2)
	assert.Len(t, cells[0], domain.ExcelCellLimit-1)
	assert.True(t, utf8.ValidString(cells[0]))
	assert.True(t, strings.HasPrefix(cells[1], "é"))
	assert.Equal(t, s, strings.Join(cells, ""))
}

func TestExtractMetaDescription(t *testing.T) {
	doc := docOf(
		para("Section 1: Introduction and Strategic Context"),
		para(""),
		para("The canned meat market has entered a period of steady growth."),
	)
	assert.Equal(t, "The canned meat market has entered a period of steady growth.", ExtractMetaDescription(doc))
}

func TestExtractMetaDescriptionAbsent(t *testing.T) {
	doc := docOf(para("No opening section."))
	assert.Empty(t, ExtractMetaDescription(doc))
}

func TestMergeDescriptionAndCoverageEmpty(t *testing.T) {
	doc := docOf(para("nothing extractable"))
	assert.Empty(t, MergeDescriptionAndCoverage(doc))
}

func TestExtractAllLoadFailure(t *testing.T) {
	e := NewExtractor()
	_, err := e.ExtractAll("/nonexistent/report.docx")
	assert.ErrorIs(t, err, domain.ErrDocumentLoad)

	_, err = e.ExtractAll("/nonexistent/report.pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExtractTitleLoadFailureSentinel(t *testing.T) {
	e := NewExtractor()
	assert.Equal(t, domain.TitleNotAvailable, e.ExtractTitle("/nonexistent/report.docx"))
	assert.Empty(t, e.ExtractDescription("/nonexistent/report.docx"))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "Canned_Meat", baseName("/data/reports/Canned_Meat.docx"))
	assert.Equal(t, "Canned_Meat", baseName("Canned_Meat.docx"))
}

func TestRunFieldPanicFallback(t *testing.T) {
	var dst string
	runField("title", "x.docx", &dst, domain.TitleNotAvailable, func() string {
		panic("heuristic blew up")
	})
	assert.Equal(t, domain.TitleNotAvailable, dst)

	runField("meta", "x.docx", &dst, "", func() string { return "ok" })
	assert.Equal(t, "ok", dst)
}
