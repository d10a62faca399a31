package export

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportforge/internal/domain"
)

var testStatics = Statics{
	Currency:        "USD",
	SinglePrice:     4485,
	CorporatePrice:  6449,
	EnterprisePrice: 8339,
	PageCountMin:    150,
	PageCountMax:    150,
	Status:          "IN",
	Segmentation:    "<p>.</p>",
	MetaKey:         ".",
	BaseYear:        "2024",
	History:         "2019-2023",
}

var testNow = time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)

func sampleResult() domain.FileResult {
	return domain.FileResult{
		Path: "/in/Canned_Meat.docx",
		Record: domain.ExtractionRecord{
			Title:            "Canned Meat Market By Product Type, Forecast, 2024-2030",
			Description:      "<h2><strong>Introduction</strong></h2>",
			TOC:              "<strong>Executive Summary</strong>",
			Methodology:      "<p><strong>Q1: q</strong><br>A1: a</p>",
			SEOTitle:         "Canned Meat Size ($4.5 Billion) 2030",
			BreadcrumbText:   "Canned Meat Report 2030",
			SKUCode:          "canned meat",
			URLRP:            "canned meat",
			BreadcrumbSchema: `{"@type": "BreadcrumbList"}`,
			Meta:             "The canned meat market overview.",
			Schema2:          `{"@type": "FAQPage"}`,
			Report:           "<h2><strong>7.1. Report Coverage Table</strong></h2>",
		},
	}
}

func TestBuildTableLayout(t *testing.T) {
	table := BuildTable([]domain.FileResult{sampleResult()}, testStatics, testNow)

	require.Len(t, table.Header, 28)
	assert.Equal(t, "File", table.Header[0])
	assert.Equal(t, "Description_Part1", table.Header[2])
	assert.Equal(t, "Publish_Date", table.Header[6])
	assert.Equal(t, "Sub-Category", table.Header[27])

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	require.Len(t, row, 28)

	assert.Equal(t, "/in/Canned_Meat.docx", row[0])
	assert.Equal(t, "Canned Meat Market By Product Type, Forecast, 2024-2030", row[1])
	assert.Equal(t, "<h2><strong>Introduction</strong></h2>\n\n<h2><strong>7.1. Report Coverage Table</strong></h2>", row[2],
		"description and coverage merge into part 1")
	assert.Equal(t, "AUG-2026", row[6])
	assert.Equal(t, "", row[7], "Image stays empty")
	assert.Equal(t, "USD", row[8])
	assert.Equal(t, "4485", row[9])
	assert.Equal(t, "6449", row[10])
	assert.Equal(t, "canned meat", row[11])
	assert.Equal(t, "150", row[12], "page count is deterministic when min equals max")
	assert.Equal(t, "29-08-2026", row[14])
	assert.Equal(t, "IN", row[15])
	assert.Equal(t, "8339", row[22])
	assert.Equal(t, "<p>.</p>", row[4])
	assert.Equal(t, ".", row[19])
	assert.Equal(t, "2024", row[20])
	assert.Equal(t, "2019-2023", row[21])
}

func TestBuildTableDescriptionOverflow(t *testing.T) {
	res := sampleResult()
	res.Record.Description = strings.Repeat("x", domain.ExcelCellLimit+100)
	res.Record.Report = ""

	short := sampleResult()

	table := BuildTable([]domain.FileResult{res, short}, testStatics, testNow)

	require.Len(t, table.Header, 29)
	assert.Equal(t, "Description_Part2", table.Header[28])

	require.Len(t, table.Rows[0], 29)
	assert.Len(t, table.Rows[0][2], domain.ExcelCellLimit)
	assert.NotEmpty(t, table.Rows[0][28])

	assert.Equal(t, "", table.Rows[1][28], "short rows pad the overflow column")
}

func TestBuildTableFailedFileKeepsRow(t *testing.T) {
	failed := domain.FileResult{Path: "/in/broken.docx", Err: domain.ErrDocumentLoad}
	table := BuildTable([]domain.FileResult{failed}, testStatics, testNow)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "/in/broken.docx", table.Rows[0][0])
	assert.Equal(t, "", table.Rows[0][1])
}

func TestBuildTablePageCountRange(t *testing.T) {
	st := testStatics
	st.PageCountMin = 150
	st.PageCountMax = 200
	table := BuildTable([]domain.FileResult{sampleResult()}, st, testNow)

	n, err := strconv.Atoi(table.Rows[0][12])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 150)
	assert.LessOrEqual(t, n, 200)
}
