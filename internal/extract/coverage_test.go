package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractReportCoverage(t *testing.T) {
	doc := docOf(
		para("body text"),
		tableOf(
			[]string{"Report Attribute", "Details"},
			[]string{"Forecast Period", "2024-2030"},
			[]string{"Base Year", "2024"},
		),
	)
	got := ExtractReportCoverage(doc)
	require.NotEmpty(t, got)

	lines := strings.Split(got, "\n")
	assert.Equal(t, "<h2><strong>7.1. Report Coverage Table</strong></h2>", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "<table cellspacing=0 style='border-collapse:collapse; width:100%'>", lines[2])
	assert.Equal(t, "        <tbody>", lines[3])
	assert.Equal(t, "            <tr>", lines[4])

	assert.Contains(t, got, "background-color:#4472c4")
	assert.Contains(t, got, "background-color:#d9e2f3", "odd data rows alternate")
	assert.Contains(t, got, "<p><strong>Report Attribute</strong></p>")
	assert.Contains(t, got, "<p><strong>Forecast Period</strong></p>")
	assert.Contains(t, got, "width:195px")
	assert.Contains(t, got, "width:370px")

	assert.Equal(t, strings.Count(got, "<td"), strings.Count(got, "</td>"))
	assert.Equal(t, strings.Count(got, "<tr>"), strings.Count(got, "</tr>"))
}

func TestExtractReportCoverageSkipsOtherTables(t *testing.T) {
	doc := docOf(tableOf(
		[]string{"Company", "Headquarters"},
		[]string{"Acme Foods", "Chicago"},
	))
	assert.Empty(t, ExtractReportCoverage(doc))
}

func TestCoverageCellStyle(t *testing.T) {
	assert.Contains(t, coverageCellStyle(0, 0), "background-color:#4472c4")
	assert.Contains(t, coverageCellStyle(0, 0), "width:195px")
	assert.Contains(t, coverageCellStyle(0, 1), "width:370px")

	odd := coverageCellStyle(1, 0)
	assert.Contains(t, odd, "background-color:#d9e2f3")
	assert.Contains(t, odd, "border-top:none")

	even := coverageCellStyle(2, 0)
	assert.NotContains(t, even, "background-color")
	assert.Contains(t, even, "border-bottom:1px solid #8eaadb")
}

func TestStyledTable(t *testing.T) {
	got := styledTable(tableOf(
		[]string{"Segment", "Share"},
		[]string{"Canned Beef", "38%"},
	))
	assert.True(t, strings.HasPrefix(got, `<table cellspacing=0 style="border-collapse:collapse; width:100%">`))
	assert.Contains(t, got, "<p><strong>Canned Beef</strong></p>")
	assert.Contains(t, got, "background-color:#4472c4")
	assert.Contains(t, got, "background-color:#d9e2f3")
	assert.True(t, strings.HasSuffix(got, "</table>"))
}
