// Package export assembles extraction records into the fixed-layout
// spreadsheet and CSV files the catalog import expects.
package export

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"reportforge/internal/domain"
	"reportforge/internal/extract"
)

// columns defines the fixed part of the output header (28 columns). Extra
// Description_Part columns are appended after Sub-Category when a merged
// description overflows the cell limit.
var columns = []string{
	"File",
	"Title",
	"Description_Part1",
	"TOC",
	"Segmentation",
	"Methodology",
	"Publish_Date",
	"Image",
	"Currency",
	"Single Price",
	"Corporate Price",
	"skucode",
	"Total Page",
	"RID",
	"Date",
	"Status",
	"Report_Docs",
	"urlNp",
	"Meta Description",
	"Meta_Key",
	"Base Year",
	"history",
	"Enterprise Price",
	"SEOTITLE",
	"BreadCrumb Text",
	"Schema 1",
	"Schema 2",
	"Sub-Category",
}

// publishDateColumn is the header whose cells are bolded in xlsx output.
const publishDateColumn = "Publish_Date"

// Statics carries the per-batch constant column values.
type Statics struct {
	Currency        string
	SinglePrice     int
	CorporatePrice  int
	EnterprisePrice int
	PageCountMin    int
	PageCountMax    int
	Status          string
	Segmentation    string
	MetaKey         string
	BaseYear        string
	History         string
}

// Table is a fully assembled output table: header plus one row per input
// file, all cells stringified.
type Table struct {
	Header []string
	Rows   [][]string
}

// BuildTable lays out batch results in the fixed column order. The merged
// description (body + coverage table) is split into cell-sized parts; part 1
// sits in its fixed column, any overflow parts extend the header.
func BuildTable(results []domain.FileResult, st Statics, now time.Time) *Table {
	maxParts := 1
	parts := make([][]string, len(results))
	for i, res := range results {
		merged := ""
		if res.Record.Description != "" || res.Record.Report != "" {
			merged = res.Record.Description + "\n\n" + res.Record.Report
		}
		parts[i] = extract.SplitCells(merged)
		if len(parts[i]) > maxParts {
			maxParts = len(parts[i])
		}
	}

	header := append([]string{}, columns...)
	for j := 2; j <= maxParts; j++ {
		header = append(header, fmt.Sprintf("Description_Part%d", j))
	}

	publishDate := strings.ToUpper(now.Format("Jan-2006"))
	rowDate := now.Format("02-01-2006")

	table := &Table{Header: header}
	for i, res := range results {
		rec := res.Record
		pageCount := st.PageCountMin
		if st.PageCountMax > st.PageCountMin {
			pageCount += rand.Intn(st.PageCountMax - st.PageCountMin + 1)
		}
		row := []string{
			res.Path,
			rec.Title,
			parts[i][0],
			rec.TOC,
			st.Segmentation,
			rec.Methodology,
			publishDate,
			"",
			st.Currency,
			fmt.Sprintf("%d", st.SinglePrice),
			fmt.Sprintf("%d", st.CorporatePrice),
			rec.SKUCode,
			fmt.Sprintf("%d", pageCount),
			"",
			rowDate,
			st.Status,
			"",
			rec.URLRP,
			rec.Meta,
			st.MetaKey,
			st.BaseYear,
			st.History,
			fmt.Sprintf("%d", st.EnterprisePrice),
			rec.SEOTitle,
			rec.BreadcrumbText,
			rec.BreadcrumbSchema,
			rec.Schema2,
			"",
		}
		for j := 1; j < maxParts; j++ {
			if j < len(parts[i]) {
				row = append(row, parts[i][j])
			} else {
				row = append(row, "")
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
