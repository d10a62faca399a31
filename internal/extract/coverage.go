package extract

import (
	"strings"

	"reportforge/internal/docmodel"
)

// styledTable renders a document table with the inline palette used across
// report bodies: #4472c4 header, #d9e2f3 alternating rows, #8eaadb borders.
func styledTable(t *docmodel.Table) string {
	var parts []string
	parts = append(parts, `<table cellspacing=0 style="border-collapse:collapse; width:100%">`)
	parts = append(parts, "<tbody>")

	for rowIdx, row := range t.Rows {
		parts = append(parts, "<tr>")
		for cellIdx := range row {
			var cellParts []string
			for _, p := range row[cellIdx].Paragraphs {
				cellParts = append(cellParts, RunsToMarkup(p.Runs))
			}
			cellText := strings.TrimSpace(strings.Join(cellParts, " "))

			header := rowIdx == 0
			alternating := rowIdx%2 == 1
			lastCell := cellIdx == len(row)-1

			var style []string
			switch {
			case header:
				style = append(style, "background-color:#4472c4")
			case alternating:
				style = append(style, "background-color:#d9e2f3")
			default:
				style = append(style, "background-color:#ffffff")
			}
			borderColor := "#8eaadb"
			if header {
				borderColor = "#4472c4"
			}
			if rowIdx == 0 {
				style = append(style, "border-top:1px solid #4472c4")
			} else {
				style = append(style, "border-top:none")
			}
			style = append(style, "border-bottom:1px solid "+borderColor)
			style = append(style, "border-left:1px solid "+borderColor)
			if lastCell {
				style = append(style, "border-right:1px solid "+borderColor)
			} else {
				style = append(style, "border-right:none")
			}
			style = append(style, "vertical-align:top")
			if cellIdx == 0 {
				style = append(style, "width:195px")
			} else {
				style = append(style, "width:370px")
			}

			parts = append(parts, `<td style="`+strings.Join(style, "; ")+`"><p><strong>`+cellText+"</strong></p></td>")
		}
		parts = append(parts, "</tr>")
	}

	parts = append(parts, "</tbody>")
	parts = append(parts, "</table>")
	return strings.Join(parts, "\n")
}

// coverageHeader reports whether a table's first row looks like the report
// coverage attribute table.
func coverageHeader(firstRow string) bool {
	return strings.Contains(firstRow, "report attribute") ||
		strings.Contains(firstRow, "report coverage table") ||
		strings.Contains(firstRow, "forecast period") ||
		strings.Contains(firstRow, "market size") ||
		strings.Contains(firstRow, "revenue forecast") ||
		(strings.Contains(firstRow, "forecast") && strings.Contains(firstRow, "period")) ||
		(strings.Contains(firstRow, "market") && strings.Contains(firstRow, "size"))
}

// ExtractReportCoverage finds the report coverage table and renders it under
// its fixed "7.1." heading with per-cell inline styling. Empty string when
// the document has no such table.
func ExtractReportCoverage(doc *docmodel.Document) string {
	for _, t := range doc.Tables {
		if len(t.Rows) == 0 {
			continue
		}
		var headerCells []string
		for _, c := range t.Rows[0] {
			headerCells = append(headerCells, strings.ToLower(strings.TrimSpace(c.Text())))
		}
		if !coverageHeader(strings.Join(headerCells, " ")) {
			continue
		}

		parts := []string{
			"<h2><strong>7.1. Report Coverage Table</strong></h2>",
			"",
			"<table cellspacing=0 style='border-collapse:collapse; width:100%'>",
			"        <tbody>",
		}
		for rowIdx, row := range t.Rows {
			parts = append(parts, "            <tr>")
			for cellIdx := range row {
				text := RemoveEmojis(strings.TrimSpace(row[cellIdx].Text()))
				style := coverageCellStyle(rowIdx, cellIdx)
				parts = append(parts,
					"                <td style='"+style+"'>",
					"                <p><strong>"+text+"</strong></p>",
					"                </td>")
			}
			parts = append(parts, "            </tr>")
		}
		parts = append(parts, "        </tbody>", "</table>")
		return strings.Join(parts, "\n")
	}
	return ""
}

func coverageCellStyle(rowIdx, cellIdx int) string {
	if rowIdx == 0 {
		if cellIdx == 0 {
			return "background-color:#4472c4; border-bottom:1px solid #4472c4; border-left:1px solid #4472c4; border-right:none; border-top:1px solid #4472c4; vertical-align:top; width:195px"
		}
		return "background-color:#4472c4; border-bottom:1px solid #4472c4; border-left:none; border-right:1px solid #4472c4; border-top:1px solid #4472c4; vertical-align:top; width:370px"
	}
	bg := ""
	if rowIdx%2 == 1 {
		bg = "background-color:#d9e2f3; "
	}
	if cellIdx == 0 {
		return bg + "border-bottom:1px solid #8eaadb; border-left:1px solid #8eaadb; border-right:1px solid #8eaadb; border-top:none; vertical-align:top; width:195px"
	}
	return bg + "border-bottom:1px solid #8eaadb; border-left:none; border-right:1px solid #8eaadb; border-top:none; vertical-align:top; width:370px"
}
