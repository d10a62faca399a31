package domain

import "time"

// TitleNotAvailable is the sentinel title used when no heuristic matches.
const TitleNotAvailable = "Title Not Available"

// ExcelCellLimit is the hard character limit of a single spreadsheet cell.
// Content longer than this must be split across continuation columns.
const ExcelCellLimit = 32767

// ExtractionRecord holds every field pulled out of one market-report document.
// String fields are never absent: extractors that find nothing produce "" and
// the title falls back to TitleNotAvailable.
type ExtractionRecord struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	TOC              string `json:"toc"`
	Methodology      string `json:"methodology"`
	SEOTitle         string `json:"seo_title"`
	BreadcrumbText   string `json:"breadcrumb_text"`
	SKUCode          string `json:"skucode"`
	URLRP            string `json:"urlrp"`
	BreadcrumbSchema string `json:"breadcrumb_schema"`
	Meta             string `json:"meta"`
	Schema2          string `json:"schema2"`
	Report           string `json:"report"`
}

// FileResult pairs a processed source file with its record. Err is set when
// the document itself could not be loaded; the record is zero in that case.
type FileResult struct {
	Path   string
	Record ExtractionRecord
	Err    error
}

// BatchJob summarizes one batch run over a set of documents.
type BatchJob struct {
	ID        string
	Total     int
	Succeeded int
	Failed    int
	StartedAt time.Time
	Duration  time.Duration
}
