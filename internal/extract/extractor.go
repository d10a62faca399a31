package extract

import (
	"log"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"reportforge/internal/docmodel"
	"reportforge/internal/domain"
)

// Extractor runs the field heuristics over loaded documents.
type Extractor struct {
	titles *TitleResolver
}

func NewExtractor() *Extractor {
	return &Extractor{titles: NewTitleResolver()}
}

// baseName strips directory and extension from a document path.
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// runField executes one field extractor with panic isolation. A panicking
// field degrades to its fallback value; the rest of the record survives.
func runField(name, path string, dst *string, fallback string, fn func() string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("extract.Extractor: %s failed for %s: %v", name, path, r)
			*dst = fallback
		}
	}()
	*dst = fn()
}

// ExtractAll loads the document once and runs every field extractor against
// the shared model. Only a load failure returns an error.
func (e *Extractor) ExtractAll(path string) (domain.ExtractionRecord, error) {
	var rec domain.ExtractionRecord
	doc, err := docmodel.Load(path)
	if err != nil {
		return rec, err
	}
	filename := baseName(path)

	runField("title", path, &rec.Title, domain.TitleNotAvailable, func() string {
		return e.titles.Resolve(doc, filename)
	})
	runField("description", path, &rec.Description, "", func() string {
		return ExtractDescription(doc)
	})
	runField("toc", path, &rec.TOC, "", func() string {
		return ExtractTOC(doc)
	})
	runField("methodology", path, &rec.Methodology, "", func() string {
		return ExtractMethodology(doc)
	})
	runField("seo_title", path, &rec.SEOTitle, "", func() string {
		return ExtractSEOTitle(doc, filename)
	})
	runField("breadcrumb_text", path, &rec.BreadcrumbText, "", func() string {
		return ExtractBreadcrumbText(doc, filename)
	})
	runField("skucode", path, &rec.SKUCode, "", func() string {
		return SKUCode(filename)
	})
	runField("urlrp", path, &rec.URLRP, "", func() string {
		return SKUURL(filename)
	})
	runField("breadcrumb_schema", path, &rec.BreadcrumbSchema, "", func() string {
		return ExtractBreadcrumbSchema(doc, filename)
	})
	runField("meta", path, &rec.Meta, "", func() string {
		return ExtractMetaDescription(doc)
	})
	runField("schema2", path, &rec.Schema2, "", func() string {
		return ExtractFAQSchema(doc)
	})
	runField("report", path, &rec.Report, "", func() string {
		return ExtractReportCoverage(doc)
	})
	return rec, nil
}

// ExtractMetaDescription returns the first non-empty paragraph after any
// paragraph mentioning "introduction".
func ExtractMetaDescription(doc *docmodel.Document) string {
	capture := false
	for _, p := range doc.Paragraphs {
		text := strings.TrimSpace(p.Text())
		if !capture {
			if strings.Contains(strings.ToLower(text), "introduction") {
				capture = true
			}
			continue
		}
		if text != "" {
			return text
		}
	}
	return ""
}

// ExtractTitle resolves the title for a single file. Load failures yield the
// sentinel rather than an error.
func (e *Extractor) ExtractTitle(path string) string {
	doc, err := docmodel.Load(path)
	if err != nil {
		return domain.TitleNotAvailable
	}
	return e.titles.Resolve(doc, baseName(path))
}

// ExtractDescription renders the merged description and coverage table for a
// single file; empty on load failure.
func (e *Extractor) ExtractDescription(path string) string {
	doc, err := docmodel.Load(path)
	if err != nil {
		return ""
	}
	return MergeDescriptionAndCoverage(doc)
}

// MergeDescriptionAndCoverage joins the description body and the coverage
// table with a blank line, matching the published report layout.
func MergeDescriptionAndCoverage(doc *docmodel.Document) string {
	desc := ExtractDescription(doc)
	coverage := ExtractReportCoverage(doc)
	if desc == "" && coverage == "" {
		return ""
	}
	return desc + "\n\n" + coverage
}

// SplitCells slices text into spreadsheet-safe chunks of at most
// domain.ExcelCellLimit bytes without splitting a rune. Empty input yields a
// single empty cell.
func SplitCells(s string) []string {
	if s == "" {
		return []string{""}
	}
	var cells []string
	for len(s) > 0 {
		if len(s) <= domain.ExcelCellLimit {
			cells = append(cells, s)
			break
		}
		cut := domain.ExcelCellLimit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		cells = append(cells, s[:cut])
		s = s[cut:]
	}
	return cells
}
