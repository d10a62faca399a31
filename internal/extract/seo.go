package extract

import (
	"regexp"
	"strings"

	"reportforge/internal/docmodel"
)

var (
	andWordRE  = regexp.MustCompile(`(?i)\band\b`)
	globalRE   = regexp.MustCompile(`(?i)\bglobal\b`)
	dashAndRE  = regexp.MustCompile(`(?i)\s*-\s*and\b`)
	nonAlnumRE = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	usdRE      = regexp.MustCompile(`(?i)USD\s*`)
)

// normalizeAttrLabel folds the wording variants of the revenue forecast
// attribute into one comparable form.
func normalizeAttrLabel(s string) string {
	t := whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
	t = strings.ReplaceAll(t, "forecast by", "forecast in")
	t = strings.ReplaceAll(t, "forecasts in", "forecast in")
	t = strings.ReplaceAll(t, "forecast (", "forecast in ")
	return strings.ReplaceAll(t, ")", "")
}

// revenueForecast2030 scans the details table ("Report Attribute"/"Details"
// headers) for the 2030 revenue or market-size forecast value, with USD
// rewritten to "$".
func revenueForecast2030(doc *docmodel.Document) string {
	for _, t := range doc.Tables {
		if len(t.Rows) == 0 || len(t.Rows[0]) == 0 {
			continue
		}
		attrIdx, detailsIdx := -1, -1
		for i, c := range t.Rows[0] {
			switch strings.ToLower(strings.TrimSpace(c.Text())) {
			case "report attribute":
				attrIdx = i
			case "details":
				detailsIdx = i
			}
		}
		if attrIdx < 0 || detailsIdx < 0 {
			continue
		}
		for _, row := range t.Rows[1:] {
			if attrIdx >= len(row) || detailsIdx >= len(row) {
				continue
			}
			raw := strings.TrimSpace(row[attrIdx].Text())
			attr := normalizeAttrLabel(raw)
			rawLower := strings.ToLower(raw)
			match := (strings.Contains(attr, "revenue forecast") &&
				(strings.Contains(attr, " 2030") || strings.Contains(attr, "forecast in"))) ||
				(strings.Contains(rawLower, "revenue forecast") && strings.Contains(raw, "2030")) ||
				((strings.Contains(rawLower, "market size forecast") || strings.Contains(rawLower, "market size")) &&
					strings.Contains(raw, "2030"))
			if match {
				details := strings.TrimSpace(row[detailsIdx].Text())
				return strings.TrimSpace(usdRE.ReplaceAllLiteralString(details, "$"))
			}
		}
	}
	return ""
}

// ExtractSEOTitle builds "<name> Size (<forecast>) 2030" from the details
// table, falling back to the bare market name when no forecast row exists.
func ExtractSEOTitle(doc *docmodel.Document, filename string) string {
	name := strings.ReplaceAll(filename, "_", " ")
	if forecast := revenueForecast2030(doc); forecast != "" {
		return name + " Size (" + forecast + ") 2030"
	}
	return name
}

// ExtractBreadcrumbText builds "<name> Report 2030" when the forecast row
// exists, else the bare market name.
func ExtractBreadcrumbText(doc *docmodel.Document, filename string) string {
	name := strings.ReplaceAll(filename, "_", " ")
	if revenueForecast2030(doc) != "" {
		return name + " Report 2030"
	}
	return name
}

// SKUCode derives the catalog SKU slug from the filename: connective words
// and bracketed abbreviations drop out, everything non-alphanumeric folds to
// spaces, lower-cased.
func SKUCode(filename string) string {
	s := andWordRE.ReplaceAllString(filename, " ")
	s = globalRE.ReplaceAllString(s, "")
	s = pat("parenthetical").ReplaceAllString(s, " ")
	s = dashAndRE.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = nonAlnumRE.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// SKUURL is the URL-facing variant of SKUCode. The pipelines intentionally
// differ: published URLs were built this way and must keep resolving.
func SKUURL(filename string) string {
	s := strings.ReplaceAll(filename, "&", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = andWordRE.ReplaceAllString(s, " ")
	s = pat("parenthetical").ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}
