package extract

import (
	"log"
	"regexp"
	"strings"

	"reportforge/internal/docmodel"
	"reportforge/internal/domain"
)

// headerLineRE matches a standalone report-title label line, e.g.
// "A.1. Long-Form Report Title:" or "Full Title (Structured)".
var headerLineRE = regexp.MustCompile(`(?i)^\s*` +
	`(?:[A-Za-z]\.)?` +
	`(?:\d+(?:\.\d+)*)?` +
	`[\.\)]?\s*` +
	`(?:long[-–\s]*form\s*report\s*title|report\s*title(?:\s*\(long[-–\s]*form\))?(?:\s*format)?|full\s*title(?:\s*\(structured\))?\s*:?|full\s*report\s*title|title\s*\(long[-–\s]*form\))` +
	`[\s:–-]*$`)

// inlineLabelRE matches a label with the title on the same line and captures
// the candidate.
var inlineLabelRE = regexp.MustCompile(`(?i)^\s*` +
	`(?:[A-Za-z]\.)?` +
	`(?:\d+(?:\.\d+)*)?` +
	`[\.\)]?\s*` +
	`(?:report\s*title(?:\s*\(long[-–\s]*form\))?|full\s*title|full\s*report\s*title|title\s*\(long[-–\s]*form\))` +
	`\s*[:–-]?\s*` +
	`(.+?)\s*$`)

// labelRemainderRE rejects right-hand fragments that are still label text,
// e.g. the "Form)" produced by splitting "Long-Form" on its hyphen.
var labelRemainderRE = regexp.MustCompile(`(?i)^\s*(?:[A-Za-z]\.)?(?:\d+(?:\.\d+)*)?[\.\)]?\s*(?:report\s*title|full\s*title|full\s*report\s*title|title\s*\(long[-\s]*form\))[\s:–-]*$`)

var (
	inlineSplitRE           = regexp.MustCompile(`[:\-–]`)
	structuredPrefixRE      = regexp.MustCompile(`(?i)^\s*\(structured\)\s*:\s*`)
	dupMarketRE             = regexp.MustCompile(`(?i)\b((?:global\s+)?)(.+?\bmarket)\s+(.+?\bmarket)(\s+by\s+)`)
	marketColonSegRE        = regexp.MustCompile(`(?i)market\s*:\s*market\s+segmentation`)
	narrativeParenRE        = regexp.MustCompile(`(?i)\s*\([^)]*(?:this is the|dimension of segmentation)[^)]*\)`)
	in2024ParenRE           = regexp.MustCompile(`(?i)\s*\(in 2024[^)]*\)`)
	multiSpaceRE            = regexp.MustCompile(`\s{2,}`)
	detailedTitleRE         = regexp.MustCompile(`(?is).*?market\s+by\s+treatment\s+type.*?segment\s+revenue\s+estimation.*?forecast.*?20\d{2}.*?20\d{2}`)
	detailedTitleStrictRE   = regexp.MustCompile(`(?is).*?market\s+by\s+treatment\s+type.*?by\s+diagnostic\s+approach.*?by\s+end[-\s]*user.*?by\s+region.*?forecast.*?20\d{2}.*?20\d{2}`)
	marketBeforeTreatmentRE = regexp.MustCompile(`(?i)([A-Za-z][^.]*?market)\s+by\s+treatment\s+type`)
	globalMarketScanRE      = regexp.MustCompile(`(?i)(?:^the\s+)?global\s+[^.]*?\s+market`)
	forecastCommaRE         = regexp.MustCompile(`(?i)forecast\s*[,:]\s*20\d{2}[\s\-–]20\d{2}`)
	forecastLabelRE         = regexp.MustCompile(`(?i)forecast\s*[,:]`)
	titleToForecastRE       = regexp.MustCompile(`(?is)^(.*?market.*?forecast.*?20\d{2}.*?20\d{2})`)
	upToMarketRE            = regexp.MustCompile(`(?i)^([^.]*?market)`)
	flexibleTitleRE         = regexp.MustCompile(`(?i)^((?:The\s+)?(?:Global\s+)?[^.]*?market(?:\s+by\s+[^,;.]*?)*?)`)
)

func hasYearRange(s string) bool {
	return pat("yearRange").MatchString(s)
}

func byClauseCount(s string) int {
	return len(pat("byClause").FindAllString(s, -1))
}

// validLongFormBody accepts candidate bodies that read like a complete
// long-form title rather than body copy.
func validLongFormBody(s string) bool {
	low := strings.ToLower(s)
	hasSeg := strings.Contains(low, "segment revenue estimation") && strings.Contains(low, "forecast")
	yr := hasYearRange(s)
	if hasSeg && yr {
		return true
	}
	return byClauseCount(low) >= 2 && strings.Contains(low, "market") && yr
}

// inlineSplitTitle pulls the right-hand side of "Label: title" lines,
// rejecting leftover label fragments and short non-title text.
func inlineSplitTitle(text string) string {
	parts := inlineSplitRE.Split(text, 2)
	if len(parts) < 2 {
		return ""
	}
	right := strings.TrimSpace(parts[1])
	if right == "" || labelRemainderRE.MatchString(right) {
		return ""
	}
	low := strings.ToLower(right)
	if len(right) >= 25 && (strings.Contains(low, "market") || strings.Contains(low, " by ") || strings.Contains(low, "segment revenue")) {
		return right
	}
	return ""
}

// labeledInlineTitle extracts and validates titles from lines like
// "A.1. Report Title (Long-Form) Adventure Tourism Market By ... 2024–2030".
// Conservative on purpose: lines like "AC Power Source Market (Long-Form)"
// are labels, not full segmented titles.
func labeledInlineTitle(text string) string {
	text = Normalize(text)
	m := inlineLabelRE.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	candidate := Normalize(m[1])
	if candidate == "" {
		return ""
	}
	low := strings.ToLower(candidate)
	looksLongForm := strings.Contains(low, "market") &&
		(strings.Contains(low, "segment revenue estimation") ||
			(strings.Contains(low, "forecast") && hasYearRange(candidate)) ||
			(byClauseCount(low) >= 2 && hasYearRange(candidate)))
	if !looksLongForm {
		return ""
	}
	// Trim trailing text after the first year range (common in SEO blocks).
	if loc := pat("yearRange").FindStringIndex(candidate); loc != nil {
		candidate = strings.TrimSpace(candidate[:loc[1]])
	}
	return candidate
}

// isSectionHeadingTitle rejects section headings like
// "X Market: Market Segmentation and Forecast Scope".
func isSectionHeadingTitle(title string) bool {
	if len(title) < 10 {
		return false
	}
	low := strings.ToLower(title)
	if strings.Contains(low, "market segmentation") && strings.Contains(low, "forecast scope") {
		return true
	}
	return marketColonSegRE.MatchString(low)
}

func cleanFinalTitle(title string) string {
	if len(title) < 5 {
		return title
	}
	title = strings.TrimSpace(structuredPrefixRE.ReplaceAllString(title, ""))
	title = collapseDuplicateMarket(title)
	title = narrativeParenRE.ReplaceAllString(title, "")
	title = in2024ParenRE.ReplaceAllString(title, "")
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(title, " "))
}

// collapseDuplicateMarket repairs doubled market names such as
// "Global Pediatric Catheter Market Pediatric Catheter Market By".
func collapseDuplicateMarket(title string) string {
	m := dupMarketRE.FindStringSubmatchIndex(title)
	if m == nil {
		return title
	}
	global := title[m[2]:m[3]]
	first := title[m[4]:m[5]]
	second := title[m[6]:m[7]]
	by := title[m[8]:m[9]]
	if !strings.EqualFold(strings.TrimSpace(first), strings.TrimSpace(second)) {
		return title
	}
	return title[:m[0]] + global + first + by + title[m[1]:]
}

func normalizeFilename(filename string) string {
	s := strings.ToLower(filename)
	s = strings.ReplaceAll(s, "-", " ")
	return strings.ReplaceAll(s, "_", " ")
}

func filenameKeywords(filename string, stop map[string]bool) []string {
	var kws []string
	for _, w := range strings.Fields(normalizeFilename(filename)) {
		if !stop[w] {
			kws = append(kws, w)
		}
	}
	return kws
}

var ensureStopWords = map[string]bool{"market": true, "the": true, "and": true, "or": true}

var scanStopWords = map[string]bool{"market": true, "the": true, "and": true, "or": true, "global": true}

func countKeywords(kws []string, haystack string) int {
	n := 0
	for _, kw := range kws {
		if strings.Contains(haystack, kw) {
			n++
		}
	}
	return n
}

// ensureFilenameStartAndYear finalizes a candidate: prepends the filename
// when the title does not already carry its keywords, appends the default
// forecast span when no year range is present, and normalizes.
func ensureFilenameStartAndYear(title, filename string) string {
	titleLow := strings.ToLower(title)
	filenameLow := strings.ToLower(filename)
	titleNorm := strings.ReplaceAll(strings.ReplaceAll(titleLow, "-", " "), "_", " ")

	kws := filenameKeywords(filename, ensureStopWords)
	matching := countKeywords(kws, titleNorm)
	byCount := byClauseCount(titleLow)

	looksComplete := strings.Contains(titleLow, " by ") &&
		strings.Contains(titleLow, "market") &&
		(matching >= intMin(2, len(kws)) || byCount >= 2)

	if !looksComplete && matching < intMin(3, len(kws)) && !strings.HasPrefix(titleLow, filenameLow) {
		title = filename + " " + title
	}
	if !hasYearRange(title) {
		title = title + " 2024" + dash + "2030"
	}
	return cleanFinalTitle(Normalize(title))
}

func intMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// paragraphTexts returns the trimmed non-empty body paragraph texts.
func paragraphTexts(doc *docmodel.Document) []string {
	var out []string
	for _, p := range doc.Paragraphs {
		if t := strings.TrimSpace(p.Text()); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// titleStrategy is one heuristic in the resolver chain.
type titleStrategy interface {
	name() string
	resolve(doc *docmodel.Document, filename string) (string, bool)
}

// TitleResolver tries its strategies in priority order and returns the
// first hit, finalized. When nothing matches it returns the sentinel.
type TitleResolver struct {
	strategies []titleStrategy
}

func NewTitleResolver() *TitleResolver {
	return &TitleResolver{strategies: []titleStrategy{
		headerBlockStrategy{},
		inlineLabelStrategy{},
		captureAfterHeaderStrategy{},
		tableLabelStrategy{},
		filenameForecastStrategy{},
		segmentedTitleStrategy{},
		segmentAssemblyStrategy{},
		broadScanStrategy{},
		segmentHintStrategy{},
	}}
}

// Resolve never fails; the sentinel is the terminal fallback.
func (r *TitleResolver) Resolve(doc *docmodel.Document, filename string) string {
	for _, s := range r.strategies {
		if title, ok := s.resolve(doc, filename); ok {
			log.Printf("extract.TitleResolver: %s resolved title for %s", s.name(), filename)
			return title
		}
	}
	return domain.TitleNotAvailable
}

// headerBlockStrategy: a standalone label line with the title either after a
// manual break in the same paragraph or in the next block.
type headerBlockStrategy struct{}

func (headerBlockStrategy) name() string { return "header line + body" }

func (headerBlockStrategy) resolve(doc *docmodel.Document, filename string) (string, bool) {
	blocks := paragraphTexts(doc)
	for i, text := range blocks {
		clean := RemoveEmojis(text)
		if idx := strings.Index(clean, "\n"); idx >= 0 {
			first := strings.TrimSpace(clean[:idx])
			rest := strings.TrimSpace(clean[idx+1:])
			if headerLineRE.MatchString(first) && len(rest) >= 40 && validLongFormBody(rest) {
				return ensureFilenameStartAndYear(Normalize(rest), filename), true
			}
		}
		if !headerLineRE.MatchString(clean) {
			continue
		}
		if i+1 >= len(blocks) {
			break
		}
		next := RemoveEmojis(blocks[i+1])
		if len(next) < 40 {
			continue
		}
		if validLongFormBody(next) {
			return ensureFilenameStartAndYear(Normalize(next), filename), true
		}
	}
	return "", false
}

// inlineLabelStrategy: "Report Title (Long-Form) <title>" inside one
// paragraph, then inside table cells.
type inlineLabelStrategy struct{}

func (inlineLabelStrategy) name() string { return "inline label" }

func (inlineLabelStrategy) resolve(doc *docmodel.Document, filename string) (string, bool) {
	for _, text := range paragraphTexts(doc) {
		if t := labeledInlineTitle(RemoveEmojis(text)); t != "" {
			return ensureFilenameStartAndYear(t, filename), true
		}
	}
	for _, tbl := range doc.Tables {
		for _, row := range tbl.Rows {
			for i := range row {
				if t := labeledInlineTitle(RemoveEmojis(row[i].Text())); t != "" {
					return ensureFilenameStartAndYear(t, filename), true
				}
			}
		}
	}
	return "", false
}

// captureAfterHeaderStrategy: once a header line passes, the next non-empty
// paragraph is taken verbatim.
type captureAfterHeaderStrategy struct{}

func (captureAfterHeaderStrategy) name() string { return "capture after header" }

func (captureAfterHeaderStrategy) resolve(doc *docmodel.Document, filename string) (string, bool) {
	capture := false
	for _, text := range paragraphTexts(doc) {
		text = RemoveEmojis(text)
		if capture {
			return ensureFilenameStartAndYear(text, filename), true
		}
		if headerLineRE.MatchString(text) {
			if t := inlineSplitTitle(text); t != "" {
				return ensureFilenameStartAndYear(t, filename), true
			}
			capture = true
		}
	}
	return "", false
}

// tableLabelStrategy: a label cell with the title inline, to the right, or
// in the cell below.
type tableLabelStrategy struct{}

func (tableLabelStrategy) name() string { return "table label lookup" }

func (tableLabelStrategy) resolve(doc *docmodel.Document, filename string) (string, bool) {
	for _, tbl := range doc.Tables {
		for rIdx, row := range tbl.Rows {
			for cIdx := range row {
				cellText := strings.ToLower(strings.TrimSpace(row[cIdx].Text()))
				if cellText == "" {
					continue
				}
				if !strings.Contains(cellText, "report title") &&
					!strings.Contains(cellText, "full title") &&
					!strings.Contains(cellText, "full report title") {
					continue
				}
				if t := labeledInlineTitle(RemoveEmojis(row[cIdx].Text())); t != "" {
					return ensureFilenameStartAndYear(t, filename), true
				}
				if cIdx+1 < len(row) {
					if nxt := strings.TrimSpace(row[cIdx+1].Text()); nxt != "" {
						return ensureFilenameStartAndYear(nxt, filename), true
					}
				}
				if rIdx+1 < len(tbl.Rows) && cIdx < len(tbl.Rows[rIdx+1]) {
					if nxt := strings.TrimSpace(tbl.Rows[rIdx+1][cIdx].Text()); nxt != "" {
						return ensureFilenameStartAndYear(nxt, filename), true
					}
				}
			}
		}
	}
	return "", false
}

// filenameForecastStrategy: paragraphs that start with the filename and carry
// a forecast; the short form without "(e.g." wins.
type filenameForecastStrategy struct{}

func (filenameForecastStrategy) name() string { return "filename + forecast" }

func (filenameForecastStrategy) resolve(doc *docmodel.Document, filename string) (string, bool) {
	filenameLow := strings.ToLower(filename)
	var candidates []string
	for _, text := range paragraphTexts(doc) {
		low := strings.ToLower(text)
		if strings.HasPrefix(low, "full report title") || strings.HasPrefix(low, "full title") {
			if t := inlineSplitTitle(text); t != "" {
				return ensureFilenameStartAndYear(t, filename), true
			}
		}
		if strings.HasPrefix(low, filenameLow) && strings.Contains(low, "forecast") {
			if isSectionHeadingTitle(text) {
				continue
			}
			candidates = append(candidates, text)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	for _, c := range candidates {
		if !strings.Contains(c, "(e.g.") {
			return ensureFilenameStartAndYear(c, filename), true
		}
	}
	return ensureFilenameStartAndYear(candidates[0], filename), true
}

// segmentedTitleStrategy: the full segmented title already written out in a
// single paragraph or table cell.
type segmentedTitleStrategy struct{}

func (segmentedTitleStrategy) name() string { return "detailed segmented title" }

func (segmentedTitleStrategy) resolve(doc *docmodel.Document, filename string) (string, bool) {
	fnameNorm := normalizeFilename(filename)
	base := strings.ReplaceAll(fnameNorm, " market", "")
	var kws []string
	for _, w := range strings.Fields(base) {
		if len(w) > 2 {
			kws = append(kws, w)
		}
	}

	for _, p := range doc.Paragraphs {
		text := strings.TrimSpace(p.Text())
		if text == "" {
			continue
		}
		clean := strings.TrimSpace(whitespaceRun.ReplaceAllString(RemoveEmojis(text), " "))
		low := strings.ToLower(clean)
		if !strings.Contains(low, "by treatment type") ||
			!strings.Contains(low, "by diagnostic approach") ||
			!strings.Contains(low, "forecast") ||
			!pat("yearSpanLoose").MatchString(clean) {
			continue
		}
		matching := countKeywords(kws, low)
		if matching < intMin(2, len(kws)) && !detailedTitleStrictRE.MatchString(clean) {
			continue
		}
		ym := pat("yearSpanLoose").FindStringIndex(clean)
		if ym == nil {
			continue
		}
		full := clean[:ym[1]]
		if ms := marketBeforeTreatmentRE.FindStringSubmatchIndex(clean); ms != nil && ms[2] < ym[1] {
			full = clean[ms[2]:ym[1]]
		}
		full = strings.TrimSpace(pat("globalPrefix").ReplaceAllString(strings.TrimSpace(full), ""))
		return cleanFinalTitle(Normalize(full)), true
	}

	for _, tbl := range doc.Tables {
		for _, row := range tbl.Rows {
			for i := range row {
				cellText := strings.TrimSpace(row[i].Text())
				if cellText == "" {
					continue
				}
				clean := strings.TrimSpace(whitespaceRun.ReplaceAllString(RemoveEmojis(cellText), " "))
				full := detailedTitleRE.FindString(clean)
				if full == "" {
					continue
				}
				if ym := pat("yearSpanLoose").FindStringIndex(full); ym != nil {
					full = strings.TrimSpace(full[:ym[1]])
				}
				if strings.Contains(strings.ToLower(full), base) {
					full = pat("globalPrefix").ReplaceAllString(full, "")
				}
				return cleanFinalTitle(Normalize(full)), true
			}
		}
	}
	return "", false
}

// broadScanStrategy: generic title patterns over the first 50 paragraphs.
type broadScanStrategy struct{}

func (broadScanStrategy) name() string { return "broad scan" }

func (broadScanStrategy) resolve(doc *docmodel.Document, filename string) (string, bool) {
	kws := filenameKeywords(filename, scanStopWords)
	minNeeded := len(kws)
	if len(kws) > 2 {
		minNeeded = intMin(len(kws), 3)
		if minNeeded < 2 {
			minNeeded = 2
		}
	}

	count := 0
	for _, p := range doc.Paragraphs {
		if count >= 50 {
			break
		}
		text := strings.TrimSpace(p.Text())
		if text == "" {
			continue
		}
		count++

		clean := strings.TrimSpace(whitespaceRun.ReplaceAllString(RemoveEmojis(text), " "))
		low := strings.ToLower(clean)

		if strings.HasSuffix(clean, ":") && len(clean) > 100 {
			continue
		}
		hasMarketKw := false
		for _, kw := range kws {
			if len(kw) > 3 && strings.Contains(low, kw) {
				hasMarketKw = true
				break
			}
		}
		if len(clean) < 20 && !hasMarketKw {
			continue
		}

		textNorm := strings.ReplaceAll(strings.ReplaceAll(low, "-", " "), "_", " ")
		matching := countKeywords(kws, textNorm)

		// "Global X Market" at the start is usually the actual title.
		if m := globalMarketScanRE.FindString(clean); m != "" {
			if matching >= minNeeded && !isSectionHeadingTitle(m) {
				return ensureFilenameStartAndYear(strings.TrimSpace(m), filename), true
			}
		}

		// Full title with segmentation axes and a forecast span.
		if strings.Contains(low, "market") && pat("segmentAxis").MatchString(low) {
			if matching >= minNeeded && (strings.Contains(low, "forecast") || pat("yearAny").MatchString(clean)) {
				if ym := pat("yearSpanLoose").FindStringIndex(clean); ym != nil {
					full := strings.TrimSpace(clean[:ym[1]])
					full = strings.TrimSpace(pat("globalPrefix").ReplaceAllString(full, ""))
					if !isSectionHeadingTitle(full) {
						return cleanFinalTitle(Normalize(full)), true
					}
				}
			}
		}

		startsCapital := clean != "" && (isUpperByte(clean[0]) ||
			(len(clean) > 1 && (clean[0] == '"' || clean[0] == '\'') && isUpperByte(clean[1])))

		if startsCapital && matching >= minNeeded && strings.Contains(low, "market") && len(clean) < 400 {
			if !pat("numberedPrefix").MatchString(clean) {
				if m := titleToForecastRE.FindStringSubmatch(clean); m != nil {
					t := strings.TrimSpace(pat("globalPrefix").ReplaceAllString(strings.TrimSpace(m[1]), ""))
					if !isSectionHeadingTitle(t) {
						return ensureFilenameStartAndYear(t, filename), true
					}
				}
				if m := upToMarketRE.FindStringSubmatch(clean); m != nil {
					t := strings.TrimSpace(m[1])
					if len(strings.Fields(t)) >= 3 && !isSectionHeadingTitle(t) {
						return ensureFilenameStartAndYear(t, filename), true
					}
				}
			}
		}

		if forecastCommaRE.MatchString(low) {
			if matching >= minNeeded || strings.Contains(low, "market") {
				if loc := forecastLabelRE.FindStringIndex(low); loc != nil {
					titlePart := strings.TrimSpace(clean[:loc[1]])
					if strings.Contains(strings.ToLower(titlePart), "market") && !isSectionHeadingTitle(clean) {
						return ensureFilenameStartAndYear(clean, filename), true
					}
				}
			}
		}

		if matching >= minNeeded && strings.Contains(low, "market") && len(clean) < 200 {
			if startsCapital && !pat("numberedPrefix").MatchString(clean) {
				if m := flexibleTitleRE.FindStringSubmatch(clean); m != nil {
					t := strings.TrimSpace(pat("globalPrefix").ReplaceAllString(strings.TrimSpace(m[1]), ""))
					if len(strings.Fields(t)) >= 3 && !isSectionHeadingTitle(t) {
						return ensureFilenameStartAndYear(t, filename), true
					}
				}
			}
		}
	}
	return "", false
}

func isUpperByte(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// segmentHintStrategy: terminal fallback when the document at least shows
// segmentation axes.
type segmentHintStrategy struct{}

func (segmentHintStrategy) name() string { return "segmentation hint" }

func (segmentHintStrategy) resolve(doc *docmodel.Document, filename string) (string, bool) {
	count := 0
	found := false
	for _, p := range doc.Paragraphs {
		if count >= 100 {
			break
		}
		text := strings.ToLower(strings.TrimSpace(p.Text()))
		if text == "" {
			continue
		}
		count++
		if pat("segmentAxis").MatchString(text) {
			found = true
			break
		}
	}
	if !found {
		return "", false
	}
	base := strings.ReplaceAll(strings.ReplaceAll(filename, "-", " "), "_", " ")
	if !strings.HasSuffix(strings.ToLower(base), "market") {
		base += " Market"
	}
	return ensureFilenameStartAndYear(base, filename), true
}
