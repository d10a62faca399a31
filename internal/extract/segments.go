package extract

import (
	"regexp"
	"strings"

	"reportforge/internal/docmodel"
)

// Segment axes recognized by the reconstruction strategy.
type segmentKind int

const (
	segPhase segmentKind = iota
	segOutputPower
	segType
	segApplication
	segEndUser
	segDistribution
	segRegion
)

// segmentMarker describes how an axis announces itself in body copy. Long
// paragraphs only qualify when they start with the axis phrase; "Market
// Analysis by X" narrative never does.
type segmentMarker struct {
	kind     segmentKind
	phrases  []string
	maxLen   int
	prefixes []string
	exclude  string
}

var segmentMarkers = []segmentMarker{
	{segPhase, []string{"by phase type"}, 120, []string{"by phase type"}, ""},
	{segOutputPower, []string{"by output power", "by power output"}, 160, []string{"by output power", "by power output"}, ""},
	{segType, []string{"by diagnostic approach", "by diagnostic technology", "by product type", "by type of product", "by type"}, 100, []string{"by product type", "by type", "by diagnostic"}, "by phase type"},
	{segApplication, []string{"by treatment type", "by application"}, 100, []string{"by application", "by treatment type"}, ""},
	{segEndUser, []string{"by end-user", "by end user"}, 100, []string{"by end user", "by end-user"}, ""},
	{segDistribution, []string{"by distribution channel"}, 100, []string{"by distribution channel"}, ""},
	{segRegion, []string{"by region", "by geography"}, 100, []string{"by region", "by geography"}, ""},
}

// Trigger words that mark a marker paragraph as carrying its values inline.
var headerValueCues = []string{
	"divided into", "finds usage in", "applications across", "find applications across",
	"available across", "spans", "includes", "comprises", "distributed across",
	"usage in", "encompassing", "remains", "represents", "leading", "category", "area",
}

var excludeLeadPhrases = []string{
	"market analysis", "market share", "this segment", "this area", "this region",
	"key stakeholders", "projected share",
}

var regionNames = []string{
	"north america", "europe", "asia-pacific", "latin america", "middle east",
	"africa", "asia pacific", "lamea",
}

var regionKeywords = []string{
	"north america", "south america", "europe", "asia", "pacific", "latin america",
	"middle east", "africa", "lamea", "apac", "emea", "america", "oceania",
}

var invalidRegionTerms = []string{
	"influence", "market size", "volume", "diagnostics", "methodology", "process",
	"research", "data sources", "government", "regulatory", "historical",
	"overview", "emerging", "technological", "stakeholders",
}

var sentenceIndicators = []string{
	"is employed", "are used", "is used", "are employed", "focuses on", "targeting",
	"including", "such as", "helps in", "provides", "across various",
	"each targeting", "each with",
}

var sentenceVerbs = []string{
	"is employed", "are used", "is used", "are employed", "focuses on", "targeting",
	"including", "such as", "helps in", "provides", "allows", "enables", "ensures",
	"aims to", "seeks to", "designed to", "used to", "intended to",
}

var invalidValueExact = []string{"impact", "trend", "outlook", "growth", "share", "targeted"}

var invalidValuePhrases = []string{
	"increased", "access to", "growth rate", "expected to", "driven by",
	"the largest", "improve patient", "treatments to", "outcomes",
	"healthcare infrastructure", "reflects", "differences in",
	"definition and scope", "overview of", "research methodology", "research process",
	"primary and secondary", "data sources", "emerging opportunities", "technological advances",
	"across various", "each targeting", "each with", "vary widely",
	"government and regulatory", "historical market", "market size and volume",
	"this is the most", "this is the critical", "dimension of segmentation",
	"in 2024,", "in 2024 ", "the most critical dimension",
}

var descPhrases = []string{
	"the primary", "this segment", "this sub-segment", "this application",
	"the end users", "the market", "the largest", "the dominant",
	"this is the", "the most critical",
}

var acronymFixRE = regexp.MustCompile(`(?i)\b(ECMO|ECLS|ARDS|MSU|ASCs|ELISA|CLIA|IHC|NGS)\b`)

var smallTitleWords = map[string]string{
	"And": "and", "To": "to", "Of": "of", "In": "in", "For": "for", "With": "with", "The": "the",
}

// headerListPatterns mine comma lists out of marker paragraphs. Each entry
// captures the list text and names the verbs that start trailing narrative.
var headerListPatterns = []struct {
	re    *regexp.Regexp
	stop  *regexp.Regexp
	strip *regexp.Regexp
}{
	{regexp.MustCompile(`(?i)encompassing\s+([^.]*?)(?:\.|$)`),
		regexp.MustCompile(`(?i)\s+(?:remain|represent|are|account|these|treatments)`), nil},
	{regexp.MustCompile(`(?i)(?:broadly\s+)?divided into\s+([^.]*?)(?:\.|$)`),
		regexp.MustCompile(`(?i)\s+(?:together|represent|are|is|expected|projected|because|due|gaining)`), nil},
	{regexp.MustCompile(`(?i)finds usage in\s+([^.]*?)(?:\.|$)`),
		regexp.MustCompile(`(?i)\s+(?:is|are|projected|expected|account|driven|given)`), nil},
	{regexp.MustCompile(`(?i)(?:find(?:s)?\s+)?applications\s+across\s+([^.]*?)(?:\.|$)`),
		regexp.MustCompile(`(?i)\s+(?:lead|dominat|remain|represent|account|continue|expand)`),
		regexp.MustCompile(`(?i)^(?:a\s+wide\s+range\s+of\s+)?`)},
	{regexp.MustCompile(`(?i)available\s+across\s+(?:a\s+wide\s+spectrum\s*)?[–\-]?\s*([^.]*?)(?:\.|$)`),
		regexp.MustCompile(`(?i)\s+(?:serve|serves|remain|represent|account|are|is)\b`),
		regexp.MustCompile(`(?i)^(?:a\s+wide\s+spectrum\s*)?[–\-]\s*`)},
	{regexp.MustCompile(`(?i)(?:adoption\s+)?spans\s+([^.]*?)(?:\.|$)`),
		regexp.MustCompile(`(?i)\s+(?:given|dominate|show|large|tertiary)`), nil},
	{regexp.MustCompile(`(?i)distributed across\s+([^.]*?)(?:\.|$)`),
		regexp.MustCompile(`$^`), regexp.MustCompile(`\s*\([^)]+\)`)},
}

var (
	firstCapPhraseRE   = regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[a-z]+)*)`)
	firstCapRegionRE   = regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
	leadingValueVerbRE = regexp.MustCompile(`(?i)\s+(?:represents|remains|is|are|account)`)
	leadingListRE      = regexp.MustCompile(`(?i)^([^.]+?)\s+(?:are|is)\s+the\s+(?:leading|dominant)`)
	commaListHeadRE    = regexp.MustCompile(`^([A-Z][^,]+(?:,\s*[A-Z][^,]+){0,5}(?:,\s*and\s+[A-Z][^,]+)?)`)
	commaAndTailRE     = regexp.MustCompile(`,\s*and\s+([A-Z][^,]+)`)
	listStopVerbRE     = regexp.MustCompile(`(?i)\s+(?:remain|are|encompass|represent|account|drive|continue|include|comprise)`)
	colonValueRE       = regexp.MustCompile(`^([A-Z][a-zA-Z0-9\s&]+(?:\([A-Za-z0-9\s,]+\))?)\s*:`)
	headingOnlyRE      = regexp.MustCompile(`^[A-Z][a-zA-Z0-9\s&\-]+(?:\([A-Za-z0-9\s,\-]+\))?$`)
	headingPrefixRE    = regexp.MustCompile(`^([A-Z][A-Za-z0-9\s&\-]+(?:\([A-Za-z0-9\s,\-]+\))?)`)
	abbrevParenRE      = regexp.MustCompile(`\(([^)]+)\)`)
	allCapsRE          = regexp.MustCompile(`^[A-Z]{2,}$`)
	byPrefixRE         = regexp.MustCompile(`(?i)^by\s+`)
	fileAbbrevRE       = regexp.MustCompile(`\([A-Z0-9\-]+\)`)
	docAbbrevRE        = regexp.MustCompile(`\(([A-Z][A-Z0-9\-]{1,})\)`)
	digitDashRE        = regexp.MustCompile(`(\d)\s*-\s*(\d)`)
	bridgeCaseRE       = regexp.MustCompile(`([A-Z][a-z]+)-To-([A-Z][a-z]+)`)
)

type segmentHit struct {
	kind segmentKind
	idx  int
	text string
}

// segmentAssemblyStrategy rebuilds the long-form title from segmentation
// sections when no written-out title exists.
type segmentAssemblyStrategy struct{}

func (segmentAssemblyStrategy) name() string { return "segmentation reconstruction" }

func (segmentAssemblyStrategy) resolve(doc *docmodel.Document, filename string) (string, bool) {
	hits := detectSegments(doc)
	if len(hits) < 2 {
		return "", false
	}
	return composeSegmentTitle(doc, filename, hits), true
}

func detectSegments(doc *docmodel.Document) map[segmentKind]segmentHit {
	hits := make(map[segmentKind]segmentHit)
	for idx, p := range doc.Paragraphs {
		text := strings.TrimSpace(p.Text())
		if text == "" {
			continue
		}
		clean := RemoveEmojis(text)
		low := strings.ToLower(clean)
		if strings.Contains(low, "market analysis") {
			continue
		}
		for _, m := range segmentMarkers {
			if _, seen := hits[m.kind]; seen {
				continue
			}
			if m.exclude != "" && strings.Contains(low, m.exclude) && !containsOther(low, m.phrases, m.exclude) {
				continue
			}
			if !containsAny(low, m.phrases) {
				continue
			}
			if len(clean) < m.maxLen || hasAnyPrefix(low, m.prefixes) {
				hits[m.kind] = segmentHit{kind: m.kind, idx: idx, text: clean}
				break
			}
		}
	}
	return hits
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// containsOther reports whether s matches any phrase besides the excluded
// one, e.g. "by product type" in text that also says "by phase type".
func containsOther(s string, phrases []string, excluded string) bool {
	for _, p := range phrases {
		if p == excluded {
			continue
		}
		if strings.Contains(s, p) && !strings.Contains(excluded, p) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// titleCaseValue capitalizes a lowercase segment value the way the composed
// titles expect: Title Case with connective words lowered, first word and
// known acronyms kept uppercase.
func titleCaseValue(s string) string {
	words := strings.Fields(s)
	keepConnectives := strings.Contains(strings.ToLower(s), "ecmo")
	for i, w := range words {
		if w == "" {
			continue
		}
		cased := strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		if i > 0 && !keepConnectives {
			if lower, ok := smallTitleWords[cased]; ok {
				cased = lower
			}
		}
		words[i] = cased
	}
	out := strings.Join(words, " ")
	out = acronymFixRE.ReplaceAllStringFunc(out, strings.ToUpper)
	out = bridgeCaseRE.ReplaceAllString(out, "$1-to-$2")
	return out
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func startsLower(s string) bool {
	return s != "" && s[0] >= 'a' && s[0] <= 'z'
}

// mineHeaderValues pulls inline value lists out of the marker paragraph.
func mineHeaderValues(header string, kind segmentKind) []string {
	var values []string
	low := strings.ToLower(header)

	if !containsAny(low, headerValueCues) {
		return nil
	}

	for _, hp := range headerListPatterns {
		m := hp.re.FindStringSubmatch(header)
		if m == nil {
			continue
		}
		listText := strings.TrimSpace(m[1])
		if hp.strip != nil {
			listText = strings.TrimSpace(hp.strip.ReplaceAllString(listText, ""))
		}
		for _, part := range pat("commaAnd").Split(listText, -1) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if loc := hp.stop.FindStringIndex(part); loc != nil {
				part = strings.TrimSpace(part[:loc[0]])
			}
			if hp.strip != nil {
				part = strings.TrimSpace(pat("parenthetical").ReplaceAllString(part, ""))
			}
			if len(part) <= 2 || len(part) >= 100 {
				continue
			}
			lowPart := strings.ToLower(part)
			if lowPart == "the" || lowPart == "market" || lowPart == "segment" {
				continue
			}
			if startsLower(part) {
				part = titleCaseValue(part)
			}
			part = strings.TrimSpace(pat("leadingArticle").ReplaceAllString(part, ""))
			if part != "" {
				values = append(values, part)
			}
		}
	}

	// "X represents ..." / "X remain ..." sentence openers.
	if strings.Contains(low, "represents") || strings.Contains(low, "remains") {
		if m := firstCapPhraseRE.FindStringSubmatch(header); m != nil {
			v := strings.TrimSpace(m[1])
			if loc := leadingValueVerbRE.FindStringIndex(v); loc != nil {
				v = strings.TrimSpace(v[:loc[0]])
			}
			vl := strings.ToLower(v)
			if v != "" && len(v) < 50 && vl != "the" && vl != "by" && vl != "market" {
				if startsLower(v) {
					v = titleCaseValue(v)
				}
				values = append(values, v)
			}
		}
	}

	// "X, Y, and Z are the leading ..." openers.
	if m := leadingListRE.FindStringSubmatch(header); m != nil {
		for _, part := range pat("commaAnd").Split(strings.TrimSpace(m[1]), -1) {
			part = strings.TrimSpace(part)
			if len(part) > 3 && len(part) < 80 && !startsLower(part) {
				values = append(values, part)
			}
		}
	}

	// Region sections often open with "North America represents ...".
	if kind == segRegion && strings.Contains(low, "represents") {
		if m := firstCapRegionRE.FindStringSubmatch(header); m != nil {
			v := strings.TrimSpace(m[1])
			if loc := leadingValueVerbRE.FindStringIndex(v); loc != nil {
				v = strings.TrimSpace(v[:loc[0]])
			}
			vl := strings.ToLower(v)
			if v != "" && len(v) < 50 && vl != "the" && vl != "by" && vl != "market" && !containsString(values, v) {
				values = append(values, v)
			}
		}
	}

	return values
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// extractSegmentValues mines the marker paragraph and up to maxParas
// following paragraphs for the axis values.
func extractSegmentValues(doc *docmodel.Document, paraIdx int, kind segmentKind) []string {
	const maxParas = 20
	var values []string

	header := strings.TrimSpace(doc.Paragraphs[paraIdx].Text())
	mineTarget := header
	if len(header) > 20 {
		// "By X\nInjectables remain ..." puts values after the axis line.
		if byPrefixRE.MatchString(header) {
			if _, rest, found := strings.Cut(header, "\n"); found {
				mineTarget = strings.TrimSpace(rest)
			}
		}
		values = append(values, mineHeaderValues(mineTarget, kind)...)

		// Confident header lists for product/application axes end the search
		// early so narrative paragraphs are never mined.
		if len(values) >= 2 && (kind == segApplication || kind == segPhase || kind == segOutputPower) {
			return dedupeFold(values, 8)
		}

		// Newline-separated values inside the marker paragraph.
		if strings.Contains(header, "\n") {
			for _, line := range strings.Split(header, "\n")[1:] {
				line = strings.TrimSpace(line)
				if len(line) <= 10 || !strings.Contains(line, ",") {
					continue
				}
				for _, val := range pat("commaAnd").Split(line, -1) {
					val = strings.TrimSpace(val)
					if loc := listStopVerbRE.FindStringIndex(val); loc != nil {
						val = strings.TrimSpace(val[:loc[0]])
					}
					// The last list item carries the sentence period; keep
					// it from shadowing the clean form as a duplicate.
					val = strings.TrimSuffix(val, ".")
					if len(val) > 3 && len(val) < 80 && !startsLower(val) && !containsString(values, val) {
						values = append(values, val)
					}
				}
			}
		}
	}

	skipIntro := true
	for i := paraIdx + 1; i <= paraIdx+maxParas && i < len(doc.Paragraphs); i++ {
		text := strings.TrimSpace(doc.Paragraphs[i].Text())
		if text == "" {
			continue
		}
		if byPrefixRE.MatchString(text) {
			break
		}
		if len(text) < 3 {
			continue
		}

		firstLine := text
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine = strings.TrimSpace(text[:idx])
		}

		// Comma-separated value list at the head of the paragraph.
		if strings.Contains(firstLine, ",") && len(firstLine) < 200 {
			if m := commaListHeadRE.FindStringSubmatch(firstLine); m != nil {
				listText := commaAndTailRE.ReplaceAllString(strings.TrimSpace(m[1]), ", $1")
				for _, val := range strings.Split(listText, ",") {
					val = strings.TrimSpace(val)
					if loc := listStopVerbRE.FindStringIndex(val); loc != nil {
						val = strings.TrimSpace(val[:loc[0]])
					}
					val = strings.TrimSuffix(val, ".")
					if len(val) > 3 && len(val) < 80 && !startsLower(val) && !containsString(values, val) {
						values = append(values, val)
					}
				}
			}
		}

		text = firstLine
		low := strings.ToLower(text)

		startsCapitalHeading := headingPrefixRE.MatchString(text)
		if skipIntro && len(text) > 100 && !startsCapitalHeading {
			skipIntro = false
			continue
		}
		skipIntro = false

		if hasAnyPrefix(low, excludeLeadPhrases) {
			continue
		}

		if m := colonValueRE.FindStringSubmatch(text); m != nil {
			if v, ok := cleanColonValue(m[1], kind, values); ok {
				values = append(values, v)
			}
			continue
		}

		// Colon-led value at the start of a longer paragraph, e.g.
		// "Food and Beverages: The largest application segment ...".
		if len(text) > 50 {
			head := text
			if len(head) > 100 {
				head = head[:100]
			}
			if m := colonValueRE.FindStringSubmatch(head); m != nil {
				if !containsAny(low, sentenceIndicators) {
					if v, ok := cleanColonValue(m[1], kind, values); ok {
						values = append(values, v)
					}
				}
				continue
			}
		}

		// Standalone capitalized headings without colons.
		if v, ok := headingValue(text, kind, values); ok {
			values = append(values, v)
		}
	}

	if kind == segRegion {
		values = filterRegionValues(doc, values, paraIdx, maxParas)
	}

	return finalizeValues(values, kind)
}

// cleanColonValue validates "Value:" captures.
func cleanColonValue(raw string, kind segmentKind, existing []string) (string, bool) {
	value := strings.TrimSpace(raw)
	// Drop descriptive parentheticals but keep all-caps abbreviations.
	if m := abbrevParenRE.FindStringSubmatch(value); m != nil {
		if !allCapsRE.MatchString(strings.TrimSpace(m[1])) {
			value = strings.TrimSpace(abbrevParenRE.ReplaceAllString(value, ""))
			value = strings.TrimSpace(value)
		}
	}
	value = strings.TrimSpace(pat("leadingDemonstrative").ReplaceAllString(value, ""))
	low := strings.ToLower(value)

	isRegion := containsAny(low, regionNames)
	if isRegion && kind != segRegion {
		return "", false
	}
	if kind == segRegion && !isRegion {
		if len(value) > 40 || containsAny(low, invalidRegionTerms) {
			return "", false
		}
	}

	if len(value) >= 70 || len(strings.Fields(value)) > 10 {
		return "", false
	}
	for _, p := range []string{"by ", "the ", "this ", "these ", "aml ", "market", "key ", "the global", "other ", "projected ", "oem", "rest of"} {
		if strings.HasPrefix(low, p) {
			return "", false
		}
	}
	for _, p := range []string{"market analysis", "market share", "projected share", "the market", "the end users", "end-user"} {
		if strings.Contains(low, p) {
			return "", false
		}
	}
	if containsString(existing, value) {
		return "", false
	}
	if strings.HasPrefix(low, "diagnostic") {
		if !strings.Contains(low, "laborator") && !strings.Contains(low, "service") && !strings.Contains(low, "center") {
			return "", false
		}
		return value, true
	}
	if strings.Contains(value, " and ") && kind != segRegion {
		value = strings.ReplaceAll(value, " and ", " & ")
	}
	return value, true
}

// headingValue validates standalone capitalized headings as segment values.
func headingValue(text string, kind segmentKind, existing []string) (string, bool) {
	var heading string
	trimmed := strings.TrimSpace(text)
	if headingOnlyRE.MatchString(trimmed) {
		heading = trimmed
	} else if m := headingPrefixRE.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimSpace(m[1])
		remaining := strings.TrimSpace(text[len(m[1]):])
		switch {
		case remaining == "":
			heading = candidate
		case startsLower(remaining):
			heading = candidate
		case len(strings.Fields(candidate)) <= 8 && len(candidate) <= 80:
			heading = candidate
		}
	}
	if heading == "" {
		return "", false
	}

	low := strings.ToLower(heading)
	if len(heading) > 80 || len(strings.Fields(heading)) > 8 ||
		pat("numberedPrefix").MatchString(heading) ||
		containsString(existing, heading) {
		return "", false
	}
	for _, p := range []string{"by ", "the ", "this ", "these ", "market", "key ", "projected ", "products such", "the g-csf market"} {
		if strings.HasPrefix(low, p) {
			return "", false
		}
	}
	for _, p := range []string{"market analysis", "market share", "projected share"} {
		if strings.Contains(low, p) {
			return "", false
		}
	}
	if containsAny(low, regionNames) && kind != segRegion {
		return "", false
	}

	value := strings.TrimSpace(pat("leadingDemonstrative").ReplaceAllString(heading, ""))
	low = strings.ToLower(value)
	if containsAny(low, sentenceIndicators) {
		return "", false
	}
	if containsAny(low, invalidValuePhrases) {
		return "", false
	}
	if len(strings.Fields(value)) == 1 {
		switch low {
		case "impact", "trend", "outlook", "growth", "share", "market", "targeted":
			return "", false
		}
	}
	if len(value) > 60 {
		if len(strings.Fields(value)) > 8 || startsLower(value) {
			return "", false
		}
		if containsAny(low, []string{"the primary", "this segment", "this application"}) {
			return "", false
		}
	}
	if len(value) < 3 || len(value) > 80 {
		return "", false
	}
	return value, true
}

// filterRegionValues keeps only recognizable region names and expands
// "Rest of ..." / "LAMEA" when the document spells out the long form nearby.
func filterRegionValues(doc *docmodel.Document, values []string, paraIdx, maxParas int) []string {
	var valid []string
	for _, v := range values {
		low := strings.ToLower(v)
		if !containsAny(low, regionNames) && !containsAny(low, regionKeywords) {
			continue
		}
		if containsAny(low, invalidRegionTerms) {
			continue
		}
		valid = append(valid, v)
	}
	if len(valid) > 0 {
		values = valid
	}
	for i, v := range values {
		low := strings.ToLower(v)
		if !strings.Contains(low, "rest of") && !strings.Contains(low, "lamea") {
			continue
		}
		end := paraIdx + maxParas + 5
		if end > len(doc.Paragraphs) {
			end = len(doc.Paragraphs)
		}
		for _, p := range doc.Paragraphs[paraIdx:end] {
			t := strings.ToLower(p.Text())
			if strings.Contains(t, "latin america") && strings.Contains(t, "middle east") && strings.Contains(t, "africa") {
				values[i] = "Latin America, Middle East & Africa"
				break
			}
		}
	}
	return values
}

// finalizeValues applies the shared narrative filters and caps the list.
func finalizeValues(values []string, kind segmentKind) []string {
	var out []string
	for _, val := range values {
		if idx := strings.Index(val, "(e.g."); idx >= 0 {
			val = strings.TrimSpace(val[:idx])
		}
		if val == "" {
			continue
		}
		low := strings.ToLower(val)

		if kind == segRegion {
			if !containsAny(low, regionKeywords) {
				continue
			}
			if containsAny(low, invalidRegionTerms) {
				continue
			}
		}
		if containsAny(low, sentenceVerbs) {
			continue
		}
		if containsString(invalidValueExact, low) || containsAny(low, invalidValuePhrases) {
			continue
		}
		if len(val) > 60 {
			preps := 0
			fields := strings.Fields(low)
			for _, w := range fields {
				switch w {
				case "to", "for", "with", "of", "in", "at", "on", "by":
					preps++
				}
			}
			if preps > 2 {
				continue
			}
		}
		if startsLower(val) {
			continue
		}
		if containsAny(low, descPhrases) {
			continue
		}
		out = append(out, val)
	}
	return dedupeFold(out, 8)
}

func dedupeFold(values []string, limit int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}
