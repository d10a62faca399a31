package extract

import "regexp"

// rePatterns holds the expressions shared across heuristics. The map is
// populated once at package load and never mutated, so lookups are safe from
// any goroutine.
var rePatterns = map[string]*regexp.Regexp{
	// year spans like "2024–2030" with either dash
	"yearRange": regexp.MustCompile(`20\d{2}\s*[\-–]\s*20\d{2}`),
	// loose "20xx ... 20xx" span used by segmented-title detection
	"yearSpanLoose": regexp.MustCompile(`20\d{2}.*?20\d{2}`),
	// any single year mention
	"yearAny": regexp.MustCompile(`20\d{2}`),
	// "by <word>" clauses, counted to judge segmented titles
	"byClause": regexp.MustCompile(`(?i)\bby\s+\w`),
	// any segmentation axis mention
	"segmentAxis": regexp.MustCompile(`(?i)by\s+(?:application|product\s+type|type|end[-\s]*user|region|geography|segment)`),
	// numbered heading prefix "1." / "2)"
	"numberedPrefix": regexp.MustCompile(`^\d+[\.\)]`),
	// dotted sub-heading "7.1." style
	"dottedHeading": regexp.MustCompile(`^\d+(\.\d+)+`),
	// leading list ornaments stripped from headings
	"listOrnament": regexp.MustCompile(`^[\s•\-–○◦‣▪▫*+\d\.\)]+`),
	// comma list splitter honoring ", and "
	"commaAnd": regexp.MustCompile(`,\s*(?:and\s+)?`),
	// leading article
	"leadingArticle": regexp.MustCompile(`(?i)^(?:the|a|an)\s+`),
	// leading demonstrative
	"leadingDemonstrative": regexp.MustCompile(`(?i)^(?:The|This|These|That)\s+`),
	// "(The) Global " title prefix
	"globalPrefix": regexp.MustCompile(`(?i)^(?:The\s+)?Global\s+`),
	// parenthetical chunk
	"parenthetical": regexp.MustCompile(`\([^)]*\)`),
}

func pat(name string) *regexp.Regexp {
	return rePatterns[name]
}
