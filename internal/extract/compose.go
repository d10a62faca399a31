package extract

import (
	"strings"

	"reportforge/internal/docmodel"
)

// canonicalValue maps raw mined values onto the spelling used in composed
// titles. Every substring in match must be present (lowercased input).
type canonicalValue struct {
	match []string
	out   string
}

var technologyCanon = []canonicalValue{
	{[]string{"molecular diagnostics"}, "Molecular Diagnostics"},
	{[]string{"flow cytometry"}, "Flow Cytometry"},
	{[]string{"ngs"}, "NGS"},
	{[]string{"next generation sequencing"}, "NGS"},
	{[]string{"next-gen sequencing"}, "NGS"},
	{[]string{"liquid biopsy"}, "Liquid Biopsy"},
	{[]string{"immunohistochemistry"}, "IHC"},
	{[]string{"ihc"}, "IHC"},
	{[]string{"others"}, "Others"},
}

var technologyOrder = []string{"Molecular Diagnostics", "Flow Cytometry", "NGS", "Liquid Biopsy", "IHC", "Others"}

var applicationCanon = []canonicalValue{
	{[]string{"disease diagnosis"}, "Disease Diagnosis"},
	{[]string{"prognostic"}, "Prognostic Determination"},
	{[]string{"treatment monitoring"}, "Treatment Monitoring"},
	{[]string{"recurrence"}, "Recurrence Detection"},
	{[]string{"chemotherapy-induced neutropenia"}, "Chemotherapy-Induced Neutropenia"},
	{[]string{"bone marrow failure"}, "Bone Marrow Failure"},
	{[]string{"stem cell transplantation"}, "Stem Cell Transplantation"},
	{[]string{"hematopoietic stem cell"}, "Stem Cell Transplantation"},
	{[]string{"post-hematopoietic"}, "Stem Cell Transplantation"},
	{[]string{"chronic neutropenia"}, "Chronic Neutropenia"},
}

var endUserCanon = []canonicalValue{
	{[]string{"diagnostic laborator"}, "Diagnostic Laboratories"},
	{[]string{"research", "institut"}, "Research Institutions"},
	{[]string{"research", "academic"}, "Research Institutions"},
	{[]string{"oncology clinic"}, "Oncology Clinics"},
	{[]string{"ambulatory", "surgical"}, "Ambulatory Surgical Centers"},
	{[]string{"ambulatory", "surgery"}, "Ambulatory Surgical Centers"},
	{[]string{"homecare"}, "Homecare Settings"},
	{[]string{"home care"}, "Homecare Settings"},
	{[]string{"hospital"}, "Hospitals"},
	{[]string{"pharmaceutical"}, "Pharmaceuticals"},
	{[]string{"food"}, "Food Industry"},
	{[]string{"cosmetic"}, "Cosmetics & Personal Care"},
	{[]string{"agricultur"}, "Agriculture"},
	{[]string{"industrial"}, "Industrial"},
	{[]string{"other"}, "Industrial"},
}

var gcsfEndUserOrder = []string{"Hospitals", "Oncology Clinics", "Ambulatory Surgical Centers", "Homecare Settings"}

var distributionCanon = []canonicalValue{
	{[]string{"supermarket"}, "Supermarkets"},
	{[]string{"hypermarket"}, "Supermarkets"},
	{[]string{"online", "retail"}, "Online Retail"},
	{[]string{"convenience", "store"}, "Convenience Stores"},
	{[]string{"foodservice"}, "Foodservice"},
	{[]string{"food service"}, "Foodservice"},
}

// knownAbbreviations are domain abbreviations adopted into the market name
// when the document introduces them next to the market keywords.
var knownAbbreviations = []struct {
	cue    string
	abbrev string
}{
	{"polyglycerol polyricinoleate", "(PGPR)"},
	{"pgpr", "(PGPR)"},
	{"acute myeloid leukemia", "(AML)"},
	{"aml diagnostics", "(AML)"},
}

func canonicalize(values []string, canon []canonicalValue) []string {
	var out []string
	for _, val := range values {
		low := strings.ToLower(val)
		mapped := ""
		for _, c := range canon {
			hit := true
			for _, m := range c.match {
				if !strings.Contains(low, m) {
					hit = false
					break
				}
			}
			if hit {
				mapped = c.out
				break
			}
		}
		if mapped == "" {
			mapped = val
		}
		if !containsFold(out, mapped) {
			out = append(out, mapped)
		}
	}
	return out
}

func orderPreferred(values, preferred []string) []string {
	var out []string
	for _, p := range preferred {
		if containsFold(values, p) {
			out = append(out, p)
		}
	}
	for _, v := range values {
		if !containsFold(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func joinCap(values []string, n int) string {
	if len(values) > n {
		values = values[:n]
	}
	return strings.Join(values, ", ")
}

// baseMarketName turns the source filename into the market name, keeping a
// bracketed abbreviation intact instead of splitting it on hyphens.
func baseMarketName(filename string) (string, string) {
	abbrev := fileAbbrevRE.FindString(filename)
	dashToSpace := func(s string) string {
		s = strings.ReplaceAll(s, "-", " ")
		return strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
	}
	if abbrev == "" {
		return dashToSpace(filename), ""
	}
	before, after, _ := strings.Cut(filename, abbrev)
	name := strings.TrimSpace(dashToSpace(before) + " " + abbrev + " " + dashToSpace(after))
	return name, abbrev
}

// documentAbbreviation looks for "(ABBR)" near the market keywords in the
// first 20 paragraphs.
func documentAbbreviation(doc *docmodel.Document, marketName string) string {
	var keywords []string
	for _, w := range strings.Fields(strings.ReplaceAll(strings.ToLower(marketName), " market", "")) {
		if len(w) > 3 {
			keywords = append(keywords, w)
		}
	}
	count := 0
	for _, p := range doc.Paragraphs {
		if count >= 20 {
			break
		}
		count++
		text := p.Text()
		low := strings.ToLower(text)

		hasKeyword := false
		for _, kw := range keywords {
			if strings.Contains(low, kw) {
				hasKeyword = true
				break
			}
		}
		if !hasKeyword {
			continue
		}

		if loc := docAbbrevRE.FindStringSubmatchIndex(text); loc != nil {
			start := loc[0] - 100
			if start < 0 {
				start = 0
			}
			end := loc[0] + 50
			if end > len(text) {
				end = len(text)
			}
			context := strings.ToLower(text[start:end])
			for _, kw := range keywords {
				if strings.Contains(context, kw) {
					return "(" + text[loc[2]:loc[3]] + ")"
				}
			}
		}
		for _, known := range knownAbbreviations {
			if strings.Contains(low, known.cue) && strings.Contains(strings.ToUpper(text), known.abbrev) {
				return known.abbrev
			}
		}
	}
	return ""
}

// composeSegmentTitle builds the long-form title from detected segments:
// market name, By-axis parts in canonical order, geography, and the
// standard revenue-estimation tail.
func composeSegmentTitle(doc *docmodel.Document, filename string, hits map[segmentKind]segmentHit) string {
	name, fileAbbrev := baseMarketName(filename)

	if fileAbbrev == "" {
		if abbrev := documentAbbreviation(doc, name); abbrev != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(abbrev)) {
			switch {
			case strings.Contains(strings.ToLower(name), "diagnostics"):
				name = strings.Replace(name, " Diagnostics", " "+abbrev+" Diagnostics", 1)
			case strings.Contains(strings.ToLower(name), "market"):
				name = strings.Replace(name, " Market", " "+abbrev+" Market", 1)
			default:
				name = name + " " + abbrev
			}
		}
	}
	if !strings.HasSuffix(strings.ToLower(name), "market") {
		name += " Market"
	}
	if strings.Contains(strings.ToUpper(fileAbbrev), "(G-CSF)") &&
		strings.Contains(strings.ToLower(name), "granulocyte colony stimulating factors") {
		name = "G-CSF (Granulocyte Colony Stimulating Factors) Market"
	}
	isGCSF := strings.Contains(strings.ToLower(name), "g-csf")

	var parts []string

	if hit, ok := hits[segPhase]; ok {
		values := extractSegmentValues(doc, hit.idx, segPhase)
		var cleaned []string
		for _, v := range values {
			switch strings.ToLower(v) {
			case "single phase":
				v = "Single Phase"
			case "three phase":
				v = "Three Phase"
			default:
				v = capitalizeFirst(v)
			}
			if !containsFold(cleaned, v) {
				cleaned = append(cleaned, v)
			}
		}
		if len(cleaned) > 0 {
			parts = append(parts, "By Phase Type ("+joinCap(cleaned, 6)+")")
		}
	}

	if hit, ok := hits[segOutputPower]; ok {
		values := extractSegmentValues(doc, hit.idx, segOutputPower)
		var cleaned []string
		for _, v := range values {
			v = Normalize(v)
			v = digitDashRE.ReplaceAllString(v, "$1"+dash+"$2")
			if v != "" && !containsString(cleaned, v) {
				cleaned = append(cleaned, v)
			}
		}
		if len(cleaned) > 0 {
			parts = append(parts, "By Output Power ("+joinCap(cleaned, 6)+")")
		}
	}

	if hit, ok := hits[segType]; ok {
		values := extractSegmentValues(doc, hit.idx, segType)
		if len(values) > 0 {
			segText := strings.ToLower(hit.text)
			isMedical := strings.Contains(segText, "diagnostic") &&
				(strings.Contains(segText, "technology") || strings.Contains(segText, "approach"))
			switch {
			case isMedical:
				cleaned := canonicalize(values, technologyCanon)
				// NGS and Liquid Biopsy are often introduced outside the
				// segmentation section.
				for _, extra := range []string{"NGS", "Liquid Biopsy"} {
					if !containsString(cleaned, extra) && documentMentionsTechnology(doc, extra) {
						cleaned = append(cleaned, extra)
					}
				}
				if len(cleaned) > 0 {
					parts = append(parts, "By Technology ("+joinCap(orderPreferred(cleaned, technologyOrder), 6)+")")
				}
			case isGCSF || strings.Contains(segText, "type of product"):
				var cleaned []string
				for _, v := range values {
					low := strings.ToLower(v)
					switch {
					case strings.Contains(low, "innovator") && strings.Contains(low, "g-csf"):
						v = "Innovator G-CSF"
					case strings.Contains(low, "biosimilar"):
						v = "Biosimilars"
					}
					if !containsString(cleaned, v) {
						cleaned = append(cleaned, v)
					}
				}
				if len(cleaned) > 0 {
					parts = append(parts, "by Type ("+joinCap(cleaned, 6)+")")
				}
			default:
				var cleaned []string
				for _, v := range values {
					if len(v) < 50 && !containsString(cleaned, v) {
						cleaned = append(cleaned, v)
					}
				}
				if len(cleaned) > 0 {
					parts = append(parts, "By Product Type ("+joinCap(cleaned, 6)+")")
				}
			}
		}
	}

	if hit, ok := hits[segApplication]; ok {
		values := extractSegmentValues(doc, hit.idx, segApplication)
		if len(values) > 0 {
			cleaned := canonicalize(values, applicationCanon)
			for i, v := range cleaned {
				low := strings.ToLower(v)
				if strings.Contains(low, "bridge") && strings.Contains(low, "lung") {
					cleaned[i] = bridgeCaseRE.ReplaceAllString(v, "$1-to-$2")
				}
				if strings.Contains(low, "other application") || (strings.Contains(low, "other") && strings.Contains(low, "industrial")) {
					cleaned[i] = "Industrial"
				}
			}
			cleaned = dedupeFold(cleaned, 6)
			parts = append(parts, "By Application ("+joinCap(cleaned, 6)+")")
		}
	}

	if hit, ok := hits[segEndUser]; ok {
		values := extractSegmentValues(doc, hit.idx, segEndUser)
		if len(values) > 0 {
			cleaned := canonicalize(values, endUserCanon)
			if isGCSF {
				if !containsString(cleaned, "Ambulatory Surgical Centers") && documentMentionsASC(doc) {
					cleaned = append(cleaned, "Ambulatory Surgical Centers")
				}
				cleaned = orderPreferred(cleaned, gcsfEndUserOrder)
			}
			label := "By End User"
			if isGCSF {
				label = "by End-User"
			} else if strings.Contains(strings.ToLower(hit.text), "industry") {
				label = "By End-User Industry"
			}
			parts = append(parts, label+" ("+joinCap(cleaned, 6)+")")
		}
	}

	if hit, ok := hits[segDistribution]; ok {
		values := extractSegmentValues(doc, hit.idx, segDistribution)
		if len(values) > 0 {
			cleaned := canonicalize(values, distributionCanon)
			label := "By Distribution Channel"
			if isGCSF {
				label = "by Distribution Channel"
			}
			parts = append(parts, label+" ("+joinCap(cleaned, 6)+")")
		}
	}

	if _, ok := hits[segRegion]; ok || len(hits) >= 2 {
		if isGCSF {
			parts = append(parts, "by Region")
		} else {
			parts = append(parts, "By Geography")
		}
	}

	parts = append(parts, "Segment Revenue Estimation, Forecast, 2024"+dash+"2030")

	sep := "; "
	if isGCSF {
		sep = ", "
	}
	title := name
	if len(parts) > 0 {
		title = name + " " + parts[0]
		if len(parts) > 1 {
			title += sep + strings.Join(parts[1:], sep)
		}
	}
	return cleanFinalTitle(Normalize(title))
}

func documentMentionsTechnology(doc *docmodel.Document, tech string) bool {
	needles := []string{strings.ToLower(tech)}
	if tech == "NGS" {
		needles = append(needles, "next generation sequencing")
	}
	for _, p := range doc.Paragraphs {
		low := strings.ToLower(p.Text())
		if !containsAny(low, needles) {
			continue
		}
		head := low
		if len(head) > 100 {
			head = head[:100]
		}
		if strings.Contains(head, "diagnostic") {
			return true
		}
	}
	return false
}

func documentMentionsASC(doc *docmodel.Document) bool {
	for _, p := range doc.Paragraphs {
		low := strings.ToLower(p.Text())
		if strings.Contains(low, "ambulatory") && (strings.Contains(low, "surgical center") || strings.Contains(low, "asc")) {
			return true
		}
	}
	return false
}
