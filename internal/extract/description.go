package extract

import (
	"regexp"
	"strings"

	"reportforge/internal/docmodel"
)

// Section states for the description walker. Transitions happen on the main
// report headings; several rendering rules only apply inside a given state.
type descSection int

const (
	secNone descSection = iota
	secIntro
	secSegmentation
	secTrends
	secCompetitive
	secRegional
	secEndUser
	secRecentDev
)

var descTargets = []struct {
	heading string
	section descSection
}{
	{"introduction and strategic context", secIntro},
	{"market segmentation and forecast scope", secSegmentation},
	{"market trends and innovation landscape", secTrends},
	{"competitive intelligence and benchmarking", secCompetitive},
	{"regional landscape and adoption outlook", secRegional},
	{"end-user dynamics and use case", secEndUser},
	{"recent developments + opportunities & restraints", secRecentDev},
	{"opportunities & restraints", secRecentDev},
}

var descStops = []string{
	"report summary, faqs, and seo schema",
	"report title",
	"report coverage table",
	"7.1. report coverage table",
	"report coverage",
	"faqs and seo schema",
}

// Region headings promoted to <h2> inside the regional section. Hyphens are
// folded to spaces before matching, which covers the spelling variants.
var descRegionHeadings = []string{
	"north america",
	"europe",
	"asia pacific",
	"latin america and middle east & africa (lamea)",
	"latin america & middle east & africa (lamea)",
	"latin america & middle east and africa (lamea)",
	"middle east and africa",
	"middle east & africa",
	"middle east and africa (mea)",
	"middle east & africa (mea)",
}

var descOpportunityHeadings = []string{"opportunities", "restraints"}

var (
	sectionLabelRE   = regexp.MustCompile(`(?i)section\s*\d+[:\-]?\s*`)
	leadingNonWordRE = regexp.MustCompile(`^[^\w]+`)
	descNumberRE     = regexp.MustCompile(`^\d+[\.\-\)]\s*`)
	boldLeadRE       = regexp.MustCompile(`^<b>([^<]+)</b>`)
	boldNumberRE     = regexp.MustCompile(`^<b>\d+\.\s*`)
	numberedPointRE  = regexp.MustCompile(`^\d+\.\s*`)
	boldByHeadingRE  = regexp.MustCompile(`<b>\s*by\s+([^<]+)</b>`)
	byHeadingRE      = regexp.MustCompile(`^by\s+(.+)`)
)

func cleanDescHeading(text string) string {
	text = RemoveEmojis(strings.TrimSpace(text))
	text = leadingNonWordRE.ReplaceAllString(text, "")
	text = sectionLabelRE.ReplaceAllString(text, "")
	text = descNumberRE.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(strings.ToLower(text))
}

// headingTitle is a str.title equivalent: the first letter of every letter
// run is upper-cased, the rest lowered.
func headingTitle(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(r &^ 0x20)
		case isLetter:
			b.WriteRune(r | 0x20)
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}

// descBuilder accumulates description markup and the spacer bookkeeping.
type descBuilder struct {
	out          []string
	listOpen     bool
	sawHeading   bool
	prevBoldWord string
}

func (b *descBuilder) emit(s string) { b.out = append(b.out, s) }

func (b *descBuilder) closeList() {
	if b.listOpen {
		b.emit("</ul>")
		b.listOpen = false
	}
}

func (b *descBuilder) lastIsSpacer() bool {
	return len(b.out) > 0 && b.out[len(b.out)-1] == "&nbsp;"
}

func (b *descBuilder) afterMainHeading() bool {
	return len(b.out) > 0 && strings.Contains(b.out[len(b.out)-1], "<h2><strong>")
}

// spacer inserts an &nbsp; line unless one is already last or no heading has
// been emitted yet.
func (b *descBuilder) spacer() {
	if b.lastIsSpacer() || !b.sawHeading {
		return
	}
	b.emit("&nbsp;")
}

// forceSpacer inserts an &nbsp; line regardless of heading state.
func (b *descBuilder) forceSpacer() {
	if !b.lastIsSpacer() {
		b.emit("&nbsp;")
	}
}

// boldLeadSpacer decides whether a paragraph that opens with bold text gets a
// spacer above it. Consecutive paragraphs led by the same bold word (or the
// same company in a different form) share one visual block.
func (b *descBuilder) boldLeadSpacer(content string) bool {
	trimmed := strings.TrimSpace(content)
	m := boldLeadRE.FindStringSubmatch(trimmed)
	should := false
	if m != nil {
		word := strings.ToLower(strings.TrimSpace(numberedPointRE.ReplaceAllString(m[1], "")))
		entirelyBold := strings.HasPrefix(trimmed, "<b>") && strings.HasSuffix(trimmed, "</b>")
		if entirelyBold && len(content) < 80 && !strings.HasSuffix(trimmed, ":") {
			if word != b.prevBoldWord {
				should = true
			}
		} else {
			rest := strings.TrimSpace(trimmed[len(m[0]):])
			if rest == "" || !strings.HasPrefix(rest, ":") {
				sameCompany := b.prevBoldWord != "" &&
					(strings.Contains(word, b.prevBoldWord) || strings.Contains(b.prevBoldWord, word))
				if word != b.prevBoldWord && !sameCompany {
					should = true
				}
			}
		}
		b.prevBoldWord = word
	}
	if !should && boldNumberRE.MatchString(trimmed) {
		should = true
	}
	return should
}

// ExtractDescription renders the report body between the first main heading
// and the summary/coverage tail as CKEditor-ready markup.
func ExtractDescription(doc *docmodel.Document) string {
	b := &descBuilder{}
	section := secNone
	capture := false
	lastHeading := ""
	used := map[string]bool{}

	for _, block := range doc.Blocks {
		if block.Table != nil {
			if lastHeading == "report coverage table" {
				continue
			}
			b.emit(styledTable(block.Table))
			continue
		}
		p := block.Para
		if p == nil {
			continue
		}
		text := RemoveEmojis(strings.TrimSpace(p.Text()))
		if text == "" {
			continue
		}
		cleaned := cleanDescHeading(text)

		if !capture {
			for _, t := range descTargets {
				if strings.Contains(cleaned, t.heading) {
					capture = true
					break
				}
			}
		}
		if capture {
			stopped := false
			for _, stop := range descStops {
				if strings.Contains(cleaned, stop) {
					stopped = true
					break
				}
			}
			if stopped {
				break
			}
		}
		if !capture {
			continue
		}

		content := RunsToMarkup(p.Runs)

		if h, sec, ok := matchDescTarget(cleaned, used); ok {
			lastHeading = h
			section = sec
			b.closeList()
			if sec != secIntro {
				b.spacer()
			}
			b.emit("<h2><strong>" + headingTitle(h) + "</strong></h2>")
			b.sawHeading = true
			used[h] = true
			continue
		}

		if h, ok := matchRegionHeading(cleaned, content, section); ok && !used[h] {
			emitRegionHeading(b, p, text, content, h, used)
			continue
		}

		if h, ok := matchOpportunityHeading(cleaned, section); ok && !used[h] {
			b.closeList()
			b.spacer()
			b.emit("<h2><strong>" + headingTitle(h) + "</strong></h2>")
			b.sawHeading = true
			used[h] = true
			continue
		}

		if h, ok := matchSegmentationHeading(cleaned, content, section); ok && !used[h] {
			if segmentationStandalone(text, content, h) {
				b.closeList()
				b.spacer()
				b.forceSpacer()
				b.emit("<h2><strong>" + strings.TrimSpace(text) + "</strong></h2>")
				b.sawHeading = true
				used[h] = true
			} else {
				b.closeList()
				b.emit("<p style='line-height:1.6'>" + content + "</p>")
			}
			continue
		}

		if pat("dottedHeading").MatchString(strings.TrimSpace(text)) {
			b.closeList()
			b.emit("<h3><strong>" + content + "</strong></h3>")
			continue
		}

		if p.InList {
			if !b.listOpen {
				b.emit("<ul>")
				b.listOpen = true
			}
			b.emit("<li><p>" + content + "</p></li>")
			continue
		}

		b.closeList()
		emitDescParagraph(b, section, content)
	}

	b.closeList()
	return strings.Join(b.out, "\n")
}

func matchDescTarget(cleaned string, used map[string]bool) (string, descSection, bool) {
	for _, t := range descTargets {
		if strings.Contains(cleaned, t.heading) {
			if used[t.heading] {
				return "", secNone, false
			}
			return t.heading, t.section, true
		}
	}
	return "", secNone, false
}

func matchRegionHeading(cleaned, content string, section descSection) (string, bool) {
	if section != secRegional {
		return "", false
	}
	folded := strings.ReplaceAll(cleaned, "-", " ")
	for _, h := range descRegionHeadings {
		if strings.Contains(folded, h) {
			return h, true
		}
	}
	low := strings.ToLower(content)
	lameaText := strings.Contains(folded, "latin america") && strings.Contains(folded, "middle east") &&
		strings.Contains(folded, "africa") && strings.Contains(folded, "lamea")
	lameaContent := strings.Contains(low, "latin america") && strings.Contains(low, "middle east") &&
		strings.Contains(low, "africa") && strings.Contains(low, "lamea")
	if lameaText || lameaContent {
		return "latin america and middle east & africa (lamea)", true
	}
	return "", false
}

// emitRegionHeading promotes a standalone region line to <h2>; lines that are
// part of a sentence fall back to paragraphs (with the regional spacer rule
// for bold-led region names). Returns true when handled as a heading.
func emitRegionHeading(b *descBuilder, p *docmodel.Paragraph, text, content, heading string, used map[string]bool) bool {
	trimmed := strings.TrimSpace(text)
	standalone := len(trimmed) <= len(heading)+10 &&
		strings.HasPrefix(strings.ReplaceAll(strings.ToLower(trimmed), "-", " "), heading) &&
		!strings.ContainsAny(trimmed, ",.;:!?")

	if !standalone {
		core := headingNumberRE.ReplaceAllString(trimmed, "")
		core = strings.ToLower(headingBulletRE.ReplaceAllString(core, ""))
		core = strings.ReplaceAll(core, "-", " ")
		if (strings.Contains(core, heading) || strings.HasPrefix(core, heading)) &&
			len(trimmed) <= 50 && !strings.ContainsAny(trimmed, ";!?") {
			standalone = true
		}
	}
	if !standalone && strings.Contains(heading, "latin america") {
		if len(trimmed) <= 80 && !strings.ContainsAny(trimmed, ".;!?") &&
			(strings.Contains(strings.ToLower(trimmed), "latin america") || strings.Contains(strings.ToLower(content), "latin america")) {
			standalone = true
		}
	}

	if standalone {
		b.closeList()
		b.spacer()
		b.forceSpacer()
		title := trimmed
		if m := boldLeadRE.FindStringSubmatch(strings.TrimSpace(content)); m != nil {
			title = m[1]
		}
		title = headingNumberRE.ReplaceAllString(title, "")
		title = strings.TrimSpace(headingBulletRE.ReplaceAllString(title, ""))
		b.emit("<h2><strong>" + title + "</strong></h2>")
		b.sawHeading = true
		used[heading] = true
		return true
	}

	b.closeList()
	if !p.InList {
		if m := boldLeadRE.FindStringSubmatch(strings.TrimSpace(content)); m != nil {
			rest := strings.TrimSpace(strings.TrimSpace(content)[len(m[0]):])
			if rest != "" && !strings.HasPrefix(rest, "<b>") {
				b.forceSpacer()
			}
		}
	}
	b.emit("<p style='line-height:1.6'>" + content + "</p>")
	return false
}

func matchOpportunityHeading(cleaned string, section descSection) (string, bool) {
	if section != secRecentDev {
		return "", false
	}
	for _, h := range descOpportunityHeadings {
		if strings.Contains(cleaned, h) {
			return h, true
		}
	}
	return "", false
}

func matchSegmentationHeading(cleaned, content string, section descSection) (string, bool) {
	if section != secSegmentation {
		return "", false
	}
	if m := byHeadingRE.FindStringSubmatch(cleaned); m != nil {
		return "by " + m[1], true
	}
	if m := boldByHeadingRE.FindStringSubmatch(strings.ToLower(content)); m != nil {
		return "by " + strings.TrimSpace(m[1]), true
	}
	return "", false
}

func segmentationStandalone(text, content, heading string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= len(heading)+10 &&
		strings.HasPrefix(strings.ToLower(trimmed), heading) &&
		!strings.ContainsAny(trimmed, ",.;!?") {
		return true
	}
	if strings.HasSuffix(trimmed, ":") && len(trimmed) <= len(heading)+5 {
		return true
	}
	if len(trimmed) <= len(heading)+5 {
		squash := func(s string) string {
			s = strings.ReplaceAll(s, " ", "")
			s = strings.ReplaceAll(s, "-", "")
			return strings.ReplaceAll(s, "_", "")
		}
		if strings.Contains(squash(strings.ToLower(trimmed)), squash(heading)) {
			return true
		}
	}
	if len(trimmed) <= 50 && !strings.ContainsAny(trimmed, ";!?") &&
		(strings.Contains(strings.ToLower(trimmed), "by ") || strings.Contains(strings.ToLower(content), "<b>by ")) {
		return true
	}
	return false
}

// emitDescParagraph writes a regular paragraph applying the per-section
// spacer rules.
func emitDescParagraph(b *descBuilder, section descSection, content string) {
	afterHeading := b.afterMainHeading()
	trimmed := strings.TrimSpace(content)
	entirelyBold := strings.HasPrefix(trimmed, "<b>") && strings.HasSuffix(trimmed, "</b>")

	switch section {
	case secTrends, secCompetitive, secEndUser, secRegional:
		if !afterHeading && b.boldLeadSpacer(content) {
			b.forceSpacer()
		}
	case secSegmentation:
		if !afterHeading && entirelyBold && len(content) < 80 && !strings.HasSuffix(trimmed, ":") {
			b.forceSpacer()
		}
	}

	b.emit("<p style='line-height:1.6'>" + content + "</p>")

	switch section {
	case secTrends, secCompetitive, secEndUser, secRegional, secSegmentation:
	default:
		if len(content) >= 200 {
			b.emit("&nbsp;")
		}
	}
}
