package extract

import (
	"strings"

	"reportforge/internal/docmodel"
)

// tocVariant selects which rendering rules the TOC walker applies. The
// variant is decided up front from how the Executive Summary line and the
// line after it are formatted.
type tocVariant int

const (
	tocHeadingThenList tocVariant = iota + 1
	tocParentChild
	tocNestedBold
)

// determineTOCVariant probes the Executive Summary paragraph and its first
// follower for bold and list formatting.
func determineTOCVariant(doc *docmodel.Document) tocVariant {
	var (
		esBold, esInList       bool
		firstBold, firstInList bool
		found                  bool
		after                  int
	)
	for _, p := range doc.Paragraphs {
		text := strings.TrimSpace(p.Text())
		if text == "" {
			continue
		}
		if !found && strings.Contains(text, "Executive Summary") {
			found = true
			esBold = paraBold(p)
			esInList = p.InList || strings.ContainsAny(text, listGlyphs+"-") || pat("numberedPrefix").MatchString(text)
			continue
		}
		if !found {
			continue
		}
		after++
		if after == 1 {
			firstBold = paraBold(p)
			firstInList = p.InList || strings.ContainsAny(text, listGlyphs+"-") || pat("numberedPrefix").MatchString(text)
			break
		}
	}
	if after >= 1 {
		switch {
		case esBold && esInList && firstInList && !firstBold:
			return tocParentChild
		case esBold && firstInList && !firstBold:
			return tocHeadingThenList
		case esBold && firstInList && firstBold:
			return tocNestedBold
		case esBold && firstBold && !firstInList:
			return tocNestedBold
		}
	}
	return tocHeadingThenList
}

func paraBold(p *docmodel.Paragraph) bool {
	if p.HasBoldRun() {
		return true
	}
	text := strings.TrimSpace(p.Text())
	return strings.Contains(text, "<strong>") || strings.Contains(text, "<b>")
}

// ExtractTOC renders the table-of-contents section, starting at the
// "Executive Summary" paragraph, as heading and nested-list markup.
func ExtractTOC(doc *docmodel.Document) string {
	variant := determineTOCVariant(doc)
	lc := &listContext{}
	capture := false

	for i := range doc.Paragraphs {
		p := doc.Paragraphs[i]
		text := strings.TrimSpace(p.Text())
		if text == "" {
			continue
		}
		bold := paraBold(p)

		if !capture {
			if !strings.Contains(text, "Executive Summary") {
				continue
			}
			capture = true
			if bold {
				emitHeadingWithInlineBullets(lc, text)
			}
			continue
		}

		switch variant {
		case tocParentChild:
			tocParentChildPara(lc, p, text, bold)
		case tocNestedBold:
			tocNestedBoldPara(lc, p, text, bold)
		default:
			tocHeadingThenListPara(lc, p, text, bold)
		}
	}

	lc.closeAll()
	return strings.Join(lc.out, "\n")
}

// emitHeadingWithInlineBullets renders a bold line as a <strong> heading; an
// inline "•" splits the line into heading plus a one-level bullet list.
func emitHeadingWithInlineBullets(lc *listContext, text string) {
	if strings.Contains(text, "•") {
		var parts []string
		for _, p := range strings.Split(text, "•") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			return
		}
		lc.emit("\n<strong>" + cleanListHeading(parts[0]) + "</strong>")
		if len(parts) > 1 {
			lc.emit("<ul>")
			for _, item := range parts[1:] {
				if item = strings.TrimSpace(RemoveEmojis(item)); item != "" {
					lc.emit("<li><p>" + item + "</p></li>")
				}
			}
			lc.emit("</ul>")
		}
		return
	}
	if h := tagStripper.Replace(cleanListHeading(text)); h != "" {
		lc.emit("\n<strong>" + h + "</strong>")
	}
}

func emitHeading(lc *listContext, text string) {
	lc.closeAll()
	if h := tagStripper.Replace(cleanListHeading(text)); h != "" {
		lc.emit("\n<strong>" + h + "</strong>")
	}
}

func isParentContent(lc *listContext, content string) bool {
	trimmed := strings.TrimSpace(content)
	return strings.Contains(content, ":") && strings.HasSuffix(trimmed, ":") &&
		!lc.recentOutputContains("List of Figures", 10)
}

func glyphListStyle(text string) string {
	switch {
	case strings.ContainsAny(text, "•*"):
		return styleBullet
	case strings.ContainsAny(text, "○◦"):
		return styleCircle
	case strings.Contains(text, "–"):
		return styleDash
	case pat("numberedPrefix").MatchString(text):
		return styleNumber
	}
	return styleBullet
}

// tocHeadingThenListPara applies the default rules: bold lines outside lists
// are headings, list lines nest under colon-ended parents.
func tocHeadingThenListPara(lc *listContext, p *docmodel.Paragraph, text string, bold bool) {
	inList := paraInList(p)
	content := RunsToMarkup(p.Runs)

	if bold {
		if !inList {
			emitHeading(lc, text)
			return
		}
		if isParentContent(lc, content) {
			lc.openParent(content, glyphListStyle(text))
			return
		}
		lc.addItem(content, glyphListStyle(text))
		return
	}

	if inList {
		style := glyphListStyle(text)
		switch {
		case isParentContent(lc, content):
			lc.openParent(content, style)
		case strings.Contains(content, "Strategy Analysis:"):
			lc.closeSection()
			lc.addItem(content, style)
		default:
			if isMainLevelItem(content, lc.parentStyle) {
				lc.promoteToMain(style)
			}
			lc.addItem(content, style)
		}
		return
	}
	if isParentContent(lc, content) {
		lc.openParent(content, glyphListStyle(text))
		return
	}
	lc.closeAll()
	if content != "" {
		lc.emit("<p>" + content + "</p>")
	}
}

// tocParentChildPara treats every bold line as a parent heading and non-bold
// lines as children, with extra parent and new-section triggers.
func tocParentChildPara(lc *listContext, p *docmodel.Paragraph, text string, bold bool) {
	if bold {
		emitHeading(lc, text)
		return
	}

	inList := paraInList(p)
	content := RunsToMarkup(p.Runs)

	if inList {
		style := glyphListStyle(text)
		parent := isParentContent(lc, content) ||
			(strings.Contains(content, "Leading Companies") && !lc.recentOutputContains("List of Figures", 10))
		switch {
		case parent:
			lc.openParent(content, style)
		case strings.Contains(content, "Strategy Analysis:") ||
			strings.Contains(content, "Market Share by Key Players") ||
			strings.Contains(content, "Competitive Strategies and Positioning"):
			lc.closeSection()
			lc.addItem(content, style)
		default:
			if isMainLevelItem(content, lc.parentStyle) {
				lc.promoteToMain(style)
			}
			lc.addItem(content, style)
		}
		return
	}
	if isParentContent(lc, content) {
		lc.openParent(content, glyphListStyle(text))
		return
	}
	lc.closeAll()
	if content != "" {
		lc.emit("<p>" + content + "</p>")
	}
}

// tocNestedBoldPara handles documents whose list items are bold: bold lines
// with inline bullets split into heading plus list, list items lose their
// bold tags, and "Country-Level Breakdown:" opens a child list in place.
func tocNestedBoldPara(lc *listContext, p *docmodel.Paragraph, text string, bold bool) {
	content := RunsToMarkup(p.Runs)
	inList := paraInList(p)

	if bold && strings.Contains(text, "•") {
		lc.closeAll()
		emitHeadingWithInlineBullets(lc, text)
		return
	}

	switch {
	case inList:
		content = tagStripper.Replace(content)
		style := glyphListStyle(text)
		parent := (isParentContent(lc, content) || regionalAnalysisParent(content)) &&
			!lc.recentOutputContains("List of Figures", 10)
		switch {
		case parent:
			lc.openParent(content, style)
		case strings.Contains(content, "Country-Level Breakdown:"):
			if !lc.open {
				lc.emit("<ul>")
				lc.open = true
				lc.depth = 1
			}
			lc.emit("<li><p><strong>" + content + "</strong></p>")
			lc.emit("<ul>")
			lc.depth++
		default:
			if isMainLevelItem(content, lc.parentStyle) {
				lc.promoteToMain(style)
			}
			lc.addItem(content, style)
		}
	case bold:
		lc.closeAll()
		if h := cleanListHeading(text); h != "" {
			lc.emit("\n<strong>" + h + "</strong>")
		}
	case isParentContent(lc, content) && !strings.Contains(content, "Country-Level Breakdown:"):
		lc.openParent(content, glyphListStyle(text))
	default:
		lc.closeAll()
		if content != "" {
			lc.emit("<p>" + content + "</p>")
		}
	}
}

// regionalAnalysisParent recognizes region-scoped market analysis items that
// act as parents even without a trailing colon.
func regionalAnalysisParent(content string) bool {
	if !strings.Contains(content, "Market Analysis") {
		return false
	}
	for _, region := range []string{"North America", "Europe", "Asia-Pacific", "Latin America", "Middle East"} {
		if strings.Contains(content, region) {
			return true
		}
	}
	return false
}
