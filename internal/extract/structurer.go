package extract

import (
	"regexp"
	"strings"

	"reportforge/internal/docmodel"
)

var (
	headingNumberRE = regexp.MustCompile(`^\d+(\.\d+)*[\.\)]\s*`)
	headingBulletRE = regexp.MustCompile(`^[•\-–]\s*`)
)

// List style classes recognized while structuring TOC and description lists.
const (
	styleBullet = "bullet"
	styleCircle = "circle"
	styleDash   = "dash"
	styleNumber = "number"
	styleSquare = "square"
)

// Glyphs that mark a paragraph as a visual list item even without native
// Word numbering. The dash variant additionally counts for the TOC probe.
const listGlyphs = "•–○◦‣▪▫*+"

var mainLevelLiterals = []string{
	"Benchmarking of Market Leaders",
	"Recent Product Developments and Approvals",
	"Strategic Collaborations and M&A",
	"Market Share Analysis",
	"Competitive Strategies",
}

var tagStripper = strings.NewReplacer("<b>", "", "</b>", "", "<strong>", "", "</strong>", "")

func listStyleType(text string) string {
	switch {
	case strings.ContainsAny(text, "•*"):
		return styleBullet
	case strings.ContainsAny(text, "○◦"):
		return styleCircle
	case strings.ContainsAny(text, "–—"):
		return styleDash
	case pat("numberedPrefix").MatchString(text):
		return styleNumber
	case strings.ContainsAny(text, "▪▫"):
		return styleSquare
	}
	return styleBullet
}

// isMainLevelItem reports whether a list item belongs at the top level of
// the current list rather than nested under the open parent.
func isMainLevelItem(text, parentStyle string) bool {
	if parentStyle == "" {
		return true
	}
	if listStyleType(text) != parentStyle {
		return true
	}
	if strings.Contains(text, "<b>") || strings.Contains(text, "<strong>") {
		if !strings.HasSuffix(strings.TrimSpace(text), ":") {
			return true
		}
	}
	for _, lit := range mainLevelLiterals {
		if strings.Contains(text, lit) {
			return true
		}
	}
	return false
}

// cleanListHeading strips numbering, bullets and collapsed whitespace from a
// heading line.
func cleanListHeading(text string) string {
	text = RemoveEmojis(strings.TrimSpace(text))
	text = headingNumberRE.ReplaceAllString(text, "")
	text = headingBulletRE.ReplaceAllString(text, "")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

func paraHasGlyphList(text string) bool {
	return strings.ContainsAny(text, listGlyphs) || pat("numberedPrefix").MatchString(text)
}

func paraInList(p *docmodel.Paragraph) bool {
	return p.InList || paraHasGlyphList(strings.TrimSpace(p.Text()))
}

// listContext tracks open <ul> nesting while emitting TOC or description
// markup. Closing tokens mirror the opens so the output stays balanced.
type listContext struct {
	out         []string
	open        bool
	depth       int
	parentStyle string
}

func (lc *listContext) emit(s string) {
	lc.out = append(lc.out, s)
}

// closeAll closes every open list level.
func (lc *listContext) closeAll() {
	if !lc.open {
		return
	}
	for i := 0; i < lc.depth; i++ {
		lc.emit("</ul>")
	}
	lc.open = false
	lc.depth = 0
}

// openParent starts a fresh list with a bold parent item and an open child
// list awaiting children.
func (lc *listContext) openParent(content, style string) {
	lc.closeAll()
	lc.emit("<ul>")
	lc.emit("<li><p><strong>" + content + "</strong></p>")
	lc.emit("<ul>")
	lc.open = true
	lc.depth = 2
	lc.parentStyle = style
}

// addItem appends a plain list item, opening the outer list when needed.
func (lc *listContext) addItem(content, style string) {
	if !lc.open {
		lc.emit("<ul>")
		lc.open = true
		lc.depth = 1
		lc.parentStyle = style
	}
	lc.emit("<li><p>" + content + "</p></li>")
}

// promoteToMain closes every child list so the next item lands at top level.
func (lc *listContext) promoteToMain(style string) {
	if !lc.open || lc.depth <= 1 {
		return
	}
	for lc.depth > 1 {
		lc.emit("</ul>")
		lc.emit("</li>")
		lc.depth--
	}
	lc.parentStyle = style
}

// closeSection fully unwinds a parent/child structure including the parent
// item and outer list.
func (lc *listContext) closeSection() {
	if !lc.open || lc.depth <= 1 {
		return
	}
	for lc.depth > 1 {
		lc.emit("</ul>")
		lc.emit("</li>")
		lc.depth--
	}
	lc.emit("</ul>")
	lc.open = false
	lc.depth = 0
}

// recentOutputContains reports whether any of the last n emitted lines
// contains needle.
func (lc *listContext) recentOutputContains(needle string, n int) bool {
	start := len(lc.out) - n
	if start < 0 {
		start = 0
	}
	for _, line := range lc.out[start:] {
		if strings.Contains(line, needle) {
			return true
		}
	}
	return false
}
