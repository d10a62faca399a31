// Package extract implements the field heuristics that turn a loaded report
// document into an ExtractionRecord. Extractors are resilient: they return
// empty values (or the title sentinel) instead of errors.
package extract

import (
	"regexp"
	"strings"

	"reportforge/internal/docmodel"
)

// dash is the canonical en dash used across normalized output.
const dash = "–"

// emojiPattern covers emoticons, pictographs, transport, alchemical,
// geometric, arrows, supplemental symbols, chess, misc symbols, dingbats,
// flags and the supplementary planes.
var emojiPattern = regexp.MustCompile(`[` +
	`\x{1F600}-\x{1F64F}` +
	`\x{1F300}-\x{1F5FF}` +
	`\x{1F680}-\x{1F6FF}` +
	`\x{1F700}-\x{1F77F}` +
	`\x{1F780}-\x{1F7FF}` +
	`\x{1F800}-\x{1F8FF}` +
	`\x{1F900}-\x{1F9FF}` +
	`\x{1FA00}-\x{1FAFF}` +
	`\x{2600}-\x{26FF}` +
	`\x{2700}-\x{27BF}` +
	`\x{2B00}-\x{2BFF}` +
	`\x{1F1E0}-\x{1F1FF}` +
	`\x{10000}-\x{10FFFF}` +
	`]+`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// RemoveEmojis strips emoji and pictographic symbols from text.
func RemoveEmojis(s string) string {
	return emojiPattern.ReplaceAllString(s, "")
}

// Normalize cleans a free-text fragment: emoji removal, replacement-character
// and em-dash repair (generated documents carry U+FFFD where an en dash
// belongs), whitespace collapsing and trimming.
func Normalize(s string) string {
	s = RemoveEmojis(s)
	s = strings.ReplaceAll(s, "�", dash)
	s = strings.ReplaceAll(s, "—", dash)
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// RunsToMarkup renders runs as inline markup joined by single spaces.
// Hyperlink runs become anchors (plain text when the target is unresolved),
// bold+italic nests as <b><i>, and empty runs are dropped. Tag-free text
// passes through unchanged, so the function is idempotent on its own output.
func RunsToMarkup(runs []docmodel.Run) string {
	var parts []string
	for i := range runs {
		r := &runs[i]
		txt := RemoveEmojis(strings.TrimSpace(r.Text))
		if txt == "" {
			continue
		}
		switch {
		case r.Hyperlink != "":
			parts = append(parts, `<a href="`+r.Hyperlink+`">`+txt+"</a>")
		case r.Bold && r.Italic:
			parts = append(parts, "<b><i>"+txt+"</i></b>")
		case r.Bold:
			parts = append(parts, "<b>"+txt+"</b>")
		case r.Italic:
			parts = append(parts, "<i>"+txt+"</i>")
		default:
			parts = append(parts, txt)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// RunsToMarkupTight is the concatenating variant used for table cells and
// the single-pass path: runs keep their inner whitespace, a run holding a
// manual line break contributes a <br> before its text, and nothing is
// joined with spaces.
func RunsToMarkupTight(runs []docmodel.Run) string {
	var b strings.Builder
	for i := range runs {
		r := &runs[i]
		txt := RemoveEmojis(r.Text)
		if txt == "" && !r.HasBreak {
			continue
		}
		if r.HasBreak {
			b.WriteString("<br>")
		}
		switch {
		case r.Bold && r.Italic:
			b.WriteString("<b><i>" + txt + "</i></b>")
		case r.Bold:
			b.WriteString("<b>" + txt + "</b>")
		case r.Italic:
			b.WriteString("<i>" + txt + "</i>")
		default:
			b.WriteString(txt)
		}
	}
	return strings.TrimSpace(b.String())
}
