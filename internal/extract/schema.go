package extract

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"reportforge/internal/docmodel"
)

var breadcrumbItemRE = regexp.MustCompile(`("item":\s*"https://www\.strategicmarketresearch\.com/market-report/)[^"]*(")`)

// docText flattens the document's non-empty paragraph texts, one per line.
func docText(doc *docmodel.Document) string {
	var lines []string
	for _, p := range doc.Paragraphs {
		if t := p.Text(); strings.TrimSpace(t) != "" {
			lines = append(lines, t)
		}
	}
	return strings.Join(lines, "\n")
}

// extractJSONBlock locates the JSON object declaring the given @type by
// walking back to the nearest "{" and counting braces forward. Braces inside
// string literals are not tracked; schema blocks in practice never carry
// them in text values.
func extractJSONBlock(text, typeName string) string {
	typeRE := regexp.MustCompile(`"@type"\s*:\s*"` + regexp.QuoteMeta(typeName) + `"`)
	loc := typeRE.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	start := strings.LastIndex(text[:loc[0]], "{")
	if start == -1 {
		return ""
	}
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(text[start : i+1])
			}
		}
	}
	return strings.TrimSpace(text[start:])
}

// ExtractFAQSchema returns the raw FAQPage JSON-LD block embedded in the
// document, or an empty string.
func ExtractFAQSchema(doc *docmodel.Document) string {
	return extractJSONBlock(docText(doc), "FAQPage")
}

type faqSchema struct {
	MainEntity []struct {
		Name           string `json:"name"`
		AcceptedAnswer struct {
			Text string `json:"text"`
		} `json:"acceptedAnswer"`
	} `json:"mainEntity"`
}

// ExtractMethodology formats the FAQ block as numbered Q/A paragraphs. The
// counter advances for every entry so the numbering mirrors the schema even
// when an entry is incomplete and skipped.
func ExtractMethodology(doc *docmodel.Document) string {
	raw := ExtractFAQSchema(doc)
	if raw == "" {
		return ""
	}
	cleaned := whitespaceRun.ReplaceAllString(strings.TrimSpace(raw), " ")
	var schema faqSchema
	if err := json.Unmarshal([]byte(cleaned), &schema); err != nil {
		return ""
	}
	var faqs []string
	for i, item := range schema.MainEntity {
		q := strings.TrimSpace(item.Name)
		a := strings.TrimSpace(item.AcceptedAnswer.Text)
		if q == "" || a == "" {
			continue
		}
		faqs = append(faqs, fmt.Sprintf("<p><strong>Q%d: %s</strong><br>A%d: %s</p>",
			i+1, html.EscapeString(q), i+1, html.EscapeString(a)))
	}
	return strings.Join(faqs, "\n")
}

// ExtractBreadcrumbSchema returns the BreadcrumbList JSON-LD block with the
// market-report URL slug rewritten from the filename-derived SKU code.
func ExtractBreadcrumbSchema(doc *docmodel.Document, filename string) string {
	raw := extractJSONBlock(docText(doc), "BreadcrumbList")
	if raw == "" {
		return ""
	}
	slug := SKUCode(filename)
	if !strings.HasSuffix(strings.ToLower(slug), "market") {
		slug += " market"
	}
	slug = strings.ReplaceAll(slug, " ", "-")
	return breadcrumbItemRE.ReplaceAllString(raw, "${1}"+slug+"${2}")
}
