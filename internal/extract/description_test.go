package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longIntroParagraph = "The canned meat market has evolved into a mature yet steadily expanding category, supported by long shelf life, supply chain resilience, and shifting consumer preferences toward affordable protein sources across both developed and emerging economies worldwide."

func TestExtractDescriptionSections(t *testing.T) {
	doc := docOf(
		para("Report preamble, never captured."),
		para("Section 1: Introduction and Strategic Context"),
		para(longIntroParagraph),
		para("Section 2: Market Segmentation and Forecast Scope"),
		para("By Product Type"),
		para("Section 5: Regional Landscape and Adoption Outlook"),
		para("North America"),
		para("Report Summary, FAQs, and SEO Schema"),
		para("Trailing content after the stop phrase."),
	)
	got := ExtractDescription(doc)

	assert.Contains(t, got, "<h2><strong>Introduction And Strategic Context</strong></h2>")
	assert.Contains(t, got, "<h2><strong>Market Segmentation And Forecast Scope</strong></h2>")
	assert.Contains(t, got, "<h2><strong>By Product Type</strong></h2>")
	assert.Contains(t, got, "<h2><strong>Regional Landscape And Adoption Outlook</strong></h2>")
	assert.Contains(t, got, "<h2><strong>North America</strong></h2>")

	assert.NotContains(t, got, "Report preamble")
	assert.NotContains(t, got, "Trailing content")
	assert.NotContains(t, got, "Report Summary")
}

func TestExtractDescriptionLongParagraphSpacer(t *testing.T) {
	doc := docOf(
		para("Introduction and Strategic Context"),
		para(longIntroParagraph),
		para("Short note."),
	)
	got := strings.Split(ExtractDescription(doc), "\n")
	require.GreaterOrEqual(t, len(got), 4)

	assert.Equal(t, "<h2><strong>Introduction And Strategic Context</strong></h2>", got[0])
	assert.Equal(t, "<p style='line-height:1.6'>"+longIntroParagraph+"</p>", got[1])
	assert.Equal(t, "&nbsp;", got[2], "paragraphs of 200+ characters are followed by a spacer")
	assert.Equal(t, "<p style='line-height:1.6'>Short note.</p>", got[3])
}

func TestExtractDescriptionList(t *testing.T) {
	doc := docOf(
		para("Introduction and Strategic Context"),
		listItem("Affordable protein positioning"),
		listItem("Long shelf life"),
		para("Closing paragraph."),
	)
	got := ExtractDescription(doc)

	assert.Contains(t, got, "<ul>\n<li><p>Affordable protein positioning</p></li>\n<li><p>Long shelf life</p></li>\n</ul>")
	assert.Equal(t, strings.Count(got, "<ul>"), strings.Count(got, "</ul>"))
}

func TestExtractDescriptionRegionHeadingInSentence(t *testing.T) {
	doc := docOf(
		para("Regional Landscape and Adoption Outlook"),
		para("North America accounts for the largest share of global revenue, supported by established retail networks."),
	)
	got := ExtractDescription(doc)

	assert.NotContains(t, got, "<h2><strong>North America accounts")
	assert.Contains(t, got, "<p style='line-height:1.6'>North America accounts for the largest share")
}

func TestExtractDescriptionOpportunityHeadings(t *testing.T) {
	doc := docOf(
		para("Recent Developments + Opportunities & Restraints"),
		para("Opportunities"),
		para("Private label expansion in discount retail."),
		para("Restraints"),
		para("Sodium content scrutiny in developed markets."),
	)
	got := ExtractDescription(doc)

	assert.Contains(t, got, "<h2><strong>Opportunities</strong></h2>")
	assert.Contains(t, got, "<h2><strong>Restraints</strong></h2>")
}

func TestExtractDescriptionDottedHeading(t *testing.T) {
	doc := docOf(
		para("Introduction and Strategic Context"),
		para("2.1 Forecast Scope"),
	)
	got := ExtractDescription(doc)
	assert.Contains(t, got, "<h3><strong>2.1 Forecast Scope</strong></h3>")
}

func TestExtractDescriptionSkipsCoverageTable(t *testing.T) {
	coverage := tableOf(
		[]string{"Report Attribute", "Details"},
		[]string{"Forecast Period", "2024-2030"},
	)
	doc := docOf(
		para("Introduction and Strategic Context"),
		para("Report Coverage Table"),
		coverage,
	)
	got := ExtractDescription(doc)
	assert.Equal(t, "<h2><strong>Introduction And Strategic Context</strong></h2>", got,
		"the body walk stops at the coverage heading and never renders its table")
}

func TestCleanDescHeading(t *testing.T) {
	assert.Equal(t, "introduction and strategic context", cleanDescHeading("• Section 1: Introduction and Strategic Context"))
	assert.Equal(t, "opportunities", cleanDescHeading("6. Opportunities"))
}

func TestHeadingTitle(t *testing.T) {
	assert.Equal(t, "End-User Dynamics And Use Case", headingTitle("end-user dynamics and use case"))
	assert.Equal(t, "By Product Type", headingTitle("BY PRODUCT TYPE"))
}

func TestDescBuilderSpacerRules(t *testing.T) {
	b := &descBuilder{}
	b.spacer()
	assert.Empty(t, b.out, "no spacer before the first heading")

	b.emit("<h2><strong>Opportunities</strong></h2>")
	b.sawHeading = true
	b.spacer()
	b.spacer()
	assert.Equal(t, []string{"<h2><strong>Opportunities</strong></h2>", "&nbsp;"}, b.out,
		"consecutive spacers collapse")
}

func TestBoldLeadSpacer(t *testing.T) {
	b := &descBuilder{}
	assert.True(t, b.boldLeadSpacer("<b>Acme Foods</b> leads the category."))
	assert.False(t, b.boldLeadSpacer("<b>Acme Foods Inc</b> expanded capacity."),
		"the same company in a longer form shares the block")
	assert.True(t, b.boldLeadSpacer("<b>Birchwood Provisions</b> follows."))
}
