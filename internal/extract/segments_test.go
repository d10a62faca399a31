package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSegments(t *testing.T) {
	doc := docOf(
		para("Market Analysis by Application covers adoption trends."),
		para("By Application\nThe product finds usage in Food and Beverages, Pharmaceuticals, and Cosmetics."),
		para("By End-User"),
		para("By Geography\nNorth America represents the leading regional market."),
	)
	hits := detectSegments(doc)
	require.Len(t, hits, 3)

	app, ok := hits[segApplication]
	require.True(t, ok)
	assert.Equal(t, 1, app.idx, "narrative mention of the axis never counts as a marker")

	_, ok = hits[segEndUser]
	assert.True(t, ok)
	_, ok = hits[segRegion]
	assert.True(t, ok)
}

func TestDetectSegmentsFirstOccurrenceWins(t *testing.T) {
	doc := docOf(
		para("By Product Type\nThe market is divided into Widgets and Gadgets."),
		para("By Product Type\nLater duplicate section."),
	)
	hits := detectSegments(doc)
	require.Len(t, hits, 1)
	assert.Equal(t, 0, hits[segType].idx)
}

func TestMineHeaderValuesEncompassing(t *testing.T) {
	header := "The market is studied encompassing Canned Beef, Canned Chicken, and Specialty Canned Meats."
	values := mineHeaderValues(header, segType)
	assert.Equal(t, []string{"Canned Beef", "Canned Chicken", "Specialty Canned Meats"}, values)
}

func TestMineHeaderValuesNoCue(t *testing.T) {
	assert.Nil(t, mineHeaderValues("This section discusses growth drivers.", segType))
}

func TestExtractSegmentValuesDropsSentencePeriod(t *testing.T) {
	doc := docOf(para("By Product Type\nThe market is broadly divided into Canned Beef, Canned Chicken, Canned Pork, Canned Fish, and Specialty Canned Meats."))

	got := extractSegmentValues(doc, 0, segType)
	assert.Equal(t,
		[]string{"Canned Beef", "Canned Chicken", "Canned Pork", "Canned Fish", "Specialty Canned Meats"},
		got, "the final list item must not reappear with its sentence period")
}

func TestTitleCaseValue(t *testing.T) {
	assert.Equal(t, "Canned Beef and Pork", titleCaseValue("canned beef and pork"))
	assert.Equal(t, "NGS Panels", titleCaseValue("ngs panels"))
}

func TestCleanColonValue(t *testing.T) {
	v, ok := cleanColonValue("Food and Beverages", segApplication, nil)
	require.True(t, ok)
	assert.Equal(t, "Food & Beverages", v, "connective folds to ampersand outside the region axis")

	_, ok = cleanColonValue("North America", segApplication, nil)
	assert.False(t, ok, "region names never leak into other axes")

	_, ok = cleanColonValue("The market", segApplication, nil)
	assert.False(t, ok)
}

func TestCleanColonValueKeepsAbbreviation(t *testing.T) {
	v, ok := cleanColonValue("Ambulatory Surgical Centers (ASC)", segEndUser, nil)
	require.True(t, ok)
	assert.Equal(t, "Ambulatory Surgical Centers (ASC)", v)

	v, ok = cleanColonValue("Hospitals (the largest buyer group)", segEndUser, nil)
	require.True(t, ok)
	assert.Equal(t, "Hospitals", v, "descriptive parentheticals drop out")
}

func TestFinalizeValuesFiltersNarrative(t *testing.T) {
	values := []string{
		"Canned Beef",
		"The market is expanding",
		"Growth",
		"Increased access to cold chains",
		"canned pork",
	}
	got := finalizeValues(values, segType)
	assert.Equal(t, []string{"Canned Beef"}, got)
}

func TestFinalizeValuesRegionKeepsKnownNames(t *testing.T) {
	got := finalizeValues([]string{"North America", "Europe", "Widgets"}, segRegion)
	assert.Equal(t, []string{"North America", "Europe"}, got)
}

func TestDedupeFold(t *testing.T) {
	got := dedupeFold([]string{"Hospitals", "hospitals", " Clinics ", ""}, 8)
	assert.Equal(t, []string{"Hospitals", "Clinics"}, got)
}
