package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reportforge/internal/docmodel"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Forecast, 2024–2030", Normalize("  Forecast,   2024—2030 "))
	assert.Equal(t, "2024–2030", Normalize("2024�2030"), "replacement char repairs to en dash")
	assert.Equal(t, "Market Outlook", Normalize("Market 🚀 Outlook"))
	assert.Equal(t, "", Normalize("   "))
}

func TestRemoveEmojis(t *testing.T) {
	assert.Equal(t, "Growth ", RemoveEmojis("Growth 📈"))
	assert.Equal(t, "plain text", RemoveEmojis("plain text"))
}

func TestRunsToMarkup(t *testing.T) {
	runs := []docmodel.Run{
		{Text: "Market Share", Bold: true},
		{Text: "by region"},
		{Text: "estimated", Italic: true},
		{Text: "  "},
		{Text: "source", Hyperlink: "https://example.com/r"},
	}
	got := RunsToMarkup(runs)
	assert.Equal(t, `<b>Market Share</b> by region <i>estimated</i> <a href="https://example.com/r">source</a>`, got)
}

func TestRunsToMarkupBoldItalic(t *testing.T) {
	runs := []docmodel.Run{{Text: "note", Bold: true, Italic: true}}
	assert.Equal(t, "<b><i>note</i></b>", RunsToMarkup(runs))
}

func TestRunsToMarkupIdempotent(t *testing.T) {
	first := RunsToMarkup([]docmodel.Run{{Text: "Key Players", Bold: true}, {Text: "overview"}})
	second := RunsToMarkup([]docmodel.Run{{Text: first}})
	assert.Equal(t, first, second)
}

func TestRunsToMarkupTight(t *testing.T) {
	runs := []docmodel.Run{
		{Text: "Report Title:"},
		{Text: "Canned Meat Market", HasBreak: true, Bold: true},
	}
	assert.Equal(t, "Report Title:<br><b>Canned Meat Market</b>", RunsToMarkupTight(runs))
}
