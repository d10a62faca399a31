package docmodel

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportforge/internal/domain"
)

const docxHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
            xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<w:body>`

const docxFooter = `</w:body></w:document>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com/report"/>
</Relationships>`

func writeDocx(t *testing.T, body string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	doc, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = doc.Write([]byte(docxHeader + body + docxFooter))
	require.NoError(t, err)

	rels, err := zw.Create("word/_rels/document.xml.rels")
	require.NoError(t, err)
	_, err = rels.Write([]byte(relsXML))
	require.NoError(t, err)

	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "sample.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestLoadParagraphRuns(t *testing.T) {
	path := writeDocx(t, `
<w:p>
  <w:r><w:rPr><w:b/></w:rPr><w:t>Executive Summary</w:t></w:r>
</w:p>
<w:p>
  <w:r><w:t>Plain </w:t></w:r>
  <w:r><w:rPr><w:i/></w:rPr><w:t>italic</w:t></w:r>
  <w:r><w:rPr><w:b w:val="0"/></w:rPr><w:t> not bold</w:t></w:r>
</w:p>`)

	doc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Paragraphs, 2)

	first := doc.Paragraphs[0]
	assert.Equal(t, "Executive Summary", first.Text())
	assert.True(t, first.HasBoldRun())

	second := doc.Paragraphs[1]
	assert.Equal(t, "Plain italic not bold", second.Text())
	assert.False(t, second.Runs[0].Italic)
	assert.True(t, second.Runs[1].Italic)
	assert.False(t, second.Runs[2].Bold, "w:val=0 turns the toggle off")
}

func TestLoadBreaksAndTabs(t *testing.T) {
	path := writeDocx(t, `
<w:p>
  <w:r><w:t>A.1. Full Report Title:</w:t><w:br/><w:t>Medical Market Report</w:t></w:r>
  <w:r><w:t xml:space="preserve">	tail</w:t></w:r>
</w:p>`)

	doc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Paragraphs, 1)

	p := doc.Paragraphs[0]
	assert.Equal(t, "A.1. Full Report Title:\nMedical Market Report\ttail", p.Text())
	assert.True(t, p.Runs[0].HasBreak)
	assert.False(t, p.Runs[1].HasBreak)
}

func TestLoadHyperlinks(t *testing.T) {
	path := writeDocx(t, `
<w:p>
  <w:r><w:t>see </w:t></w:r>
  <w:hyperlink r:id="rId1"><w:r><w:t>the report</w:t></w:r></w:hyperlink>
  <w:hyperlink r:id="rId404"><w:r><w:t>broken</w:t></w:r></w:hyperlink>
</w:p>`)

	doc, err := Load(path)
	require.NoError(t, err)

	runs := doc.Paragraphs[0].Runs
	require.Len(t, runs, 3)
	assert.Empty(t, runs[0].Hyperlink)
	assert.Equal(t, "https://example.com/report", runs[1].Hyperlink)
	assert.Empty(t, runs[2].Hyperlink, "unresolvable rel id degrades to plain text")
}

func TestLoadListAndStyle(t *testing.T) {
	path := writeDocx(t, `
<w:p>
  <w:pPr><w:pStyle w:val="Heading2"/></w:pPr>
  <w:r><w:t>Regional Landscape</w:t></w:r>
</w:p>
<w:p>
  <w:pPr><w:numPr><w:ilvl w:val="1"/><w:numId w:val="3"/></w:numPr></w:pPr>
  <w:r><w:t>North America</w:t></w:r>
</w:p>`)

	doc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Heading2", doc.Paragraphs[0].Style)
	assert.False(t, doc.Paragraphs[0].InList)

	assert.True(t, doc.Paragraphs[1].InList)
	assert.Equal(t, 1, doc.Paragraphs[1].ListLevel)
}

func TestLoadTableAndBlockOrder(t *testing.T) {
	path := writeDocx(t, `
<w:p><w:r><w:t>before</w:t></w:r></w:p>
<w:tbl>
  <w:tr>
    <w:tc><w:p><w:r><w:t>Report Attribute</w:t></w:r></w:p></w:tc>
    <w:tc><w:p><w:r><w:t>Details</w:t></w:r></w:p></w:tc>
  </w:tr>
  <w:tr>
    <w:tc><w:p><w:r><w:t>Revenue Forecast in 2030</w:t></w:r></w:p></w:tc>
    <w:tc><w:p><w:r><w:t>USD 4.5 Billion</w:t></w:r></w:p><w:p><w:r><w:t>approx.</w:t></w:r></w:p></w:tc>
  </w:tr>
</w:tbl>
<w:p><w:r><w:t>after</w:t></w:r></w:p>`)

	doc, err := Load(path)
	require.NoError(t, err)

	require.Len(t, doc.Tables, 1)
	tbl := doc.Tables[0]
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "Report Attribute", tbl.Rows[0][0].Text())
	assert.Equal(t, "USD 4.5 Billion\napprox.", tbl.Rows[1][1].Text())

	require.Len(t, doc.Blocks, 3)
	assert.NotNil(t, doc.Blocks[0].Para)
	assert.NotNil(t, doc.Blocks[1].Table)
	assert.NotNil(t, doc.Blocks[2].Para)
	assert.Equal(t, "after", doc.Blocks[2].Para.Text())
}

func TestLoadRejectsUnsupportedExtension(t *testing.T) {
	_, err := Load("report.pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestLoadCorruptArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrDocumentLoad)
}

func TestLoadMissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "empty.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, err = Load(path)
	assert.ErrorIs(t, err, domain.ErrDocumentLoad)
}
