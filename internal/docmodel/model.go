// Package docmodel loads .docx files into a flat in-memory model that the
// extraction heuristics can walk without touching OOXML again.
package docmodel

import "strings"

// Run is a contiguous span of identically formatted text within a paragraph.
// Text carries "\n" for explicit breaks and "\t" for tabs, in source order.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	HasBreak  bool
	Hyperlink string // resolved target URL, empty when none or unresolvable
}

// Paragraph is one block-level paragraph. Runs inside hyperlinks are
// flattened into Runs with their resolved target attached.
type Paragraph struct {
	Runs      []Run
	Style     string // paragraph style name, e.g. "Heading1"
	InList    bool   // native numbering (w:numPr) present
	ListLevel int    // numbering indent level, 0 when absent
}

// Text returns the concatenated run text of the paragraph.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for i := range p.Runs {
		b.WriteString(p.Runs[i].Text)
	}
	return b.String()
}

// HasBoldRun reports whether any run in the paragraph is bold.
func (p *Paragraph) HasBoldRun() bool {
	for i := range p.Runs {
		if p.Runs[i].Bold {
			return true
		}
	}
	return false
}

// Cell is one table cell, holding its own paragraph sequence.
type Cell struct {
	Paragraphs []*Paragraph
}

// Text joins the cell's paragraph texts with newlines.
func (c *Cell) Text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

// Table is a body-level table as a dense row/cell grid.
type Table struct {
	Rows [][]Cell
}

// Block preserves the body-level interleaving of paragraphs and tables.
// Exactly one of Para or Table is set.
type Block struct {
	Para  *Paragraph
	Table *Table
}

// Document is the loaded model. Paragraphs and Tables hold the body-level
// elements in order; Blocks interleaves them as they appear in the source.
type Document struct {
	Blocks     []Block
	Paragraphs []*Paragraph
	Tables     []*Table
}
