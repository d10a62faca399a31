package extract

import (
	"reportforge/internal/docmodel"
)

// para builds a plain one-run paragraph.
func para(text string) *docmodel.Paragraph {
	return &docmodel.Paragraph{Runs: []docmodel.Run{{Text: text}}}
}

// boldPara builds a paragraph whose single run is bold.
func boldPara(text string) *docmodel.Paragraph {
	return &docmodel.Paragraph{Runs: []docmodel.Run{{Text: text, Bold: true}}}
}

// listItem builds a natively numbered list paragraph.
func listItem(text string) *docmodel.Paragraph {
	return &docmodel.Paragraph{Runs: []docmodel.Run{{Text: text}}, InList: true}
}

// boldListItem builds a bold list paragraph.
func boldListItem(text string) *docmodel.Paragraph {
	return &docmodel.Paragraph{Runs: []docmodel.Run{{Text: text, Bold: true}}, InList: true}
}

// docOf assembles a document from body-level paragraphs and tables in order.
func docOf(elems ...any) *docmodel.Document {
	doc := &docmodel.Document{}
	for _, e := range elems {
		switch v := e.(type) {
		case *docmodel.Paragraph:
			doc.Blocks = append(doc.Blocks, docmodel.Block{Para: v})
			doc.Paragraphs = append(doc.Paragraphs, v)
		case *docmodel.Table:
			doc.Blocks = append(doc.Blocks, docmodel.Block{Table: v})
			doc.Tables = append(doc.Tables, v)
		}
	}
	return doc
}

// cell builds a single-paragraph table cell.
func cell(text string) docmodel.Cell {
	return docmodel.Cell{Paragraphs: []*docmodel.Paragraph{para(text)}}
}

// tableOf builds a table from rows of cell texts.
func tableOf(rows ...[]string) *docmodel.Table {
	t := &docmodel.Table{}
	for _, r := range rows {
		var cells []docmodel.Cell
		for _, c := range r {
			cells = append(cells, cell(c))
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}
