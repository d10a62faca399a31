package docmodel

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"reportforge/internal/domain"
)

const relNS = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

// Load opens a .docx file and builds the document model. This is the only
// entry point in the extraction path that can fail; every error wraps
// domain.ErrDocumentLoad so callers can treat load failures uniformly.
func Load(path string) (*Document, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".docx" {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext)
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrDocumentLoad, path, err)
	}
	defer func() { _ = zr.Close() }()
	return loadArchive(&zr.Reader)
}

// LoadReader parses a .docx archive held in memory.
func LoadReader(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: read archive: %v", domain.ErrDocumentLoad, err)
	}
	return loadArchive(zr)
}

func loadArchive(zr *zip.Reader) (*Document, error) {
	// Missing or malformed rels only degrade hyperlinks to plain text.
	rels := readRels(zr)

	f := findPart(zr, "word/document.xml")
	if f == nil {
		return nil, fmt.Errorf("%w: word/document.xml missing", domain.ErrDocumentLoad)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open document part: %v", domain.ErrDocumentLoad, err)
	}
	defer func() { _ = rc.Close() }()

	var raw xmlDocument
	if err := xml.NewDecoder(rc).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: parse word/document.xml: %v", domain.ErrDocumentLoad, err)
	}
	return raw.Body.build(rels), nil
}

func findPart(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

type xmlRelationships struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

func readRels(zr *zip.Reader) map[string]string {
	rels := make(map[string]string)
	f := findPart(zr, "word/_rels/document.xml.rels")
	if f == nil {
		return rels
	}
	rc, err := f.Open()
	if err != nil {
		return rels
	}
	defer func() { _ = rc.Close() }()

	var raw xmlRelationships
	if err := xml.NewDecoder(rc).Decode(&raw); err != nil {
		return rels
	}
	for _, r := range raw.Rels {
		rels[r.ID] = r.Target
	}
	return rels
}

type xmlDocument struct {
	Body xmlBody `xml:"body"`
}

type xmlBody struct {
	Content []xmlBlock `xml:",any"`
}

// xmlBlock keeps paragraphs and tables in body order.
type xmlBlock struct {
	para  *xmlPara
	table *xmlTable
}

func (b *xmlBlock) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	switch start.Name.Local {
	case "p":
		p := new(xmlPara)
		if err := d.DecodeElement(p, &start); err != nil {
			return err
		}
		b.para = p
		return nil
	case "tbl":
		t := new(xmlTable)
		if err := d.DecodeElement(t, &start); err != nil {
			return err
		}
		b.table = t
		return nil
	default:
		return d.Skip()
	}
}

type xmlPara struct {
	Props   *xmlParaProps  `xml:"pPr"`
	Content []xmlParaChild `xml:",any"`
}

type xmlParaProps struct {
	Style *struct {
		Val string `xml:"val,attr"`
	} `xml:"pStyle"`
	NumPr *struct {
		Ilvl *struct {
			Val int `xml:"val,attr"`
		} `xml:"ilvl"`
	} `xml:"numPr"`
}

type xmlParaChild struct {
	run  *xmlRun
	link *xmlHyperlink
}

func (c *xmlParaChild) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	switch start.Name.Local {
	case "r":
		r := new(xmlRun)
		if err := d.DecodeElement(r, &start); err != nil {
			return err
		}
		c.run = r
		return nil
	case "hyperlink":
		h := new(xmlHyperlink)
		if err := d.DecodeElement(h, &start); err != nil {
			return err
		}
		c.link = h
		return nil
	default:
		return d.Skip()
	}
}

type xmlHyperlink struct {
	RID  string   `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	Runs []xmlRun `xml:"r"`
}

// xmlRun decodes by hand because w:t, w:br, w:cr and w:tab children must be
// folded into a single text string in source order.
type xmlRun struct {
	props    *xmlRunProps
	text     string
	hasBreak bool
}

func (r *xmlRun) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				p := new(xmlRunProps)
				if err := d.DecodeElement(p, &t); err != nil {
					return err
				}
				r.props = p
			case "t":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				text.WriteString(s)
			case "br", "cr":
				text.WriteString("\n")
				r.hasBreak = true
				if err := d.Skip(); err != nil {
					return err
				}
			case "tab":
				text.WriteString("\t")
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				r.text = text.String()
				return nil
			}
		}
	}
}

type xmlRunProps struct {
	Bold   *xmlToggle `xml:"b"`
	Italic *xmlToggle `xml:"i"`
}

// xmlToggle models OOXML on/off properties where presence means on unless
// val says otherwise.
type xmlToggle struct {
	Val string `xml:"val,attr"`
}

func (t *xmlToggle) on() bool {
	if t == nil {
		return false
	}
	switch strings.ToLower(t.Val) {
	case "", "1", "true", "on":
		return true
	}
	return false
}

type xmlTable struct {
	Rows []xmlTableRow `xml:"tr"`
}

type xmlTableRow struct {
	Cells []xmlTableCell `xml:"tc"`
}

type xmlTableCell struct {
	Paras []xmlPara `xml:"p"`
}

func (b *xmlBody) build(rels map[string]string) *Document {
	doc := &Document{}
	for i := range b.Content {
		blk := &b.Content[i]
		switch {
		case blk.para != nil:
			p := blk.para.build(rels)
			doc.Paragraphs = append(doc.Paragraphs, p)
			doc.Blocks = append(doc.Blocks, Block{Para: p})
		case blk.table != nil:
			t := blk.table.build(rels)
			doc.Tables = append(doc.Tables, t)
			doc.Blocks = append(doc.Blocks, Block{Table: t})
		}
	}
	return doc
}

func (xp *xmlPara) build(rels map[string]string) *Paragraph {
	p := &Paragraph{}
	if xp.Props != nil {
		if xp.Props.Style != nil {
			p.Style = xp.Props.Style.Val
		}
		if xp.Props.NumPr != nil {
			p.InList = true
			if xp.Props.NumPr.Ilvl != nil {
				p.ListLevel = xp.Props.NumPr.Ilvl.Val
			}
		}
	}
	for i := range xp.Content {
		c := &xp.Content[i]
		switch {
		case c.run != nil:
			p.Runs = append(p.Runs, c.run.build(""))
		case c.link != nil:
			target := rels[c.link.RID]
			for j := range c.link.Runs {
				p.Runs = append(p.Runs, c.link.Runs[j].build(target))
			}
		}
	}
	return p
}

func (xr *xmlRun) build(link string) Run {
	r := Run{Text: xr.text, HasBreak: xr.hasBreak, Hyperlink: link}
	if xr.props != nil {
		r.Bold = xr.props.Bold.on()
		r.Italic = xr.props.Italic.on()
	}
	return r
}

func (xt *xmlTable) build(rels map[string]string) *Table {
	t := &Table{}
	for i := range xt.Rows {
		var row []Cell
		for j := range xt.Rows[i].Cells {
			cell := Cell{}
			for k := range xt.Rows[i].Cells[j].Paras {
				cell.Paragraphs = append(cell.Paragraphs, xt.Rows[i].Cells[j].Paras[k].build(rels))
			}
			row = append(row, cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
