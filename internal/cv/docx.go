package cv

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"strings"
)

// TableCellSeparator joins table cells of one row in extracted DOCX text.
const TableCellSeparator = " | "

// OOXMLExtractor walks word/document.xml directly: paragraphs in document
// order, tables row-major. It needs no external tools.
type OOXMLExtractor struct{}

func NewOOXMLExtractor() *OOXMLExtractor { return &OOXMLExtractor{} }

func (e *OOXMLExtractor) Name() ParserName { return ParserOOXML }

func (e *OOXMLExtractor) Probe() error { return nil }

func (e *OOXMLExtractor) Extract(ctx context.Context, path string) (*ExtractionResult, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, conversionFailed(ParserOOXML, fmt.Errorf("open zip: %w", err))
	}
	defer zr.Close()

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, conversionFailed(ParserOOXML, fmt.Errorf("word/document.xml not found in archive"))
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, conversionFailed(ParserOOXML, fmt.Errorf("open document.xml: %w", err))
	}
	defer rc.Close()

	w := &docxWalker{}
	if err := w.walk(rc); err != nil {
		return nil, conversionFailed(ParserOOXML, err)
	}
	return &ExtractionResult{Text: w.text(), HTML: w.html()}, nil
}

type docxWalker struct {
	lines []string
	out   strings.Builder

	// paras is a stack: text boxes nest whole paragraphs inside a run of
	// the enclosing one.
	paras  []*docxPara
	inText bool
	inUL   bool
	// skip counts open mc:Fallback elements, which repeat the content of
	// the preceding mc:Choice.
	skip int

	tblDepth int
	rows     [][]string
	rowCells []string
	cell     strings.Builder
}

type docxPara struct {
	text   strings.Builder
	style  string
	isList bool
}

func (w *docxWalker) walk(r io.Reader) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "Fallback" {
				w.skip++
			}
			if w.skip == 0 {
				w.start(t)
			}
		case xml.EndElement:
			if w.skip == 0 {
				w.end(t)
			}
			if t.Name.Local == "Fallback" && w.skip > 0 {
				w.skip--
			}
		case xml.CharData:
			if p := w.para(); p != nil && w.inText && w.skip == 0 {
				p.text.Write(t)
			}
		}
	}
	w.closeList()
	return nil
}

// para returns the innermost open paragraph, or nil.
func (w *docxWalker) para() *docxPara {
	if len(w.paras) == 0 {
		return nil
	}
	return w.paras[len(w.paras)-1]
}

func (w *docxWalker) start(t xml.StartElement) {
	p := w.para()
	switch t.Name.Local {
	case "p":
		w.paras = append(w.paras, &docxPara{})
	case "pStyle":
		if p != nil {
			p.style = attrValue(t, "val")
		}
	case "numPr":
		if p != nil {
			p.isList = true
		}
	case "t":
		w.inText = true
	case "tab":
		// Tab stop definitions in paragraph properties carry a position.
		if p != nil && attrValue(t, "pos") == "" {
			p.text.WriteByte('\t')
		}
	case "br", "cr":
		if p != nil {
			p.text.WriteByte('\n')
		}
	case "tbl":
		w.tblDepth++
		if w.tblDepth == 1 {
			w.closeList()
			w.rows = nil
		}
	case "tr":
		if w.tblDepth == 1 {
			w.rowCells = nil
		}
	case "tc":
		if w.tblDepth == 1 {
			w.cell.Reset()
		}
	}
}

func (w *docxWalker) end(t xml.EndElement) {
	switch t.Name.Local {
	case "t":
		w.inText = false
	case "p":
		p := w.para()
		if p == nil {
			return
		}
		w.paras = w.paras[:len(w.paras)-1]
		text := strings.TrimSpace(p.text.String())
		if w.tblDepth > 0 {
			if text != "" {
				if w.cell.Len() > 0 {
					w.cell.WriteByte(' ')
				}
				w.cell.WriteString(strings.Join(strings.Fields(text), " "))
			}
			return
		}
		w.emitParagraph(p, text)
	case "tc":
		if w.tblDepth == 1 {
			w.rowCells = append(w.rowCells, strings.TrimSpace(w.cell.String()))
		}
	case "tr":
		if w.tblDepth == 1 {
			w.rows = append(w.rows, w.rowCells)
		}
	case "tbl":
		if w.tblDepth == 1 {
			w.emitTable()
		}
		if w.tblDepth > 0 {
			w.tblDepth--
		}
	}
}

func (w *docxWalker) emitParagraph(p *docxPara, text string) {
	// Empty paragraphs are kept as blank lines to preserve paragraph breaks.
	w.lines = append(w.lines, text)
	if text == "" {
		return
	}

	escaped := html.EscapeString(text)
	if p.isList {
		if !w.inUL {
			w.out.WriteString("<ul>\n")
			w.inUL = true
		}
		fmt.Fprintf(&w.out, "<li>%s</li>\n", escaped)
		return
	}
	w.closeList()
	if level := docxHeadingLevel(p.style); level > 0 {
		fmt.Fprintf(&w.out, "<h%d>%s</h%d>\n", level, escaped, level)
		return
	}
	fmt.Fprintf(&w.out, "<p>%s</p>\n", escaped)
}

func (w *docxWalker) emitTable() {
	w.out.WriteString("<table>\n")
	for _, row := range w.rows {
		var nonEmpty []string
		w.out.WriteString("<tr>")
		for _, c := range row {
			fmt.Fprintf(&w.out, "<td>%s</td>", html.EscapeString(c))
			if c != "" {
				nonEmpty = append(nonEmpty, c)
			}
		}
		w.out.WriteString("</tr>\n")
		if len(nonEmpty) > 0 {
			w.lines = append(w.lines, strings.Join(nonEmpty, TableCellSeparator))
		}
	}
	w.out.WriteString("</table>\n")
	w.rows = nil
}

func (w *docxWalker) closeList() {
	if w.inUL {
		w.out.WriteString("</ul>\n")
		w.inUL = false
	}
}

func (w *docxWalker) text() string { return strings.Join(w.lines, "\n") }

func (w *docxWalker) html() string {
	if w.out.Len() == 0 {
		return ""
	}
	return "<div>\n" + w.out.String() + "</div>\n"
}

func attrValue(t xml.StartElement, local string) string {
	for _, a := range t.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// docxHeadingLevel maps a paragraph style id to a heading level, 0 for body.
// e.g. "Heading1" → 1, "Title" → 1, "Subtitle" → 2.
func docxHeadingLevel(style string) int {
	lower := strings.ToLower(style)
	switch lower {
	case "title":
		return 1
	case "subtitle":
		return 2
	}
	for _, prefix := range []string{"heading", "titre", "überschrift"} {
		if strings.HasPrefix(lower, prefix) {
			rest := strings.TrimSpace(lower[len(prefix):])
			if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
				return int(rest[0] - '0')
			}
		}
	}
	return 0
}
