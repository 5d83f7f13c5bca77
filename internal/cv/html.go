package cv

import (
	"context"
	"fmt"
	stdhtml "html"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLDOMExtractor parses HTML and walks the tree; block elements such as
// paragraphs, list items and headings become separate text lines.
type HTMLDOMExtractor struct{}

func NewHTMLDOMExtractor() *HTMLDOMExtractor { return &HTMLDOMExtractor{} }

func (e *HTMLDOMExtractor) Name() ParserName { return ParserHTMLDOM }

func (e *HTMLDOMExtractor) Probe() error { return nil }

func (e *HTMLDOMExtractor) Extract(ctx context.Context, path string) (*ExtractionResult, error) {
	src, warnings, err := readHTMLFile(ParserHTMLDOM, path)
	if err != nil {
		return nil, err
	}
	text, err := HTMLToText(src)
	if err != nil {
		return nil, conversionFailed(ParserHTMLDOM, err)
	}
	return &ExtractionResult{Text: text, HTML: src, Warnings: warnings}, nil
}

// HTMLStripExtractor strips every tag without looking at document structure.
// It is the last resort when the DOM walk yields nothing.
type HTMLStripExtractor struct{}

func NewHTMLStripExtractor() *HTMLStripExtractor { return &HTMLStripExtractor{} }

func (e *HTMLStripExtractor) Name() ParserName { return ParserHTMLStrip }

func (e *HTMLStripExtractor) Probe() error { return nil }

func (e *HTMLStripExtractor) Extract(ctx context.Context, path string) (*ExtractionResult, error) {
	src, warnings, err := readHTMLFile(ParserHTMLStrip, path)
	if err != nil {
		return nil, err
	}
	return &ExtractionResult{Text: StripTags(src), HTML: src, Warnings: warnings}, nil
}

func readHTMLFile(strategy ParserName, path string) (string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, conversionFailed(strategy, err)
	}
	src, warnings, err := DecodeText(data)
	if err != nil {
		return "", nil, &ExtractionError{Kind: ErrEncodingError, Strategy: strategy, Err: err}
	}
	return src, warnings, nil
}

// stripPolicy drops all markup along with the contents of script, style
// and title elements.
var stripPolicy = bluemonday.StrictPolicy()

// StripTags removes all tags and unescapes entities.
func StripTags(src string) string {
	return strings.TrimSpace(stdhtml.UnescapeString(stripPolicy.Sanitize(src)))
}

// HTMLToText renders the visible text of an HTML document, one line per
// block element.
func HTMLToText(src string) (string, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	w := &htmlTextWalker{}
	w.walk(doc)
	w.flush()
	return strings.Join(w.lines, "\n"), nil
}

type htmlTextWalker struct {
	lines []string
	cur   strings.Builder
}

func (w *htmlTextWalker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.cur.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Head, atom.Script, atom.Style, atom.Noscript, atom.Template:
			return
		case atom.Br:
			w.flush()
			return
		}
	}

	block := n.Type == html.ElementNode && isBlockElement(n.DataAtom)
	if block {
		w.flush()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
	if block {
		w.flush()
	} else if n.Type == html.ElementNode && (n.DataAtom == atom.Td || n.DataAtom == atom.Th) {
		w.cur.WriteByte(' ')
	}
}

func (w *htmlTextWalker) flush() {
	line := strings.Join(strings.Fields(w.cur.String()), " ")
	w.cur.Reset()
	if line != "" {
		w.lines = append(w.lines, line)
	}
}

func isBlockElement(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Ul, atom.Ol, atom.Dl, atom.Dt, atom.Dd,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Table, atom.Tr, atom.Blockquote, atom.Pre, atom.Hr,
		atom.Section, atom.Article, atom.Header, atom.Footer, atom.Nav, atom.Main, atom.Aside,
		atom.Address, atom.Figure, atom.Figcaption:
		return true
	}
	return false
}
