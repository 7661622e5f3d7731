package parser

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// Parser turns fetched pages into documents and pulls the lead section out
// of them. Selectors are tried in order; the first one that matches wins.
type Parser struct {
	selectors []string
}

func New(selectors []string) *Parser {
	return &Parser{selectors: append([]string(nil), selectors...)}
}

// Parse decodes r to UTF-8 using contentType and any <meta charset> hint,
// then builds a goquery document.
func (p *Parser) Parse(r io.Reader, contentType string) (*goquery.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// fallback: if already utf-8, continue
		if !utf8.Valid(data) {
			return nil, err
		}
		utf8data = data
	}

	return goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
}

// Container returns the first element matched by the selector priority list.
func (p *Parser) Container(doc *goquery.Document) *goquery.Selection {
	for _, sel := range p.selectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return nil
}

// Lead concatenates the container's direct-child paragraphs up to the first
// h2 or table-of-contents div. Footnote markers are dropped.
func (p *Parser) Lead(doc *goquery.Document) string {
	content := p.Container(doc)
	if content == nil {
		return ""
	}

	var parts []string
	content.ChildrenFiltered("p, h2, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		switch goquery.NodeName(s) {
		case "h2":
			return false
		case "div":
			id, _ := s.Attr("id")
			return !strings.Contains(id, "toc")
		}
		s.Find("sup.reference").Remove()
		if t := normalize(s.Text()); t != "" {
			parts = append(parts, t)
		}
		return true
	})
	return strings.Join(parts, " ")
}

// normalize collapses runs of whitespace, including non-breaking spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
