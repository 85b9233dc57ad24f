package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLDocument is a Document over a parsed HTML snapshot.
type HTMLDocument struct {
	htmlElement
	url string
}

// ParseHTML parses r as the page loaded from pageURL.
func ParseHTML(pageURL string, r io.Reader) (*HTMLDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}
	return &HTMLDocument{htmlElement: htmlElement{sel: doc.Selection}, url: pageURL}, nil
}

func (d *HTMLDocument) URL() string {
	return d.url
}

func (d *HTMLDocument) FindID(id string) (Element, bool) {
	match := d.sel.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
	if match.Length() == 0 {
		return nil, false
	}
	return htmlElement{sel: match}, true
}

// htmlElement wraps a single-node goquery selection.
type htmlElement struct {
	sel *goquery.Selection
}

func (e htmlElement) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e htmlElement) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

func (e htmlElement) HasClass(class string) bool {
	return e.sel.HasClass(class)
}

func (e htmlElement) FindClass(class string) (Element, bool) {
	match := e.byClass(class).First()
	if match.Length() == 0 {
		return nil, false
	}
	return htmlElement{sel: match}, true
}

func (e htmlElement) FindAllClass(class string) []Element {
	var out []Element
	e.byClass(class).Each(func(_ int, s *goquery.Selection) {
		out = append(out, htmlElement{sel: s})
	})
	return out
}

// byClass matches on the class list instead of a CSS selector so names
// that are not valid CSS identifiers still work.
func (e htmlElement) byClass(class string) *goquery.Selection {
	return e.sel.Find("[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.HasClass(class)
	})
}
