package generic

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/providers"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

const (
	DefaultBookTitleSelector    = "#bookname"
	DefaultChapterTitleSelector = "h1"
	DefaultContentSelector      = "#htmlContent"
)

// Selectors locate the parts of a chapter page. Empty fields fall back to the
// defaults.
type Selectors struct {
	BookTitle    string
	ChapterTitle string
	Content      string
}

func DefaultSelectors() Selectors {
	return Selectors{
		BookTitle:    DefaultBookTitleSelector,
		ChapterTitle: DefaultChapterTitleSelector,
		Content:      DefaultContentSelector,
	}
}

func (s Selectors) withDefaults() Selectors {
	d := DefaultSelectors()
	if strings.TrimSpace(s.BookTitle) != "" {
		d.BookTitle = s.BookTitle
	}
	if strings.TrimSpace(s.ChapterTitle) != "" {
		d.ChapterTitle = s.ChapterTitle
	}
	if strings.TrimSpace(s.Content) != "" {
		d.Content = s.Content
	}

	return d
}

type Parser struct {
	sel      Selectors
	fallback bool
}

func NewParser(sel Selectors) *Parser {
	return &Parser{sel: sel.withDefaults()}
}

// WithReadability makes pages without a content region fall back to
// readability extraction.
func (p *Parser) WithReadability() *Parser {
	p.fallback = true
	return p
}

// Parse reads the page fetched from pageURL. Links in a readability article
// are absolutized against pageURL.
func (p *Parser) Parse(pageURL, markup string) (providers.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	d := &Document{doc: doc, sel: p.sel}
	if p.fallback {
		d.markup = markup
		d.pageURL = articleBase(pageURL)
	}

	return d, nil
}

func articleBase(pageURL string) *url.URL {
	u, err := url.Parse(pageURL)
	if err != nil || !u.IsAbs() {
		return &url.URL{Scheme: "https", Host: "localhost", Path: "/"}
	}

	return u
}

// Document is a goquery-backed chapter page.
type Document struct {
	doc *goquery.Document
	sel Selectors

	markup  string
	pageURL *url.URL
}

func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find(d.sel.ChapterTitle).First().Text())
}

func (d *Document) BookTitle() string {
	return strings.TrimSpace(d.doc.Find(d.sel.BookTitle).First().Text())
}

// Content renders the children of the content region. A page without one
// yields "" unless readability fallback is on.
func (d *Document) Content() (string, error) {
	region := d.doc.Find(d.sel.Content).First()
	if region.Length() == 0 {
		if d.pageURL == nil {
			return "", nil
		}
		return d.readable()
	}

	out, err := renderInner(region.Nodes[0])
	if err != nil {
		return "", fmt.Errorf("render content: %w", err)
	}

	return out, nil
}

func (d *Document) Anchors() []providers.Anchor {
	var out []providers.Anchor

	d.doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		rel, _ := a.Attr("rel")
		class, _ := a.Attr("class")

		out = append(out, providers.Anchor{
			Text:    a.Text(),
			Rel:     rel,
			Href:    href,
			HasHref: ok,
			Classes: strings.Fields(class),
		})
	})

	return out
}

func (d *Document) readable() (string, error) {
	article, err := readability.FromReader(strings.NewReader(d.markup), d.pageURL)
	if err != nil {
		// no readable article counts as an absent content region
		return "", nil
	}

	root, err := html.Parse(strings.NewReader(article.Content))
	if err != nil {
		return "", fmt.Errorf("parse article: %w", err)
	}

	body := findBody(root)
	if body == nil {
		return "", nil
	}

	out, err := renderInner(body)
	if err != nil {
		return "", fmt.Errorf("render article: %w", err)
	}

	return out, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}

	return nil
}
