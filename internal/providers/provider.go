package providers

import "context"

// Anchor is one <a> element of a page, in document order.
type Anchor struct {
	Text    string
	Rel     string
	Href    string
	HasHref bool
	Classes []string
}

// HasClass reports whether the anchor carries class c.
func (a Anchor) HasClass(c string) bool {
	for _, cl := range a.Classes {
		if cl == c {
			return true
		}
	}

	return false
}

// Document is a parsed chapter page.
type Document interface {
	// Title is the chapter heading, "" when the page has none.
	Title() string
	// BookTitle is the book name shown on the page, "" when absent.
	BookTitle() string
	// Content is the chapter body as well-formed markup, "" when absent.
	Content() (string, error)
	Anchors() []Anchor
}

// Parser reads the markup fetched from pageURL.
type Parser interface {
	Parse(pageURL, markup string) (Document, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// NextResolver picks the URL of the following page, if any.
type NextResolver interface {
	ResolveNext(anchors []Anchor, currentURL string) (string, bool, error)
}
