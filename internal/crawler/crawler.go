package crawler

import (
	"context"
	"fmt"

	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/providers"
)

// Crawler walks a chain of chapter pages, one page at a time.
type Crawler struct {
	fetcher  providers.Fetcher
	parser   providers.Parser
	resolver providers.NextResolver
	sink     EventSink
	maxPages int
}

// New builds a Crawler. A nil sink drops events; maxPages <= 0 means no
// limit.
func New(f providers.Fetcher, p providers.Parser, r providers.NextResolver, sink EventSink, maxPages int) *Crawler {
	if sink == nil {
		sink = discard{}
	}

	return &Crawler{
		fetcher:  f,
		parser:   p,
		resolver: r,
		sink:     sink,
		maxPages: maxPages,
	}
}

// Run crawls from startURL until a page has no next link or a step fails.
// The returned State is never nil. On failure its Err matches the returned
// error.
func (c *Crawler) Run(ctx context.Context, startURL string) (*State, error) {
	st := NewState(startURL)

	for !st.Done() {
		if err := c.Step(ctx, st); err != nil {
			return st, err
		}
	}

	return st, nil
}

// Step processes the page at st.CurrentURL and advances st. It is a no-op
// on a finished crawl.
func (c *Crawler) Step(ctx context.Context, st *State) error {
	if st.Done() {
		return st.Err
	}
	if st.CurrentURL == "" {
		c.complete(st)
		return nil
	}

	page, url := st.PageNumber, st.CurrentURL

	if err := ctx.Err(); err != nil {
		return c.fail(st, err)
	}
	if st.seen(url) {
		c.sink.Emit(Event{Kind: EventRevisit, Page: page, URL: url})
		c.complete(st)
		return nil
	}
	if c.maxPages > 0 && page > c.maxPages {
		return c.fail(st, &PageLimitError{Limit: c.maxPages, URL: url})
	}

	c.sink.Emit(Event{Kind: EventFetching, Page: page, URL: url})
	st.visit(url)

	markup, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return c.fail(st, err)
	}

	doc, err := c.parser.Parse(url, markup)
	if err != nil {
		return c.fail(st, fmt.Errorf("page %d: %w", page, err))
	}

	if !st.bookTitleSet {
		st.setBookTitle(doc.BookTitle())
	}

	title := doc.Title()
	if title == "" {
		title = chapters.FallbackTitle(page)
	}

	content, err := doc.Content()
	if err != nil {
		return c.fail(st, fmt.Errorf("page %d: %w", page, err))
	}

	st.Chapters = append(st.Chapters, chapters.Chapter{Title: title, Content: content})
	c.sink.Emit(Event{Kind: EventFetched, Page: page, URL: url})

	next, ok, err := c.resolver.ResolveNext(doc.Anchors(), url)
	if err != nil {
		return c.fail(st, fmt.Errorf("page %d: %w", page, err))
	}
	if !ok {
		next = ""
	}

	st.CurrentURL = next
	st.PageNumber++

	if next == "" {
		c.complete(st)
	}

	return nil
}

func (c *Crawler) complete(st *State) {
	st.CurrentURL = ""
	st.Status = Completed
	c.sink.Emit(Event{Kind: EventCompleted, Page: st.PageNumber})
}

func (c *Crawler) fail(st *State, err error) error {
	st.CurrentURL = ""
	st.Status = Failed
	st.Err = err
	c.sink.Emit(Event{Kind: EventFailed, Page: st.PageNumber, Err: err})

	return err
}
