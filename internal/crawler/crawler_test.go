package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brogergvhs/noveld/internal/fetch"
	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/brogergvhs/noveld/internal/providers/generic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	pages map[string]string
	errs  map[string]error
	calls []string
}

func (m *mockFetcher) Fetch(_ context.Context, url string) (string, error) {
	m.calls = append(m.calls, url)
	if err, ok := m.errs[url]; ok {
		return "", err
	}
	if p, ok := m.pages[url]; ok {
		return p, nil
	}

	return "", &fetch.FetchError{URL: url, StatusCode: http.StatusNotFound, Status: "404 Not Found"}
}

type mockParser struct {
	parseFunc func(pageURL, markup string) (providers.Document, error)
}

func (m *mockParser) Parse(pageURL, markup string) (providers.Document, error) {
	return m.parseFunc(pageURL, markup)
}

type recorder struct {
	events []Event
}

func (r *recorder) Emit(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) lines() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.String()
	}

	return out
}

func page(book, title, content, next string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	if book != "" {
		fmt.Fprintf(&b, `<div id="bookname">%s</div>`, book)
	}
	if title != "" {
		fmt.Fprintf(&b, "<h1>%s</h1>", title)
	}
	fmt.Fprintf(&b, `<div id="htmlContent">%s</div>`, content)
	b.WriteString(`<a href="/index">Index</a>`)
	if next != "" {
		fmt.Fprintf(&b, `<a href="%s">Next</a>`, next)
	}
	b.WriteString("</body></html>")

	return b.String()
}

func newCrawler(f providers.Fetcher, sink EventSink, maxPages int) *Crawler {
	return New(
		f,
		generic.NewParser(generic.Selectors{}),
		generic.NewLinkResolver("https://site/", generic.DefaultSkipClass),
		sink,
		maxPages,
	)
}

func TestRun_ThreePageChain(t *testing.T) {
	f := &mockFetcher{pages: map[string]string{
		"https://site/c1": page("Moontide", "One", "<p>1</p>", "/c2"),
		"https://site/c2": page("", "", "<p>2</p>", "/c3"),
		"https://site/c3": page("", "Three", "<p>3</p>", ""),
	}}
	rec := &recorder{}

	st, err := newCrawler(f, rec, 0).Run(context.Background(), "https://site/c1")
	require.NoError(t, err)

	assert.Equal(t, Completed, st.Status)
	assert.Equal(t, "", st.CurrentURL)
	assert.Equal(t, "Moontide", st.BookTitle)
	require.Len(t, st.Chapters, 3)
	assert.Equal(t, "One", st.Chapters[0].Title)
	assert.Equal(t, "Chapter 2", st.Chapters[1].Title)
	assert.Equal(t, "Three", st.Chapters[2].Title)
	assert.Equal(t, "<p>2</p>", st.Chapters[1].Content)

	assert.Equal(t, []string{"https://site/c1", "https://site/c2", "https://site/c3"}, f.calls)
	assert.Equal(t, []string{
		"Fetching page 1: https://site/c1",
		"Page 1 fetched successfully.",
		"Fetching page 2: https://site/c2",
		"Page 2 fetched successfully.",
		"Fetching page 3: https://site/c3",
		"Page 3 fetched successfully.",
		"All pages fetched successfully. Creating the EPUB file...",
	}, rec.lines())
}

func TestRun_TerminatesAfterChain(t *testing.T) {
	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("pages=%d", n), func(t *testing.T) {
			pages := map[string]string{}
			for i := 1; i <= n; i++ {
				next := ""
				if i < n {
					next = fmt.Sprintf("/c%d", i+1)
				}
				pages[fmt.Sprintf("https://site/c%d", i)] = page("B", fmt.Sprintf("T%d", i), "<p>x</p>", next)
			}
			f := &mockFetcher{pages: pages}

			st, err := newCrawler(f, nil, 0).Run(context.Background(), "https://site/c1")
			require.NoError(t, err)
			assert.Len(t, f.calls, n)
			assert.Len(t, st.Chapters, n)
			assert.Equal(t, n+1, st.PageNumber)
		})
	}
}

func TestRun_BookTitleSetOnce(t *testing.T) {
	f := &mockFetcher{pages: map[string]string{
		"https://site/c1": page("First Name", "One", "", "/c2"),
		"https://site/c2": page("Second Name", "Two", "", ""),
	}}

	st, err := newCrawler(f, nil, 0).Run(context.Background(), "https://site/c1")
	require.NoError(t, err)
	assert.Equal(t, "First Name", st.BookTitle)
}

func TestRun_BookTitleFallback(t *testing.T) {
	f := &mockFetcher{pages: map[string]string{
		"https://site/c1": page("", "One", "", "/c2"),
		"https://site/c2": page("Late Name", "Two", "", ""),
	}}

	st, err := newCrawler(f, nil, 0).Run(context.Background(), "https://site/c1")
	require.NoError(t, err)
	assert.Equal(t, "book", st.BookTitle)
}

func TestRun_FirstPageNotFound(t *testing.T) {
	f := &mockFetcher{}
	rec := &recorder{}

	st, err := newCrawler(f, rec, 0).Run(context.Background(), "https://site/missing")
	require.Error(t, err)

	var fe *fetch.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)

	assert.Equal(t, Failed, st.Status)
	assert.Equal(t, err, st.Err)
	assert.Empty(t, st.Chapters)
	assert.Equal(t, "", st.CurrentURL)

	lines := rec.lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Fetching page 1: https://site/missing", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Error: "))
}

func TestRun_FailureMidway(t *testing.T) {
	f := &mockFetcher{
		pages: map[string]string{
			"https://site/c1": page("B", "One", "", "/c2"),
		},
		errs: map[string]error{
			"https://site/c2": &fetch.FetchError{URL: "https://site/c2", Err: errors.New("connection reset")},
		},
	}

	st, err := newCrawler(f, nil, 0).Run(context.Background(), "https://site/c1")
	require.Error(t, err)
	assert.Equal(t, Failed, st.Status)
	assert.Len(t, st.Chapters, 1)
	assert.Len(t, f.calls, 2)
}

func TestRun_StopsOnRevisit(t *testing.T) {
	f := &mockFetcher{pages: map[string]string{
		"https://site/c1": page("B", "One", "", "/c2"),
		"https://site/c2": page("B", "Two", "", "/c1"),
	}}
	rec := &recorder{}

	st, err := newCrawler(f, rec, 0).Run(context.Background(), "https://site/c1")
	require.NoError(t, err)

	assert.Equal(t, Completed, st.Status)
	assert.Len(t, st.Chapters, 2)
	assert.Equal(t, []string{"https://site/c1", "https://site/c2"}, f.calls)
	assert.Contains(t, rec.lines(), "Page 2 links back to https://site/c1, stopping.")
}

func TestRun_PageLimit(t *testing.T) {
	f := &mockFetcher{pages: map[string]string{
		"https://site/c1": page("B", "One", "", "/c2"),
		"https://site/c2": page("B", "Two", "", "/c3"),
		"https://site/c3": page("B", "Three", "", ""),
	}}

	st, err := newCrawler(f, nil, 2).Run(context.Background(), "https://site/c1")
	require.Error(t, err)

	var ple *PageLimitError
	require.True(t, errors.As(err, &ple))
	assert.Equal(t, 2, ple.Limit)
	assert.Equal(t, "https://site/c3", ple.URL)
	assert.Equal(t, Failed, st.Status)
	assert.Len(t, f.calls, 2)
}

func TestRun_ParseError(t *testing.T) {
	f := &mockFetcher{pages: map[string]string{"https://site/c1": "<html></html>"}}
	p := &mockParser{parseFunc: func(string, string) (providers.Document, error) {
		return nil, errors.New("broken markup")
	}}

	c := New(f, p, generic.NewLinkResolver("", ""), nil, 0)
	st, err := c.Run(context.Background(), "https://site/c1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken markup")
	assert.Equal(t, Failed, st.Status)
	assert.Empty(t, st.Chapters)
}

func TestRun_ParsesWithPageURL(t *testing.T) {
	f := &mockFetcher{pages: map[string]string{
		"https://site/c1": page("Moontide", "One", "<p>1</p>", "/c2"),
		"https://site/c2": page("", "Two", "<p>2</p>", ""),
	}}
	inner := generic.NewParser(generic.Selectors{})

	var seen []string
	p := &mockParser{parseFunc: func(pageURL, markup string) (providers.Document, error) {
		seen = append(seen, pageURL)
		return inner.Parse(pageURL, markup)
	}}

	c := New(f, p, generic.NewLinkResolver("https://site/", generic.DefaultSkipClass), nil, 0)
	_, err := c.Run(context.Background(), "https://site/c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://site/c1", "https://site/c2"}, seen)
}

func TestRun_CanceledContext(t *testing.T) {
	f := &mockFetcher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st, err := newCrawler(f, nil, 0).Run(ctx, "https://site/c1")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Failed, st.Status)
	assert.Empty(t, f.calls)
}

func TestStep_NoopWhenDone(t *testing.T) {
	f := &mockFetcher{pages: map[string]string{
		"https://site/c1": page("B", "One", "", ""),
	}}
	c := newCrawler(f, nil, 0)

	st := NewState("https://site/c1")
	require.NoError(t, c.Step(context.Background(), st))
	require.True(t, st.Done())

	require.NoError(t, c.Step(context.Background(), st))
	assert.Len(t, f.calls, 1)
	assert.Len(t, st.Chapters, 1)
}

func TestRun_OverHTTP(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/c1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page("Moontide", "Chapter 1", "<p>Hello</p>", "/c2")))
	})
	mux.HandleFunc("/c2", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page("Moontide", "Chapter 2", "<p>Bye</p>", "")))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(
		fetch.NewHTTPFetcher(srv.Client(), 0),
		generic.NewParser(generic.Selectors{}),
		generic.NewLinkResolver(srv.URL+"/", generic.DefaultSkipClass),
		nil,
		0,
	)

	st, err := c.Run(context.Background(), srv.URL+"/c1")
	require.NoError(t, err)
	assert.Equal(t, "Moontide", st.BookTitle)
	require.Len(t, st.Chapters, 2)
	assert.Equal(t, "<p>Hello</p>", st.Chapters[0].Content)
	assert.Equal(t, "Chapter 2", st.Chapters[1].Title)
}

func TestEventFunc(t *testing.T) {
	var got []EventKind
	sink := EventFunc(func(e Event) { got = append(got, e.Kind) })

	f := &mockFetcher{pages: map[string]string{"https://site/c1": page("B", "One", "", "")}}
	_, err := newCrawler(f, sink, 0).Run(context.Background(), "https://site/c1")
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventFetching, EventFetched, EventCompleted}, got)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "failed", Failed.String())
}
