package crawler

import "fmt"

// PageLimitError stops a crawl that would fetch more than Limit pages.
type PageLimitError struct {
	Limit int
	URL   string
}

func (e *PageLimitError) Error() string {
	return fmt.Sprintf("page limit of %d reached before %s", e.Limit, e.URL)
}
