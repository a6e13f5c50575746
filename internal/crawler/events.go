package crawler

import "fmt"

type EventKind int

const (
	EventFetching EventKind = iota
	EventFetched
	EventRevisit
	EventCompleted
	EventFailed
)

// Event is one progress line of a crawl.
type Event struct {
	Kind EventKind
	Page int
	URL  string
	Err  error
}

func (e Event) String() string {
	switch e.Kind {
	case EventFetching:
		return fmt.Sprintf("Fetching page %d: %s", e.Page, e.URL)
	case EventFetched:
		return fmt.Sprintf("Page %d fetched successfully.", e.Page)
	case EventRevisit:
		return fmt.Sprintf("Page %d links back to %s, stopping.", e.Page-1, e.URL)
	case EventCompleted:
		return "All pages fetched successfully. Creating the EPUB file..."
	case EventFailed:
		return fmt.Sprintf("Error: %v", e.Err)
	default:
		return fmt.Sprintf("event %d", e.Kind)
	}
}

type EventSink interface {
	Emit(Event)
}

// EventFunc adapts a function to EventSink.
type EventFunc func(Event)

func (f EventFunc) Emit(e Event) {
	f(e)
}

type discard struct{}

func (discard) Emit(Event) {}
