package crawler

import "github.com/brogergvhs/noveld/internal/chapters"

type Status int

const (
	Running Status = iota
	Completed
	Failed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the progress of one crawl. CurrentURL is empty once the crawl has
// ended, whatever the outcome.
type State struct {
	CurrentURL string
	PageNumber int
	Chapters   []chapters.Chapter
	BookTitle  string
	Status     Status
	Err        error

	bookTitleSet bool
	visited      map[string]struct{}
}

func NewState(startURL string) *State {
	return &State{
		CurrentURL: startURL,
		PageNumber: 1,
		Status:     Running,
		visited:    make(map[string]struct{}),
	}
}

func (s *State) Done() bool {
	return s.Status != Running
}

// setBookTitle records the book title the first time it is called.
func (s *State) setBookTitle(t string) {
	if s.bookTitleSet {
		return
	}
	if t == "" {
		t = chapters.DefaultBookTitle
	}

	s.BookTitle = t
	s.bookTitleSet = true
}

func (s *State) seen(u string) bool {
	_, ok := s.visited[u]
	return ok
}

func (s *State) visit(u string) {
	s.visited[u] = struct{}{}
}
