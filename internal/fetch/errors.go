package fetch

import (
	"errors"
	"fmt"
)

var ErrBodyTooLarge = errors.New("response body too large")

// FetchError reports a page that could not be retrieved. StatusCode is 0 when
// no response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch %s: HTTP error! status: %s", e.URL, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("fetch %s: failed", e.URL)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
