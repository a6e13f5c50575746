package epub

import "fmt"

// AssemblyError reports a failure while building or serializing a book.
// The chapters handed to the failing step are left untouched.
type AssemblyError struct {
	Op  string
	Err error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("epub: %s: %v", e.Op, e.Err)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}
