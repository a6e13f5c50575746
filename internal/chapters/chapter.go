package chapters

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// DefaultBookTitle is used when the first page carries no book name.
const DefaultBookTitle = "book"

// Chapter is one crawled page. Position in the crawl sequence is its
// reading order.
type Chapter struct {
	Title   string
	Content string
}

// FileName returns the archive file name of the chapter at index i (0-based).
func FileName(i int) string {
	return fmt.Sprintf("chapter%d.xhtml", i+1)
}

// FallbackTitle is the title used for a page without a heading.
func FallbackTitle(pageNumber int) string {
	return fmt.Sprintf("Chapter %d", pageNumber)
}

var reSpaces = regexp.MustCompile(`\s+`)

func sanitize(s string) string {
	repl := []string{
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	}
	for i := 0; i < len(repl); i += 2 {
		s = strings.ReplaceAll(s, repl[i], repl[i+1])
	}

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		clean = append(clean, r)
	}
	s = reSpaces.ReplaceAllString(string(clean), " ")

	return strings.Trim(strings.TrimSpace(s), ".")
}

// OutputName is the download name for a book: "<title>.epub", with
// characters that are unsafe in file names replaced.
func OutputName(bookTitle string) string {
	name := sanitize(bookTitle)
	if name == "" {
		name = DefaultBookTitle
	}

	return name + ".epub"
}

func OutputPath(out, bookTitle string) string {
	return filepath.Join(out, OutputName(bookTitle))
}
