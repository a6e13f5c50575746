package downloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/crawler"
	"github.com/brogergvhs/noveld/internal/epub"
	"github.com/brogergvhs/noveld/internal/ui"
	"github.com/brogergvhs/noveld/internal/util"
)

// ErrKeepExisting is returned when the caller declines to overwrite an
// existing book.
var ErrKeepExisting = errors.New("existing book kept")

type Logger interface {
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
}

// Result describes a finished download. Path is empty when no book was
// written.
type Result struct {
	BookTitle string
	Path      string
	Chapters  int
	Bytes     int64
	State     *crawler.State
}

// Downloader turns a crawl into an EPUB file on disk.
type Downloader struct {
	crawler   *crawler.Crawler
	assembler *epub.Assembler
	outputDir string
	log       Logger
	stats     *ui.Stats

	// Crawled runs once the crawl completes, before the book is assembled
	// or Overwrite is asked.
	Crawled func(st *crawler.State)

	// Overwrite is asked before replacing an existing file. Nil replaces
	// without asking.
	Overwrite func(path string) (bool, error)
}

func New(c *crawler.Crawler, a *epub.Assembler, outputDir string, log Logger, stats *ui.Stats) *Downloader {
	if stats == nil {
		stats = &ui.Stats{}
	}

	return &Downloader{
		crawler:   c,
		assembler: a,
		outputDir: outputDir,
		log:       log,
		stats:     stats,
	}
}

// Download crawls from startURL and saves the book as
// <outputDir>/<book title>.epub. Nothing is written when the crawl fails.
func (d *Downloader) Download(ctx context.Context, startURL string) (*Result, error) {
	st, err := d.crawler.Run(ctx, startURL)
	res := &Result{State: st, BookTitle: st.BookTitle, Chapters: len(st.Chapters)}
	d.stats.Pages.Add(int64(st.PageNumber - 1))
	if err != nil {
		return res, err
	}
	if d.Crawled != nil {
		d.Crawled(st)
	}

	fs, err := d.assembler.Assemble(st.BookTitle, st.Chapters)
	if err != nil {
		return res, err
	}

	blob, err := epub.Write(fs)
	if err != nil {
		return res, err
	}

	path := chapters.OutputPath(d.outputDir, st.BookTitle)
	if util.FileExists(path) && d.Overwrite != nil {
		ok, err := d.Overwrite(path)
		if err != nil {
			return res, err
		}
		if !ok {
			return res, fmt.Errorf("%s: %w", path, ErrKeepExisting)
		}
	}

	err = util.WriteFileAtomic(path, func(w io.Writer) error {
		n, err := copyWithProgress(w, bytes.NewReader(blob), func(done int64) {
			d.log.Debugf("wrote %s of %s", util.Human(done), util.Human(int64(len(blob))))
		})
		res.Bytes = n
		return err
	})
	if err != nil {
		return res, fmt.Errorf("save %s: %w", path, err)
	}

	res.Path = path
	d.stats.Chapters.Add(int64(res.Chapters))
	d.stats.Bytes.Add(res.Bytes)
	d.log.Infof("EPUB file created: %s", path)

	return res, nil
}
