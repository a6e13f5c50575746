package ui

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// CrawlProgress is a spinner counting fetched pages. The number of pages is
// unknown until the crawl ends.
type CrawlProgress struct {
	p   *mpb.Progress
	bar *mpb.Bar

	start   time.Time
	elapsed atomic.Int64
	final   atomic.Bool
}

func NewCrawlProgress(name string) *CrawlProgress {
	return NewCrawlProgressTo(os.Stdout, name)
}

func NewCrawlProgressTo(w io.Writer, name string) *CrawlProgress {
	cp := &CrawlProgress{start: time.Now()}

	cp.p = mpb.New(
		mpb.WithWidth(52),
		mpb.WithOutput(w),
		mpb.WithRefreshRate(120*time.Millisecond),
	)

	cp.bar = cp.p.New(
		0,
		mpb.SpinnerStyle(),
		mpb.BarFillerClearOnComplete(),
		mpb.PrependDecorators(
			decor.Name(name+"  "),
		),
		mpb.AppendDecorators(
			decor.CurrentNoUnit("%d pages", decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string {
				if cp.final.Load() {
					return fmt.Sprintf(" | %ds", cp.elapsed.Load())
				}
				return fmt.Sprintf(" | %ds", int(time.Since(cp.start).Seconds()))
			}),
		),
	)

	return cp
}

func (cp *CrawlProgress) PageDone() {
	if cp.final.Load() {
		return
	}

	cp.bar.Increment()
}

// Finish stops the spinner. A failed crawl leaves the bar marked as aborted.
func (cp *CrawlProgress) Finish(ok bool) {
	if cp.final.Swap(true) {
		return
	}

	cp.elapsed.Store(int64(time.Since(cp.start).Seconds()))
	if ok {
		cp.bar.SetTotal(-1, true)
	} else {
		cp.bar.Abort(false)
	}

	cp.p.Wait()
}
