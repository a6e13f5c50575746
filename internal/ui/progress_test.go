package ui

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func finishWithin(t *testing.T, cp *CrawlProgress, ok bool) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		cp.Finish(ok)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Finish did not return")
	}
}

func TestCrawlProgress_Completes(t *testing.T) {
	cp := NewCrawlProgressTo(io.Discard, "Crawling")
	for range 3 {
		cp.PageDone()
	}

	finishWithin(t, cp, true)
	assert.True(t, cp.final.Load())

	// no-ops once finished
	cp.PageDone()
	finishWithin(t, cp, false)
}

func TestCrawlProgress_Aborts(t *testing.T) {
	cp := NewCrawlProgressTo(io.Discard, "Crawling")
	cp.PageDone()

	finishWithin(t, cp, false)
	assert.True(t, cp.final.Load())
}
