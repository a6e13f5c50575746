package cmd

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/brogergvhs/noveld/internal/fetch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "noveld version: dev\n", out.String())
}

func TestCrawlCommand_MissingURL(t *testing.T) {
	t.Setenv("NOVELD_CONFIG_DIR", t.TempDir())
	rootCmd.SetArgs([]string{"crawl", "--ignore-config", "--no-progress", "--url", ""})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing --url")

	var r reported
	assert.False(t, errors.As(err, &r), "config errors are printed by Execute")
}

func TestCrawlCommand_FailedCrawlReportedOnce(t *testing.T) {
	t.Setenv("NOVELD_CONFIG_DIR", t.TempDir())

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	out := t.TempDir()
	rootCmd.SetArgs([]string{
		"crawl", "--ignore-config", "--no-progress", "--force",
		"--url", srv.URL + "/c1",
		"--base-url", srv.URL + "/",
		"--output", out,
	})

	err := rootCmd.Execute()
	require.Error(t, err)

	var r reported
	require.True(t, errors.As(err, &r), "the event sink already logged %v", err)

	var fe *fetch.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
	assert.NoFileExists(t, filepath.Join(out, "book.epub"))
}

func TestCrawlCommand_WritesBook(t *testing.T) {
	t.Setenv("NOVELD_CONFIG_DIR", t.TempDir())

	mux := http.NewServeMux()
	mux.HandleFunc("/c1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<div id="bookname">Moontide</div><h1>Chapter 1</h1><div id="htmlContent"><p>Hello</p></div>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	out := t.TempDir()
	rootCmd.SetArgs([]string{
		"crawl", "--ignore-config", "--no-progress", "--force",
		"--url", srv.URL + "/c1",
		"--base-url", srv.URL + "/",
		"--output", out,
	})

	require.NoError(t, rootCmd.Execute())
	assert.FileExists(t, filepath.Join(out, "Moontide.epub"))
}
