package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, false)

	l.Debugf("hidden %d", 1)
	l.Infof("Fetching page %d: %s", 1, "https://site/c1")
	l.Errorf("Error: %s", "boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `level=info msg="Fetching page 1: https://site/c1"`)
	assert.Contains(t, out, `level=error msg="Error: boom"`)
}

func TestLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, true)

	l.Debugf("HTTP %s %s", "GET", "https://site/c1")
	assert.Contains(t, buf.String(), "level=debug")
}

func TestLogger_WithFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "noveld.log")

	l := NewLoggerTo(&buf, false)
	l.WithFile(path)
	l.Warnf("Page %d links back", 2)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Page 2 links back")
	assert.Contains(t, buf.String(), "Page 2 links back")
}
