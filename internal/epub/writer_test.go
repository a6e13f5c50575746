package epub

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/brogergvhs/noveld/internal/chapters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openArchive(t *testing.T, blob []byte) *zip.Reader {
	t.Helper()

	r, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)

	return r
}

func readEntry(t *testing.T, f *zip.File) []byte {
	t.Helper()

	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)

	return data
}

func TestWrite_RoundTrip(t *testing.T) {
	fs, err := fixedAssembler().Assemble("Moontide", makeChapters(3))
	require.NoError(t, err)

	blob, err := Write(fs)
	require.NoError(t, err)

	r := openArchive(t, blob)
	require.Len(t, r.File, len(fs.Files))

	for i, zf := range r.File {
		assert.Equal(t, fs.Files[i].Name, zf.Name)
		assert.Equal(t, fs.Files[i].Data, readEntry(t, zf))
	}
}

func TestWrite_MimetypeFirstAndStored(t *testing.T) {
	fs, err := fixedAssembler().Assemble("Moontide", makeChapters(1))
	require.NoError(t, err)

	blob, err := Write(fs)
	require.NoError(t, err)

	r := openArchive(t, blob)
	first := r.File[0]
	assert.Equal(t, "mimetype", first.Name)
	assert.Equal(t, zip.Store, first.Method)
	assert.Empty(t, first.Extra)
	assert.Equal(t, "application/epub+zip", string(readEntry(t, first)))

	for _, zf := range r.File[1:] {
		assert.Equal(t, zip.Deflate, zf.Method, zf.Name)
	}
}

func TestWrite_Deterministic(t *testing.T) {
	chs := []chapters.Chapter{
		{Title: "One", Content: "<p>1</p>"},
		{Title: "Two", Content: "<p>2</p>"},
	}

	fs1, err := fixedAssembler().Assemble("Moontide", chs)
	require.NoError(t, err)
	fs2, err := fixedAssembler().Assemble("Moontide", chs)
	require.NoError(t, err)

	a, err := Write(fs1)
	require.NoError(t, err)
	b, err := Write(fs2)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestWrite_NilFileSet(t *testing.T) {
	_, err := Write(nil)
	require.Error(t, err)

	var ae *AssemblyError
	assert.True(t, errors.As(err, &ae))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteTo_PropagatesWriterError(t *testing.T) {
	fs, err := fixedAssembler().Assemble("Moontide", makeChapters(1))
	require.NoError(t, err)

	err = WriteTo(failingWriter{}, fs)
	require.Error(t, err)

	var ae *AssemblyError
	require.True(t, errors.As(err, &ae))
	assert.Contains(t, err.Error(), "disk full")
}
