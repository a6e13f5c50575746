package epub

import (
	"archive/zip"
	"bytes"
	"fmt"
	"hash/crc32"
	"io"
)

// Write serializes fs into a zip archive held in memory.
func Write(fs *FileSet) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTo(&buf, fs); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteTo streams fs as a zip archive to w, entries in fs order. The
// mimetype entry is stored uncompressed; everything else is deflated. Entry
// times are fs.Modified so equal file sets give equal archives.
func WriteTo(w io.Writer, fs *FileSet) error {
	if fs == nil {
		return &AssemblyError{Op: "write", Err: fmt.Errorf("nil file set")}
	}

	z := zip.NewWriter(w)
	for _, f := range fs.Files {
		if err := addFileToZip(z, f, fs); err != nil {
			_ = z.Close()
			return &AssemblyError{Op: "write " + f.Name, Err: err}
		}
	}

	if err := z.Close(); err != nil {
		return &AssemblyError{Op: "close archive", Err: err}
	}

	return nil
}

func addFileToZip(z *zip.Writer, f File, fs *FileSet) error {
	if f.Name == mimetypePath {
		return addStoredFile(z, f)
	}

	header := &zip.FileHeader{
		Name:     f.Name,
		Method:   zip.Deflate,
		Modified: fs.Modified,
	}

	w, err := z.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = w.Write(f.Data)

	return err
}

// addStoredFile writes f uncompressed with sizes in the local header and no
// extra fields, as readers expect for the leading mimetype entry.
func addStoredFile(z *zip.Writer, f File) error {
	size := uint64(len(f.Data))
	w, err := z.CreateRaw(&zip.FileHeader{
		Name:               f.Name,
		Method:             zip.Store,
		CRC32:              crc32.ChecksumIEEE(f.Data),
		CompressedSize64:   size,
		UncompressedSize64: size,
	})
	if err != nil {
		return err
	}

	_, err = w.Write(f.Data)

	return err
}
