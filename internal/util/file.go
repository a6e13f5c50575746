package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const PartSuffix = ".part"

// WriteFileAtomic streams fn's output into path. Data goes to path+".part"
// first and is renamed into place only after fn and the flush succeed, so a
// failed write never leaves a file at path.
func WriteFileAtomic(path string, fn func(w io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}

	part := path + PartSuffix
	f, err := os.Create(part)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(part)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = fn(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(part, path)
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
