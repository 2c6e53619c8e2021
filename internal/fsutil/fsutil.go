// Package fsutil holds the small file helpers shared by the writers: atomic
// replace-in-place and file copy.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/backmassage/locremix/internal/errors"
)

// WriteFileAtomic writes data to a temp file in the destination directory and
// renames it over path, so readers never observe a half-written file. The
// parent directory is created when missing.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "write %s", tmpPath)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "sync %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "close %s", tmpPath)
	}
	_ = os.Chmod(tmpPath, perm)

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "replace %s", path)
	}
	return nil
}

// CopyFile copies src to dst atomically, keeping the source permissions.
func CopyFile(src, dst string) error {
	fi, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(errors.ErrInputNotFound, "%s", src)
		}
		return errors.Wrapf(err, "stat %s", src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, "read %s", src)
	}
	return WriteFileAtomic(dst, data, fi.Mode().Perm())
}
