// Package fsutil holds the path checks archive operations run before they
// hand paths to an external tool.
package fsutil

import (
	"errors"
	"io/fs"

	"github.com/spf13/afero"
)

// PathExists reports whether path is present on fsys. Only a not-exist stat
// result counts as absent; any other stat failure (permissions, I/O) is left
// for the archiver to report.
func PathExists(fsys afero.Fs, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// FirstMissing returns the first path, in order, that does not exist on fsys.
// Paths after it are not checked.
func FirstMissing(fsys afero.Fs, paths []string) (string, bool) {
	for _, p := range paths {
		if !PathExists(fsys, p) {
			return p, true
		}
	}
	return "", false
}
