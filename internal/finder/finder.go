// File: internal/finder/finder.go
package finder

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"sitedeploy/pkg/serrors"

	"github.com/spf13/afero"
)

// File is a regular file found under the build root. It is opened on demand
type File struct {
	fs   afero.Fs
	path string
	size int64
}

// Base name of the file, used as its object name
func (f File) Name() string {
	return filepath.Base(f.path)
}

func (f File) Path() string {
	return f.path
}

func (f File) Size() int64 {
	return f.size
}

func (f File) Open() (io.ReadCloser, error) {
	return f.fs.Open(f.path)
}

type Finder struct {
	fs     afero.Fs
	logger *slog.Logger
}

func New(fsys afero.Fs, logger *slog.Logger) *Finder {
	return &Finder{
		fs:     fsys,
		logger: logger.With("component", "Finder"),
	}
}

// Returns every regular file under root, recursively. Entries are visited in
// lexical order within each directory, so a/x.txt comes before b/x.txt.
// Hidden entries (names starting with ".") are skipped along with everything
// below them. Symlinks are followed to files but not into directories.
// A missing root yields no files
func (f *Finder) FindFiles(root string) ([]File, error) {
	if _, err := f.fs.Stat(root); errors.Is(err, fs.ErrNotExist) {
		f.logger.Warn("Build directory does not exist, nothing to upload", "root", root)
		return nil, nil
	}

	var files []File
	err := afero.Walk(f.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path != root && isHidden(path) {
			f.logger.Debug("Skipping hidden entry", "path", path)
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Walk reports symlinks unresolved
		if info.Mode()&fs.ModeSymlink != 0 {
			target, err := f.fs.Stat(path)
			if err != nil {
				return err
			}
			info = target
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		files = append(files, File{fs: f.fs, path: path, size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrLocalIO, err, "failed to list files under %s", root)
	}

	f.logger.Debug("Found build files", "root", root, "count", len(files))
	return files, nil
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
