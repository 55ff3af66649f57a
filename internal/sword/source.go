package sword

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"

	"github.com/FocuswithJustin/sword-to-obsidian/core/errors"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenSource exposes a SWORD installation as a file system. path is either
// a directory holding mods.d/ and modules/, or a zip archive with the same
// layout as distributed by module repositories. The returned Closer
// releases the archive.
func OpenSource(path string) (fs.FS, io.Closer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, errors.NewIO("stat", path, err)
	}

	if info.IsDir() {
		return os.DirFS(path), nopCloser{}, nil
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, &errors.ParseError{Format: "zip", Path: path, Message: "not a module archive", Err: err}
	}
	return zr, zr, nil
}
