// Package vault writes rendered books into an Obsidian vault directory.
package vault

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/FocuswithJustin/sword-to-obsidian/core/errors"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/bible"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/locale"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/logging"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/render"
)

// Writer writes books under Dir, one directory per book.
type Writer struct {
	Dir      string
	Renderer *render.Renderer
}

// New returns a Writer rooted at baseDir/<locale name>.
func New(baseDir string, loc *locale.Locale, r *render.Renderer) *Writer {
	return &Writer{
		Dir:      filepath.Join(baseDir, loc.Name),
		Renderer: r,
	}
}

// WriteBook writes the index document and every chapter document of book
// and returns the paths written. Existing files are overwritten. Files
// written before a failure are left in place.
func (w *Writer) WriteBook(book bible.Book) ([]string, error) {
	dir := filepath.Join(w.Dir, book.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewIO("mkdir", dir, err)
	}

	paths := make([]string, 0, len(book.Chapters)+1)
	index := filepath.Join(dir, book.Name+".md")
	if err := writeDoc(index, w.Renderer.Index(book)); err != nil {
		return paths, err
	}
	paths = append(paths, index)

	for i := range book.Chapters {
		p := filepath.Join(dir, book.Name+" "+strconv.Itoa(i+1)+".md")
		if err := writeDoc(p, w.Renderer.Chapter(book, i)); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}

	logging.BookWritten(book.Name, len(paths), dir)
	return paths, nil
}

// WriteRoot writes the top-level Bible document that book indexes link to.
// An existing document is left untouched and "" is returned, so a root page
// edited inside the vault survives later runs.
func (w *Writer) WriteRoot(books []bible.Book) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", errors.NewIO("mkdir", w.Dir, err)
	}
	p := filepath.Join(w.Dir, render.RootName+".md")
	switch _, err := os.Lstat(p); {
	case err == nil:
		logging.Debug("root_kept", "path", p)
		return "", nil
	case !os.IsNotExist(err):
		return "", errors.NewIO("stat", p, err)
	}
	if err := writeDoc(p, w.Renderer.Root(books)); err != nil {
		return "", err
	}
	return p, nil
}

// WriteAll writes books concurrently, at most workers at a time. Documents
// of different books never share a path, so the result matches a
// sequential run. The first failure stops books not yet started and is
// returned along with the number of files written.
func (w *Writer) WriteAll(ctx context.Context, books []bible.Book, workers int) (int, error) {
	if workers < 1 {
		workers = 1
	}

	counts := make([]int, len(books))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, book := range books {
		i, book := i, book
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			paths, err := w.WriteBook(book)
			counts[i] = len(paths)
			return err
		})
	}
	err := g.Wait()

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, err
}

func writeDoc(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}
