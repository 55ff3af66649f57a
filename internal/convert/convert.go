// Package convert runs the full conversion of a SWORD module into an
// Obsidian vault.
package convert

import (
	"context"
	"time"

	"github.com/FocuswithJustin/sword-to-obsidian/internal/bible"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/locale"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/logging"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/render"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/sword"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/vault"
)

// Options configures a conversion run.
type Options struct {
	ModulePath string
	LocalePath string
	OutputDir  string       // parent of the vault directory; "" means the working directory
	Workers    int          // parallel book writers; < 1 means one
	Open       bible.Opener // defaults to sword.Open
}

// Result summarizes a finished run.
type Result struct {
	Dir   string // vault directory, <OutputDir>/<locale name>
	Books int
	Files int
}

// Run loads the locale, extracts every book of the module and writes the
// vault. Nothing is written unless extraction succeeds completely.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	loc, err := locale.Load(opts.LocalePath)
	if err != nil {
		return nil, err
	}
	logging.Debug("locale_loaded", "path", opts.LocalePath, "name", loc.Name, "books", len(loc.Books))

	open := opts.Open
	if open == nil {
		open = sword.Open
	}
	books, err := bible.Extract(opts.ModulePath, loc, open)
	if err != nil {
		return nil, err
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}
	w := vault.New(outDir, loc, render.New(loc.Name))

	files, err := w.WriteAll(ctx, books, opts.Workers)
	if err != nil {
		return nil, err
	}
	root, err := w.WriteRoot(books)
	if err != nil {
		return nil, err
	}
	if root != "" {
		files++
	}

	logging.RunFinished(len(books), files, time.Since(start), "dir", w.Dir)
	return &Result{Dir: w.Dir, Books: len(books), Files: files}, nil
}
