package bible

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/sword-to-obsidian/core/errors"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/locale"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/logging"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/validation"
)

// Extract reads every book of the module at path and returns them in
// canonical order with localized names.
//
// The declared chapter count of a book is used as an exclusive bound, so
// chapters 1 through count-1 are read and the final declared chapter never
// is. Generated vaults depend on this numbering.
//
// Any failure aborts the whole extraction and no books are returned.
func Extract(path string, loc *locale.Locale, open Opener) ([]Book, error) {
	name := ModuleName(path)

	r, err := open(path, name)
	if err != nil {
		return nil, errors.NewModuleRead(name, "", 0, err)
	}
	defer r.Close()
	logging.ModuleOpened(name, path)

	sections, err := r.Structure()
	if err != nil {
		return nil, errors.NewModuleRead(name, "", 0, err)
	}

	var infos []BookInfo
	for _, s := range sections {
		infos = append(infos, s.Books...)
	}

	books := make([]Book, 0, len(infos))
	for _, info := range infos {
		display, err := loc.BookName(info.ID)
		if err != nil {
			return nil, err
		}
		// the name becomes a directory and file name of the vault
		if err := validation.ValidateName(display); err != nil {
			return nil, &errors.ConfigError{Field: "books", Message: fmt.Sprintf("name for %q", info.ID), Err: err}
		}

		book := Book{Name: display, Chapters: make([]Chapter, 0, max(info.Chapters-1, 0))}
		for ch := 1; ch < info.Chapters; ch++ {
			text, err := r.VerseText(info.ID, ch)
			if err != nil {
				return nil, errors.NewModuleRead(name, info.ID, ch, err)
			}
			book.Chapters = append(book.Chapters, splitVerses(text))
		}

		logging.BookExtracted(book.Name, len(book.Chapters), "id", info.ID)
		books = append(books, book)
	}

	return books, nil
}

func splitVerses(text string) Chapter {
	parts := strings.Split(text, VerseSeparator)
	verses := make(Chapter, len(parts))
	for i, p := range parts {
		verses[i] = strings.TrimSpace(p)
	}
	return verses
}
