// Package bible holds the in-memory Bible representation and the extractor
// that builds it from a module reader.
package bible

import (
	"path/filepath"
	"strings"
)

// VerseSeparator delimits verses in the chapter text returned by a
// ModuleReader.
const VerseSeparator = "\n"

// Chapter is the ordered verse text of one chapter. Verse n is Chapter[n-1].
type Chapter []string

// Book is a localized book. Name is already the display name; Chapters[0]
// is chapter 1.
type Book struct {
	Name     string
	Chapters []Chapter
}

// BookInfo describes a book in the module's canonical structure.
type BookInfo struct {
	ID       string // canonical identifier, e.g. "Gen"
	Chapters int    // declared chapter count
}

// Section is one part of the canonical structure, e.g. a testament.
type Section struct {
	Name  string
	Books []BookInfo
}

// ModuleReader is the capability a source module backend provides.
type ModuleReader interface {
	// Structure returns the canonical book order, section by section.
	Structure() ([]Section, error)
	// VerseText returns the cleaned verses of a chapter joined with
	// VerseSeparator.
	VerseText(bookID string, chapter int) (string, error)
	Close() error
}

// Opener obtains a ModuleReader for the module called name at path.
type Opener func(path, name string) (ModuleReader, error)

// ModuleName derives the module identifier from its path: the base name
// without extension ("/mods/KJV.zip" -> "KJV").
func ModuleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
