// Package sword reads Bible text from SWORD modules without the SWORD C++
// library. It implements bible.ModuleReader for zText, zText4, RawText and
// RawText4 modules stored in a directory or a zip archive.
package sword

import (
	"fmt"
	"io"
	"io/fs"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/FocuswithJustin/sword-to-obsidian/core/errors"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/bible"
)

// Module is an open SWORD Bible module.
type Module struct {
	conf   *Conf
	vers   *Versification
	ot, nt store // nil when the module carries no text for the testament
	closer io.Closer
}

// Open implements bible.Opener.
func Open(path, name string) (bible.ModuleReader, error) {
	m, err := OpenModule(path, name)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// OpenModule opens the module called name from the installation at path.
func OpenModule(path, name string) (*Module, error) {
	fsys, closer, err := OpenSource(path)
	if err != nil {
		return nil, err
	}

	m, err := openFS(fsys, name)
	if err != nil {
		closer.Close()
		return nil, err
	}
	m.closer = closer
	return m, nil
}

func openFS(fsys fs.FS, name string) (*Module, error) {
	conf, err := FindConf(fsys, name)
	if err != nil {
		return nil, err
	}
	if !conf.IsBible() {
		return nil, errors.NewUnsupported("module driver", fmt.Sprintf("%s (%s)", conf.ModDrv, conf.ModuleName))
	}
	if conf.IsEncrypted() {
		return nil, errors.NewUnsupported("module", conf.ModuleName+" is encrypted")
	}

	vers, err := VersificationFor(conf.Versification)
	if err != nil {
		return nil, err
	}

	m := &Module{conf: conf, vers: vers}
	dir := conf.DataDir()

	switch driver := strings.ToLower(conf.ModDrv); driver {
	case "ztext", "ztext4":
		d, err := decompressorFor(conf.CompressType)
		if err != nil {
			return nil, err
		}
		wide := driver == "ztext4"
		if hasTestament(fsys, dir, "ot", ".bzv") {
			if m.ot, err = openZStore(fsys, dir, "ot", wide, d); err != nil {
				return nil, err
			}
		}
		if hasTestament(fsys, dir, "nt", ".bzv") {
			if m.nt, err = openZStore(fsys, dir, "nt", wide, d); err != nil {
				return nil, err
			}
		}
	case "rawtext", "rawtext4":
		wide := driver == "rawtext4"
		if hasTestament(fsys, dir, "ot", ".vss") {
			if m.ot, err = openRawStore(fsys, dir, "ot", wide); err != nil {
				return nil, err
			}
		}
		if hasTestament(fsys, dir, "nt", ".vss") {
			if m.nt, err = openRawStore(fsys, dir, "nt", wide); err != nil {
				return nil, err
			}
		}
	}

	if m.ot == nil && m.nt == nil {
		return nil, errors.NewNotFound("module text", dir)
	}
	return m, nil
}

// Name returns the module name as declared in its conf file.
func (m *Module) Name() string {
	return m.conf.ModuleName
}

// Conf returns the parsed conf file of the module.
func (m *Module) Conf() *Conf {
	return m.conf
}

// Structure returns the testaments present in the module, Old Testament
// first, with the chapter count of every book.
func (m *Module) Structure() ([]bible.Section, error) {
	var sections []bible.Section
	if m.ot != nil {
		sections = append(sections, section("ot", m.vers.OT()))
	}
	if m.nt != nil {
		sections = append(sections, section("nt", m.vers.NT()))
	}
	return sections, nil
}

func section(name string, books []BookData) bible.Section {
	s := bible.Section{Name: name, Books: make([]bible.BookInfo, len(books))}
	for i, b := range books {
		s.Books[i] = bible.BookInfo{ID: b.OSIS, Chapters: len(b.Verses)}
	}
	return s
}

// VerseText returns the cleaned verses of a chapter joined with
// bible.VerseSeparator. Empty verses are kept as empty lines.
func (m *Module) VerseText(bookID string, chapter int) (string, error) {
	bi := m.vers.BookIndex(bookID)
	if bi < 0 {
		return "", errors.NewNotFound("book", bookID)
	}
	book := m.vers.Books[bi]
	if chapter < 1 || chapter > len(book.Verses) {
		return "", errors.NewNotFound("chapter", fmt.Sprintf("%s %d", bookID, chapter))
	}

	s := m.ot
	if m.vers.IsNT(bi) {
		s = m.nt
	}
	if s == nil {
		return "", errors.NewNotFound("testament text for book", bookID)
	}

	verses := make([]string, book.Verses[chapter-1])
	for v := range verses {
		idx, err := m.vers.Index(bookID, chapter, v+1)
		if err != nil {
			return "", err
		}
		raw, err := s.entry(idx)
		if err != nil {
			return "", err
		}
		verses[v] = Clean(m.decode(raw))
	}
	return strings.Join(verses, bible.VerseSeparator), nil
}

func (m *Module) decode(raw []byte) string {
	if m.conf.IsUTF8() {
		return strings.ToValidUTF8(string(raw), "�")
	}
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(text)
}

// Close releases the underlying archive.
func (m *Module) Close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer.Close()
}
