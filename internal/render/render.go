// Package render produces the Obsidian Markdown documents of a vault.
// Every function is pure: the same book always yields the same bytes.
package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/FocuswithJustin/sword-to-obsidian/internal/bible"
)

// RootName is the name of the top-level document every book index links to.
const RootName = "Bible"

// Labels holds the fixed interface strings of the generated documents.
type Labels struct {
	BeginReading string
}

var (
	polish  = Labels{BeginReading: "Rozpocznij czytanie →"}
	english = Labels{BeginReading: "Begin reading →"}
	german  = Labels{BeginReading: "Mit dem Lesen beginnen →"}
)

var (
	supported = []language.Tag{language.Polish, language.English, language.German}
	labels    = []Labels{polish, english, german}
	matcher   = language.NewMatcher(supported)
)

// LabelsFor picks the labels for a locale name such as "EN" or "pl-PL".
// Names that do not identify a known language get the Polish labels.
func LabelsFor(localeName string) Labels {
	tag, err := language.Parse(localeName)
	if err != nil || tag == language.Und {
		return polish
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return polish
	}
	return labels[idx]
}

// Renderer renders books into Markdown.
type Renderer struct {
	Labels Labels
}

// New returns a Renderer with the labels for localeName.
func New(localeName string) *Renderer {
	return &Renderer{Labels: LabelsFor(localeName)}
}

// Index renders the entry document of a book.
func (r *Renderer) Index(book bible.Book) string {
	return fmt.Sprintf("links: [[%s]]\n# %s\n\n[[%s 1|%s]]", RootName, book.Name, book.Name, r.Labels.BeginReading)
}

// Chapter renders chapter idx of book (0-based; the document shows idx+1).
func (r *Renderer) Chapter(book bible.Book, idx int) string {
	n := idx + 1
	nav := Nav(book.Name, n, len(book.Chapters))

	var b strings.Builder
	fmt.Fprintf(&b, "# %s %d\n\n%s\n\n***\n\n", book.Name, n, nav)
	b.WriteString(Verses(book.Chapters[idx]))
	fmt.Fprintf(&b, "\n\n***\n\n%s", nav)
	return b.String()
}

// Nav renders the navigation line of chapter n out of total.
func Nav(name string, n, total int) string {
	parts := make([]string, 0, 3)
	if n > 1 {
		parts = append(parts, fmt.Sprintf("[[%s %d|← %s %d]]", name, n-1, name, n-1))
	}
	parts = append(parts, fmt.Sprintf("[[%s]]", name))
	if n < total {
		parts = append(parts, fmt.Sprintf("[[%s %d|%s %d →]]", name, n+1, name, n+1))
	}
	return strings.Join(parts, " | ")
}

// Verses renders each verse under a level-six heading with its number.
func Verses(ch bible.Chapter) string {
	blocks := make([]string, len(ch))
	for i, v := range ch {
		blocks[i] = fmt.Sprintf("###### %d\n%s", i+1, v)
	}
	return strings.Join(blocks, "\n")
}

// Root renders the top-level document linking to every book in order.
func (r *Renderer) Root(books []bible.Book) string {
	var b strings.Builder
	b.WriteString("# " + RootName + "\n")
	for _, book := range books {
		fmt.Fprintf(&b, "\n[[%s]]", book.Name)
	}
	return b.String()
}
