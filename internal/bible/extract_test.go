package bible

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	stoerrors "github.com/FocuswithJustin/sword-to-obsidian/core/errors"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/locale"
)

// fakeReader serves chapter text from a map keyed by "book chapter".
type fakeReader struct {
	sections []Section
	text     map[string]string
	failAt   string
	requests []string
	closed   bool
}

func (f *fakeReader) Structure() ([]Section, error) {
	return f.sections, nil
}

func (f *fakeReader) VerseText(bookID string, chapter int) (string, error) {
	key := fmt.Sprintf("%s %d", bookID, chapter)
	f.requests = append(f.requests, key)
	if key == f.failAt {
		return "", fmt.Errorf("corrupt block")
	}
	return f.text[key], nil
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func openerFor(r *fakeReader, gotName *string) Opener {
	return func(path, name string) (ModuleReader, error) {
		if gotName != nil {
			*gotName = name
		}
		return r, nil
	}
}

func TestModuleName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/home/user/KJV.zip", "KJV"},
		{"PolGdanska.zip", "PolGdanska"},
		{"/sword/kjv", "kjv"},
		{"./modules/web.tar.gz", "web.tar"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ModuleName(tt.path); got != tt.want {
				t.Errorf("ModuleName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestExtractChapterBound(t *testing.T) {
	tests := []struct {
		declared int
		want     int
	}{
		{1, 0},
		{2, 1},
		{5, 4},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("declared %d", tt.declared), func(t *testing.T) {
			r := &fakeReader{
				sections: []Section{{Name: "ot", Books: []BookInfo{{ID: "Gen", Chapters: tt.declared}}}},
				text:     map[string]string{},
			}
			loc := &locale.Locale{Name: "EN", Books: map[string]string{"Gen": "Genesis"}}

			books, err := Extract("KJV.zip", loc, openerFor(r, nil))
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if len(books) != 1 {
				t.Fatalf("got %d books, want 1", len(books))
			}
			if got := len(books[0].Chapters); got != tt.want {
				t.Errorf("got %d chapters, want %d", got, tt.want)
			}
			if len(r.requests) != tt.want {
				t.Errorf("reader asked for %v", r.requests)
			}
		})
	}
}

func TestExtractOrderAndSplitting(t *testing.T) {
	r := &fakeReader{
		sections: []Section{
			{Name: "ot", Books: []BookInfo{{ID: "Gen", Chapters: 3}, {ID: "Exod", Chapters: 2}}},
			{Name: "nt", Books: []BookInfo{{ID: "Matt", Chapters: 2}}},
		},
		text: map[string]string{
			"Gen 1":  "  In the beginning \n God created ",
			"Gen 2":  "Thus the heavens",
			"Exod 1": "Now these are the names",
			"Matt 1": "The book of the generation\n\nAbraham begat Isaac",
		},
	}
	loc := &locale.Locale{Name: "EN", Books: map[string]string{
		"Gen": "Genesis", "Exod": "Exodus", "Matt": "Matthew",
	}}

	var name string
	books, err := Extract("/mods/KJV.zip", loc, openerFor(r, &name))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if name != "KJV" {
		t.Errorf("opener got name %q, want KJV", name)
	}
	if !r.closed {
		t.Error("reader was not closed")
	}

	want := []Book{
		{Name: "Genesis", Chapters: []Chapter{{"In the beginning", "God created"}, {"Thus the heavens"}}},
		{Name: "Exodus", Chapters: []Chapter{{"Now these are the names"}}},
		{Name: "Matthew", Chapters: []Chapter{{"The book of the generation", "", "Abraham begat Isaac"}}},
	}
	if !reflect.DeepEqual(books, want) {
		t.Errorf("Extract() =\n%#v\nwant\n%#v", books, want)
	}

	wantRequests := []string{"Gen 1", "Gen 2", "Exod 1", "Matt 1"}
	if !reflect.DeepEqual(r.requests, wantRequests) {
		t.Errorf("requests = %v, want %v", r.requests, wantRequests)
	}
}

func TestExtractMissingLocaleKey(t *testing.T) {
	r := &fakeReader{
		sections: []Section{{Name: "ot", Books: []BookInfo{{ID: "Gen", Chapters: 2}, {ID: "Exod", Chapters: 2}}}},
		text:     map[string]string{"Gen 1": "v1"},
	}
	loc := &locale.Locale{Name: "EN", Books: map[string]string{"Gen": "Genesis"}}

	books, err := Extract("KJV.zip", loc, openerFor(r, nil))
	if books != nil {
		t.Errorf("Extract() returned partial books %v", books)
	}
	var missing *stoerrors.LocaleMissingKeyError
	if !errors.As(err, &missing) {
		t.Fatalf("error %v is not LocaleMissingKeyError", err)
	}
	if missing.BookID != "Exod" {
		t.Errorf("BookID = %q, want Exod", missing.BookID)
	}
}

func TestExtractReaderFailure(t *testing.T) {
	r := &fakeReader{
		sections: []Section{{Name: "ot", Books: []BookInfo{{ID: "Gen", Chapters: 4}}}},
		text:     map[string]string{},
		failAt:   "Gen 2",
	}
	loc := &locale.Locale{Name: "EN", Books: map[string]string{"Gen": "Genesis"}}

	books, err := Extract("KJV.zip", loc, openerFor(r, nil))
	if books != nil {
		t.Errorf("Extract() returned partial books %v", books)
	}
	var readErr *stoerrors.ModuleReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("error %v is not ModuleReadError", err)
	}
	if readErr.Module != "KJV" || readErr.Book != "Gen" || readErr.Chapter != 2 {
		t.Errorf("ModuleReadError = %+v", readErr)
	}
	if len(r.requests) != 2 {
		t.Errorf("extraction continued after failure: %v", r.requests)
	}
}

func TestExtractOpenFailure(t *testing.T) {
	open := func(path, name string) (ModuleReader, error) {
		return nil, stoerrors.NewNotFound("module", name)
	}
	loc := &locale.Locale{Name: "EN", Books: map[string]string{}}

	_, err := Extract("Missing.zip", loc, open)
	if !errors.Is(err, stoerrors.ErrModuleRead) {
		t.Fatalf("error %v is not ModuleReadError", err)
	}
	if !errors.Is(err, stoerrors.ErrNotFound) {
		t.Errorf("error %v should keep the NotFound cause", err)
	}
}

func TestExtractBookNames(t *testing.T) {
	tests := []struct {
		name    string
		display string
		wantErr bool
	}{
		{"link syntax kept", "Gen#esis^1", false},
		{"pipe kept", "Księga|Rodzaju", false},
		{"separator", "../Genesis", true},
		{"dotdot", "..", true},
		{"control character", "Gen\nesis", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeReader{
				sections: []Section{{Name: "ot", Books: []BookInfo{{ID: "Gen", Chapters: 2}}}},
				text:     map[string]string{"Gen 1": "v1"},
			}
			loc := &locale.Locale{Name: "EN", Books: map[string]string{"Gen": tt.display, "Bar": "../Baruch"}}

			books, err := Extract("KJV.zip", loc, openerFor(r, nil))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Extract() error = %v", err)
				}
				if books[0].Name != tt.display {
					t.Errorf("Name = %q, want %q", books[0].Name, tt.display)
				}
				return
			}

			if books != nil {
				t.Errorf("Extract() returned partial books %v", books)
			}
			var cfgErr *stoerrors.ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Field != "books" {
				t.Fatalf("error %v is not a ConfigError on books", err)
			}
			if len(r.requests) != 0 {
				t.Errorf("chapters read before the name was rejected: %v", r.requests)
			}
		})
	}
}
