// Package locale loads the book-name translation table that localizes the
// generated vault.
package locale

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/FocuswithJustin/sword-to-obsidian/core/errors"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/validation"
)

// Locale maps canonical book identifiers to display names. Name is the
// output root directory. A Locale is never modified after Load.
type Locale struct {
	Name  string
	Books map[string]string
}

// file mirrors the on-disk layout; pointers tell absent fields from empty ones.
type file struct {
	Name  *string            `json:"name"`
	Books *map[string]string `json:"books"`
}

// Load reads a locale JSON file. It fails with a ConfigError when the file
// cannot be read, is not a JSON object with exactly the fields "name" and
// "books", or when either field is missing.
func Load(path string) (*Locale, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ConfigError{Path: path, Message: "cannot read locale", Err: err}
	}
	return Parse(path, data)
}

// Parse decodes locale data; path is used for error messages only.
func Parse(path string, data []byte) (*Locale, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var f file
	if err := dec.Decode(&f); err != nil {
		return nil, &errors.ConfigError{Path: path, Message: "malformed locale", Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.NewConfig(path, "", "unexpected data after locale object")
	}

	if f.Name == nil || *f.Name == "" {
		return nil, errors.NewConfig(path, "name", "missing")
	}
	if f.Books == nil || *f.Books == nil {
		return nil, errors.NewConfig(path, "books", "missing")
	}

	if err := validation.ValidateName(*f.Name); err != nil {
		return nil, &errors.ConfigError{Path: path, Field: "name", Message: "unusable as a directory name", Err: err}
	}

	books := make(map[string]string, len(*f.Books))
	for id, name := range *f.Books {
		if name == "" {
			return nil, errors.NewConfig(path, "books", fmt.Sprintf("empty name for %q", id))
		}
		books[id] = name
	}
	return &Locale{Name: *f.Name, Books: books}, nil
}

// BookName returns the display name for a canonical book identifier.
func (l *Locale) BookName(id string) (string, error) {
	name, ok := l.Books[id]
	if !ok {
		return "", errors.NewLocaleMissingKey(id)
	}
	return name, nil
}
