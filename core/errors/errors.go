// Package errors provides the error taxonomy shared by every stage of the
// SWORD to Obsidian conversion.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates malformed input
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
	// ErrConfig indicates a missing, malformed or incomplete configuration
	ErrConfig = errors.New("configuration error")
	// ErrLocaleMissingKey indicates a book identifier absent from the locale
	ErrLocaleMissingKey = errors.New("locale missing key")
	// ErrModuleRead indicates the source module could not be read
	ErrModuleRead = errors.New("module read error")
)

// ConfigError reports a locale file or setting that cannot be used.
type ConfigError struct {
	Path    string // File the configuration came from, if any
	Field   string // Offending field, if known
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration %s: %v", msg, e.Err)
	}
	return fmt.Sprintf("invalid configuration %s", msg)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConfig, e.Err}
	}
	return []error{ErrConfig}
}

// LocaleMissingKeyError reports a canonical book identifier that the
// locale does not translate.
type LocaleMissingKeyError struct {
	BookID string
}

func (e *LocaleMissingKeyError) Error() string {
	return fmt.Sprintf("locale has no name for book %q", e.BookID)
}

func (e *LocaleMissingKeyError) Unwrap() error {
	return ErrLocaleMissingKey
}

// ModuleReadError reports a failure of the module reader. Book and Chapter
// are zero when the failure is not tied to a position in the text.
type ModuleReadError struct {
	Module  string
	Book    string
	Chapter int
	Err     error
}

func (e *ModuleReadError) Error() string {
	switch {
	case e.Book != "" && e.Chapter > 0:
		return fmt.Sprintf("read module %s at %s %d: %v", e.Module, e.Book, e.Chapter, e.Err)
	case e.Book != "":
		return fmt.Sprintf("read module %s at %s: %v", e.Module, e.Book, e.Err)
	default:
		return fmt.Sprintf("read module %s: %v", e.Module, e.Err)
	}
}

func (e *ModuleReadError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrModuleRead, e.Err}
	}
	return []error{ErrModuleRead}
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "mkdir")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "conf", "bzv")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "module", "book")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// UnsupportedError represents an unsupported feature or format
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
	Err     error  // Underlying error, if any
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupported
}

// NewConfig creates a ConfigError
func NewConfig(path, field, message string) *ConfigError {
	return &ConfigError{
		Path:    path,
		Field:   field,
		Message: message,
	}
}

// NewLocaleMissingKey creates a LocaleMissingKeyError
func NewLocaleMissingKey(bookID string) *LocaleMissingKeyError {
	return &LocaleMissingKeyError{BookID: bookID}
}

// NewModuleRead creates a ModuleReadError
func NewModuleRead(module, book string, chapter int, err error) *ModuleReadError {
	return &ModuleReadError{
		Module:  module,
		Book:    book,
		Chapter: chapter,
		Err:     err,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
