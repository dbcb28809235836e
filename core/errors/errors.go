// Package errors provides standardized error types and helpers for the Scriptura codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is
var (
	// ErrNotFound indicates a missing resource
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a failed validation
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized indicates a missing or rejected credential
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInternal indicates a fault in the server itself
	ErrInternal = errors.New("internal error")

	// ErrMalformedInput indicates a reference string unusable before tokenizing
	ErrMalformedInput = errors.New("malformed input")
	// ErrMalformedSyntax indicates a token stream that does not match the reference grammar
	ErrMalformedSyntax = errors.New("malformed syntax")
	// ErrUnknownBook indicates a book name or alias with no canonical match
	ErrUnknownBook = errors.New("unknown book")
	// ErrChapterOutOfRange indicates a chapter number beyond the book's bounds
	ErrChapterOutOfRange = errors.New("chapter out of range")
	// ErrVerseOutOfRange indicates a verse number beyond the chapter's bounds
	ErrVerseOutOfRange = errors.New("verse out of range")
	// ErrInvalidRangeOrder indicates a range whose end bound precedes its start
	ErrInvalidRangeOrder = errors.New("invalid range order")
	// ErrVerseNotFound indicates a resolved locator absent from the text store
	ErrVerseNotFound = errors.New("verse not found")
)

// Wire identifiers reported in failure results.
const (
	KindMalformedInput    = "MalformedInput"
	KindMalformedSyntax   = "MalformedSyntax"
	KindUnknownBook       = "UnknownBook"
	KindChapterOutOfRange = "ChapterOutOfRange"
	KindVerseOutOfRange   = "VerseOutOfRange"
	KindInvalidRangeOrder = "InvalidRangeOrder"
	KindVerseNotFound     = "VerseNotFound"
	KindInternal          = "InternalError"
)

// Kind maps an error to its wire identifier. Unrecognized errors report as internal.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedInput):
		return KindMalformedInput
	case errors.Is(err, ErrMalformedSyntax):
		return KindMalformedSyntax
	case errors.Is(err, ErrUnknownBook):
		return KindUnknownBook
	case errors.Is(err, ErrChapterOutOfRange):
		return KindChapterOutOfRange
	case errors.Is(err, ErrVerseOutOfRange):
		return KindVerseOutOfRange
	case errors.Is(err, ErrInvalidRangeOrder):
		return KindInvalidRangeOrder
	case errors.Is(err, ErrVerseNotFound):
		return KindVerseNotFound
	default:
		return KindInternal
	}
}

// MalformedInputError reports input rejected before tokenizing (empty, oversized,
// control characters).
type MalformedInputError struct {
	Reason string // Why the input was rejected
	Err    error  // Underlying error, if any
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s", e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMalformedInput
}

// SyntaxError reports a token stream that does not match the reference grammar.
type SyntaxError struct {
	Input    string // Normalized reference being parsed
	Position int    // 1-based column of the offending token
	Token    string // Offending token text, if known
	Message  string // Parser detail
	Err      error  // Underlying error, if any
}

func (e *SyntaxError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("syntax error at position %d near %q: %s", e.Position, e.Token, e.Message)
	}
	return fmt.Sprintf("syntax error at position %d: %s", e.Position, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMalformedSyntax
}

// UnknownBookError reports a book name that resolves to no canonical book.
type UnknownBookError struct {
	Name string // Raw book text as written
	Err  error  // Underlying error, if any
}

func (e *UnknownBookError) Error() string {
	return fmt.Sprintf("unknown book: %q", e.Name)
}

func (e *UnknownBookError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnknownBook
}

// ChapterRangeError reports a chapter number beyond the book's chapter count.
type ChapterRangeError struct {
	Book    string
	Chapter int
	Max     int // Last valid chapter of the book
}

func (e *ChapterRangeError) Error() string {
	return fmt.Sprintf("%s has no chapter %d (last chapter is %d)", e.Book, e.Chapter, e.Max)
}

func (e *ChapterRangeError) Unwrap() error { return ErrChapterOutOfRange }

// VerseRangeError reports a verse number beyond the chapter's verse count.
type VerseRangeError struct {
	Book    string
	Chapter int
	Verse   int
	Max     int // Last valid verse of the chapter
}

func (e *VerseRangeError) Error() string {
	return fmt.Sprintf("%s %d has no verse %d (last verse is %d)", e.Book, e.Chapter, e.Verse, e.Max)
}

func (e *VerseRangeError) Unwrap() error { return ErrVerseOutOfRange }

// RangeOrderError reports a range whose end bound precedes its start bound.
type RangeOrderError struct {
	Unit  string // "chapter" or "verse"
	Start int
	End   int
}

func (e *RangeOrderError) Error() string {
	return fmt.Sprintf("%s range end %d precedes start %d", e.Unit, e.End, e.Start)
}

func (e *RangeOrderError) Unwrap() error { return ErrInvalidRangeOrder }

// VerseNotFoundError reports a resolved locator missing from the text store.
type VerseNotFoundError struct {
	Version string
	Book    string
	Chapter int
	Verse   int
}

func (e *VerseNotFoundError) Error() string {
	return fmt.Sprintf("%s %d:%d not found in version %q", e.Book, e.Chapter, e.Verse, e.Version)
}

func (e *VerseNotFoundError) Unwrap() error { return ErrVerseNotFound }

// NotFoundError names the resource and id that missed
type NotFoundError struct {
	Resource string // Type of resource (e.g., "version", "book", "commentary")
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

// ValidationError names the field and reason behind a rejected input
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation (may be redacted)
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Constructors for the error types above

// NewMalformedInput creates a MalformedInputError
func NewMalformedInput(reason string) *MalformedInputError {
	return &MalformedInputError{Reason: reason}
}

// NewSyntax creates a SyntaxError
func NewSyntax(input string, position int, token, message string) *SyntaxError {
	return &SyntaxError{
		Input:    input,
		Position: position,
		Token:    token,
		Message:  message,
	}
}

// NewUnknownBook creates an UnknownBookError
func NewUnknownBook(name string) *UnknownBookError {
	return &UnknownBookError{Name: name}
}

// NewChapterRange creates a ChapterRangeError
func NewChapterRange(book string, chapter, max int) *ChapterRangeError {
	return &ChapterRangeError{Book: book, Chapter: chapter, Max: max}
}

// NewVerseRange creates a VerseRangeError
func NewVerseRange(book string, chapter, verse, max int) *VerseRangeError {
	return &VerseRangeError{Book: book, Chapter: chapter, Verse: verse, Max: max}
}

// NewRangeOrder creates a RangeOrderError
func NewRangeOrder(unit string, start, end int) *RangeOrderError {
	return &RangeOrderError{Unit: unit, Start: start, End: end}
}

// NewVerseNotFound creates a VerseNotFoundError
func NewVerseNotFound(version, book string, chapter, verse int) *VerseNotFoundError {
	return &VerseNotFoundError{Version: version, Book: book, Chapter: chapter, Verse: verse}
}

// NewNotFound builds a NotFoundError for a resource and id
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewValidation builds a ValidationError for a field
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Wrap prefixes err with message. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is re-exports errors.Is so callers need only this package
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As re-exports errors.As
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
