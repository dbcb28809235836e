// Package passage assembles parsed references into passage text. It runs the
// full pipeline for one reference string: normalize, parse, expand against a
// text source, fetch every verse, and format the result. Failures never
// escape as errors; every reference yields a Result that reports success or
// failure as data.
package passage

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/Scriptura/core/errors"
	"github.com/FocuswithJustin/Scriptura/core/reference"
)

// TextSource is a version-scoped view of a Bible text: the chapter and verse
// bounds used during expansion plus the verse text itself.
type TextSource interface {
	reference.BoundarySource

	// VerseText returns the text of one verse, or false when the version
	// has no such verse.
	VerseText(book string, chapter, verse int) (string, bool)

	// Name identifies the version in error messages.
	Name() string
}

// Verse is one resolved verse of an assembled passage.
type Verse struct {
	Verse    int    `json:"verse"`
	Text     string `json:"text"`
	Optional bool   `json:"optional,omitempty"`
	Suffix   string `json:"suffix,omitempty"`
}

// Result is the outcome of parsing one reference. Parsed reports whether the
// pipeline succeeded; on failure Error holds the error kind and Message the
// human-readable detail, and no verse data is present.
type Result struct {
	Reference     string  `json:"reference"`
	Parsed        bool    `json:"parsed"`
	Book          string  `json:"book,omitempty"`
	Chapter       int     `json:"chapter,omitempty"`
	Verses        []Verse `json:"verses,omitempty"`
	FormattedText string  `json:"formatted_text,omitempty"`
	Error         string  `json:"error,omitempty"`
	Message       string  `json:"message,omitempty"`
}

// Assemble runs the whole pipeline for one reference against one text
// source. Any missing verse fails the whole reference; there are no partial
// passages.
func Assemble(raw string, src TextSource) Result {
	ast, err := reference.Parse(raw)
	if err != nil {
		return failure(raw, err)
	}
	locs, err := ast.Expand(src)
	if err != nil {
		return failure(raw, err)
	}

	verses := make([]Verse, 0, len(locs))
	var text strings.Builder
	for i, loc := range locs {
		verseText, ok := src.VerseText(loc.Book, loc.Chapter, loc.Verse)
		if !ok {
			return failure(raw, errors.NewVerseNotFound(src.Name(), loc.Book, loc.Chapter, loc.Verse))
		}
		verses = append(verses, Verse{
			Verse:    loc.Verse,
			Text:     verseText,
			Optional: loc.Optional,
			Suffix:   loc.Suffix,
		})
		if i > 0 {
			text.WriteByte(' ')
		}
		fmt.Fprintf(&text, "%d %s", loc.Verse, verseText)
	}

	return Result{
		Reference:     raw,
		Parsed:        true,
		Book:          ast.Book,
		Chapter:       ast.Chapter,
		Verses:        verses,
		FormattedText: text.String(),
	}
}

func failure(raw string, err error) Result {
	return Result{
		Reference: raw,
		Parsed:    false,
		Error:     errors.Kind(err),
		Message:   err.Error(),
	}
}
