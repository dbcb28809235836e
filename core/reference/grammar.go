package reference

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/Scriptura/core/errors"
)

// referenceLexer tokenizes normalized reference strings. Rule order matters:
// the end keyword and verse suffixes must win over book-name matching.
var referenceLexer = lexer.MustSimple([]lexer.SimpleRule{
	// The "end" keyword ("Jeremiah 18:5-end")
	{Name: "End", Pattern: `(?i)end\b`},
	// Single letter suffix attached to a verse number ("Habakkuk 3:2-19a")
	{Name: "Suffix", Pattern: `[a-h]\b`},
	// Book names: optional leading ordinal, then words, optional trailing period
	// Examples: Genesis, Gen., 1 John, Song of Solomon. The ordinal requires
	// trailing whitespace so a single-digit verse with a suffix ("3:4a")
	// lexes as Int+Suffix rather than a book name.
	{Name: "Book", Pattern: `(?:\d\s+)?[A-Za-z]+(?:\s+[A-Za-z]+)*\.?`},
	// Chapter/verse numbers
	{Name: "Int", Pattern: `\d+`},
	// Separators
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Comma", Pattern: `,`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	// Whitespace
	{Name: "Whitespace", Pattern: `\s+`},
})

// The grammar below mirrors the reference EBNF. A comma-separated group may
// declare its own chapter ("Psalm 104:26,105:1-3"); groups without one reuse
// the chapter in scope.
//
//nolint:govet // field order must match the production order
type referenceGrammar struct {
	Book    string       `@Book`
	Chapter int          `@Int`
	Tail    *chapterTail `@@?`
}

// chapterTail distinguishes "chapter ':' verse-list" from the chapter-only
// span tail "'-' (INT | 'end')". A reference with neither is a whole chapter.
//
//nolint:govet
type chapterTail struct {
	Verses  *verseList  `  ":" @@`
	SpanEnd *chapterEnd `| "-" @@`
}

//nolint:govet
type chapterEnd struct {
	Chapter *int `  @Int`
	ToEnd   bool `| @End`
}

//nolint:govet
type verseList struct {
	Groups []verseGroup `@@ ( "," @@ )*`
}

//nolint:govet
type verseGroup struct {
	Chapter  *int        `( @Int ":" )?`
	Main     verseRange  `@@`
	Optional *verseRange `( "[" @@ "]" )?`
}

//nolint:govet
type verseRange struct {
	Start versePoint `@@`
	End   *rangeEnd  `( "-" @@ )?`
}

//nolint:govet
type versePoint struct {
	Verse  int    `@Int`
	Suffix string `( @Suffix )?`
}

//nolint:govet
type rangeEnd struct {
	Cross *crossPoint `  @@`
	Point *versePoint `| @@`
	ToEnd bool        `| @End`
}

//nolint:govet
type crossPoint struct {
	Chapter int    `@Int ":"`
	Verse   int    `@Int`
	Suffix  string `( @Suffix )?`
}

var referenceParser = participle.MustBuild[referenceGrammar](
	participle.Lexer(referenceLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// parseGrammar runs the grammar over a normalized reference string.
func parseGrammar(input string) (*referenceGrammar, error) {
	g, err := referenceParser.ParseString("", input)
	if err != nil {
		return nil, syntaxError(input, err)
	}
	return g, nil
}

// syntaxError converts a participle error into a SyntaxError carrying the
// offending token position.
func syntaxError(input string, err error) error {
	var unexpected *participle.UnexpectedTokenError
	if errors.As(err, &unexpected) {
		return errors.NewSyntax(input, unexpected.Position().Column, unexpected.Unexpected.Value, unexpected.Message())
	}
	var perr participle.Error
	if errors.As(err, &perr) {
		return errors.NewSyntax(input, perr.Position().Column, "", perr.Message())
	}
	return errors.NewSyntax(input, 1, "", err.Error())
}
