// Package reference implements the free-form Bible reference pipeline:
// normalization, grammar parsing, range expansion, and locator resolution.
// Raw strings like "Psalm 104:26-36,37", "John 3:16-4:1", or
// "Luke 1:39-45[46-55]" become ordered sequences of verse locators ready to
// be joined against a verse-text store.
package reference

import (
	"fmt"

	"github.com/FocuswithJustin/Scriptura/core/canon"
)

// VerseLocator identifies a single verse. Locators are immutable values
// totally ordered by (book ordinal, chapter, verse).
type VerseLocator struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
}

// String returns the conventional "Book C:V" form.
func (l VerseLocator) String() string {
	return fmt.Sprintf("%s %d:%d", l.Book, l.Chapter, l.Verse)
}

// Compare orders two locators by (book ordinal, chapter, verse). It returns
// -1, 0, or 1 in the manner of strings.Compare.
func Compare(a, b VerseLocator) int {
	ao, bo := canon.Ordinal(a.Book), canon.Ordinal(b.Book)
	switch {
	case ao != bo:
		return sign(ao - bo)
	case a.Chapter != b.Chapter:
		return sign(a.Chapter - b.Chapter)
	default:
		return sign(a.Verse - b.Verse)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Locator is a verse locator paired with the presentation metadata carried
// through from the reference: the optional flag for bracketed groups and the
// opaque letter suffix ("19a"). The suffix never changes which verse is
// looked up.
type Locator struct {
	VerseLocator
	Optional bool   `json:"optional,omitempty"`
	Suffix   string `json:"suffix,omitempty"`
}
