// Package canon provides the fixed book index for the Protestant canon:
// canonical book names, ordinals, chapter counts, and alias resolution.
// The index is immutable; per-version verse counts live in the text store.
package canon

import "strings"

// Book describes one canonical book.
type Book struct {
	Name     string `json:"name"`     // Canonical display name, e.g. "Song of Solomon"
	Ordinal  int    `json:"ordinal"`  // 1-based position in the canon
	Chapters int    `json:"chapters"` // Number of chapters
}

var byKey = make(map[string]*Book, len(books))

func init() {
	for i := range books {
		byKey[normalize(books[i].Name)] = &books[i]
	}
	for alias, name := range aliases {
		b, ok := byKey[normalize(name)]
		if !ok {
			panic("canon: alias " + alias + " targets unknown book " + name)
		}
		byKey[alias] = b
	}
}

// normalize reduces raw book text to a lookup key: trimmed, lowercased,
// trailing period removed, internal whitespace dropped so "1 John" and
// "1John" collide.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".")
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), "")
}

// Resolve maps raw book text (canonical name, alias, or abbreviation) to its
// canonical Book. The second return is false when nothing matches.
func Resolve(raw string) (Book, bool) {
	key := normalize(raw)
	if key == "" {
		return Book{}, false
	}
	if b, ok := byKey[key]; ok {
		return *b, true
	}
	return Book{}, false
}

// ChapterCount returns the number of chapters in the named book, or 0 when
// the book is unknown.
func ChapterCount(name string) int {
	if b, ok := byKey[normalize(name)]; ok {
		return b.Chapters
	}
	return 0
}

// Ordinal returns the 1-based canon position of the named book, or 0 when
// the book is unknown.
func Ordinal(name string) int {
	if b, ok := byKey[normalize(name)]; ok {
		return b.Ordinal
	}
	return 0
}

// ByOrdinal returns the book at the given 1-based canon position. The second
// return is false when the ordinal is out of range.
func ByOrdinal(n int) (Book, bool) {
	if n < 1 || n > len(books) {
		return Book{}, false
	}
	return books[n-1], true
}

// Books returns the canon in order.
func Books() []Book {
	out := make([]Book, len(books))
	copy(out, books)
	return out
}
