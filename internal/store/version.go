package store

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/FocuswithJustin/Scriptura/core/canon"
	"github.com/FocuswithJustin/Scriptura/core/errors"
)

// Meta describes a loaded Bible version. JSON sources carry it verbatim;
// the Zefania loader fills it from the INFORMATION block.
type Meta struct {
	Name        string `json:"name"`
	ShortName   string `json:"shortname"`
	Module      string `json:"module"`
	Year        string `json:"year,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Owner       string `json:"owner,omitempty"`
	Description string `json:"description,omitempty"`
	Lang        string `json:"lang,omitempty"`
}

// Verse is one verse of a loaded version.
type Verse struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// bookText holds the verse text of one book, keyed chapter -> verse -> text.
type bookText struct {
	chapters map[int]map[int]string
	last     map[int]int // chapter -> highest verse number
}

// Version is one loaded Bible text. It is immutable after load and safe for
// concurrent readers without locking.
type Version struct {
	key   string
	meta  Meta
	hash  string
	books map[string]*bookText
	order []string // book names in canon order
	flat  []Verse  // every verse in canon order
}

// Key returns the registry key the version was loaded under.
func (v *Version) Key() string { return v.key }

// Name identifies the version in error messages and formatted output. It
// prefers the meta shortname and falls back to the registry key.
func (v *Version) Name() string {
	if v.meta.ShortName != "" {
		return v.meta.ShortName
	}
	return v.key
}

// Meta returns the version metadata.
func (v *Version) Meta() Meta { return v.meta }

// Hash returns the hex BLAKE3 hash of the source file, used as a weak ETag.
func (v *Version) Hash() string { return v.hash }

// VerseCount returns the total number of verses loaded.
func (v *Version) VerseCount() int { return len(v.flat) }

// BookCount returns the number of books the version carries.
func (v *Version) BookCount() int { return len(v.order) }

// Books returns the version's book names in canon order.
func (v *Version) Books() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// ChapterCount reports how many chapters the named book has, or 0 when the
// version does not carry the book. Books present in the text report the
// canonical chapter count, so expansion bounds stay uniform across
// translations of the full canon.
func (v *Version) ChapterCount(book string) int {
	if _, ok := v.books[book]; !ok {
		return 0
	}
	return canon.ChapterCount(book)
}

// LastVerse returns the highest verse number of one chapter, or 0 when the
// version has no text for it.
func (v *Version) LastVerse(book string, chapter int) int {
	b, ok := v.books[book]
	if !ok {
		return 0
	}
	return b.last[chapter]
}

// VerseText returns the text of one verse, or false when absent.
func (v *Version) VerseText(book string, chapter, verse int) (string, bool) {
	b, ok := v.books[book]
	if !ok {
		return "", false
	}
	text, ok := b.chapters[chapter][verse]
	return text, ok
}

// Verse looks up one verse. The book name may be any alias the canon
// resolves.
func (v *Version) Verse(book string, chapter, verse int) (Verse, error) {
	name, err := v.bookName(book)
	if err != nil {
		return Verse{}, err
	}
	text, ok := v.VerseText(name, chapter, verse)
	if !ok {
		return Verse{}, errors.NewVerseNotFound(v.Name(), name, chapter, verse)
	}
	return Verse{Book: name, Chapter: chapter, Verse: verse, Text: text}, nil
}

// Chapters returns the chapter numbers the version carries for one book,
// ascending.
func (v *Version) Chapters(book string) ([]int, error) {
	name, err := v.bookName(book)
	if err != nil {
		return nil, err
	}
	b := v.books[name]
	out := make([]int, 0, len(b.chapters))
	for ch := range b.chapters {
		out = append(out, ch)
	}
	sort.Ints(out)
	return out, nil
}

// VerseNumbers returns the verse numbers of one chapter, ascending.
func (v *Version) VerseNumbers(book string, chapter int) ([]int, error) {
	name, err := v.bookName(book)
	if err != nil {
		return nil, err
	}
	verses := v.books[name].chapters[chapter]
	if len(verses) == 0 {
		return nil, errors.NewChapterRange(name, chapter, v.ChapterCount(name))
	}
	out := make([]int, 0, len(verses))
	for n := range verses {
		out = append(out, n)
	}
	sort.Ints(out)
	return out, nil
}

// ChapterText returns a whole chapter formatted the same way passages are:
// verse numbers as bare labels, texts joined with single spaces.
func (v *Version) ChapterText(book string, chapter int) (string, error) {
	name, err := v.bookName(book)
	if err != nil {
		return "", err
	}
	numbers, err := v.VerseNumbers(name, chapter)
	if err != nil {
		return "", err
	}
	verses := v.books[name].chapters[chapter]
	var text strings.Builder
	for i, n := range numbers {
		if i > 0 {
			text.WriteByte(' ')
		}
		fmt.Fprintf(&text, "%d %s", n, verses[n])
	}
	return text.String(), nil
}

// Search scans the whole text for a case-insensitive substring and returns
// matches in canon order, capped at limit.
func (v *Version) Search(query string, limit int) []Verse {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit < 1 {
		return nil
	}
	var out []Verse
	for _, verse := range v.flat {
		if strings.Contains(strings.ToLower(verse.Text), q) {
			out = append(out, verse)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Random returns one uniformly chosen verse.
func (v *Version) Random() Verse {
	return v.flat[rand.Intn(len(v.flat))]
}

// DayText returns the verse a seed string deterministically selects: the
// same seed (normally an ISO date) always yields the same verse for the
// same loaded text.
func (v *Version) DayText(seed string) Verse {
	sum := sha256.Sum256([]byte(seed))
	idx := binary.BigEndian.Uint64(sum[:8]) % uint64(len(v.flat))
	return v.flat[idx]
}

// bookName resolves a raw book name against the canon and confirms the
// version carries it.
func (v *Version) bookName(raw string) (string, error) {
	b, ok := canon.Resolve(raw)
	if !ok {
		return "", errors.NewUnknownBook(raw)
	}
	if _, ok := v.books[b.Name]; !ok {
		return "", errors.NewNotFound("book", b.Name)
	}
	return b.Name, nil
}

// record is one verse as loaders produce it, before canon resolution.
type record struct {
	book    string
	chapter int
	verse   int
	text    string
}

// buildVersion assembles a Version from loader records. Records whose book
// the canon cannot resolve, or with non-positive chapter or verse numbers,
// are dropped; the count of dropped records is returned for the loader to
// log. Duplicate locators keep the last occurrence.
func buildVersion(key string, meta Meta, hash string, records []record) (*Version, int) {
	v := &Version{key: key, meta: meta, hash: hash, books: make(map[string]*bookText)}

	dropped := 0
	for _, r := range records {
		b, ok := canon.Resolve(r.book)
		if !ok || r.chapter < 1 || r.verse < 1 {
			dropped++
			continue
		}
		bt := v.books[b.Name]
		if bt == nil {
			bt = &bookText{chapters: make(map[int]map[int]string), last: make(map[int]int)}
			v.books[b.Name] = bt
			v.order = append(v.order, b.Name)
		}
		ch := bt.chapters[r.chapter]
		if ch == nil {
			ch = make(map[int]string)
			bt.chapters[r.chapter] = ch
		}
		ch[r.verse] = r.text
		if r.verse > bt.last[r.chapter] {
			bt.last[r.chapter] = r.verse
		}
	}

	sort.Slice(v.order, func(i, j int) bool {
		return canon.Ordinal(v.order[i]) < canon.Ordinal(v.order[j])
	})

	for _, name := range v.order {
		bt := v.books[name]
		chapters := make([]int, 0, len(bt.chapters))
		for ch := range bt.chapters {
			chapters = append(chapters, ch)
		}
		sort.Ints(chapters)
		for _, ch := range chapters {
			verses := bt.chapters[ch]
			numbers := make([]int, 0, len(verses))
			for n := range verses {
				numbers = append(numbers, n)
			}
			sort.Ints(numbers)
			for _, n := range numbers {
				v.flat = append(v.flat, Verse{Book: name, Chapter: ch, Verse: n, Text: verses[n]})
			}
		}
	}

	return v, dropped
}
