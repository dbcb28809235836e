package reference

import (
	"github.com/FocuswithJustin/Scriptura/core/errors"
)

// BoundarySource supplies the boundary facts range expansion needs: how many
// chapters a book has and the last verse number of each chapter. The text
// store provides a per-version implementation; tests use fakes.
type BoundarySource interface {
	ChapterCount(book string) int
	LastVerse(book string, chapter int) int
}

// Expand resolves every segment into concrete verse locators: chapter spans
// become full chapters, cross-chapter spans walk every intervening chapter,
// and the end sentinel becomes the last verse (or chapter) the boundary
// source reports. Segments expand independently, ascending, and concatenate
// in source order; an optional group drops only the locators it repeats
// verbatim from its enclosing range. On any failure no locators are
// returned.
func (ast *ReferenceAST) Expand(bounds BoundarySource) ([]Locator, error) {
	var out []Locator
	var enclosing []Locator
	for _, seg := range ast.Segments {
		locs, err := expandSegment(seg, bounds)
		if err != nil {
			return nil, err
		}
		if seg.Optional {
			locs = dropOverlap(locs, enclosing)
		} else {
			enclosing = locs
		}
		out = append(out, locs...)
	}
	return out, nil
}

func expandSegment(seg SegmentSpec, bounds BoundarySource) ([]Locator, error) {
	chapters := bounds.ChapterCount(seg.Book)
	if chapters < 1 {
		return nil, errors.NewChapterRange(seg.Book, seg.StartChapter, 0)
	}

	switch seg.Kind {
	case SegChapterSpan:
		return expandChapterSpan(seg, chapters, bounds)
	case SegSingleVerse, SegVerseRange:
		return expandVerseRange(seg, chapters, bounds)
	case SegCrossChapter:
		if seg.EndChapter == seg.StartChapter {
			// Degenerate span like "3:16-3:20" stays within one chapter.
			return expandVerseRange(seg, chapters, bounds)
		}
		return expandCrossChapter(seg, chapters, bounds)
	default:
		return nil, errors.Wrapf(errors.ErrInternal, "unhandled segment kind %d", seg.Kind)
	}
}

func expandChapterSpan(seg SegmentSpec, chapters int, bounds BoundarySource) ([]Locator, error) {
	start := seg.StartChapter
	end := seg.EndChapter
	if seg.ToEnd {
		end = chapters
	}
	if err := checkChapter(seg.Book, start, chapters); err != nil {
		return nil, err
	}
	if err := checkChapter(seg.Book, end, chapters); err != nil {
		return nil, err
	}
	if end < start {
		return nil, errors.NewRangeOrder("chapter", start, end)
	}

	var out []Locator
	for ch := start; ch <= end; ch++ {
		last := bounds.LastVerse(seg.Book, ch)
		if last < 1 {
			return nil, errors.NewVerseRange(seg.Book, ch, 1, 0)
		}
		for v := 1; v <= last; v++ {
			out = append(out, seg.locator(ch, v))
		}
	}
	return out, nil
}

func expandVerseRange(seg SegmentSpec, chapters int, bounds BoundarySource) ([]Locator, error) {
	if err := checkChapter(seg.Book, seg.StartChapter, chapters); err != nil {
		return nil, err
	}
	last := bounds.LastVerse(seg.Book, seg.StartChapter)
	start := seg.StartVerse
	end := seg.EndVerse
	if seg.ToEnd {
		end = last
	}
	if err := checkVerse(seg.Book, seg.StartChapter, start, last); err != nil {
		return nil, err
	}
	if err := checkVerse(seg.Book, seg.StartChapter, end, last); err != nil {
		return nil, err
	}
	if end < start {
		return nil, errors.NewRangeOrder("verse", start, end)
	}

	out := make([]Locator, 0, end-start+1)
	for v := start; v <= end; v++ {
		out = append(out, seg.locator(seg.StartChapter, v))
	}
	return out, nil
}

func expandCrossChapter(seg SegmentSpec, chapters int, bounds BoundarySource) ([]Locator, error) {
	if err := checkChapter(seg.Book, seg.StartChapter, chapters); err != nil {
		return nil, err
	}
	if err := checkChapter(seg.Book, seg.EndChapter, chapters); err != nil {
		return nil, err
	}
	if seg.EndChapter < seg.StartChapter {
		return nil, errors.NewRangeOrder("chapter", seg.StartChapter, seg.EndChapter)
	}

	firstLast := bounds.LastVerse(seg.Book, seg.StartChapter)
	if err := checkVerse(seg.Book, seg.StartChapter, seg.StartVerse, firstLast); err != nil {
		return nil, err
	}
	endLast := bounds.LastVerse(seg.Book, seg.EndChapter)
	if err := checkVerse(seg.Book, seg.EndChapter, seg.EndVerse, endLast); err != nil {
		return nil, err
	}

	var out []Locator
	for v := seg.StartVerse; v <= firstLast; v++ {
		out = append(out, seg.locator(seg.StartChapter, v))
	}
	for ch := seg.StartChapter + 1; ch < seg.EndChapter; ch++ {
		last := bounds.LastVerse(seg.Book, ch)
		if last < 1 {
			return nil, errors.NewVerseRange(seg.Book, ch, 1, 0)
		}
		for v := 1; v <= last; v++ {
			out = append(out, seg.locator(ch, v))
		}
	}
	for v := 1; v <= seg.EndVerse; v++ {
		out = append(out, seg.locator(seg.EndChapter, v))
	}
	return out, nil
}

// locator builds one resolved locator, attaching the segment's suffix
// metadata to the verse it was written on.
func (seg SegmentSpec) locator(chapter, verse int) Locator {
	loc := Locator{
		VerseLocator: VerseLocator{Book: seg.Book, Chapter: chapter, Verse: verse},
		Optional:     seg.Optional,
	}
	if seg.StartSuffix != "" && chapter == seg.StartChapter && verse == seg.StartVerse {
		loc.Suffix = seg.StartSuffix
	}
	if seg.EndSuffix != "" && chapter == seg.EndChapter && verse == seg.EndVerse {
		loc.Suffix = seg.EndSuffix
	}
	return loc
}

func checkChapter(book string, chapter, max int) error {
	if chapter < 1 || chapter > max {
		return errors.NewChapterRange(book, chapter, max)
	}
	return nil
}

func checkVerse(book string, chapter, verse, max int) error {
	if verse < 1 || verse > max {
		return errors.NewVerseRange(book, chapter, verse, max)
	}
	return nil
}

// dropOverlap removes locators an optional group repeats verbatim from its
// enclosing range; the mandatory copy wins.
func dropOverlap(optional, enclosing []Locator) []Locator {
	if len(enclosing) == 0 || len(optional) == 0 {
		return optional
	}
	seen := make(map[VerseLocator]struct{}, len(enclosing))
	for _, l := range enclosing {
		seen[l.VerseLocator] = struct{}{}
	}
	out := make([]Locator, 0, len(optional))
	for _, l := range optional {
		if _, ok := seen[l.VerseLocator]; ok {
			continue
		}
		out = append(out, l)
	}
	return out
}
