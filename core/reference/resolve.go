package reference

import (
	"github.com/FocuswithJustin/Scriptura/core/canon"
	"github.com/FocuswithJustin/Scriptura/core/errors"
)

// Parse runs the front half of the pipeline: normalization, grammar parsing,
// book resolution, and segment construction with chapter scope threading.
// The result still carries unresolved "end" sentinels; Expand resolves them
// against a boundary source.
func Parse(raw string) (*ReferenceAST, error) {
	normalized, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	g, err := parseGrammar(normalized)
	if err != nil {
		return nil, err
	}
	book, ok := canon.Resolve(g.Book)
	if !ok {
		return nil, errors.NewUnknownBook(g.Book)
	}
	return buildAST(book, g), nil
}

func buildAST(book canon.Book, g *referenceGrammar) *ReferenceAST {
	ast := &ReferenceAST{Book: book.Name}

	switch {
	case g.Tail == nil:
		ast.Segments = chapterSpanSegments(book, g.Chapter, 0, false)
	case g.Tail.SpanEnd != nil:
		end := 0
		if g.Tail.SpanEnd.Chapter != nil {
			end = *g.Tail.SpanEnd.Chapter
		}
		ast.Segments = chapterSpanSegments(book, g.Chapter, end, g.Tail.SpanEnd.ToEnd)
	default:
		ast.Segments = verseSegments(book, g.Chapter, g.Tail.Verses)
	}

	ast.Chapter = ast.Segments[0].StartChapter
	return ast
}

// chapterSpanSegments models "Book N", "Book N1-N2", and "Book N1-end".
// Single-chapter books read chapter-only numbers beyond 1 as verses of
// chapter 1, the conventional citation form: "Philemon 1-21" names verses,
// the book has no chapter 21.
func chapterSpanSegments(book canon.Book, start, end int, toEnd bool) []SegmentSpec {
	if book.Chapters == 1 && (start > 1 || end > 1) {
		seg := SegmentSpec{
			Book:         book.Name,
			StartChapter: 1,
			EndChapter:   1,
			StartVerse:   start,
			ToEnd:        toEnd,
		}
		switch {
		case toEnd:
			seg.Kind = SegVerseRange
		case end != 0:
			seg.Kind = SegVerseRange
			seg.EndVerse = end
		default:
			seg.Kind = SegSingleVerse
			seg.EndVerse = start
		}
		return []SegmentSpec{seg}
	}

	seg := SegmentSpec{
		Kind:         SegChapterSpan,
		Book:         book.Name,
		StartChapter: start,
		EndChapter:   start,
		ToEnd:        toEnd,
	}
	if toEnd {
		seg.EndChapter = 0 // resolved by the expander to the book's last chapter
	} else if end != 0 {
		seg.EndChapter = end
	}
	return []SegmentSpec{seg}
}

// verseSegments builds segments from a verse list, threading the chapter
// scope left to right: explicit group chapters and cross-chapter ends both
// restate the scope for everything after them.
func verseSegments(book canon.Book, chapter int, list *verseList) []SegmentSpec {
	scope := chapter
	segs := make([]SegmentSpec, 0, len(list.Groups))
	for _, group := range list.Groups {
		if group.Chapter != nil {
			scope = *group.Chapter
		}
		seg, next := rangeSegment(book, scope, group.Main, false)
		segs = append(segs, seg)
		scope = next
		if group.Optional != nil {
			opt, optNext := rangeSegment(book, scope, *group.Optional, true)
			segs = append(segs, opt)
			scope = optNext
		}
	}
	return segs
}

// rangeSegment converts one verse-range to a segment under the given chapter
// scope. The returned scope reflects a cross-chapter end, which restates the
// chapter for subsequent groups.
func rangeSegment(book canon.Book, scope int, vr verseRange, optional bool) (SegmentSpec, int) {
	seg := SegmentSpec{
		Book:         book.Name,
		StartChapter: scope,
		EndChapter:   scope,
		StartVerse:   vr.Start.Verse,
		StartSuffix:  vr.Start.Suffix,
		Optional:     optional,
	}
	switch {
	case vr.End == nil:
		seg.Kind = SegSingleVerse
		seg.EndVerse = vr.Start.Verse
	case vr.End.ToEnd:
		seg.Kind = SegVerseRange
		seg.ToEnd = true
	case vr.End.Cross != nil:
		seg.Kind = SegCrossChapter
		seg.EndChapter = vr.End.Cross.Chapter
		seg.EndVerse = vr.End.Cross.Verse
		seg.EndSuffix = vr.End.Cross.Suffix
		scope = vr.End.Cross.Chapter
	default:
		seg.Kind = SegVerseRange
		seg.EndVerse = vr.End.Point.Verse
		seg.EndSuffix = vr.End.Point.Suffix
	}
	return seg, scope
}
