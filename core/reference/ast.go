package reference

// SegmentKind discriminates the closed set of segment shapes the grammar can
// produce. Expansion dispatches on the kind.
type SegmentKind int

const (
	// SegChapterSpan covers whole chapters: "Psalm 146", "Haggai 1-2".
	SegChapterSpan SegmentKind = iota
	// SegSingleVerse covers one verse: "John 3:16".
	SegSingleVerse
	// SegVerseRange covers a verse range within one chapter:
	// "Psalm 104:26-36", "Jeremiah 18:5-end".
	SegVerseRange
	// SegCrossChapter covers a verse span across chapters: "John 3:16-4:1".
	SegCrossChapter
)

// SegmentSpec is one contiguous or semi-contiguous unit parsed from a
// reference, with its chapter scope already resolved. The end keyword is
// recorded as the ToEnd sentinel; the expander resolves it against the
// boundary source.
type SegmentSpec struct {
	Kind         SegmentKind
	Book         string
	StartChapter int
	EndChapter   int // equals StartChapter except for chapter spans and cross-chapter spans
	StartVerse   int // 0 for chapter spans
	EndVerse     int // 0 with ToEnd set means "to end"; equals StartVerse for single verses
	ToEnd        bool
	StartSuffix  string
	EndSuffix    string
	Optional     bool // true for bracketed groups
}

// ReferenceAST is the parsed form of one reference: a canonical book plus the
// ordered segments the reference names. An optional segment always directly
// follows the mandatory segment it was bracketed onto.
type ReferenceAST struct {
	Book     string
	Chapter  int // representative chapter for display: the first chapter touched
	Segments []SegmentSpec
}
